package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter writing to w, with errors going to errW
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	if raw, ok := data.(json.RawMessage); ok {
		fmt.Fprintln(o.w, strings.TrimSpace(string(raw)))
		return
	}
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case GuessResult:
		o.printGuess(v)
	case HintResult:
		o.printHint(v)
	case GiveUpResult:
		o.printGiveUp(v)
	case SessionStats:
		o.printSessionStats(v)
	case GlobalStats:
		o.printGlobalStats(v)
	case Suggestions:
		o.printSuggestions(v)
	case Preference:
		o.printPreference(v)
	case PreferenceStats:
		o.printPreferenceStats(v)
	case UserList:
		o.printUserList(v)
	case ChampionBuild:
		o.printBuild(v)
	case ImportReport:
		fmt.Fprintf(o.w, "Imported: %d\nSkipped: %d\n", v.Imported, v.Skipped)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	ChannelID      string     `json:"channel_id"`
	UserID         string     `json:"user_id"`
	Difficulty     string     `json:"difficulty"`
	DifficultyName string     `json:"difficulty_name"`
	Language       string     `json:"language"`
	AutoHints      bool       `json:"auto_hints"`
	Outcome        string     `json:"outcome"`
	Active         bool       `json:"active"`
	AttemptsLeft   int        `json:"attempts_left"`
	MaxAttempts    int        `json:"max_attempts"`
	HintsUsed      int        `json:"hints_used"`
	MaxHints       int        `json:"max_hints"`
	Guesses        []string   `json:"guesses"`
	Hints          []string   `json:"hints"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Score          int        `json:"score"`
	Champion       string     `json:"champion,omitempty"`
}

// SessionList response type
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// HintResult response type
type HintResult struct {
	Hint       string  `json:"hint"`
	HintType   string  `json:"hint_type"`
	CanGetMore bool    `json:"can_get_more"`
	Session    Session `json:"session"`
}

// GuessResult response type
type GuessResult struct {
	IsCorrect   bool        `json:"is_correct"`
	IsGameOver  bool        `json:"is_game_over"`
	IsWon       bool        `json:"is_won"`
	Score       int         `json:"score"`
	Suggestions []string    `json:"suggestions"`
	AutoHint    *HintResult `json:"auto_hint,omitempty"`
	Session     Session     `json:"session"`
}

// GiveUpResult response type
type GiveUpResult struct {
	Champion string  `json:"champion"`
	Session  Session `json:"session"`
}

// SessionStats response type
type SessionStats struct {
	Attempts        int       `json:"attempts"`
	HintsUsed       int       `json:"hints_used"`
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
}

// GlobalStats response type
type GlobalStats struct {
	Sessions       int        `json:"sessions"`
	ChannelIDs     []string   `json:"channel_ids"`
	OldestStart    *time.Time `json:"oldest_start,omitempty"`
	AverageGuesses float64    `json:"average_guesses"`
	AverageHints   float64    `json:"average_hints"`
}

// Suggestions response type
type Suggestions struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// Preference response type
type Preference struct {
	UserID         string    `json:"user_id"`
	Language       string    `json:"language"`
	Locale         string    `json:"locale"`
	Difficulty     string    `json:"difficulty"`
	DifficultyName string    `json:"difficulty_name"`
	AutoHints      bool      `json:"auto_hints"`
	LastUsed       time.Time `json:"last_used"`
}

// PreferenceStats response type
type PreferenceStats struct {
	TotalUsers    int            `json:"total_users"`
	Languages     map[string]int `json:"languages"`
	Difficulties  map[string]int `json:"difficulties"`
	CacheSize     int            `json:"cache_size"`
	CacheCapacity int            `json:"cache_capacity"`
}

// UserList response type
type UserList struct {
	Users []string `json:"users"`
}

// BuildItem response type
type BuildItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// BuildRune response type, used for rune trees and single runes
type BuildRune struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RoleBuild response type
type RoleBuild struct {
	Role     string `json:"role"`
	RunePage struct {
		Primary   BuildRune   `json:"primary_tree"`
		Secondary BuildRune   `json:"secondary_tree"`
		Runes     []BuildRune `json:"runes"`
	} `json:"rune_page"`
	StartingItems    []BuildItem `json:"starting_items"`
	CoreItems        []BuildItem `json:"core_items"`
	SituationalItems []BuildItem `json:"situational_items"`
	SkillOrder       []string    `json:"skill_order"`
	SummonerSpells   struct {
		First  string `json:"spell1"`
		Second string `json:"spell2"`
	} `json:"summoner_spells"`
}

// ChampionBuild response type
type ChampionBuild struct {
	ChampionID   string `json:"champion_id"`
	ChampionName string `json:"champion_name"`
	Patch        string `json:"patch"`
	Abilities    []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"abilities"`
	Roles []RoleBuild `json:"roles"`
}

// ImportReport response type
type ImportReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Fprintf(o.w, "Channel: %s\n", s.ChannelID)
	fmt.Fprintf(o.w, "Player: %s\n", s.UserID)
	fmt.Fprintf(o.w, "State: %s\n", s.Outcome)
	fmt.Fprintf(o.w, "Difficulty: %s (%s)\n", s.Difficulty, s.DifficultyName)
	fmt.Fprintf(o.w, "Language: %s\n", s.Language)
	if s.AutoHints {
		fmt.Fprintln(o.w, "Auto hints: on")
	}
	fmt.Fprintf(o.w, "Attempts left: %d/%d\n", s.AttemptsLeft, s.MaxAttempts)
	fmt.Fprintf(o.w, "Hints used: %d/%d\n", s.HintsUsed, s.MaxHints)

	if len(s.Guesses) > 0 {
		fmt.Fprintf(o.w, "Guesses: %s\n", strings.Join(s.Guesses, ", "))
	}
	if len(s.Hints) > 0 {
		fmt.Fprintln(o.w, "Hints:")
		for _, h := range s.Hints {
			fmt.Fprintf(o.w, "  - %s\n", h)
		}
	}

	if s.Champion != "" {
		fmt.Fprintf(o.w, "Champion: %s\n", s.Champion)
	}
	if s.Score > 0 {
		fmt.Fprintf(o.w, "Score: %d\n", s.Score)
	}
}

func (o *Output) printGuess(g GuessResult) {
	switch {
	case g.IsWon:
		fmt.Fprintf(o.w, "Correct! It was %s.\n", g.Session.Champion)
		fmt.Fprintf(o.w, "Score: %d\n", g.Score)
		return
	case g.IsGameOver:
		fmt.Fprintf(o.w, "Out of attempts. It was %s.\n", g.Session.Champion)
		return
	}

	fmt.Fprintf(o.w, "Wrong. Attempts left: %d\n", g.Session.AttemptsLeft)
	if len(g.Suggestions) > 0 {
		fmt.Fprintf(o.w, "Did you mean: %s\n", strings.Join(g.Suggestions, ", "))
	}
	if g.AutoHint != nil {
		fmt.Fprintf(o.w, "Hint: %s\n", g.AutoHint.Hint)
	}
}

func (o *Output) printHint(h HintResult) {
	fmt.Fprintf(o.w, "Hint %d/%d: %s\n", h.Session.HintsUsed, h.Session.MaxHints, h.Hint)
	if !h.CanGetMore {
		fmt.Fprintln(o.w, "No more hints available")
	}
}

func (o *Output) printGiveUp(g GiveUpResult) {
	fmt.Fprintf(o.w, "The champion was %s\n", g.Champion)
}

func (o *Output) printSessionStats(s SessionStats) {
	fmt.Fprintf(o.w, "Attempts: %d\n", s.Attempts)
	fmt.Fprintf(o.w, "Hints used: %d\n", s.HintsUsed)
	fmt.Fprintf(o.w, "Duration: %ds\n", s.DurationSeconds)
	fmt.Fprintf(o.w, "Started: %s\n", s.StartedAt.Format(time.RFC3339))
}

func (o *Output) printGlobalStats(s GlobalStats) {
	fmt.Fprintf(o.w, "Sessions: %d\n", s.Sessions)
	if len(s.ChannelIDs) > 0 {
		fmt.Fprintf(o.w, "Channels: %s\n", strings.Join(s.ChannelIDs, ", "))
	}
	if s.OldestStart != nil {
		fmt.Fprintf(o.w, "Oldest: %s\n", s.OldestStart.Format(time.RFC3339))
	}
	fmt.Fprintf(o.w, "Average guesses: %.2f\n", s.AverageGuesses)
	fmt.Fprintf(o.w, "Average hints: %.2f\n", s.AverageHints)
}

func (o *Output) printSuggestions(s Suggestions) {
	if len(s.Suggestions) == 0 {
		fmt.Fprintf(o.w, "No champions match %q\n", s.Query)
		return
	}
	for _, name := range s.Suggestions {
		fmt.Fprintln(o.w, name)
	}
}

func (o *Output) printPreference(p Preference) {
	autoStr := "off"
	if p.AutoHints {
		autoStr = "on"
	}
	fmt.Fprintf(o.w, "User: %s\n", p.UserID)
	fmt.Fprintf(o.w, "Language: %s (%s)\n", p.Language, p.Locale)
	fmt.Fprintf(o.w, "Difficulty: %s (%s)\n", p.Difficulty, p.DifficultyName)
	fmt.Fprintf(o.w, "Auto hints: %s\n", autoStr)
}

func (o *Output) printPreferenceStats(s PreferenceStats) {
	fmt.Fprintf(o.w, "Users: %d (cache %d/%d)\n", s.TotalUsers, s.CacheSize, s.CacheCapacity)
	o.printDistribution("Languages", s.Languages)
	o.printDistribution("Difficulties", s.Difficulties)
}

func (o *Output) printDistribution(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(o.w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(o.w, "  %s: %d\n", k, counts[k])
	}
}

func (o *Output) printUserList(u UserList) {
	if len(u.Users) == 0 {
		fmt.Fprintln(o.w, "No matching users")
		return
	}
	for _, user := range u.Users {
		fmt.Fprintln(o.w, user)
	}
}

func (o *Output) printBuild(b ChampionBuild) {
	fmt.Fprintf(o.w, "%s (patch %s)\n", b.ChampionName, b.Patch)
	for _, a := range b.Abilities {
		fmt.Fprintf(o.w, "  %s: %s\n", a.Key, a.Name)
	}

	for _, rb := range b.Roles {
		fmt.Fprintf(o.w, "\n[%s]\n", rb.Role)
		fmt.Fprintf(o.w, "Runes: %s / %s\n", rb.RunePage.Primary.Name, rb.RunePage.Secondary.Name)
		for _, r := range rb.RunePage.Runes {
			fmt.Fprintf(o.w, "  - %s\n", r.Name)
		}
		fmt.Fprintf(o.w, "Start: %s\n", itemNames(rb.StartingItems))
		fmt.Fprintf(o.w, "Core: %s\n", itemNames(rb.CoreItems))
		fmt.Fprintf(o.w, "Situational: %s\n", itemNames(rb.SituationalItems))
		fmt.Fprintf(o.w, "Skills: %s\n", strings.Join(rb.SkillOrder, " > "))
		fmt.Fprintf(o.w, "Spells: %s + %s\n", rb.SummonerSpells.First, rb.SummonerSpells.Second)
	}
}

func itemNames(items []BuildItem) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = fmt.Sprintf("%s (%dg)", it.Name, it.Price)
	}
	return strings.Join(names, ", ")
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
