package matching

import (
	"sort"
	"strings"

	"github.com/mcoot/champguess/internal/model"
)

// Ranking limits
const (
	DefaultThreshold      = 0.3
	MaxBestMatches        = 10
	DefaultMaxSuggestions = 5
	MinSuggestionLength   = 2
	MinSubstringLength    = 3
)

// Match is a champion paired with its similarity to some input
type Match struct {
	Champion   model.Champion
	Similarity float64
}

// Matcher decides whether guesses name a champion, using an alias table
type Matcher struct {
	aliases Aliases
}

// NewMatcher creates a Matcher; a nil table means no aliases
func NewMatcher(aliases Aliases) *Matcher {
	if aliases == nil {
		aliases = Aliases{}
	}
	return &Matcher{aliases: aliases}
}

var defaultMatcher = &Matcher{}

func (m *Matcher) table() Aliases {
	if m.aliases == nil {
		return DefaultAliases()
	}
	return m.aliases
}

// MatchesChampion reports whether userText names the champion exactly or by alias.
// Fuzzy similarity never counts as a match.
func (m *Matcher) MatchesChampion(userText, championName string) bool {
	input := Normalize(userText)
	canonical := Normalize(championName)
	if input == "" {
		return false
	}
	if input == canonical {
		return true
	}
	return m.table().Has(canonical, input)
}

// MatchesTarget checks a guess against both the display name and the catalog ID
func (m *Matcher) MatchesTarget(userText string, champion model.Champion) bool {
	if m.MatchesChampion(userText, champion.Name) {
		return true
	}
	return champion.ID != "" && Normalize(userText) == Normalize(champion.ID)
}

// FindChampion returns the first champion matched exactly or by alias, falling back
// to the first whose name contains the input when the input is long enough
func (m *Matcher) FindChampion(userText string, champions []model.Champion) (model.Champion, bool) {
	for _, c := range champions {
		if m.MatchesChampion(userText, c.Name) {
			return c, true
		}
	}

	input := Normalize(userText)
	if len(input) < MinSubstringLength {
		return model.Champion{}, false
	}
	for _, c := range champions {
		if strings.Contains(Normalize(c.Name), input) {
			return c, true
		}
	}
	return model.Champion{}, false
}

// MatchesChampion uses the built-in alias table
func MatchesChampion(userText, championName string) bool {
	return defaultMatcher.MatchesChampion(userText, championName)
}

// Similarity returns 1 - levenshtein/maxLen over normalized inputs; 1.0 when both are empty
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}
	maxLen := max(len(na), len(nb))
	if maxLen == 0 {
		return 1.0
	}
	return 1 - float64(levenshtein(na, nb))/float64(maxLen)
}

// Suggestions returns catalog names containing the partial input, in catalog order
func Suggestions(partial string, champions []model.Champion, maxResults int) []string {
	input := Normalize(partial)
	if len(input) < MinSuggestionLength || maxResults <= 0 {
		return []string{}
	}

	results := []string{}
	for _, c := range champions {
		if strings.Contains(Normalize(c.Name), input) {
			results = append(results, c.Name)
			if len(results) == maxResults {
				break
			}
		}
	}
	return results
}

// BestMatches ranks champions by similarity to input, keeping those at or above threshold
func BestMatches(input string, champions []model.Champion, threshold float64) []Match {
	matches := make([]Match, 0, len(champions))
	for _, c := range champions {
		sim := Similarity(input, c.Name)
		if sim >= threshold {
			matches = append(matches, Match{Champion: c, Similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > MaxBestMatches {
		matches = matches[:MaxBestMatches]
	}
	return matches
}

// levenshtein computes edit distance over runes
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
