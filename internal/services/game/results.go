package game

import "github.com/mcoot/champguess/internal/model"

// MaxGuessSuggestions caps the fuzzy suggestions returned on a wrong guess
const MaxGuessSuggestions = 3

// GuessResult is the outcome of a single guess
type GuessResult struct {
	Session     model.GameSession
	IsCorrect   bool
	IsGameOver  bool
	IsWon       bool
	Score       int
	Suggestions []string    // Close catalog names, only on a miss
	AutoHint    *HintResult // Hint granted automatically after a miss
}

// HintResult is a revealed hint
type HintResult struct {
	Session    model.GameSession
	Hint       string
	HintType   model.HintType
	CanGetMore bool
}

// GiveUpResult reveals the answer of a conceded session
type GiveUpResult struct {
	Session      model.GameSession
	ChampionName string
}
