package request

// StartGameRequest is the request body for starting a game in a channel
type StartGameRequest struct {
	UserID string `json:"user_id"`
}

// GuessRequest is the request body for a guess
type GuessRequest struct {
	Text string `json:"text"`
}

// UpdatePreferenceRequest is the request body for a partial preference update
type UpdatePreferenceRequest struct {
	Language   *string `json:"language,omitempty"`
	Difficulty *string `json:"difficulty,omitempty"`
	AutoHints  *bool   `json:"auto_hints,omitempty"`
}
