package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound  = errors.New("no game session for channel")
	ErrSessionNotActive = errors.New("game session is not active")
	ErrAlreadyGuessed   = errors.New("champion already guessed in this session")
	ErrNoHintsLeft      = errors.New("no hints left")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// Catalog errors
	ErrCatalogUnavailable = errors.New("champion catalog unavailable")
	ErrChampionNotFound   = errors.New("champion not found")
	ErrBuildNotFound      = errors.New("no build for role")
)
