package model

// HintType identifies which champion attribute a hint reveals
type HintType string

const (
	HintTypeRole        HintType = "role"
	HintTypeResource    HintType = "resource"
	HintTypeTitle       HintType = "title"
	HintTypeRange       HintType = "range"
	HintTypeDifficulty  HintType = "difficulty"
	HintTypeFirstLetter HintType = "first_letter"
	HintTypeNameLength  HintType = "name_length"
	HintTypePartialName HintType = "partial_name"
)

// HintSequence is the order in which hints are revealed, independent of difficulty
var HintSequence = []HintType{
	HintTypeRole,
	HintTypeResource,
	HintTypeTitle,
	HintTypeRange,
	HintTypeDifficulty,
	HintTypeFirstLetter,
	HintTypeNameLength,
	HintTypePartialName,
}
