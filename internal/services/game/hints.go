package game

import (
	"strconv"
	"strings"

	"github.com/mcoot/champguess/internal/localize"
	"github.com/mcoot/champguess/internal/model"
)

// hintFor renders the hint at the given ordinal for the target champion
func hintFor(ordinal int, target model.Champion, lang model.Language, l localize.Localizer) (string, model.HintType) {
	hintType := model.HintSequence[ordinal]
	name := []rune(target.Name)

	var vars map[string]string
	switch hintType {
	case model.HintTypeRole:
		vars = map[string]string{"role": target.PrimaryRole()}
	case model.HintTypeResource:
		vars = map[string]string{"resource": target.Partype}
	case model.HintTypeTitle:
		vars = map[string]string{"title": target.Title}
	case model.HintTypeRange:
		vars = map[string]string{"range": l.Localize(lang, "range."+string(target.AttackType()), nil)}
	case model.HintTypeDifficulty:
		vars = map[string]string{"difficulty": strconv.Itoa(target.Difficulty)}
	case model.HintTypeFirstLetter:
		letter := ""
		if len(name) > 0 {
			letter = strings.ToUpper(string(name[0]))
		}
		vars = map[string]string{"letter": letter}
	case model.HintTypeNameLength:
		vars = map[string]string{"length": strconv.Itoa(len(name))}
	case model.HintTypePartialName:
		vars = map[string]string{"partial": partialName(name)}
	}

	return l.Localize(lang, "hint."+string(hintType), vars), hintType
}

// partialName is the first half of the name, rounded up
func partialName(name []rune) string {
	return string(name[:(len(name)+1)/2])
}
