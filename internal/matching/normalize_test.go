package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "GAREN", "garen"},
		{"keeps apostrophe", "Kai'Sa", "kai'sa"},
		{"strips diacritics", "Nunu y Wíllump", "nunu y willump"},
		{"strips punctuation", "Dr. Mundo!", "dr mundo"},
		{"trims", "  lux  ", "lux"},
		{"keeps digits", "Jarvan IV 4", "jarvan iv 4"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
		{"spanish accents", "Ñandú Águila", "nandu aguila"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"Kai'Sa", "  Dr. Mundo ", "Wíllump & Nunu", "KAI SA", "", "ÀÉÎÕÜ"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeIgnoresCaseAndPunctuation(t *testing.T) {
	assert.Equal(t, Normalize("kai'sa"), Normalize("Kai'Sa"))
	assert.Equal(t, Normalize("KAI'SA"), Normalize("kai'sa"))
	assert.Equal(t, "kai sa", Normalize("KAI SA"))
}

func TestApostropheAndSpaceStayDistinct(t *testing.T) {
	assert.NotEqual(t, Normalize("Kai'Sa"), Normalize("KAI SA"))
	assert.False(t, MatchesChampion("KAI SA", "Kai'Sa"))
	assert.True(t, MatchesChampion("kaisa", "Kai'Sa"), "the unpunctuated spelling comes from the alias table")
}
