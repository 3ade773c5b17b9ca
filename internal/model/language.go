package model

// Language is a user-facing language code
type Language string

// Locale is a catalog locale as understood by Data Dragon
type Locale string

const (
	LanguageES Language = "es"
	LanguageEN Language = "en"
	LanguageMX Language = "mx"

	LocaleSpanish      Locale = "es_ES"
	LocaleEnglish      Locale = "en_US"
	LocaleLatinAmerica Locale = "es_MX"
)

var languageLocales = map[Language]Locale{
	LanguageES: LocaleSpanish,
	LanguageEN: LocaleEnglish,
	LanguageMX: LocaleLatinAmerica,
}

// Locale maps a language to its catalog locale, defaulting to es_ES
func (l Language) Locale() Locale {
	if loc, ok := languageLocales[l]; ok {
		return loc
	}
	return LocaleSpanish
}

// IsValid reports whether l is a supported language
func (l Language) IsValid() bool {
	_, ok := languageLocales[l]
	return ok
}

// ParseLanguage converts a raw string to a Language
func ParseLanguage(s string) (Language, bool) {
	l := Language(s)
	return l, l.IsValid()
}

// LanguageForLocale is the reverse of Language.Locale, defaulting to es
func LanguageForLocale(loc Locale) Language {
	for lang, l := range languageLocales {
		if l == loc {
			return lang
		}
	}
	return LanguageES
}

// ValidLanguages returns all supported languages
func ValidLanguages() []Language {
	return []Language{LanguageES, LanguageEN, LanguageMX}
}
