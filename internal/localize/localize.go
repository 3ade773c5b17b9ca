// Package localize renders user-facing strings in the supported languages.
package localize

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/champguess/internal/model"
)

//go:embed messages.yaml
var defaultMessages []byte

// FallbackLanguage is used when a language has no messages
const FallbackLanguage = model.LanguageES

// Localizer renders a message key with {name} placeholders
type Localizer interface {
	Localize(lang model.Language, key string, vars map[string]string) string
}

// Catalog is a Localizer backed by a language -> key -> template table
type Catalog struct {
	messages map[model.Language]map[string]string
}

var _ Localizer = (*Catalog)(nil)

// LoadCatalog parses a YAML message table
func LoadCatalog(r io.Reader) (*Catalog, error) {
	raw := make(map[string]map[string]string)
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	messages := make(map[model.Language]map[string]string, len(raw))
	for lang, table := range raw {
		messages[model.Language(lang)] = table
	}
	return &Catalog{messages: messages}, nil
}

// LoadCatalogFile parses a YAML message table from disk
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open messages file: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded messages.
// It panics if the embedded table is malformed.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := LoadCatalog(bytes.NewReader(defaultMessages))
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Localize looks up key in lang, falling back to the fallback language and then
// to the key itself
func (c *Catalog) Localize(lang model.Language, key string, vars map[string]string) string {
	tmpl, ok := c.lookup(lang, key)
	if !ok {
		tmpl, ok = c.lookup(FallbackLanguage, key)
	}
	if !ok {
		return key
	}
	return render(tmpl, vars)
}

// Languages returns the languages with messages, sorted
func (c *Catalog) Languages() []model.Language {
	langs := make([]model.Language, 0, len(c.messages))
	for lang := range c.messages {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

func (c *Catalog) lookup(lang model.Language, key string) (string, bool) {
	table, ok := c.messages[lang]
	if !ok {
		return "", false
	}
	tmpl, ok := table[key]
	return tmpl, ok
}

func render(tmpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
