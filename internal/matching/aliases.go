package matching

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var defaultAliasesYAML []byte

// Aliases maps a normalized canonical name to its accepted normalized aliases
type Aliases map[string]map[string]struct{}

// LoadAliases parses a YAML mapping of canonical name to alias list
func LoadAliases(r io.Reader) (Aliases, error) {
	var raw map[string][]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return Aliases{}, nil
		}
		return nil, fmt.Errorf("failed to decode aliases: %w", err)
	}

	aliases := make(Aliases, len(raw))
	for canonical, list := range raw {
		key := Normalize(canonical)
		if key == "" {
			continue
		}
		set, ok := aliases[key]
		if !ok {
			set = make(map[string]struct{}, len(list))
			aliases[key] = set
		}
		for _, alias := range list {
			if n := Normalize(alias); n != "" {
				set[n] = struct{}{}
			}
		}
	}
	return aliases, nil
}

// LoadAliasesFile reads an alias table from a YAML file
func LoadAliasesFile(path string) (Aliases, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadAliases(file)
}

var (
	defaultOnce    sync.Once
	defaultAliases Aliases
)

// DefaultAliases returns the built-in alias table
func DefaultAliases() Aliases {
	defaultOnce.Do(func() {
		a, err := parseEmbedded()
		if err != nil {
			panic(err)
		}
		defaultAliases = a
	})
	return defaultAliases
}

func parseEmbedded() (Aliases, error) {
	return LoadAliases(bytes.NewReader(defaultAliasesYAML))
}

// Has reports whether alias is accepted for the canonical name; both must be normalized
func (a Aliases) Has(canonical, alias string) bool {
	set, ok := a[canonical]
	if !ok {
		return false
	}
	_, ok = set[alias]
	return ok
}

// Merge returns a new table containing the entries of a and other
func (a Aliases) Merge(other Aliases) Aliases {
	out := make(Aliases, len(a)+len(other))
	for _, src := range []Aliases{a, other} {
		for canonical, set := range src {
			dst, ok := out[canonical]
			if !ok {
				dst = make(map[string]struct{}, len(set))
				out[canonical] = dst
			}
			for alias := range set {
				dst[alias] = struct{}{}
			}
		}
	}
	return out
}
