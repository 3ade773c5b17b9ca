package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/mcoot/champguess/internal/dependencies/random"
	"github.com/mcoot/champguess/internal/model"
)

//go:embed champions.json
var bundledChampions []byte

// Static is a locale-independent Provider over a fixed champion list
type Static struct {
	champions []model.Champion
	random    random.Random
}

var _ Provider = (*Static)(nil)

// NewStatic creates a provider over the given champions, kept in the given order
func NewStatic(champions []model.Champion, rnd random.Random) *Static {
	return &Static{
		champions: cloneChampions(champions),
		random:    rnd,
	}
}

// NewBundled creates a Static provider over the champion list shipped with the binary
func NewBundled(rnd random.Random) (*Static, error) {
	champions, err := decodeChampions(bytes.NewReader(bundledChampions))
	if err != nil {
		return nil, fmt.Errorf("failed to load bundled champions: %w", err)
	}
	return NewStatic(champions, rnd), nil
}

// GetAll returns the fixed list; locale and version are ignored
func (s *Static) GetAll(_ context.Context, _ model.Locale, _ string) ([]model.Champion, error) {
	return cloneChampions(s.champions), nil
}

// GetRandom picks a champion from the fixed list
func (s *Static) GetRandom(_ context.Context, _ model.Locale) (model.Champion, error) {
	champion, ok := random.Pick(s.random, s.champions)
	if !ok {
		return model.Champion{}, fmt.Errorf("%w: catalog is empty", model.ErrCatalogUnavailable)
	}
	return cloneChampions([]model.Champion{champion})[0], nil
}
