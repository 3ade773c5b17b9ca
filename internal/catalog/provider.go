package catalog

import (
	"context"
	"sort"

	"github.com/mcoot/champguess/internal/model"
)

// Provider supplies the champion catalog for a locale
type Provider interface {
	// GetAll returns every champion for the locale. An empty version means the latest.
	GetAll(ctx context.Context, locale model.Locale, version string) ([]model.Champion, error)
	// GetRandom returns one champion chosen at random from the latest catalog
	GetRandom(ctx context.Context, locale model.Locale) (model.Champion, error)
}

func sortByName(champions []model.Champion) {
	sort.SliceStable(champions, func(i, j int) bool {
		return champions[i].Name < champions[j].Name
	})
}
