// Package champion resolves free-text champion names and looks up their builds.
package champion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/champguess/internal/catalog"
	"github.com/mcoot/champguess/internal/matching"
	"github.com/mcoot/champguess/internal/model"
)

// Service answers champion lookups outside of a running game
type Service struct {
	catalog catalog.Provider
	builds  catalog.BuildProvider
	matcher *matching.Matcher
	logger  *slog.Logger
}

// NewService creates a champion Service
func NewService(provider catalog.Provider, builds catalog.BuildProvider, matcher *matching.Matcher, logger *slog.Logger) *Service {
	return &Service{
		catalog: provider,
		builds:  builds,
		matcher: matcher,
		logger:  logger,
	}
}

// Resolve finds the champion a query refers to. The catalog ID matches first
// (e.g. "MissFortune"), then names and aliases, then a substring of a name.
func (s *Service) Resolve(ctx context.Context, query string) (model.Champion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.Champion{}, fmt.Errorf("%w: champion is required", model.ErrValidation)
	}

	champions, err := s.catalog.GetAll(ctx, model.LocaleEnglish, "")
	if err != nil {
		return model.Champion{}, err
	}

	for _, c := range champions {
		if strings.EqualFold(c.ID, query) {
			return c, nil
		}
	}
	if c, ok := s.matcher.FindChampion(query, champions); ok {
		return c, nil
	}
	return model.Champion{}, fmt.Errorf("%w: %q", model.ErrChampionNotFound, query)
}

// Build returns the builds for the champion a query refers to. A non-empty
// role narrows the result to that role's build.
func (s *Service) Build(ctx context.Context, query, role string) (model.ChampionBuild, error) {
	var want model.Role
	if role != "" {
		r, ok := model.ParseRole(role)
		if !ok {
			return model.ChampionBuild{}, fmt.Errorf("%w: role must be one of %s", model.ErrValidation, roleList())
		}
		want = r
	}

	champion, err := s.Resolve(ctx, query)
	if err != nil {
		return model.ChampionBuild{}, err
	}

	build, err := s.builds.GetBuild(ctx, champion)
	if err != nil {
		return model.ChampionBuild{}, fmt.Errorf("failed to build %s: %w", champion.ID, err)
	}

	if want != "" {
		rb, ok := build.RoleBuild(want)
		if !ok {
			return model.ChampionBuild{}, fmt.Errorf("%w: %s has no %s build", model.ErrBuildNotFound, champion.Name, want)
		}
		build.Roles = []model.RoleBuild{rb}
	}

	s.logger.Info("champion build served",
		slog.String("champion", champion.ID),
		slog.String("role", string(want)),
		slog.Int("roles", len(build.Roles)),
	)
	return build, nil
}

func roleList() string {
	roles := model.ValidRoles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
