package preference

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/champguess/internal/model"
)

// SnapshotEntry is the persisted form of one user's preference
type SnapshotEntry struct {
	Language   string `json:"language"`
	Difficulty string `json:"difficulty"`
	AutoHints  bool   `json:"autoHints"`
	LastUsed   int64  `json:"lastUsed"` // Epoch milliseconds
}

// Snapshot maps user IDs to their persisted preferences
type Snapshot map[string]SnapshotEntry

// ImportReport counts the outcome of an import
type ImportReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ExportAll returns a snapshot of every cached preference
func (s *Store) ExportAll() Snapshot {
	snapshot := make(Snapshot)
	for _, userID := range s.cache.Keys() {
		pref, ok := s.cache.Peek(userID)
		if !ok {
			continue
		}
		snapshot[userID] = SnapshotEntry{
			Language:   string(pref.Language),
			Difficulty: string(pref.Difficulty),
			AutoHints:  pref.AutoHints,
			LastUsed:   pref.LastUsed.UnixMilli(),
		}
	}
	return snapshot
}

// ImportAll loads a snapshot. Entries with an unknown language or difficulty are
// skipped and counted rather than failing the batch.
func (s *Store) ImportAll(snapshot Snapshot) ImportReport {
	var report ImportReport
	for userID, entry := range snapshot {
		lang, langOK := model.ParseLanguage(entry.Language)
		diff, diffOK := model.ParseDifficulty(entry.Difficulty)
		if userID == "" || !langOK || !diffOK {
			s.logger.Warn("skipping invalid preference entry",
				slog.String("user_id", userID),
				slog.String("language", entry.Language),
				slog.String("difficulty", entry.Difficulty),
			)
			report.Skipped++
			continue
		}

		lastUsed := s.clock.Now()
		if entry.LastUsed > 0 {
			lastUsed = time.UnixMilli(entry.LastUsed).UTC()
		}

		s.cache.Add(userID, model.UserPreference{
			UserID:     userID,
			Language:   lang,
			Locale:     lang.Locale(),
			Difficulty: diff,
			AutoHints:  entry.AutoHints,
			LastUsed:   lastUsed,
		})
		report.Imported++
	}

	s.logger.Info("preferences imported",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
	)
	return report
}

// WriteSnapshot encodes the snapshot as indented JSON
func WriteSnapshot(w io.Writer, snapshot Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a JSON snapshot
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: invalid snapshot: %w", model.ErrValidation, err)
	}
	if snapshot == nil {
		snapshot = Snapshot{}
	}
	return snapshot, nil
}
