package simcli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/okian/laddersim/internal/adapters/repository"
)

// File permission constants.
const (
	rosterFilePermission = 0600
)

// LoadRoster reads a roster JSON file from disk.
func LoadRoster(ctx context.Context, path string, baseRating float64) (*repository.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	roster, err := repository.DecodeJSON(ctx, f, repository.WithBaseRating(baseRating))
	if err != nil {
		return nil, fmt.Errorf("load roster from %s: %w", path, err)
	}
	return roster, nil
}

// SaveRoster writes the roster back to disk, via a temp file and rename so
// a crash mid-write never corrupts the existing file.
func SaveRoster(ctx context.Context, path string, roster *repository.Roster) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, rosterFilePermission)
	if err != nil {
		return fmt.Errorf("create temp roster file: %w", err)
	}
	if err := roster.EncodeJSON(ctx, f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("save roster to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp roster file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace roster file %s: %w", path, err)
	}
	return nil
}

// SampleRoster builds a roster of n participants at the base rating.
func SampleRoster(ctx context.Context, n int, baseRating float64) (*repository.Roster, error) {
	roster := repository.NewRoster(repository.WithBaseRating(baseRating))
	for i := 0; i < n; i++ {
		if err := roster.Add(ctx, "player-"+strconv.Itoa(i+1), baseRating); err != nil {
			return nil, err
		}
	}
	return roster, nil
}
