package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pandorahunt/boxhunt/internal/hunt"
)

// PlaceInserter is the seeding capability of a place store.
type PlaceInserter interface {
	InsertPlaces(ctx context.Context, places []hunt.Place) error
}

// SeedDemoPlaces loads a small set of demo places with active boxes.
// Idempotent: ids that already exist are not touched, so a box opened
// in a previous run stays opened.
func SeedDemoPlaces(ctx context.Context, logger *slog.Logger, store PlaceInserter) error {
	places := []hunt.Place{
		{
			ID:       21379,
			Location: hunt.NewPoint(29.88487365167069, 50.058326259638775),
			Title:    "Dubravushka-club",
			Address:  "Fastov, Chelyuskintsev str, 98",
			Box: &hunt.Box{
				Question: "Who developed the theory of relativity?",
				Answer:   "Einstein",
			},
		},
		{
			ID:       5125,
			Location: hunt.NewPoint(29.9102, 50.0745),
			Title:    "Old water tower",
			Address:  "Fastov, Sobornaya sq, 1",
			Box: &hunt.Box{
				Question: "Who developed theory of relativity",
				Answer:   "Albert Einstein",
			},
		},
		{
			ID:       8244,
			Location: hunt.NewPoint(30.5238, 50.4501),
			Title:    "Golden Gate cache",
			Address:  "Kyiv, Volodymyrska str, 40",
			Box: &hunt.Box{
				Question: "In which century was the Golden Gate built?",
				Answer:   "11th",
			},
		},
	}

	if err := store.InsertPlaces(ctx, places); err != nil {
		return fmt.Errorf("seeding demo places: %w", err)
	}

	logger.Info("demo places seeded", "count", len(places))
	return nil
}
