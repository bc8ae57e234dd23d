package server

import (
	"context"
	"errors"
	"testing"

	"github.com/pandorahunt/boxhunt/internal/hunt"
)

func TestSeedDemoPlacesDoesNotResurrectOpenedBoxes(t *testing.T) {
	ctx := context.Background()
	store := hunt.NewMemoryStore()
	logger := testLogger()

	if err := SeedDemoPlaces(ctx, logger, store); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	// Open one of the seeded boxes.
	svc := hunt.NewService(store)
	res, err := svc.Open(ctx, 21379, "einstein")
	if err != nil || res.Outcome != hunt.Opened {
		t.Fatalf("open: res=%+v err=%v", res, err)
	}

	// Reseeding must not bring the box back.
	if err := SeedDemoPlaces(ctx, logger, store); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if _, err := svc.Question(ctx, 21379); !errors.Is(err, hunt.ErrNotFound) {
		t.Fatalf("opened box came back after reseeding: %v", err)
	}

	// Untouched boxes are still there.
	if _, err := svc.Question(ctx, 5125); err != nil {
		t.Fatalf("box 5125 should still be active: %v", err)
	}
}
