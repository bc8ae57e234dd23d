package hunt

import (
	"context"
	"fmt"
	"strings"
)

const (
	DefaultMaxDistanceMeters = 5000
	DefaultLimit             = 20
	MaxLimit                 = 100
)

// Service implements the proximity finder and the box claim resolver
// on top of an injected PlaceStore.
type Service struct {
	store PlaceStore
}

func NewService(store PlaceStore) *Service {
	return &Service{store: store}
}

// FindNearby validates the query, fills in defaults, and returns
// nearby places holding an active box, closest first. Read-only: safe
// to retry or cache briefly.
func (s *Service) FindNearby(ctx context.Context, q NearbyQuery) ([]PlaceSummary, error) {
	if q.Lon < -180 || q.Lon > 180 {
		return nil, InputError(fmt.Sprintf("longitude %v out of range [-180, 180]", q.Lon))
	}
	if q.Lat < -90 || q.Lat > 90 {
		return nil, InputError(fmt.Sprintf("latitude %v out of range [-90, 90]", q.Lat))
	}
	if q.MaxDistanceMeters < 0 {
		return nil, InputError("distance must not be negative")
	}
	if q.Limit < 0 {
		return nil, InputError("limit must not be negative")
	}
	if q.Offset < 0 {
		return nil, InputError("offset must not be negative")
	}

	if q.MaxDistanceMeters == 0 {
		q.MaxDistanceMeters = DefaultMaxDistanceMeters
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	return s.store.FindNearby(ctx, q)
}

// Question returns the question of the active box with the given id.
// An opened box is indistinguishable from one that never existed:
// both yield ErrNotFound.
func (s *Service) Question(ctx context.Context, id int64) (Question, error) {
	return s.store.ActiveQuestion(ctx, id)
}

// Open runs the claim protocol: snapshot the relevant fields, compare
// the answer, then attempt the atomic state transition and report
// using the snapshot.
//
// The snapshot read and the conditional removal deliberately remain
// two separate store calls; the box may vanish in between. The win is
// decided solely by whether RemoveBox modified the document, so among
// concurrent correct claims exactly one observes Opened and the rest
// observe AlreadyGone.
func (s *Service) Open(ctx context.Context, id int64, answer string) (OpenResult, error) {
	snap, err := s.store.ClaimSnapshot(ctx, id)
	if err != nil {
		return OpenResult{}, err
	}

	if !strings.EqualFold(answer, snap.Answer) {
		// No mutation on this path, ever.
		return OpenResult{Outcome: WrongAnswer}, nil
	}

	removed, err := s.store.RemoveBox(ctx, id)
	if err != nil {
		return OpenResult{}, err
	}
	if !removed {
		return OpenResult{Outcome: AlreadyGone}, nil
	}

	// Title comes from the pre-mutation snapshot: the document no
	// longer carries a box.
	return OpenResult{Outcome: Opened, Title: snap.Title}, nil
}
