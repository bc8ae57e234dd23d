package hunt

import "context"

// PlaceStore is the storage contract the protocol runs on. The
// correctness of concurrent claims rests entirely on RemoveBox being a
// conditional atomic update at the store level: no in-process lock or
// queue serializes callers.
type PlaceStore interface {
	// FindNearby returns summaries of places with an active box,
	// ordered by ascending distance from the query point. An empty
	// slice is a valid, non-error result.
	FindNearby(ctx context.Context, q NearbyQuery) ([]PlaceSummary, error)

	// ActiveQuestion returns the question of the active box with the
	// given id, never its answer. ErrNotFound if no active box exists.
	ActiveQuestion(ctx context.Context, id int64) (Question, error)

	// ClaimSnapshot fetches the pre-mutation view of an active box:
	// id, place title, and the expected answer. ErrNotFound if no
	// active box exists.
	ClaimSnapshot(ctx context.Context, id int64) (ClaimSnapshot, error)

	// RemoveBox deletes the box field of the place with the given id,
	// but only if the box is still present at the instant of the
	// mutation. It reports whether the document was actually modified;
	// false means a concurrent claim won first. The check and the
	// mutation must be one atomic store operation.
	RemoveBox(ctx context.Context, id int64) (bool, error)
}
