// Package hunt defines the core domain types and the box-opening
// protocol. It has zero transport or storage dependencies — storage is
// abstracted behind the PlaceStore interface.
package hunt

import "errors"

var (
	// ErrNotFound means the id does not correspond to any currently
	// active box: it never existed, or it was opened before the
	// operation started.
	ErrNotFound = errors.New("no active box")

	// ErrStoreUnavailable marks transient infrastructure failures of
	// the place store, distinct from an empty or missing result.
	ErrStoreUnavailable = errors.New("place store unavailable")
)

// InputError reports malformed caller input (coordinates out of range,
// negative pagination). It is always raised before any store access.
type InputError string

func (e InputError) Error() string { return string(e) }

// GeoPoint is a GeoJSON point: coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

func NewPoint(lon, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Lon and Lat tolerate malformed stored documents: a point with
// missing coordinates reads as (0, 0) instead of panicking.
func (p GeoPoint) Lon() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Box is the challenge attached to a place. The answer never leaves
// the backend: it is excluded from JSON marshaling entirely.
type Box struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"-" bson:"answer"`
}

// Place is a geo-tagged point of interest. Box is present if and only
// if the place currently holds an active, unopened box; its absence is
// the sole authoritative signal that the box was opened (or never
// existed).
type Place struct {
	ID       int64    `json:"id" bson:"id"`
	Location GeoPoint `json:"location" bson:"location"`
	Title    string   `json:"title" bson:"title"`
	Address  string   `json:"address" bson:"address"`
	Box      *Box     `json:"box,omitempty" bson:"box,omitempty"`
}

// BoxState makes the presence-based state machine explicit.
type BoxState int

const (
	// StateOpened is terminal: the box field is gone and never returns.
	StateOpened BoxState = iota
	StateActive
)

func (s BoxState) String() string {
	if s == StateActive {
		return "active"
	}
	return "opened"
}

// BoxState derives the explicit state from box presence.
func (p Place) BoxState() BoxState {
	if p.Box != nil {
		return StateActive
	}
	return StateOpened
}

// PlaceSummary is the proximity-search projection of a Place. It has
// no box field at all, so listing can never leak questions or answers.
type PlaceSummary struct {
	ID       int64    `json:"id" bson:"id"`
	Location GeoPoint `json:"location" bson:"location"`
	Title    string   `json:"title" bson:"title"`
	Address  string   `json:"address" bson:"address"`
}

// NearbyQuery selects active boxes around a point, ordered by
// ascending distance. Zero-valued MaxDistanceMeters and Limit mean
// "use the default".
type NearbyQuery struct {
	Lon               float64
	Lat               float64
	MaxDistanceMeters int64
	Limit             int64
	Offset            int64
}

// Question is what a player sees before attempting a claim.
type Question struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
}

// ClaimSnapshot carries the fields read immediately before the
// race-resolving write: the answer to compare against and the title to
// report on a win, captured while the box still exists.
type ClaimSnapshot struct {
	ID     int64
	Title  string
	Answer string
}

// OpenOutcome is the business outcome of a claim. WrongAnswer and
// AlreadyGone are outcomes, not failures.
type OpenOutcome int

const (
	Opened OpenOutcome = iota
	WrongAnswer
	AlreadyGone
)

func (o OpenOutcome) String() string {
	switch o {
	case Opened:
		return "opened"
	case WrongAnswer:
		return "wrong-answer"
	default:
		return "already-gone"
	}
}

// OpenResult is the resolved claim. Title is set only when the caller
// won the race.
type OpenResult struct {
	Outcome OpenOutcome
	Title   string
}
