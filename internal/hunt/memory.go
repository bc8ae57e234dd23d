package hunt

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-process PlaceStore. It backs tests and the
// memory storage mode; conditional removal is made atomic by the
// store mutex, mirroring the single-document atomicity a document
// store provides.
type MemoryStore struct {
	mu     sync.RWMutex
	places map[int64]Place
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{places: make(map[int64]Place)}
}

// InsertPlaces inserts places that do not exist yet. Existing entries
// are left untouched so reseeding can never resurrect an opened box.
func (m *MemoryStore) InsertPlaces(_ context.Context, places []Place) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range places {
		if _, ok := m.places[p.ID]; ok {
			continue
		}
		m.places[p.ID] = p
	}
	return nil
}

func (m *MemoryStore) FindNearby(_ context.Context, q NearbyQuery) ([]PlaceSummary, error) {
	type hit struct {
		summary PlaceSummary
		dist    float64
	}

	m.mu.RLock()
	var hits []hit
	for _, p := range m.places {
		if p.BoxState() != StateActive {
			continue
		}
		d := haversineMeters(q.Lat, q.Lon, p.Location.Lat(), p.Location.Lon())
		if d > float64(q.MaxDistanceMeters) {
			continue
		}
		hits = append(hits, hit{
			summary: PlaceSummary{ID: p.ID, Location: p.Location, Title: p.Title, Address: p.Address},
			dist:    d,
		})
	}
	m.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		// Stable pagination for equidistant places.
		return hits[i].summary.ID < hits[j].summary.ID
	})

	if q.Offset >= int64(len(hits)) {
		return []PlaceSummary{}, nil
	}
	hits = hits[q.Offset:]
	if int64(len(hits)) > q.Limit {
		hits = hits[:q.Limit]
	}

	out := make([]PlaceSummary, len(hits))
	for i, h := range hits {
		out[i] = h.summary
	}
	return out, nil
}

func (m *MemoryStore) ActiveQuestion(_ context.Context, id int64) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.places[id]
	if !ok || p.BoxState() != StateActive {
		return Question{}, ErrNotFound
	}
	return Question{ID: p.ID, Question: p.Box.Question}, nil
}

func (m *MemoryStore) ClaimSnapshot(_ context.Context, id int64) (ClaimSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.places[id]
	if !ok || p.BoxState() != StateActive {
		return ClaimSnapshot{}, ErrNotFound
	}
	return ClaimSnapshot{ID: p.ID, Title: p.Title, Answer: p.Box.Answer}, nil
}

func (m *MemoryStore) RemoveBox(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.places[id]
	if !ok || p.Box == nil {
		return false, nil
	}
	p.Box = nil
	m.places[id] = p
	return true, nil
}

const earthRadiusM = 6371000

// haversineMeters is the great-circle distance between two points.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(a))
}
