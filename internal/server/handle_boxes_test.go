package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/pandorahunt/boxhunt/internal/hunt"
)

func listBoxes(t *testing.T, r http.Handler, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/boxes?"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListBoxes(t *testing.T) {
	r := testRouter(t)

	w := listBoxes(t, r, "lon=29.88&lat=50.05")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var places []hunt.PlaceSummary
	json.NewDecoder(w.Body).Decode(&places)

	// Kyiv place 8244 is far outside the default 5 km radius.
	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d: %+v", len(places), places)
	}
	if places[0].ID != 21379 {
		t.Errorf("expected closest place 21379 first, got %d", places[0].ID)
	}
}

func TestListBoxesNeverLeaksBoxContents(t *testing.T) {
	r := testRouter(t)

	w := listBoxes(t, r, "lon=29.88&lat=50.05")
	body := w.Body.String()
	for _, leak := range []string{"box", "question", "answer", "Einstein"} {
		if strings.Contains(body, leak) {
			t.Errorf("list response leaks %q: %s", leak, body)
		}
	}
}

func TestListBoxesPagination(t *testing.T) {
	r := testRouter(t)

	// Radius wide enough to include all three demo places.
	w := listBoxes(t, r, "lon=29.88&lat=50.05&distance=100000&limit=1&offset=1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var places []hunt.PlaceSummary
	json.NewDecoder(w.Body).Decode(&places)
	if len(places) != 1 {
		t.Fatalf("expected 1 place, got %d", len(places))
	}
	if places[0].ID != 5125 {
		t.Errorf("expected second-closest place 5125, got %d", places[0].ID)
	}
}

func TestListBoxesEmptyResultIsNotAnError(t *testing.T) {
	r := testRouter(t)

	// Middle of the Atlantic.
	w := listBoxes(t, r, "lon=-30&lat=30")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var places []hunt.PlaceSummary
	if err := json.NewDecoder(w.Body).Decode(&places); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(places) != 0 {
		t.Errorf("expected empty list, got %+v", places)
	}
}

func TestListBoxesBadInput(t *testing.T) {
	r := testRouter(t)

	cases := []string{
		"lat=50.05",                       // lon missing
		"lon=29.88",                       // lat missing
		"lon=abc&lat=50.05",               // non-numeric
		"lon=29.88&lat=95",                // latitude out of range
		"lon=181&lat=50.05",               // longitude out of range
		"lon=29.88&lat=50.05&distance=-1", // negative distance
		"lon=29.88&lat=50.05&limit=-5",    // negative limit
		"lon=29.88&lat=50.05&offset=-1",   // negative offset
		"lon=29.88&lat=50.05&limit=abc",   // non-numeric pagination
	}
	for _, query := range cases {
		if w := listBoxes(t, r, query); w.Code != http.StatusBadRequest {
			t.Errorf("query %q: expected 400, got %d", query, w.Code)
		}
	}
}

func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         "localhost:1",
		DialTimeout:  10 * time.Millisecond,
		ReadTimeout:  10 * time.Millisecond,
		WriteTimeout: 10 * time.Millisecond,
		MaxRetries:   -1,
	})
}

func TestListBoxesSurvivesDeadCache(t *testing.T) {
	store := hunt.NewMemoryStore()
	if err := SeedDemoPlaces(context.Background(), testLogger(), store); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	cache := NewNearbyCache(deadRedis(), 15*time.Second, testLogger())

	r := chi.NewRouter()
	r.Get("/api/boxes", handleListBoxes(testLogger(), hunt.NewService(store), cache))

	w := listBoxes(t, r, "lon=29.88&lat=50.05")
	if w.Code != http.StatusOK {
		t.Fatalf("cache failure must not fail the request: got %d: %s", w.Code, w.Body.String())
	}

	var places []hunt.PlaceSummary
	json.NewDecoder(w.Body).Decode(&places)
	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
}
