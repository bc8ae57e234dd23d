package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pandorahunt/boxhunt/internal/hunt"
)

// handleListBoxes serves the proximity search: places with an active
// box around a point, closest first. Responses may come from the
// short-TTL cache; the box contents never appear in them either way.
func handleListBoxes(logger *slog.Logger, svc *hunt.Service, cache *NearbyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := nearbyQueryFromParams(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if places, ok := cache.Get(r.Context(), q); ok {
			writeJSON(w, http.StatusOK, places)
			return
		}

		places, err := svc.FindNearby(r.Context(), q)
		var inputErr hunt.InputError
		switch {
		case errors.As(err, &inputErr):
			writeError(w, http.StatusBadRequest, inputErr.Error())
		case errors.Is(err, hunt.ErrStoreUnavailable):
			logger.Error("nearby query failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "place store unavailable")
		case err != nil:
			logger.Error("nearby query failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		default:
			cache.Set(r.Context(), q, places)
			writeJSON(w, http.StatusOK, places)
		}
	}
}

func nearbyQueryFromParams(params url.Values) (hunt.NearbyQuery, error) {
	var q hunt.NearbyQuery

	lon, err := requiredFloat(params, "lon")
	if err != nil {
		return q, err
	}
	lat, err := requiredFloat(params, "lat")
	if err != nil {
		return q, err
	}
	q.Lon, q.Lat = lon, lat

	// Omitted pagination parameters stay zero; the service substitutes
	// the documented defaults.
	if q.MaxDistanceMeters, err = optionalInt(params, "distance"); err != nil {
		return q, err
	}
	if q.Limit, err = optionalInt(params, "limit"); err != nil {
		return q, err
	}
	if q.Offset, err = optionalInt(params, "offset"); err != nil {
		return q, err
	}
	return q, nil
}

func requiredFloat(params url.Values, name string) (float64, error) {
	raw := params.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a decimal number", name)
	}
	return v, nil
}

func optionalInt(params url.Values, name string) (int64, error) {
	raw := params.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
