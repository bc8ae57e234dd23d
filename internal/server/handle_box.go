package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pandorahunt/boxhunt/internal/hunt"
)

type OpenRequest struct {
	Answer string `json:"answer"`
}

// OpenResponse reports a claim outcome. Opened claims carry the place
// title; lost or failed claims carry a machine-readable reason.
type OpenResponse struct {
	Opened bool   `json:"opened"`
	Title  string `json:"title,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func boxIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// handleBoxQuestion returns the question of an active box. Opened
// boxes are indistinguishable from ids that never existed: both 404.
func handleBoxQuestion(logger *slog.Logger, svc *hunt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := boxIDFromRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "box id must be an integer")
			return
		}

		q, err := svc.Question(r.Context(), id)
		switch {
		case errors.Is(err, hunt.ErrNotFound):
			writeError(w, http.StatusNotFound, "no active box with this id")
		case errors.Is(err, hunt.ErrStoreUnavailable):
			logger.Error("question lookup failed", "box_id", id, "error", err)
			writeError(w, http.StatusServiceUnavailable, "place store unavailable")
		case err != nil:
			logger.Error("question lookup failed", "box_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		default:
			writeJSON(w, http.StatusOK, q)
		}
	}
}

// handleOpenBox runs a claim attempt. WrongAnswer and AlreadyGone are
// business outcomes and come back with 200, not as errors.
func handleOpenBox(logger *slog.Logger, svc *hunt.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := boxIDFromRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "box id must be an integer")
			return
		}

		var req OpenRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Answer = strings.TrimSpace(req.Answer)
		if req.Answer == "" {
			writeError(w, http.StatusBadRequest, "answer is required")
			return
		}

		res, err := svc.Open(r.Context(), id, req.Answer)
		switch {
		case errors.Is(err, hunt.ErrNotFound):
			writeError(w, http.StatusNotFound, "no active box with this id")
			return
		case errors.Is(err, hunt.ErrStoreUnavailable):
			logger.Error("claim failed", "box_id", id, "error", err)
			writeError(w, http.StatusServiceUnavailable, "place store unavailable")
			return
		case err != nil:
			logger.Error("claim failed", "box_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		switch res.Outcome {
		case hunt.Opened:
			logger.Info("box opened", "box_id", id, "title", res.Title)
			broker.Publish(BoxEvent{Type: "box_opened", ID: id, Title: res.Title})
			writeJSON(w, http.StatusOK, OpenResponse{Opened: true, Title: res.Title})
		case hunt.WrongAnswer:
			writeJSON(w, http.StatusOK, OpenResponse{Reason: hunt.WrongAnswer.String()})
		case hunt.AlreadyGone:
			writeJSON(w, http.StatusOK, OpenResponse{Reason: hunt.AlreadyGone.String()})
		}
	}
}
