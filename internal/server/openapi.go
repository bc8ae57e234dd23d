package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/pandorahunt/boxhunt/internal/hunt"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Pandora Box Hunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the box-hunt game: find nearby boxes and try to open them.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/boxes
	listBoxes, _ := r.NewOperationContext(http.MethodGet, "/api/boxes")
	listBoxes.SetSummary("List nearby boxes")
	listBoxes.SetDescription("Returns places with an active box around a point, closest first. " +
		"Query parameters: lon, lat (required), distance (meters, default 5000), limit (default 20), offset (default 0). " +
		"Box contents are never included.")
	listBoxes.AddRespStructure([]hunt.PlaceSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	listBoxes.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	listBoxes.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(listBoxes)

	// GET /api/boxes/{id}
	getBox, _ := r.NewOperationContext(http.MethodGet, "/api/boxes/{id}")
	getBox.SetSummary("Get box question")
	getBox.SetDescription("Returns the question of the active box with the given id. The answer is never included.")
	getBox.AddRespStructure(hunt.Question{}, openapi.WithHTTPStatus(http.StatusOK))
	getBox.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getBox.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getBox)

	// POST /api/boxes/{id}/open
	openBox, _ := r.NewOperationContext(http.MethodPost, "/api/boxes/{id}/open")
	openBox.SetSummary("Attempt to open a box")
	openBox.SetDescription("Submits an answer for the box. At most one concurrent correct answer wins; " +
		"losers get reason already-gone, incorrect answers get reason wrong-answer.")
	openBox.AddReqStructure(OpenRequest{})
	openBox.AddRespStructure(OpenResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	openBox.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	openBox.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(openBox)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE box event stream")
	getEvents.SetDescription("Server-Sent Events stream announcing opened boxes.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
