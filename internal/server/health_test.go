package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleHealth(t *testing.T) {
	ok := CheckerFunc(func(context.Context) error { return nil })
	down := CheckerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		checks     map[string]Checker
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:       "all ok",
			checks:     map[string]Checker{"mongodb": ok, "redis": ok},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"mongodb": "ok", "redis": "ok"},
		},
		{
			name:       "redis down",
			checks:     map[string]Checker{"mongodb": ok, "redis": down},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]string{"mongodb": "ok", "redis": "error"},
		},
		{
			name:       "everything down",
			checks:     map[string]Checker{"mongodb": down, "redis": down},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]string{"mongodb": "error", "redis": "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handleHealth(testLogger(), tt.checks)
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			h(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp HealthResponse
			json.NewDecoder(w.Body).Decode(&resp)
			for name, want := range tt.wantBody {
				if resp[name].Status != want {
					t.Errorf("%s = %q, want %q", name, resp[name].Status, want)
				}
			}
		})
	}
}
