package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gdg-garage/event-registration-api/internal/database"
)

type HealthHandler struct {
	schema *database.Status
}

func NewHealthHandler(schema *database.Status) *HealthHandler {
	return &HealthHandler{schema: schema}
}

type HealthResponse struct {
	Status int
	Body   struct {
		Status      string    `json:"status"`
		SchemaReady bool      `json:"schema_ready"`
		Error       string    `json:"error,omitempty"`
		CheckedAt   time.Time `json:"checked_at"`
	}
}

// HandleHealth answers 503 until schema setup has succeeded.
func (h *HealthHandler) HandleHealth(ctx context.Context, input *struct{}) (*HealthResponse, error) {
	snap := h.schema.Snapshot()

	resp := &HealthResponse{Status: http.StatusOK}
	resp.Body.Status = "ok"
	resp.Body.SchemaReady = snap.Ready
	resp.Body.CheckedAt = snap.CheckedAt
	if !snap.Ready {
		resp.Status = http.StatusServiceUnavailable
		resp.Body.Status = "unavailable"
		if snap.Err != nil {
			resp.Body.Error = snap.Err.Error()
		} else {
			resp.Body.Error = "schema setup has not run"
		}
	}
	return resp, nil
}
