package handlers

import (
	"context"
	"log/slog"

	"github.com/gdg-garage/event-registration-api/internal/models"
	"github.com/gdg-garage/event-registration-api/internal/store"
)

type AdminHandler struct {
	store *store.Store
}

func NewAdminHandler(s *store.Store) *AdminHandler {
	return &AdminHandler{store: s}
}

type CheckAdminRequest struct {
	Email string `path:"email" doc:"Email to look up in the admin list"`
}

type CheckAdminResponse struct {
	Body struct {
		Status      models.Status `json:"status"`
		Message     string        `json:"message,omitempty"`
		IsAdmin     bool          `json:"is_admin"`
		ControlType *string       `json:"control_type" doc:"Admin control type, null for non-admins"`
	}
}

func (h *AdminHandler) HandleCheckAdmin(ctx context.Context, input *CheckAdminRequest) (*CheckAdminResponse, error) {
	resp := &CheckAdminResponse{}

	status, err := h.store.CheckAdmin(ctx, input.Email)
	if err != nil {
		slog.Error("admin check failed", "email", input.Email, "error", err)
		resp.Body.Status = models.StatusError
		resp.Body.Message = "Database error: " + err.Error()
		return resp, nil
	}

	resp.Body.Status = models.StatusSuccess
	resp.Body.IsAdmin = status.IsAdmin
	if status.IsAdmin {
		resp.Body.ControlType = &status.ControlType
	}
	return resp, nil
}

func (h *AdminHandler) HandleAllRegistrations(ctx context.Context, input *struct{}) (*RegistrationsResponse, error) {
	regs, err := h.store.AllRegistrations(ctx)
	if err != nil {
		slog.Error("failed to read all registrations", "error", err)
		return &RegistrationsResponse{Body: RegistrationsBody{
			Status:  models.StatusError,
			Message: "Database error: " + err.Error(),
		}}, nil
	}

	return &RegistrationsResponse{Body: RegistrationsBody{
		Status:        models.StatusSuccess,
		Registrations: regs,
	}}, nil
}

type AnalyticsResponse struct {
	Body struct {
		Status    models.Status       `json:"status"`
		Message   string              `json:"message,omitempty"`
		Analytics []store.DateSummary `json:"analytics"`
	}
}

func (h *AdminHandler) HandleAnalytics(ctx context.Context, input *struct{}) (*AnalyticsResponse, error) {
	resp := &AnalyticsResponse{}

	rows, err := h.store.DateAnalytics(ctx)
	if err != nil {
		slog.Error("failed to compute date analytics", "error", err)
		resp.Body.Status = models.StatusError
		resp.Body.Message = "Database error: " + err.Error()
		return resp, nil
	}

	resp.Body.Status = models.StatusSuccess
	resp.Body.Analytics = rows
	return resp, nil
}

type DetailedAnalyticsResponse struct {
	Body struct {
		Status  models.Status `json:"status"`
		Message string        `json:"message,omitempty"`
		store.DetailedAnalytics
	}
}

func (h *AdminHandler) HandleDetailedAnalytics(ctx context.Context, input *struct{}) (*DetailedAnalyticsResponse, error) {
	resp := &DetailedAnalyticsResponse{}

	report, err := h.store.DetailedAnalytics(ctx)
	if err != nil {
		slog.Error("failed to compute detailed analytics", "error", err)
		resp.Body.Status = models.StatusError
		resp.Body.Message = "Database error: " + err.Error()
		return resp, nil
	}

	resp.Body.Status = models.StatusSuccess
	resp.Body.DetailedAnalytics = *report
	return resp, nil
}
