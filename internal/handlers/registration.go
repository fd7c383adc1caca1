package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdg-garage/event-registration-api/internal/metrics"
	"github.com/gdg-garage/event-registration-api/internal/models"
	"github.com/gdg-garage/event-registration-api/internal/notifier"
	"github.com/gdg-garage/event-registration-api/internal/store"
)

type RegistrationHandler struct {
	store    *store.Store
	notifier notifier.Notifier
}

// NewRegistrationHandler creates a handler; n may be nil when no
// notification channel is configured.
func NewRegistrationHandler(s *store.Store, n notifier.Notifier) *RegistrationHandler {
	return &RegistrationHandler{store: s, notifier: n}
}

type RegistrationRequest struct {
	Body models.Submission
}

type RegistrationResponse struct {
	Body struct {
		Status       models.Status               `json:"status"`
		Message      string                      `json:"message"`
		SubmissionID string                      `json:"submission_id"`
		Participants []models.ParticipantOutcome `json:"participants"`
	}
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegistrationRequest) (*RegistrationResponse, error) {
	sub := input.Body
	resp := &RegistrationResponse{}

	if missing := sub.MissingFields(); len(missing) > 0 {
		metrics.ObserveSubmission(models.SubmissionResult{Event: sub.Event, Total: len(sub.Participants)})
		resp.Body.Status = models.StatusError
		resp.Body.Message = "Missing required fields: " + strings.Join(missing, ", ")
		resp.Body.Participants = []models.ParticipantOutcome{}
		return resp, nil
	}

	res := h.store.SubmitRegistration(ctx, sub)
	metrics.ObserveSubmission(res)

	resp.Body.Status = res.Status()
	resp.Body.Message = submissionMessage(res)
	resp.Body.SubmissionID = res.SubmissionID
	resp.Body.Participants = res.Participants

	slog.Info("registration submitted",
		"submission_id", res.SubmissionID,
		"event", sub.Event,
		"status", resp.Body.Status,
		"saved", res.Saved,
		"total", res.Total,
	)

	if h.notifier != nil && res.Saved > 0 {
		if err := h.notifier.NotifySubmission(ctx, sub, res); err != nil {
			slog.Warn("submission notification failed", "submission_id", res.SubmissionID, "error", err)
		}
	}

	return resp, nil
}

func submissionMessage(res models.SubmissionResult) string {
	switch res.Status() {
	case models.StatusSuccess:
		return fmt.Sprintf("Registration data successfully saved to database! %d participants registered for %s", res.Saved, res.Event)
	case models.StatusPartialSuccess:
		return fmt.Sprintf("Saved %d out of %d participants to database", res.Saved, res.Total)
	}

	if res.Total == 0 {
		return "No participants supplied"
	}
	for _, p := range res.Participants {
		if p.Error != "" {
			return fmt.Sprintf("Database error: none of the %d participants could be saved: %s", res.Total, p.Error)
		}
	}
	return fmt.Sprintf("Database error: none of the %d participants could be saved", res.Total)
}

type RegistrationsRequest struct {
	Email string `path:"email" doc:"Booking contact email"`
}

type RegistrationsBody struct {
	Status        models.Status           `json:"status"`
	Message       string                  `json:"message,omitempty"`
	Registrations []models.RegistrantView `json:"registrations"`
}

type RegistrationsResponse struct {
	Body RegistrationsBody
}

func (h *RegistrationHandler) HandleGetRegistrations(ctx context.Context, input *RegistrationsRequest) (*RegistrationsResponse, error) {
	regs, err := h.store.RegistrationsByEmail(ctx, input.Email)
	if err != nil {
		slog.Error("failed to read registrations", "email", input.Email, "error", err)
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

type UpdateRegistrationRequest struct {
	Body map[string]any
}

type UpdateRegistrationResponse struct {
	Body struct {
		Status               models.Status `json:"status"`
		Message              string        `json:"message"`
		RegistrationsUpdated int64         `json:"registrations_updated"`
		PreferencesUpdated   int64         `json:"preferences_updated"`
	}
}

func (h *RegistrationHandler) HandleUpdate(ctx context.Context, input *UpdateRegistrationRequest) (*UpdateRegistrationResponse, error) {
	resp := &UpdateRegistrationResponse{}

	upd, err := store.ParseRegistrationUpdate(input.Body)
	if err != nil {
		resp.Body.Status = models.StatusError
		resp.Body.Message = "Invalid update: " + err.Error()
		return resp, nil
	}

	res, err := h.store.UpdateRegistration(ctx, upd)
	if err != nil {
		resp.Body.Status = models.StatusError
		if errors.Is(err, store.ErrIncompleteKey) {
			resp.Body.Message = "bookers_email, bookers_phone and name are required"
		} else {
			slog.Error("failed to update registration", "email", upd.Key.BookersEmail, "name", upd.Key.Name, "error", err)
			resp.Body.Message = "Database error: " + err.Error()
		}
		return resp, nil
	}

	resp.Body.Status = models.StatusSuccess
	resp.Body.RegistrationsUpdated = res.RegistrationsUpdated
	resp.Body.PreferencesUpdated = res.PreferencesUpdated
	if res.RegistrationsUpdated == 0 && res.PreferencesUpdated == 0 {
		resp.Body.Message = "No matching registration; nothing was changed"
	} else {
		resp.Body.Message = "Registration updated successfully"
	}
	return resp, nil
}

type DeleteRegistrationRequest struct {
	Body struct {
		BookersEmail string `json:"bookers_email,omitempty" doc:"Booking contact email"`
		BookersPhone string `json:"bookers_phone,omitempty" doc:"Booking contact phone"`
		Name         string `json:"name,omitempty" doc:"Participant name"`
	}
}

type DeleteRegistrationResponse struct {
	Body struct {
		Status               models.Status `json:"status"`
		Message              string        `json:"message"`
		RegistrationsDeleted int64         `json:"registrations_deleted"`
		PreferencesDeleted   int64         `json:"preferences_deleted"`
	}
}

func (h *RegistrationHandler) HandleDelete(ctx context.Context, input *DeleteRegistrationRequest) (*DeleteRegistrationResponse, error) {
	key := models.RegistrantKey{
		BookersEmail: input.Body.BookersEmail,
		BookersPhone: input.Body.BookersPhone,
		Name:         input.Body.Name,
	}
	resp := &DeleteRegistrationResponse{}

	res, err := h.store.DeleteRegistration(ctx, key)
	if err != nil {
		resp.Body.Status = models.StatusError
		if errors.Is(err, store.ErrIncompleteKey) {
			resp.Body.Message = "bookers_email, bookers_phone and name are required"
		} else {
			slog.Error("failed to delete registration", "email", key.BookersEmail, "name", key.Name, "error", err)
			resp.Body.Message = "Database error: " + err.Error()
		}
		return resp, nil
	}

	slog.Info("registration deleted",
		"email", key.BookersEmail,
		"name", key.Name,
		"registrations", res.RegistrationsDeleted,
		"preferences", res.PreferencesDeleted,
	)

	resp.Body.Status = models.StatusSuccess
	resp.Body.RegistrationsDeleted = res.RegistrationsDeleted
	resp.Body.PreferencesDeleted = res.PreferencesDeleted
	if res.RegistrationsDeleted == 0 {
		resp.Body.Message = "No matching registration found"
	} else {
		resp.Body.Message = "Registration deleted successfully"
	}
	return resp, nil
}
