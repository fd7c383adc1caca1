// Package auth gates the admin operations behind the admin allow-list.
// There are no sessions or tokens: the caller names itself in a header and
// the gate only checks that the email is on the list.
package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-registration-api/internal/store"
)

type contextKey string

const (
	AdminEmailKey       contextKey = "admin_email"
	AdminControlTypeKey contextKey = "admin_control_type"
)

type AdminChecker interface {
	CheckAdmin(ctx context.Context, email string) (store.AdminStatus, error)
}

type AdminGate struct {
	checker AdminChecker
	header  string
	enabled bool
}

func NewAdminGate(checker AdminChecker, header string, enabled bool) *AdminGate {
	if header == "" {
		header = "X-Admin-Email"
	}
	return &AdminGate{checker: checker, header: header, enabled: enabled}
}

func (g *AdminGate) Enabled() bool {
	return g.enabled
}

func (g *AdminGate) Header() string {
	return g.header
}

// Middleware rejects the request with 403 unless the header names an admin.
// It lets everything through when the gate is disabled.
func (g *AdminGate) Middleware(ctx huma.Context, next func(huma.Context)) {
	if !g.enabled {
		next(ctx)
		return
	}

	email := ctx.Header(g.header)
	if email == "" {
		deny(ctx, "Admin email header "+g.header+" is required")
		return
	}

	status, err := g.checker.CheckAdmin(ctx.Context(), email)
	if err != nil {
		slog.Error("admin check failed", "email", email, "error", err)
		deny(ctx, "Unable to verify admin: "+err.Error())
		return
	}
	if !status.IsAdmin {
		deny(ctx, "Access denied: "+email+" is not an admin")
		return
	}

	ctx = huma.WithValue(ctx, AdminEmailKey, email)
	ctx = huma.WithValue(ctx, AdminControlTypeKey, status.ControlType)
	next(ctx)
}

func deny(ctx huma.Context, message string) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(http.StatusForbidden)
	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"status":  "error",
		"message": message,
	}); err != nil {
		slog.Error("failed to write admin gate response", "error", err)
	}
}
