package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gdg-garage/event-registration-api/internal/store"
)

type fakeChecker map[string]string

func (f fakeChecker) CheckAdmin(ctx context.Context, email string) (store.AdminStatus, error) {
	if email == "broken@example.com" {
		return store.AdminStatus{}, errors.New("db down")
	}
	controlType, ok := f[email]
	return store.AdminStatus{IsAdmin: ok, ControlType: controlType}, nil
}

type whoAmIOutput struct {
	Body struct {
		Email       string `json:"email"`
		ControlType string `json:"control_type"`
	}
}

func newGatedAPI(t *testing.T, enabled bool) humatest.TestAPI {
	_, api := humatest.New(t)
	gate := NewAdminGate(fakeChecker{"admin@example.com": "Q"}, "", enabled)

	huma.Register(api, huma.Operation{
		OperationID: "who-am-i",
		Method:      http.MethodGet,
		Path:        "/admin/whoami",
		Middlewares: huma.Middlewares{gate.Middleware},
	}, func(ctx context.Context, input *struct{}) (*whoAmIOutput, error) {
		out := &whoAmIOutput{}
		out.Body.Email, _ = ctx.Value(AdminEmailKey).(string)
		out.Body.ControlType, _ = ctx.Value(AdminControlTypeKey).(string)
		return out, nil
	})

	return api
}

func TestAdminGate(t *testing.T) {
	api := newGatedAPI(t, true)

	t.Run("Admin", func(t *testing.T) {
		resp := api.Get("/admin/whoami", "X-Admin-Email: admin@example.com")
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
		}
		var body struct {
			Email       string `json:"email"`
			ControlType string `json:"control_type"`
		}
		json.Unmarshal(resp.Body.Bytes(), &body)
		if body.Email != "admin@example.com" || body.ControlType != "Q" {
			t.Errorf("expected admin identity in context, got %+v", body)
		}
	})

	for name, header := range map[string][]any{
		"MissingHeader": nil,
		"NotAdmin":      {"X-Admin-Email: someone@example.com"},
		"CheckFails":    {"X-Admin-Email: broken@example.com"},
	} {
		t.Run(name, func(t *testing.T) {
			resp := api.Get("/admin/whoami", header...)
			if resp.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", resp.Code)
			}
			var body struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("expected a JSON body: %v", err)
			}
			if body.Status != "error" || body.Message == "" {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}

func TestAdminGate_Disabled(t *testing.T) {
	api := newGatedAPI(t, false)

	resp := api.Get("/admin/whoami")
	if resp.Code != http.StatusOK {
		t.Errorf("expected the disabled gate to let requests through, got %d", resp.Code)
	}
}
