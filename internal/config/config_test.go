package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DatabaseDriver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", cfg.DatabaseDriver)
	}
	if !cfg.AtomicParticipantWrites {
		t.Error("expected atomic participant writes by default")
	}
	if cfg.AdminGateEnabled {
		t.Error("expected the admin gate to be off by default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if seed := cfg.AdminSeed(); seed.Email == "" || seed.ControlType != "Q" {
		t.Errorf("unexpected admin seed %+v", seed)
	}
}

func TestLoad_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/eventdb")
	t.Setenv("ATOMIC_PARTICIPANT_WRITES", "false")
	t.Setenv("ADMIN_GATE_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.DatabaseDriver != DriverPostgres || cfg.DatabaseURL == "" {
		t.Errorf("unexpected database settings %s %s", cfg.DatabaseDriver, cfg.DatabaseURL)
	}
	if cfg.AtomicParticipantWrites {
		t.Error("expected atomic participant writes to be off")
	}
	if !cfg.AdminGateEnabled {
		t.Error("expected the admin gate to be on")
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("expected 2 CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
