package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "GIN_MODE", "DEFAULT_CURRENCY", "TRUST_DOCUMENT_MARKUP", "LOG_FORMAT", "COMPANY_SETTINGS_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.DefaultCurrency != "EUR" || !cfg.TrustDocumentMarkup {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	settings, err := cfg.LoadCompanySettings()
	if err != nil || settings != nil {
		t.Fatalf("no settings file should yield nil settings, got %v, %v", settings, err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DEFAULT_CURRENCY", "EURO"},
		{"TRUST_DOCUMENT_MARKUP", "vielleicht"},
		{"GIN_MODE", "fast"},
		{"LOG_FORMAT", "xml"},
		{"CORS_ALLOWED_ORIGINS", "localhost:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.de ,")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://app.example.de" {
		t.Fatalf("origins = %q", cfg.CORSAllowedOrigins)
	}
}

func TestRenderConfig(t *testing.T) {
	t.Setenv("TRUST_DOCUMENT_MARKUP", "false")
	t.Setenv("DEFAULT_CURRENCY", "chf")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	rc := cfg.GetRenderConfig()
	if rc.TrustMarkup || rc.DefaultCurrency != "CHF" {
		t.Fatalf("render config = %+v", rc)
	}
}

func TestReadCompanySettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "company.json")
	body := `{"name":"Elektro Schmidt e.K.","address":{"street":"Werkstraße 1","zipCode":"10115","city":"Berlin"},"iban":"DE02120300000000202051"}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := ReadCompanySettings(path)
	if err != nil {
		t.Fatalf("ReadCompanySettings: %v", err)
	}
	if s.Name != "Elektro Schmidt e.K." || s.Address.City != "Berlin" || s.IBAN == "" {
		t.Fatalf("unexpected settings: %+v", s)
	}

	if _, err := ReadCompanySettings(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("missing file must fail")
	}
}
