package config_test

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/medassist")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("expected default gemini model, got %q", cfg.GeminiModel)
	}
	if cfg.DBRetryAttempts != 3 || cfg.DBRetryBackoff != time.Second {
		t.Fatalf("unexpected retry defaults: %d %s", cfg.DBRetryAttempts, cfg.DBRetryBackoff)
	}
	if cfg.AITimeout != 60*time.Second {
		t.Fatalf("expected 60s AI timeout, got %s", cfg.AITimeout)
	}
	if cfg.BodyLimitBytes() != 25*1024*1024 {
		t.Fatalf("unexpected body limit %d", cfg.BodyLimitBytes())
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "secret")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected missing DATABASE_URL to fail")
	}
}

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/medassist")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JWT_SECRET", "secret")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected missing GEMINI_API_KEY to fail")
	}
}

func TestValidateRequiresAuthMechanism(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{DBRetryAttempts: 3}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without JWT_SECRET or AUTH_JWKS_URL")
	}
	cfg.AuthJWKSURL = "https://issuer.example.com/.well-known/jwks.json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate with jwks url: %v", err)
	}
}
