package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.APIPrefix != "/api/v1" {
		t.Fatalf("api prefix = %q", cfg.Server.APIPrefix)
	}
	if cfg.Auth.AccessTTL != 30*time.Minute {
		t.Fatalf("access ttl = %v", cfg.Auth.AccessTTL)
	}
	if cfg.Auth.JWTAlgorithm != "HS256" {
		t.Fatalf("algorithm = %q", cfg.Auth.JWTAlgorithm)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("cors origins = %v", cfg.Server.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.AccessTTL != 5*time.Minute {
		t.Fatalf("access ttl = %v", cfg.Auth.AccessTTL)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 2 {
		t.Fatalf("cors origins = %v", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoadRejectsBcryptCostOutOfRange(t *testing.T) {
	for _, cost := range []string{"3", "32"} {
		t.Run(cost, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", cost)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for BCRYPT_COST=%s", cost)
			}
		})
	}
}
