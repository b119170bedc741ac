package infra

import (
	"reflect"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "DATA_DIR", "DATABASE_URL", "ADMIN_SECURITY_KEY",
		"GEMINI_API_KEY", "GEMINI_BASE_URL", "GEOIP_DB_PATH", "DEFAULT_LOCALE", "ALLOWED_ORIGINS",
		"HTTP_READ_TIMEOUT_SECONDS", "HTTP_WRITE_TIMEOUT_SECONDS", "HTTP_IDLE_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppEnv != "development" || cfg.Port != "8080" || cfg.DataDir != "./data" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.AdminSecurityKey != "admin123" {
		t.Fatalf("admin key = %q", cfg.AdminSecurityKey)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("locale = %q", cfg.DefaultLocale)
	}
	if cfg.DatabaseURL != "" || cfg.GeminiAPIKey != "" || cfg.GeoIPDBPath != "" {
		t.Fatalf("optional fields must default empty: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://localhost:5173"}) {
		t.Fatalf("allowed origins = %v", cfg.AllowedOrigins)
	}
	if cfg.HTTPReadTimeout != 15*time.Second || cfg.HTTPWriteTimeout != 60*time.Second {
		t.Fatalf("timeouts = %v/%v", cfg.HTTPReadTimeout, cfg.HTTPWriteTimeout)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_DIR", "/var/lib/ngonexus")
	t.Setenv("ADMIN_SECURITY_KEY", "s3cret")
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://app.ngonexus.org, https://staging.ngonexus.org")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.DataDir != "/var/lib/ngonexus" || cfg.AdminSecurityKey != "s3cret" {
		t.Fatalf("overrides = %+v", cfg)
	}
	if cfg.HTTPReadTimeout != 5*time.Second {
		t.Fatalf("read timeout = %v", cfg.HTTPReadTimeout)
	}
	want := []string{"https://app.ngonexus.org", "https://staging.ngonexus.org"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("allowed origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigIgnoresUnparsableInt(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_IDLE_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPIdleTimeout != 60*time.Second {
		t.Fatalf("idle timeout = %v, want fallback", cfg.HTTPIdleTimeout)
	}
}
