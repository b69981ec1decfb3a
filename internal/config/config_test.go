package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "darts-league-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
	}
	if cfg.WriteTimeout != 15*time.Minute {
		t.Fatalf("unexpected write timeout: %s", cfg.WriteTimeout)
	}
	if cfg.ScrapeMatchDelay != 1500*time.Millisecond {
		t.Fatalf("unexpected match delay: %s", cfg.ScrapeMatchDelay)
	}
	if cfg.ScrapeWorkerCount != 2 {
		t.Fatalf("unexpected worker count: %d", cfg.ScrapeWorkerCount)
	}
	if cfg.SeriesQualifyingEvents != 6 || cfg.SeriesTotalEvents != 7 {
		t.Fatalf("unexpected series: %d/%d", cfg.SeriesQualifyingEvents, cfg.SeriesTotalEvents)
	}
	if cfg.DartConnectTVBaseURL != "https://tv.dartconnect.com" {
		t.Fatalf("unexpected tv base url: %q", cfg.DartConnectTVBaseURL)
	}
	if cfg.DartConnectMaxRetries != 1 {
		t.Fatalf("unexpected max retries: %d", cfg.DartConnectMaxRetries)
	}
	if !cfg.DartConnectCircuit.Enabled || cfg.DartConnectCircuit.FailureThreshold != 4 {
		t.Fatalf("unexpected dartconnect breaker: %+v", cfg.DartConnectCircuit)
	}
	if cfg.AnubisPrincipalTTL != 30*time.Second {
		t.Fatalf("unexpected principal ttl: %s", cfg.AnubisPrincipalTTL)
	}
	if len(cfg.AdminUserIDs) != 0 {
		t.Fatalf("expected no admin ids, got %+v", cfg.AdminUserIDs)
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("memory accepted", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " Memory ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageMemory {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("unknown rejected", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_ScrapeSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("zero delay disables pacing", func(t *testing.T) {
		t.Setenv("SCRAPE_MATCH_DELAY", "0s")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ScrapeMatchDelay != 0 {
			t.Fatalf("expected zero delay, got %s", cfg.ScrapeMatchDelay)
		}
	})

	t.Run("negative delay rejected", func(t *testing.T) {
		t.Setenv("SCRAPE_MATCH_DELAY", "-1s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative SCRAPE_MATCH_DELAY")
		}
	})

	t.Run("worker count must be positive", func(t *testing.T) {
		t.Setenv("SCRAPE_WORKER_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SCRAPE_WORKER_COUNT=0")
		}
	})

	t.Run("qualifying events cannot exceed total", func(t *testing.T) {
		t.Setenv("SERIES_QUALIFYING_EVENTS", "8")
		t.Setenv("SERIES_TOTAL_EVENTS", "7")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when qualifying events exceed total")
		}
	})
}

func TestLoad_CircuitBreakerParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("DARTCONNECT_CIRCUIT_ENABLED", "false")
	t.Setenv("DARTCONNECT_CIRCUIT_FAILURE_COUNT", "9")
	t.Setenv("DARTCONNECT_CIRCUIT_OPEN_TIMEOUT", "2m")
	t.Setenv("DARTCONNECT_CIRCUIT_HALF_OPEN_MAX_REQ", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	got := cfg.DartConnectCircuit
	if got.Enabled || got.FailureThreshold != 9 || got.OpenTimeout != 2*time.Minute || got.HalfOpenProbes != 3 {
		t.Fatalf("unexpected breaker config: %+v", got)
	}
	if !cfg.AnubisCircuit.Enabled || cfg.AnubisCircuit.FailureThreshold != 5 {
		t.Fatalf("unexpected anubis breaker defaults: %+v", cfg.AnubisCircuit)
	}

	t.Run("invalid failure count", func(t *testing.T) {
		t.Setenv("ANUBIS_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for ANUBIS_CIRCUIT_FAILURE_COUNT=0")
		}
	})
}

func TestLoad_AdminUserIDs(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("AUTH_ADMIN_USER_IDS", " ops-1, ,ops-2 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.AdminUserIDs) != 2 || cfg.AdminUserIDs[0] != "ops-1" || cfg.AdminUserIDs[1] != "ops-2" {
		t.Fatalf("unexpected admin ids: %+v", cfg.AdminUserIDs)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "darts-league-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "darts-league-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("custom ttl", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "false")
		t.Setenv("CACHE_TTL", "5m")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CacheEnabled || cfg.CacheTTL != 5*time.Minute {
			t.Fatalf("unexpected cache config: enabled=%t ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
		}
	})

	t.Run("zero ttl rejected", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for CACHE_TTL=0s")
		}
	})
}
