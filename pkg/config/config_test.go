package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithDefaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	envVars := []string{
		"APP_NAME", "APP_ENVIRONMENT", "APP_DEBUG",
		"SERVER_HOST", "SERVER_PORT",
		"DATABASE_HOST", "DATABASE_PORT", "DATABASE_USER", "DATABASE_PASSWORD", "DATABASE_DBNAME",
		"REDIS_HOST", "REDIS_PORT",
		"KAFKA_ENABLED", "KAFKA_BROKERS",
		"JWT_SECRET",
		"TICKET_VERIFIER_KEY", "TICKET_UNIQUE_TENANT_NAMES", "TICKET_DEFAULT_RETENTION",
		"RETENTION_SCAN_INTERVAL", "RETENTION_BATCH_SIZE",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.Name != "event-manager" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "event-manager")
	}
	if cfg.App.Environment != "development" {
		t.Errorf("App.Environment = %q, want %q", cfg.App.Environment, "development")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 5432)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want %d", cfg.Redis.Port, 6379)
	}
	if cfg.Kafka.Enabled {
		t.Error("Kafka.Enabled should default to false")
	}
	if cfg.Ticket.VerifierKey == "" {
		t.Error("Ticket.VerifierKey should have a development default")
	}
	if !cfg.Ticket.UniqueTenantNames {
		t.Error("Ticket.UniqueTenantNames should default to true")
	}
	if cfg.Ticket.DefaultRetention != 0 {
		t.Errorf("Ticket.DefaultRetention = %v, want 0 (no policy default)", cfg.Ticket.DefaultRetention)
	}
	if cfg.Retention.ScanInterval != time.Minute {
		t.Errorf("Retention.ScanInterval = %v, want %v", cfg.Retention.ScanInterval, time.Minute)
	}
	if cfg.Retention.BatchSize != 100 {
		t.Errorf("Retention.BatchSize = %d, want 100", cfg.Retention.BatchSize)
	}
}

func TestLoad_WithEnvOverride(t *testing.T) {
	os.Setenv("APP_NAME", "test-app")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DATABASE_HOST", "db.example.com")
	os.Setenv("TICKET_DEFAULT_RETENTION", "720h")
	defer func() {
		os.Unsetenv("APP_NAME")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("DATABASE_HOST")
		os.Unsetenv("TICKET_DEFAULT_RETENTION")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.Name != "test-app" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "test-app")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "db.example.com")
	}
	if cfg.Ticket.DefaultRetention != 720*time.Hour {
		t.Errorf("Ticket.DefaultRetention = %v, want %v", cfg.Ticket.DefaultRetention, 720*time.Hour)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "event_manager",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=postgres password=secret dbname=event_manager sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.example.com", Port: 6380}
	if got := cfg.Addr(); got != "redis.example.com:6380" {
		t.Errorf("Addr() = %q, want %q", got, "redis.example.com:6380")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080},
			Database:  DatabaseConfig{Host: "localhost"},
			JWT:       JWTConfig{Secret: "secret"},
			Ticket:    TicketConfig{VerifierKey: "key"},
			Retention: RetentionConfig{BatchSize: 100},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, true},
		{"missing database host", func(c *Config) { c.Database.Host = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWT.Secret = "" }, true},
		{"missing verifier key", func(c *Config) { c.Ticket.VerifierKey = "" }, true},
		{"non-positive batch size", func(c *Config) { c.Retention.BatchSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
