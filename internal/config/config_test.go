package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lawnchairsociety/screenworld/internal/scenario"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.Catalog.Path != "data/catalog.yaml" {
		t.Errorf("Catalog.Path = %q, want data/catalog.yaml", cfg.Catalog.Path)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Logging.FilePath != "logs/worldgen.log" {
		t.Errorf("Logging.FilePath = %q, want logs/worldgen.log", cfg.Logging.FilePath)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Generation != DefaultConfig().Generation {
		t.Errorf("Generation = %+v, want defaults", cfg.Generation)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worldgen.yaml")
	content := `
generation:
  players: 4
  skills: 5
  difficulty: 7
  length: 6
  seed: 99
catalog:
  path: /srv/catalog.yaml
output:
  color: never
  store: true
database:
  driver: postgres
  postgres:
    host: db.internal
    port: 5433
    database: worlds
logging:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := GenerationConfig{Players: 4, Skills: 5, Difficulty: 7, Length: 6, Seed: 99, MaxAttempts: 10}
	if cfg.Generation != want {
		t.Errorf("Generation = %+v, want %+v", cfg.Generation, want)
	}
	if cfg.Catalog.Path != "/srv/catalog.yaml" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Output.Color != "never" || !cfg.Output.Store {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.Postgres.Host != "db.internal" || cfg.Database.Postgres.Port != 5433 {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Database.Postgres.SSLMode != "disable" {
		t.Errorf("unset SSLMode lost its default: %q", cfg.Database.Postgres.SSLMode)
	}
	if cfg.Logging.Level != "DEBUG" || !cfg.Logging.ConsoleEnabled {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worldgen.yaml")
	if err := os.WriteFile(path, []byte("generation:\n  players: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}

func TestLoadConfig_LogEnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Logging.Level = %q, want ERROR", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"too many players", func(c *Config) { c.Generation.Players = 9 }, true},
		{"length zero", func(c *Config) { c.Generation.Length = 0 }, true},
		{"no attempts", func(c *Config) { c.Generation.MaxAttempts = 0 }, true},
		{"no catalog", func(c *Config) { c.Catalog.Path = "" }, true},
		{"bad color", func(c *Config) { c.Output.Color = "sometimes" }, true},
		{"store without database path", func(c *Config) {
			c.Output.Store = true
			c.Database.SQLitePath = ""
		}, true},
		{"database ignored when not storing", func(c *Config) { c.Database.Driver = "bogus" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_GenerationErrorIsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generation.Difficulty = 11
	if err := cfg.Validate(); !errors.Is(err, scenario.ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}
}
