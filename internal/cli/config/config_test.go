package config

import (
	"os"
	"testing"

	"github.com/jymfony/scriba/runtime/sidechannel"
)

func chdir(t *testing.T) {
	t.Helper()

	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
}

func TestLoad(t *testing.T) {
	// No config file: defaults apply
	chdir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Log.Level)
	}

	if cfg.Provider.Driver != sidechannel.DriverFile {
		t.Errorf("expected default driver 'file', got %s", cfg.Provider.Driver)
	}

	if cfg.Provider.Path != "build/reflection.json" {
		t.Errorf("expected default path 'build/reflection.json', got %s", cfg.Provider.Path)
	}

	if cfg.Provider.Table != "reflection_classes" {
		t.Errorf("expected default table 'reflection_classes', got %s", cfg.Provider.Table)
	}

	if cfg.Redis.Prefix != "scriba:class:" {
		t.Errorf("expected default redis prefix 'scriba:class:', got %s", cfg.Redis.Prefix)
	}

	if cfg.Server.Addr() != "localhost:7070" {
		t.Errorf("expected default address 'localhost:7070', got %s", cfg.Server.Addr())
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	chdir(t)

	configContent := `
log:
  level: debug
  development: true
provider:
  driver: sqlite3
  dsn: file:reflection.db
  table: classes
redis:
  addr: cache:6379
  db: 2
server:
  port: 8080
  host: 0.0.0.0
`
	if err := os.WriteFile("scriba.yml", []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Log.Level != "debug" || !cfg.Log.Development {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}

	sc := cfg.SideChannel()
	if sc.Driver != "sqlite3" || sc.DSN != "file:reflection.db" || sc.Table != "classes" {
		t.Errorf("unexpected provider config: %+v", sc)
	}

	if sc.Redis.Addr != "cache:6379" || sc.Redis.DB != 2 {
		t.Errorf("unexpected redis config: %+v", sc.Redis)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	chdir(t)
	t.Setenv("SCRIBA_PROVIDER_DRIVER", "memory")
	t.Setenv("SCRIBA_SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Provider.Driver != "memory" {
		t.Errorf("expected driver 'memory', got %s", cfg.Provider.Driver)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	chdir(t)
	os.WriteFile("scriba.yml", []byte("provider: [\n"), 0o644)

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Provider: ProviderConfig{Driver: "file", Path: "build/reflection.json"},
			Server:   ServerConfig{Host: "localhost", Port: 7070},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.Provider.Driver = "mongo" }, true},
		{"sql without dsn", func(c *Config) { c.Provider.Driver = "postgres" }, true},
		{"sql with dsn", func(c *Config) { c.Provider.Driver = "pgx"; c.Provider.DSN = "postgres://localhost/x" }, false},
		{"file without path", func(c *Config) { c.Provider.Path = "" }, true},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
