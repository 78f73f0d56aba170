package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lookupFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(lookupFrom(nil))
	want := &Config{
		Server: ServerConfig{Addr: ":8080"},
		App:    AppConfig{Environment: "development", LogLevel: "info", LogFormat: "text"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg := FromEnv(lookupFrom(map[string]string{
		EnvAddr:         "127.0.0.1:9000",
		EnvEnvironment:  "production",
		EnvLogLevel:     "DEBUG",
		EnvLogFormat:    "json",
		EnvThemeVariant: "dark",
		EnvCORSOrigins:  " http://a.test , ,http://b.test",
		EnvTemplatesDir: dir,
	}))
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff([]string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
	if cfg.App.LogLevel != "debug" || !cfg.Production() || cfg.Theme.Variant != "dark" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestValidateRejects(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cases := map[string]map[string]string{
		"log level":     {EnvLogLevel: "verbose"},
		"log format":    {EnvLogFormat: "xml"},
		"missing dir":   {EnvTemplatesDir: filepath.Join(t.TempDir(), "missing")},
		"templates dir": {EnvTemplatesDir: file},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if err := FromEnv(lookupFrom(env)).Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(EnvThemeVariant+"=dark\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvDotenvPath, path)
	t.Setenv(EnvThemeVariant, "")
	os.Unsetenv(EnvThemeVariant)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme.Variant != "dark" {
		t.Fatalf("expected dotenv value, got %q", cfg.Theme.Variant)
	}
}
