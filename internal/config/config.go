package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAddr         = "FORMFIELDS_ADDR"
	EnvEnvironment  = "FORMFIELDS_ENV"
	EnvLogLevel     = "FORMFIELDS_LOG_LEVEL"
	EnvLogFormat    = "FORMFIELDS_LOG_FORMAT"
	EnvThemeVariant = "FORMFIELDS_THEME_VARIANT"
	EnvCORSOrigins  = "FORMFIELDS_CORS_ORIGINS"
	EnvTemplatesDir = "FORMFIELDS_TEMPLATES_DIR"
	EnvDotenvPath   = "FORMFIELDS_DOTENV"
)

const (
	defaultDotenv    = ".env"
	defaultAddr      = ":8080"
	defaultEnv       = "development"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

type Config struct {
	Server ServerConfig
	App    AppConfig
	Theme  ThemeConfig
}

type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
}

type ThemeConfig struct {
	Variant      string
	TemplatesDir string
}

// Load reads an optional dotenv file, then the environment, and validates
// the result. A missing dotenv file is not an error.
func Load() (*Config, error) {
	path := getEnv(EnvDotenvPath, defaultDotenv)
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}

	cfg := FromEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a config from lookup with defaults applied.
func FromEnv(lookup func(string) string) *Config {
	get := func(key, fallback string) string {
		if value := strings.TrimSpace(lookup(key)); value != "" {
			return value
		}
		return fallback
	}

	return &Config{
		Server: ServerConfig{
			Addr:        get(EnvAddr, defaultAddr),
			CORSOrigins: splitList(get(EnvCORSOrigins, "")),
		},
		App: AppConfig{
			Environment: get(EnvEnvironment, defaultEnv),
			LogLevel:    strings.ToLower(get(EnvLogLevel, defaultLogLevel)),
			LogFormat:   strings.ToLower(get(EnvLogFormat, defaultLogFormat)),
		},
		Theme: ThemeConfig{
			Variant:      get(EnvThemeVariant, ""),
			TemplatesDir: get(EnvTemplatesDir, ""),
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%s is required", EnvAddr)
	}
	switch c.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s must be one of debug, info, warn, error; got %q", EnvLogLevel, c.App.LogLevel)
	}
	switch c.App.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%s must be text or json; got %q", EnvLogFormat, c.App.LogFormat)
	}
	if dir := c.Theme.TemplatesDir; dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTemplatesDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s: %s is not a directory", EnvTemplatesDir, dir)
		}
	}
	return nil
}

// Production reports whether the app runs in the production environment.
func (c *Config) Production() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
