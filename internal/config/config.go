package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"

	"bizdocs/internal/logger"
	"bizdocs/internal/render"
	"bizdocs/pkg/models"
)

// ErrInvalidConfig is returned by Load when an environment value cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// HTTP server
	HTTPAddr           string
	GinMode            string
	CORSAllowedOrigins []string

	// Rendering
	CompanySettingsFile string
	DefaultCurrency     string
	TrustDocumentMarkup bool

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		GinMode:             getEnv("GIN_MODE", gin.ReleaseMode),
		CompanySettingsFile: getEnv("COMPANY_SETTINGS_FILE", ""),
		DefaultCurrency:     strings.ToUpper(getEnv("DEFAULT_CURRENCY", "EUR")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:       getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:           getEnv("LOG_OUTPUT", "stderr"),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}

	trust, err := getEnvBool("TRUST_DOCUMENT_MARKUP", true)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.TrustDocumentMarkup = trust

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if _, err := currency.ParseISO(c.DefaultCurrency); err != nil {
		return fmt.Errorf("%w: DEFAULT_CURRENCY %q is not an ISO 4217 code", ErrInvalidConfig, c.DefaultCurrency)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("%w: GIN_MODE must be debug, release or test, got %q", ErrInvalidConfig, c.GinMode)
	}
	for _, origin := range c.CORSAllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("%w: CORS_ALLOWED_ORIGINS entry %q needs an http:// or https:// scheme", ErrInvalidConfig, origin)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: LOG_FORMAT must be console or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// GetRenderConfig returns the renderer configuration from the main config
func (c *Config) GetRenderConfig() render.Config {
	return render.Config{
		TrustMarkup:     c.TrustDocumentMarkup,
		DefaultCurrency: c.DefaultCurrency,
	}
}

// LoadCompanySettings reads the company settings file. An empty path yields nil settings.
func (c *Config) LoadCompanySettings() (*models.CompanySettings, error) {
	if c.CompanySettingsFile == "" {
		return nil, nil
	}
	return ReadCompanySettings(c.CompanySettingsFile)
}

// ReadCompanySettings decodes a company settings JSON file.
func ReadCompanySettings(path string) (*models.CompanySettings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read company settings %s: %w", path, err)
	}
	var settings models.CompanySettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("parse company settings %s: %w", path, err)
	}
	return &settings, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidConfig, key, value)
	}
	return b, nil
}
