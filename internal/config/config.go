package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	ChargebeeSite   string
	ChargebeeAPIURL string
	ChargebeeAPIKey string
	JWTSecret       string
	JWTIssuer       string
	HTTPListenAddr  string
	LogLevel        string
	CORSOrigins     []string
	ConsumptionFile string
	DevMode         bool
}

func Load() (*Config, error) {
	origins := getEnv("CORS_ORIGINS", "http://localhost:3000,https://alloy.dev")
	var corsList []string
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			corsList = append(corsList, trimmed)
		}
	}

	cfg := &Config{
		ChargebeeSite:   getEnv("CHARGEBEE_SITE", ""),
		ChargebeeAPIURL: getEnv("CHARGEBEE_API_URL", ""),
		ChargebeeAPIKey: getEnv("CHARGEBEE_API_KEY", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "dashboard-api"),
		HTTPListenAddr:  getEnv("HTTP_LISTEN_ADDR", ":8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     corsList,
		ConsumptionFile: getEnv("CONSUMPTION_FILE", ".data/consumption.json"),
		DevMode:         getEnv("DEV_MODE", "") == "true",
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.ChargebeeSite == "" && c.ChargebeeAPIURL == "" {
		missing = append(missing, "CHARGEBEE_SITE")
	}
	if c.ChargebeeAPIKey == "" {
		missing = append(missing, "CHARGEBEE_API_KEY")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes")
	}
	return nil
}

// ChargebeeBaseURL returns the provider base URL, preferring the explicit
// override so tests and self-hosted mocks can point anywhere.
func (c *Config) ChargebeeBaseURL() string {
	if c.ChargebeeAPIURL != "" {
		return c.ChargebeeAPIURL
	}
	return fmt.Sprintf("https://%s.chargebee.com", c.ChargebeeSite)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
