// Package config collects all runtime settings from the environment into an
// explicit struct handed to the monitor, instead of packages reading env
// variables at point of use.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	MQTTBroker   string
	MQTTUsername string
	MQTTPassword string

	BusAPIKey  string
	RailAPIKey string

	PollInterval time.Duration
	HTTPTimeout  time.Duration

	StopsFile   string
	StatsListen string
}

// Load reads configuration from environment variables. Missing required
// credentials are returned as an error so startup fails before the poll
// loop ever runs.
func Load() (*Config, error) {
	cfg := &Config{
		MQTTBroker:   getEnv("CTABRIDGE_MQTT_BROKER", "tcp://192.168.1.101:1883"),
		MQTTUsername: getEnv("CTABRIDGE_MQTT_USERNAME", "mqtt"),
		MQTTPassword: os.Getenv("CTABRIDGE_MQTT_PASSWORD"),

		BusAPIKey:  os.Getenv("CTA_API_KEY_BUS"),
		RailAPIKey: os.Getenv("CTA_API_KEY_RAIL"),

		PollInterval: getDurationEnv("CTABRIDGE_POLL_INTERVAL", 20*time.Second),
		HTTPTimeout:  getDurationEnv("CTABRIDGE_HTTP_TIMEOUT", 10*time.Second),

		StopsFile:   os.Getenv("CTABRIDGE_STOPS_FILE"),
		StatsListen: getEnv("CTABRIDGE_STATS_LISTEN", ":3333"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"CTABRIDGE_MQTT_PASSWORD", cfg.MQTTPassword},
		{"CTA_API_KEY_BUS", cfg.BusAPIKey},
		{"CTA_API_KEY_RAIL", cfg.RailAPIKey},
	}

	var missing []string
	for _, variable := range required {
		if variable.value == "" {
			missing = append(missing, variable.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}

	return defaultValue
}
