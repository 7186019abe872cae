package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("CTABRIDGE_MQTT_PASSWORD", "hunter2")
	t.Setenv("CTA_API_KEY_BUS", "buskey")
	t.Setenv("CTA_API_KEY_RAIL", "railkey")

	// Clear the optional variables so an ambient environment cannot leak
	// into the defaults assertions
	for _, name := range []string{
		"CTABRIDGE_MQTT_BROKER",
		"CTABRIDGE_MQTT_USERNAME",
		"CTABRIDGE_POLL_INTERVAL",
		"CTABRIDGE_HTTP_TIMEOUT",
		"CTABRIDGE_STOPS_FILE",
		"CTABRIDGE_STATS_LISTEN",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.MQTTBroker != "tcp://192.168.1.101:1883" {
		t.Errorf("MQTTBroker = %q", cfg.MQTTBroker)
	}
	if cfg.MQTTUsername != "mqtt" {
		t.Errorf("MQTTUsername = %q", cfg.MQTTUsername)
	}
	if cfg.PollInterval != 20*time.Second {
		t.Errorf("PollInterval = %v, expected 20s", cfg.PollInterval)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, expected 10s", cfg.HTTPTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CTABRIDGE_MQTT_BROKER", "tcp://broker.local:1883")
	t.Setenv("CTABRIDGE_POLL_INTERVAL", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.MQTTBroker != "tcp://broker.local:1883" {
		t.Errorf("MQTTBroker = %q", cfg.MQTTBroker)
	}
	if cfg.PollInterval != 45*time.Second {
		t.Errorf("PollInterval = %v, expected 45s", cfg.PollInterval)
	}
}

func TestLoadMissingCredentialsFatal(t *testing.T) {
	setRequired(t)
	t.Setenv("CTA_API_KEY_RAIL", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for missing rail key, got nil")
	}
	if !strings.Contains(err.Error(), "CTA_API_KEY_RAIL") {
		t.Errorf("error should name the missing variable, got %q", err.Error())
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("CTABRIDGE_POLL_INTERVAL", "not a duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PollInterval != 20*time.Second {
		t.Errorf("PollInterval = %v, expected default 20s", cfg.PollInterval)
	}
}
