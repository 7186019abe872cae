// Package mqtt_client owns the long-lived broker connection. The connection
// is created once at startup and reused across every poll cycle; paho's
// auto-reconnect covers broker restarts in between.
package mqtt_client

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ctabridge/ctabridge/pkg/config"
	"github.com/ctabridge/ctabridge/pkg/transit"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

type Publisher struct {
	client mqtt.Client
}

// Connect dials the broker, retrying with exponential backoff so a slow
// broker start (this usually runs next to the broker on the same box) does
// not kill the process. It only returns an error once the backoff budget is
// exhausted.
func Connect(cfg *config.Config) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID("ctabridge").
		SetUsername(cfg.MQTTUsername).
		SetPassword(cfg.MQTTPassword).
		SetAutoReconnect(true)

	opts.OnConnect = func(client mqtt.Client) {
		log.Info().Str("broker", cfg.MQTTBroker).Msg("Connected to MQTT broker")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Error().Err(err).Msg("Lost MQTT broker connection, will auto-reconnect")
	}

	client := mqtt.NewClient(opts)

	connect := func() error {
		token := client.Connect()
		token.Wait()
		return token.Error()
	}

	retryBackoff := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)
	if err := backoff.Retry(connect, retryBackoff); err != nil {
		return nil, fmt.Errorf("connect to MQTT broker %s: %w", cfg.MQTTBroker, err)
	}

	return &Publisher{client: client}, nil
}

// Publish sends the record's value as a decimal string to its topic at
// QoS 1, so a dashboard subscriber sees every cycle's value at least once.
func (publisher *Publisher) Publish(record transit.PublishRecord) error {
	token := publisher.client.Publish(record.Topic, 1, false, strconv.Itoa(record.Value))
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", record.Topic)
	}

	return token.Error()
}

func (publisher *Publisher) Connected() bool {
	return publisher.client.IsConnected()
}

func (publisher *Publisher) Disconnect() {
	publisher.client.Disconnect(250)
}
