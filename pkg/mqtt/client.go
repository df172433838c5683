// Package mqtt publishes shipment events to an MQTT broker.
package mqtt

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

type Config struct {
	Broker               string
	ClientID             string
	Username             string
	Password             string
	CleanSession         bool
	KeepAlive            int
	ConnectTimeout       int
	MaxReconnectInterval time.Duration
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.ClientID == "" {
		out.ClientID = "shipping-management"
	}
	if out.KeepAlive <= 0 {
		out.KeepAlive = 30
	}
	if out.ConnectTimeout <= 0 {
		out.ConnectTimeout = 10
	}
	if out.MaxReconnectInterval <= 0 {
		out.MaxReconnectInterval = time.Minute
	}
	return out
}

// Client is a publish-only broker connection. It reconnects on its own after a loss.
type Client struct {
	client mqtt.Client
	config Config
	log    *zap.Logger
}

func NewClient(config *Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := config.withDefaults()

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetCleanSession(cfg.CleanSession)
	opts.SetKeepAlive(time.Duration(cfg.KeepAlive) * time.Second)
	opts.SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(cfg.MaxReconnectInterval)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Info("MQTT client connected",
			zap.String("broker", cfg.Broker),
			zap.String("event", "mqtt_connected"),
		)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn("MQTT connection lost",
			zap.Error(err),
			zap.String("event", "mqtt_connection_lost"),
		)
	})

	return &Client{
		client: mqtt.NewClient(opts),
		config: cfg,
		log:    log,
	}
}

func (c *Client) Connect() error {
	token := c.client.Connect()
	if !token.WaitTimeout(time.Duration(c.config.ConnectTimeout) * time.Second) {
		return fmt.Errorf("connect to MQTT broker %s timed out", c.config.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return nil
}

// Publish sends payload to topic and waits for the broker acknowledgement.
func (c *Client) Publish(topic string, qos byte, retained bool, payload []byte) error {
	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	return token.Error()
}

func (c *Client) Disconnect() {
	c.client.Disconnect(250)
	c.log.Info("Disconnected from MQTT broker", zap.String("event", "mqtt_disconnected"))
}

func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}
