package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Publisher is the subset of the MQTT client the sink needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// MQTTSink forwards events as JSON to <prefix>/shipments/<event name>.
type MQTTSink struct {
	publisher Publisher
	prefix    string
	qos       byte
}

func NewMQTTSink(publisher Publisher, prefix string, qos byte) *MQTTSink {
	return &MQTTSink{publisher: publisher, prefix: strings.TrimSuffix(prefix, "/"), qos: qos}
}

func (s *MQTTSink) Topic(name Name) string {
	if s.prefix == "" {
		return "shipments/" + string(name)
	}
	return s.prefix + "/shipments/" + string(name)
}

func (s *MQTTSink) Handle(_ context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Name, err)
	}
	return s.publisher.Publish(s.Topic(event.Name), s.qos, false, payload)
}

// Register subscribes the sink to every shipment event.
func (s *MQTTSink) Register(bus *Bus) {
	bus.Subscribe("mqtt", s.Handle, ShipmentCreated, LabelAttached, ShipmentStateChanged, IncidentDetected)
}
