package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

type published struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (f *fakePublisher) Publish(topic string, _ byte, _ bool, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, published{topic: topic, payload: payload})
	return nil
}

func TestBus(t *testing.T) {
	Convey("Given a bus with several subscribers", t, func() {
		bus := NewBus(nil, nil)
		var seen []string

		bus.Subscribe("first", func(_ context.Context, e Event) error {
			seen = append(seen, "first:"+string(e.Name))
			return errors.New("boom")
		}, ShipmentCreated)
		bus.Subscribe("panicky", func(context.Context, Event) error {
			panic("unexpected")
		}, ShipmentCreated)
		bus.Subscribe("second", func(_ context.Context, e Event) error {
			seen = append(seen, "second:"+string(e.Name))
			return nil
		}, ShipmentCreated, IncidentDetected)

		Convey("failing and panicking handlers do not stop delivery", func() {
			So(func() { bus.Publish(context.Background(), Event{Name: ShipmentCreated}) }, ShouldNotPanic)
			So(seen, ShouldResemble, []string{"first:shipment_created", "second:shipment_created"})
		})

		Convey("only subscribed events are delivered", func() {
			bus.Publish(context.Background(), Event{Name: LabelAttached})
			So(seen, ShouldBeEmpty)
		})
	})

	Convey("The MQTT sink publishes JSON under the shipments topic", t, func() {
		pub := &fakePublisher{}
		sink := NewMQTTSink(pub, "shipping/", 1)
		bus := NewBus(nil, nil)
		sink.Register(bus)

		id := uuid.New()
		bus.Publish(context.Background(), Event{Name: IncidentDetected, ShipmentID: id, RawStatus: "INCIDENCIA"})

		So(len(pub.messages), ShouldEqual, 1)
		So(pub.messages[0].topic, ShouldEqual, "shipping/shipments/incident_detected")

		var decoded Event
		So(json.Unmarshal(pub.messages[0].payload, &decoded), ShouldBeNil)
		So(decoded.ShipmentID, ShouldResemble, id)
		So(decoded.RawStatus, ShouldEqual, "INCIDENCIA")
	})

	Convey("Broker failures are swallowed by the bus", t, func() {
		bus := NewBus(nil, nil)
		NewMQTTSink(&fakePublisher{err: errors.New("offline")}, "shipping", 0).Register(bus)
		So(func() { bus.Publish(context.Background(), Event{Name: ShipmentCreated}) }, ShouldNotPanic)
	})
}
