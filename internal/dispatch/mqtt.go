package dispatch

import (
	"encoding/json"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/relabs-tech/gesture_engine/internal/gesture"
)

// Envelope wraps each gesture event with a message id and the device
// it came from, so downstream session bridges can deduplicate and
// route without parsing the event itself.
type Envelope struct {
	ID     string        `json:"id"`
	Device string        `json:"device"`
	Event  gesture.Event `json:"event"`
}

// MQTTSink publishes gesture events as JSON envelopes. Each event goes
// to the base topic and, retained, to a per-kind subtopic so a late
// consumer sees the last occurrence of each kind.
//
// Publish failures are logged and dropped, never retried: delivery
// policy belongs to the messaging layer, not the classifier feeding
// this sink.
type MQTTSink struct {
	client mqtt.Client
	topic  string
	device string
}

func NewMQTTSink(client mqtt.Client, topic, device string) *MQTTSink {
	return &MQTTSink{client: client, topic: topic, device: device}
}

func (s *MQTTSink) Emit(ev gesture.Event) {
	env := Envelope{
		ID:     uuid.NewString(),
		Device: s.device,
		Event:  ev,
	}

	payload, err := json.Marshal(env)
	if err != nil {
		log.Printf("gesture envelope marshal error: %v", err)
		return
	}

	if token := s.client.Publish(s.topic, 0, false, payload); token.Wait() && token.Error() != nil {
		log.Printf("MQTT publish error (%s): %v", s.topic, token.Error())
		return
	}

	kindTopic := s.topic + "/" + string(ev.Kind)
	if token := s.client.Publish(kindTopic, 0, true, payload); token.Wait() && token.Error() != nil {
		log.Printf("MQTT publish error (%s): %v", kindTopic, token.Error())
	}
}
