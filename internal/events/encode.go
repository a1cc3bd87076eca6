package events

import (
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
)

func marshalEvent(evt *Event) ([]byte, error) {
	return json.Marshal(evt)
}

func kafgoMessage(topic, key string, value []byte) kafkago.Message {
	return kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("trip.planned")},
			{Key: "source", Value: []byte("tripplanner")},
		},
	}
}
