// Package events publishes a best-effort "trip planned" event after each
// successful plan, following the Event envelope and kafka-go Producer
// pattern in shared/pkg/kafka. Publishing is best-effort: a broker outage
// never fails a planning response, and the synchronous write is bounded
// by a 2-second timeout.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/draymaster/tripplanner/internal/platform/logger"
)

// TopicTripPlanned is the topic a trip-planned event is published to.
const TopicTripPlanned = "tripplanner.trip.planned"

// Event is the envelope shape shared across the draymaster event topics:
// an ID, type, source, timestamp and an arbitrary typed payload.
type Event struct {
	ID     string      `json:"id"`
	Type   string      `json:"type"`
	Source string      `json:"source"`
	Time   time.Time   `json:"time"`
	Data   interface{} `json:"data"`
}

// NewEvent builds an Event with a fresh correlation ID and the current
// time, leaving Data for the caller to fill in.
func NewEvent(eventType, source string, data interface{}) *Event {
	return &Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		Source: source,
		Time:   time.Now().UTC(),
		Data:   data,
	}
}

// TripPlanned is the payload published after BuildTimeline + BuildLogSheets
// complete for a request, used by downstream analytics consumers.
type TripPlanned struct {
	CurrentLocation   string  `json:"current_location"`
	PickupLocation    string  `json:"pickup_location"`
	DropoffLocation   string  `json:"dropoff_location"`
	DistanceMiles     float64 `json:"distance_miles"`
	DrivingHours      float64 `json:"driving_hours"`
	DaysOnRoad        int     `json:"days_on_road"`
}

// Publisher wraps a kafka-go Writer the same way shared/pkg/kafka.Producer
// does: one long-lived writer, synchronous required-acks publishes, a
// structured logger for failures.
type Publisher struct {
	writer *kafkago.Writer
	log    *logger.Logger
}

// NewPublisher builds a Publisher against the given brokers.
func NewPublisher(brokers []string, log *logger.Logger) *Publisher {
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkago.RequireOne,
			Async:        false,
		},
		log: log,
	}
}

// PublishTripPlanned emits a TripPlanned event. Errors are logged, not
// returned. The write runs synchronously on the caller's goroutine with a
// 2-second timeout, so a slow or unavailable broker delays the caller by
// at most that long.
func (p *Publisher) PublishTripPlanned(ctx context.Context, topic string, payload TripPlanned) {
	if p == nil || p.writer == nil {
		return
	}
	evt := NewEvent("trip.planned", "tripplanner", payload)
	msg, err := marshalEvent(evt)
	if err != nil {
		p.log.WithError(err).Errorw("marshal trip planned event failed")
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, kafgoMessage(topic, evt.ID, msg)); err != nil {
		p.log.WithError(err).Errorw("publish trip planned event failed", "topic", topic)
		return
	}
	p.log.Debugw("trip planned event published", "topic", topic, "event_id", evt.ID)
}

// Close releases the underlying Kafka writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
