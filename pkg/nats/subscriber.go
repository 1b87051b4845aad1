package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"erp-agent-nexus/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber handles listening for events from NATS.
type Subscriber struct {
	nc   *nats.Conn
	js   jetstream.JetStream
	stop jetstream.ConsumeContext
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe registers a durable consumer for subject. A handler error naks the
// message so it is redelivered.
func (s *Subscriber) Subscribe(subject string, durableName string, handler EventHandler) error {
	ctx := context.Background()

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := decode(msg.Subject(), msg.Data())
		if err != nil {
			log.Printf("Error unmarshalling event data: %v", err)
			_ = msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			log.Printf("Error handling event %s: %v", event.Type, err)
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.stop = cc
	return nil
}

// decode accepts the envelope written by Publisher, or a bare payload whose
// type is taken from the subject.
func decode(subject string, data []byte) (events.BaseEvent, error) {
	var event events.BaseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return event, err
	}
	if event.Type == "" || event.Data == nil {
		var payload map[string]interface{}
		if err := json.Unmarshal(data, &payload); err != nil {
			return event, err
		}
		event = events.BaseEvent{Type: strings.TrimPrefix(subject, "events."), Data: payload}
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	return event, nil
}

func (s *Subscriber) Close() {
	if s.stop != nil {
		s.stop.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
