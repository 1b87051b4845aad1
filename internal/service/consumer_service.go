package service

import (
	"context"
	"encoding/json"

	"erp-agent-nexus/internal/entity"
	"erp-agent-nexus/internal/pkg/logger"
	"erp-agent-nexus/internal/websocket"
	"erp-agent-nexus/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PushDelivery pushes frames to a user's open sockets. Implemented by the websocket hub.
type PushDelivery interface {
	Send(userKey string, frame websocket.Frame)
}

// EventForwarder relays events outside the process. Implemented by the NATS publisher.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	delivery   PushDelivery
	forwarder  EventForwarder // may be nil
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery PushDelivery,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		delivery:   delivery,
		forwarder:  forwarder,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// Delivery is best effort, so every message is acked.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		return
	}

	if userKey := events.UserKey(event); userKey != "" && cs.delivery != nil {
		cs.delivery.Send(userKey, websocket.Frame{Type: "chat_event", Data: event})

		if event.Type == events.TypeMessageAppended {
			for _, n := range notificationsOf(event) {
				cs.delivery.Send(userKey, websocket.Frame{Type: "notification", Data: n})
			}
		}
	}

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to forward event to NATS", map[string]interface{}{
				"type":  event.Type,
				"error": err.Error(),
			})
		}
	}
}

func notificationsOf(event events.BaseEvent) []entity.Notification {
	raw, ok := event.Data["message"]
	if !ok {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var m entity.Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m.Notifications
}
