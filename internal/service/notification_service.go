package service

import (
	"context"

	"erp-agent-nexus/internal/pkg/logger"
	"erp-agent-nexus/internal/websocket"
	"erp-agent-nexus/pkg/events"
	pktNats "erp-agent-nexus/pkg/nats"
)

// NotificationSource delivers externally produced events. Implemented by the NATS subscriber.
type NotificationSource interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

// NotificationService relays notifications published by other ERP services
// on events.NOTIFICATION to the addressed user's sockets.
type NotificationService struct {
	source   NotificationSource
	delivery PushDelivery
	logger   logger.ILogger
}

func NewNotificationService(source NotificationSource, delivery PushDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		source:   source,
		delivery: delivery,
		logger:   log,
	}
}

func (s *NotificationService) Start() error {
	err := s.source.Subscribe(pktNats.Subject(events.TypeNotification), "chat-notification-relay", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("NotificationService", "Notification relay started", nil)
	return nil
}

func (s *NotificationService) handleEvent(_ context.Context, event events.Event) error {
	userKey := events.UserKey(event)
	if userKey == "" {
		s.logger.Warn("NotificationService", "Dropping notification without recipient", map[string]interface{}{"type": event.EventType()})
		// Redelivery would not help.
		return nil
	}

	data := event.Payload()
	if _, ok := data["type"]; !ok {
		data["type"] = "info"
	}
	s.delivery.Send(userKey, websocket.Frame{Type: "notification", Data: data})
	return nil
}
