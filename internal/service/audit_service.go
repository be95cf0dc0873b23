package service

import (
	"context"

	"bestill-chatbot-be/internal/pkg/logger"
	"bestill-chatbot-be/pkg/events"
	pkgNats "bestill-chatbot-be/pkg/nats"
)

type IAuditService interface {
	Consume() error
}

// auditService tails the event stream and writes each event to the
// structured log, giving an append-only audit trail of journal and
// session activity without touching the request path.
type auditService struct {
	subscriber *pkgNats.Subscriber
	log        logger.ILogger
}

func NewAuditService(subscriber *pkgNats.Subscriber, log logger.ILogger) IAuditService {
	return &auditService{subscriber: subscriber, log: log}
}

func (s *auditService) Consume() error {
	return s.subscriber.Subscribe("chatbot.events.>", "chatbot-audit", func(ctx context.Context, event events.Event) error {
		s.log.Info("audit", "domain event", map[string]interface{}{
			"type":    event.EventType(),
			"payload": event.Payload(),
		})
		return nil
	})
}
