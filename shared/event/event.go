package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"bookingpay/config"
	"bookingpay/infras/kafka"
	"bookingpay/shared/timezone"
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	PaymentStatusChanged = "payment.status_changed"
	PaymentOverdue       = "payment.overdue"
	InvoiceCreated       = "invoice.created"
)

// Envelope is the JSON value written to the payment topic.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher emits domain events after the ledger has committed. Delivery is
// best-effort: failures are logged and never reach the caller.
type Publisher interface {
	Publish(ctx context.Context, key, eventType string, data any)
}

type publisherImpl struct {
	client kafka.Client
	topic  string
}

func NewPublisher(client kafka.Client, cfg *config.Config) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.PaymentTopic,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, key, eventType string, data any) {
	msg := kafka.Message{
		Key: key,
		Value: Envelope{
			Type:       eventType,
			OccurredAt: timezone.Now(),
			Data:       data,
		},
	}

	if err := p.client.SendMessages(ctx, p.topic, msg); err != nil {
		log.Warn().Err(err).Str("event", eventType).Str("key", key).Msg("failed to publish event")
	}
}
