package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bookingpay/config"
	"bookingpay/infras/kafka"
	kafkaMocks "bookingpay/infras/kafka/mocks"
	"bookingpay/shared/event"
)

type statusChanged struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

func TestPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.PaymentTopic = "bookingpay.payments"

	client.EXPECT().
		SendMessages(gomock.Any(), "bookingpay.payments", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			assert.Len(t, messages, 1)
			assert.Equal(t, "pay-1", messages[0].Key)

			raw, err := messages[0].ToKafkaMessage()
			assert.NoError(t, err)

			decoded, err := kafka.DecodeMessage[struct {
				Type string        `json:"type"`
				Data statusChanged `json:"data"`
			}](raw)
			assert.NoError(t, err)
			assert.Equal(t, event.PaymentStatusChanged, decoded.Type)
			assert.Equal(t, "complete", decoded.Data.Status)

			return nil
		})

	event.NewPublisher(client, cfg).Publish(context.Background(), "pay-1", event.PaymentStatusChanged, statusChanged{PaymentID: "pay-1", Status: "complete"})
}

func TestPublish_SwallowsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		event.NewPublisher(client, &config.Config{}).Publish(context.Background(), "pay-1", event.PaymentOverdue, nil)
	})
}
