package scheduler_test

import (
	"bookingpay/config"
	"bookingpay/infras/otel/mocks"
	"bookingpay/infras/scheduler"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newScheduler() scheduler.Scheduler {
	cfg := &config.Config{}
	cfg.Jobs.RunTimeoutSeconds = 5

	return scheduler.New(cfg, mocks.NewOtel())
}

func TestRegister(t *testing.T) {
	s := newScheduler()
	noop := func(context.Context) error { return nil }

	assert.NoError(t, s.Register("create_upcoming_invoices", "0 1 * * *", noop))
	assert.NoError(t, s.Register("mark_overdue_payments", "0 2 * * *", noop))
	assert.Error(t, s.Register("broken", "not a cron spec", noop))
}

func TestStartIsIdempotent(t *testing.T) {
	s := newScheduler()

	assert.NotPanics(t, func() {
		s.Start()
		s.Start()
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NotPanics(t, func() {
		s.Stop(ctx)
		s.Stop(ctx)
	})
}
