package scheduler

//go:generate go run go.uber.org/mock/mockgen -source=./scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks

import (
	"bookingpay/config"
	"bookingpay/infras/otel"
	"bookingpay/shared/constant"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is one run of a recurring task. The context is cancelled when the run
// exceeds the configured timeout.
type Job func(ctx context.Context) error

// Scheduler triggers registered jobs on cron expressions evaluated in UTC.
type Scheduler interface {
	Register(name, spec string, job Job) error
	Start()
	Stop(ctx context.Context)
}

type schedulerImpl struct {
	cron      *cron.Cron
	otel      otel.Otel
	timeout   time.Duration
	startOnce sync.Once
	stopOnce  sync.Once
}

func New(cfg *config.Config, otl otel.Otel) Scheduler {
	timeout := time.Duration(cfg.Jobs.RunTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	return &schedulerImpl{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		otel:    otl,
		timeout: timeout,
	}
}

func (s *schedulerImpl) Register(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	log.Info().Str("job", name).Str("spec", spec).Msg("Job registered")

	return nil
}

// Start is safe to call more than once; only the first call starts the cron loop.
func (s *schedulerImpl) Start() {
	s.startOnce.Do(func() {
		s.cron.Start()

		log.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
	})
}

// Stop waits for running jobs to finish or for ctx to expire.
func (s *schedulerImpl) Stop(ctx context.Context) {
	s.stopOnce.Do(func() {
		done := s.cron.Stop().Done()

		select {
		case <-done:
			log.Info().Msg("Scheduler stopped")
		case <-ctx.Done():
			log.Warn().Msg("Scheduler stop timed out with jobs still running")
		}
	})
}

func (s *schedulerImpl) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+"."+name)
	defer scope.End()

	defer func() {
		if p := recover(); p != nil {
			log.Error().Str("job", name).Interface("panic", p).Msg("Job panicked")
		}
	}()

	started := time.Now()

	log.Info().Str("job", name).Msg("Job started")

	if err := job(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("job", name).Dur("elapsed", time.Since(started)).Msg("Job failed")

		return
	}

	log.Info().Str("job", name).Dur("elapsed", time.Since(started)).Msg("Job finished")
}
