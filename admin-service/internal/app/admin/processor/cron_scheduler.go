package processor

import (
	"context"
	"time"

	"beautyadmin/pkg/logger"
	"beautyadmin/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// CouponExpirer снимает активность с купонов, срок которых истёк к моменту now
type CouponExpirer interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int, error)
}

type CronScheduler struct {
	cron    *cron.Cron
	coupons CouponExpirer
	now     func() time.Time
}

func NewCronScheduler(coupons CouponExpirer) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(cronLogger{})))

	return &CronScheduler{
		cron:    c,
		coupons: coupons,
		now:     time.Now,
	}
}

// Start регистрирует задачу по расписанию и сразу выполняет её один раз
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Debug().Msg("Cron job triggered: deactivating expired coupons")
		s.expireCoupons(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Cron scheduler started")

	s.expireCoupons(ctx)
	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}

func (s *CronScheduler) expireCoupons(ctx context.Context) {
	count, err := s.coupons.DeactivateExpired(ctx, s.now())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to deactivate expired coupons")
		return
	}

	metrics.CouponsExpired.Add(float64(count))
	if count > 0 {
		logger.Info().Int("count", count).Msg("Expired coupons deactivated")
	}
}

// cronLogger направляет сообщения robfig/cron в общий zerolog
type cronLogger struct{}

func (cronLogger) Printf(format string, args ...interface{}) {
	logger.Printf(format, args...)
}
