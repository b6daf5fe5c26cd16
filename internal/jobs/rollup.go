package jobs

import (
	"context"
	"time"

	"github.com/portfolio/internal/logging"
	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Roller compacts analytics rows recorded before the given instant.
type Roller interface {
	Rollup(ctx context.Context, before time.Time) (int64, error)
}

// Scheduler 定时把超出保留期的访问记录折叠成每页一条汇总。
type Scheduler struct {
	cron      *cron.Cron
	roller    Roller
	retention time.Duration
	timeout   time.Duration
	logger    *logrus.Logger
	now       func() time.Time
}

// NewScheduler registers the rollup job on the given cron spec (standard five fields or descriptors like @daily).
func NewScheduler(spec string, retention time.Duration, roller Roller, logger *logrus.Logger) (*Scheduler, error) {
	if roller == nil {
		return nil, eris.New("rollup scheduler requires an analytics service")
	}
	if retention <= 0 {
		return nil, eris.New("rollup retention must be positive")
	}

	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		roller:    roller,
		retention: retention,
		timeout:   5 * time.Minute,
		logger:    logging.OrDiscard(logger),
		now:       time.Now,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, eris.Wrapf(err, "invalid rollup schedule %q", spec)
	}
	return s, nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.WithField("entries", len(s.cron.Entries())).Info("analytics rollup scheduler started")
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("analytics rollup still running at shutdown")
	}
}

// RunOnce performs a single rollup using the configured retention window.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	compacted, err := s.roller.Rollup(ctx, cutoff)
	if err != nil {
		return 0, eris.Wrap(err, "analytics rollup failed")
	}
	return compacted, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	compacted, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.WithError(err).Error("analytics rollup job failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"compacted_rows": compacted,
		"duration_ms":    time.Since(start).Milliseconds(),
	}).Info("analytics rollup job finished")
}
