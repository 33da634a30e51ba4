package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
)

const (
	HoldSweepSchedule    = "@every 15m"
	SessionSweepSchedule = "@every 5m"
)

type HoldReleaser interface {
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
}

type SessionSweeper interface {
	Sweep(idle time.Duration) int
}

// Scheduler runs the periodic maintenance jobs: releasing expired
// inventory holds and evicting idle sessions from memory.
type Scheduler struct {
	cron        *cron.Cron
	holds       HoldReleaser
	sessions    SessionSweeper
	sessionIdle time.Duration
	jobTimeout  time.Duration
	now         func() time.Time
	log         *logrus.Entry
}

// NewScheduler registers the jobs. A nil holds or sessions skips that job.
func NewScheduler(holds HoldReleaser, sessions SessionSweeper, sessionIdle time.Duration, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:        cron.New(),
		holds:       holds,
		sessions:    sessions,
		sessionIdle: sessionIdle,
		jobTimeout:  2 * time.Minute,
		now:         time.Now,
		log:         log.WithField("component", "scheduler"),
	}
	if holds != nil {
		if _, err := s.cron.AddFunc(HoldSweepSchedule, func() { s.runJob("hold_sweep", s.releaseHolds) }); err != nil {
			return nil, err
		}
	}
	if sessions != nil {
		if _, err := s.cron.AddFunc(SessionSweepSchedule, func() { s.runJob("session_sweep", s.sweepSessions) }); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("jobs", len(s.cron.Entries())).Info("⏰ Scheduler started")
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("[scheduler] stop timed out with jobs still running")
	}
}

func (s *Scheduler) runJob(name string, job func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	start := time.Now()
	err := job(ctx)
	metrics.RecordJobRun(name, err == nil)

	entry := s.log.WithFields(logrus.Fields{"job": name, "duration": time.Since(start).String()})
	if err != nil {
		entry.WithError(err).Error("[scheduler] job failed")
		return
	}
	entry.Debug("[scheduler] job finished")
}

func (s *Scheduler) releaseHolds(ctx context.Context) error {
	n, err := s.holds.ReleaseExpired(ctx, s.now())
	if n > 0 {
		s.log.WithField("released", n).Info("[scheduler] expired holds released")
	}
	return err
}

func (s *Scheduler) sweepSessions(context.Context) error {
	if n := s.sessions.Sweep(s.sessionIdle); n > 0 {
		s.log.WithField("evicted", n).Info("[scheduler] idle sessions evicted")
	}
	return nil
}
