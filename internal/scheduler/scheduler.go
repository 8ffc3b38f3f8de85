package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/config"
)

const jobTimeout = 2 * time.Minute

// ArchiveRoller archives the previous milk year and publishes it.
type ArchiveRoller interface {
	Rollover(ctx context.Context) error
}

// DigestBuilder renders the weekly farm digest.
type DigestBuilder interface {
	BuildDigest() string
}

// ManagerNotifier delivers a message to the farm manager.
type ManagerNotifier interface {
	NotifyManager(ctx context.Context, message string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.ScheduleConfig
	archiver ArchiveRoller
	digest   DigestBuilder
	notifier ManagerNotifier
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. notifier may be nil, in
// which case the digest job is not registered.
func NewScheduler(cfg config.ScheduleConfig, loc *time.Location, archiver ArchiveRoller, digest DigestBuilder, notifier ManagerNotifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		cfg:      cfg,
		archiver: archiver,
		digest:   digest,
		notifier: notifier,
		logger:   logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.ArchiveCron, s.runArchive); err != nil {
		return fmt.Errorf("schedule archive rollover: %w", err)
	}

	if s.notifier != nil {
		if _, err := s.cron.AddFunc(s.cfg.DigestCron, s.sendDigest); err != nil {
			return fmt.Errorf("schedule weekly digest: %w", err)
		}
	} else {
		s.logger.Info("whatsapp not configured, weekly digest disabled")
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runArchive() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.archiver.Rollover(ctx); err != nil {
		s.logger.Error("archive rollover failed", zap.Error(err))
		return
	}
	s.logger.Debug("archive rollover completed")
}

func (s *Scheduler) sendDigest() {
	s.logger.Info("generating weekly digest")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.notifier.NotifyManager(ctx, s.digest.BuildDigest()); err != nil {
		s.logger.Error("failed to send weekly digest", zap.Error(err))
		return
	}
	s.logger.Info("weekly digest sent successfully")
}
