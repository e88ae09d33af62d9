// Package scheduler provides scheduler management using gocron v2.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/visitra-hq/visitra/internal/shared/biztime"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages the scheduled maintenance jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// It initializes gocron with the business timezone for cron expressions.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterAutoCloseJob registers the daily sweep that closes resolved
// complaints whose grace window has lapsed. The job runs once a day at the
// given hour in the business timezone.
func (m *SchedulerManager) RegisterAutoCloseJob(autoCloseJob BatchJob, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("auto-close hour must be between 0 and 23, got %d", hour)
	}

	_, err := m.scheduler.NewJob(
		gocron.CronJob(fmt.Sprintf("0 %d * * *", hour), false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.processAutoClose(ctx, autoCloseJob)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("ticket", "auto-close"),
		gocron.WithName("ticket-auto-close"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered auto-close job", "hour", hour)
	return nil
}

func (m *SchedulerManager) processAutoClose(ctx context.Context, autoCloseJob BatchJob) {
	m.logger.Debugw("auto-close sweep started")

	startTime := biztime.NowUTC()

	closedCount, err := autoCloseJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("auto-close sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if closedCount > 0 {
		m.logger.Infow("auto-close sweep completed",
			"count", closedCount,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no tickets to auto-close",
			"duration", time.Since(startTime),
		)
	}
}

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	// Shutdown scheduler and wait for running jobs
	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}
