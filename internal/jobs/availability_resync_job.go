package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultResyncSchedule rebroadcasts every 30 seconds.
const DefaultResyncSchedule = "*/30 * * * * *"

// Refresher recounts available orders and broadcasts the result.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// AvailabilityResyncJob rebroadcasts the available-order count on a schedule
// so riders that missed a fan-out converge on the live figure.
type AvailabilityResyncJob struct {
	refresher Refresher
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewAvailabilityResyncJob creates the job. schedule uses the six-field cron
// format with seconds; an empty schedule uses DefaultResyncSchedule.
func NewAvailabilityResyncJob(refresher Refresher, schedule string, timeout time.Duration, logger *slog.Logger) *AvailabilityResyncJob {
	if schedule == "" {
		schedule = DefaultResyncSchedule
	}
	return &AvailabilityResyncJob{
		refresher: refresher,
		schedule:  schedule,
		timeout:   timeout,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "availability_resync_job"),
	}
}

// Start schedules the job. It returns an error for an invalid schedule.
func (j *AvailabilityResyncJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Availability resync job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running resync to finish.
func (j *AvailabilityResyncJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Availability resync job stopped")
}

func (j *AvailabilityResyncJob) run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	if err := j.refresher.Refresh(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Availability resync failed", "error", err)
	}
}
