package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type OutboxPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeOutboxCommand) (int64, error)
}

// OutboxCleanupJob deletes published outbox messages past their retention.
type OutboxCleanupJob struct {
	handler  OutboxPurger
	schedule string
	cmd      commands.PurgeOutboxCommand
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOutboxCleanupJob(
	handler OutboxPurger,
	schedule string,
	retentionDays int,
	logger *slog.Logger,
) (*OutboxCleanupJob, error) {
	cmd, err := commands.NewPurgeOutboxCommand(retentionDays)
	if err != nil {
		return nil, err
	}
	return &OutboxCleanupJob{
		handler:  handler,
		schedule: schedule,
		cmd:      cmd,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "outbox_cleanup_job"),
	}, nil
}

func (j *OutboxCleanupJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox cleanup job started", "schedule", j.schedule)
	return nil
}

func (j *OutboxCleanupJob) Run(ctx context.Context) {
	deleted, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox cleanup failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Outbox cleaned up", "deleted", deleted)
}

func (j *OutboxCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox cleanup job stopped")
}
