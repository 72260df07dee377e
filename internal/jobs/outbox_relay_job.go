package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes pending outbox messages on a schedule.
// A run drains full batches until the outbox is empty.
type OutboxRelayJob struct {
	handler  OutboxRelayer
	schedule string
	cmd      commands.RelayOutboxCommand
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOutboxRelayJob(
	handler OutboxRelayer,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}
	return &OutboxRelayJob{
		handler:  handler,
		schedule: schedule,
		cmd:      cmd,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}, nil
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run relays until a batch comes back short or a relay fails.
func (j *OutboxRelayJob) Run(ctx context.Context) int {
	total := 0
	for {
		published, err := j.handler.Handle(ctx, j.cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err, "published", total)
			return total
		}
		total += published
		if published < j.cmd.BatchSize() {
			if total > 0 {
				j.logger.DebugContext(ctx, "Outbox relayed", "published", total)
			}
			return total
		}
	}
}

func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
