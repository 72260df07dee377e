package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	relay   *OutboxRelayJob
	cleanup *OutboxCleanupJob
}

func NewJobManager(relay *OutboxRelayJob, cleanup *OutboxCleanupJob) *JobManager {
	return &JobManager{
		relay:   relay,
		cleanup: cleanup,
	}
}

// StartAll starts all scheduled jobs. When one fails to start, the ones already
// running are stopped.
func (jm *JobManager) StartAll() error {
	all := []struct {
		name string
		job  job
	}{
		{"outbox relay", jm.relay},
		{"outbox cleanup", jm.cleanup},
	}

	started := make([]job, 0, len(all))
	for _, j := range all {
		if err := j.job.Start(); err != nil {
			for _, s := range started {
				s.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		started = append(started, j.job)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.relay.Stop()
	jm.cleanup.Stop()
}
