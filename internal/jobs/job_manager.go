package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// Job is a scheduled task owned by JobManager.
type Job interface {
	Name() string
	Start(ctx context.Context) error
	Stop()
}

// JobManager starts and stops a set of jobs together.
type JobManager struct {
	jobs   []Job
	logger *slog.Logger
}

func NewJobManager(logger *slog.Logger, jobs ...Job) *JobManager {
	return &JobManager{
		jobs:   jobs,
		logger: logger.With("component", "job_manager"),
	}
}

// StartAll starts the jobs in order. If one fails, the ones already
// started are stopped again.
func (jm *JobManager) StartAll(ctx context.Context) error {
	for i, job := range jm.jobs {
		if err := job.Start(ctx); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s: %w", job.Name(), err)
		}
	}
	jm.logger.InfoContext(ctx, "jobs started", "count", len(jm.jobs))
	return nil
}

// StopAll stops the jobs and waits for running executions to finish.
func (jm *JobManager) StopAll() {
	for _, job := range jm.jobs {
		job.Stop()
	}
}
