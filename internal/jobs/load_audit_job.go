package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultLoadAuditSchedule is used when no schedule is configured.
const DefaultLoadAuditSchedule = "@every 30s"

type loadAuditor interface {
	Handle(ctx context.Context, query queries.AuditAgentLoadQuery) ([]queries.LoadMismatch, error)
}

// LoadAuditJob periodically checks that every agent's load counter equals
// the number of undelivered orders assigned to it.
type LoadAuditJob struct {
	auditor  loadAuditor
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu  sync.Mutex
	ctx context.Context
}

func NewLoadAuditJob(auditor loadAuditor, schedule string, logger *slog.Logger) *LoadAuditJob {
	if schedule == "" {
		schedule = DefaultLoadAuditSchedule
	}
	return &LoadAuditJob{
		auditor:  auditor,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "load_audit_job"),
	}
}

func (j *LoadAuditJob) Name() string {
	return "load audit job"
}

// Start schedules the audit. Runs observe ctx, so cancelling it aborts an
// audit in flight.
func (j *LoadAuditJob) Start(ctx context.Context) error {
	j.mu.Lock()
	j.ctx = ctx
	j.mu.Unlock()

	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(j.runContext()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Load audit job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running audit to return.
func (j *LoadAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Load audit job stopped")
}

// RunOnce performs a single audit and returns the number of mismatched
// agents, or -1 if the audit could not run.
func (j *LoadAuditJob) RunOnce(ctx context.Context) int {
	mismatches, err := j.auditor.Handle(ctx, queries.NewAuditAgentLoadQuery())
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			j.logger.ErrorContext(ctx, "Load audit failed", "error", err)
		}
		return -1
	}

	metrics.AgentLoadMismatches.Set(float64(len(mismatches)))
	for _, m := range mismatches {
		j.logger.WarnContext(ctx, "Agent load mismatch",
			"agent_id", m.AgentID,
			"name", m.Name,
			"current_load", m.CurrentLoad,
			"held_orders", m.HeldOrders,
		)
	}
	return len(mismatches)
}

func (j *LoadAuditJob) runContext() context.Context {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.ctx == nil {
		return context.Background()
	}
	return j.ctx
}
