// Package jobs runs scheduled background tasks on github.com/robfig/cron/v3.
//
// LoadAuditJob compares every delivery agent's load counter with the
// orders it actually holds, on LOAD_AUDIT_SCHEDULE (default "@every 30s").
// It only reports: mismatches are logged and exported as the
// fooddelivery_agent_load_mismatches gauge, and counters are never repaired.
//
// Jobs are started and stopped through JobManager:
//
//	manager := jobs.NewJobManager(logger, jobs.NewLoadAuditJob(auditHandler, schedule, logger))
//	if err := manager.StartAll(ctx); err != nil {
//		return err
//	}
//	defer manager.StopAll()
package jobs
