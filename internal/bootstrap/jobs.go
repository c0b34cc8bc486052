package bootstrap

import (
	"github.com/osse101/GameVault_Go/internal/activity"
	"github.com/osse101/GameVault_Go/internal/ban"
	"github.com/osse101/GameVault_Go/internal/config"
	"github.com/osse101/GameVault_Go/internal/scheduler"
	"github.com/osse101/GameVault_Go/internal/session"
	"github.com/osse101/GameVault_Go/internal/vehicle"
)

// ScheduleJobs registers the periodic work: player autosave and play time,
// vehicle autosave, and the hourly maintenance jobs.
func ScheduleJobs(cfg *config.Config, sched *scheduler.Scheduler, svcs *Services) {
	sched.Schedule(cfg.AutosaveInterval, session.NewAutosaveJob(svcs.Sessions))
	sched.Schedule(cfg.PlaytimeInterval, session.NewPlaytimeJob(svcs.Sessions))
	sched.Schedule(cfg.VehicleAutosaveInterval, vehicle.NewAutosaveJob(svcs.Vehicle))
	sched.Schedule(cfg.MaintenanceInterval, activity.NewCleanupJob(svcs.Activity, cfg.ActivityRetentionDays))
	sched.Schedule(cfg.MaintenanceInterval, ban.NewSweepJob(svcs.Ban))
}
