package app

import (
	"context"
	"time"

	pkgcron "github.com/mx-space/formcraft/internal/pkg/cron"
	"go.uber.org/zap"
)

const pruneSessionsJob = "prune-sessions"

func (a *App) registerCronJobs() {
	a.sched.Register(pkgcron.Job{
		Name:     pruneSessionsJob,
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			expired := a.sessions.Prune()
			editors := a.editors.Retain(a.sessions.Live)
			if expired > 0 || editors > 0 {
				a.logger.Info("pruned sessions",
					zap.Int("sessions", expired),
					zap.Int("editors", editors))
			}
			return ctx.Err()
		},
	})
}
