package jobs

import (
	"context"
	"log/slog"

	"github.com/vidreacher/vidreacher-api/internal/service"
)

// AnalyticsJob runs the daily snapshot collection.
type AnalyticsJob struct {
	as service.AnalyticsService
}

func NewAnalyticsJob(as service.AnalyticsService) *AnalyticsJob {
	return &AnalyticsJob{as: as}
}

// Run satisfies cron.Job.
func (j *AnalyticsJob) Run() {
	slog.Info("starting daily analytics collection")
	if err := j.as.CollectAll(context.Background()); err != nil {
		slog.Info(err.Error())
		return
	}
	slog.Info("daily analytics collection finished")
}
