package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vidreacher/vidreacher-api/internal/repository"
)

// PostCheckerJob sweeps pending posts whose scheduled time has passed and
// marks them posted.
type PostCheckerJob struct {
	sp repository.ScheduledPostRepository
}

func NewPostCheckerJob(sp repository.ScheduledPostRepository) *PostCheckerJob {
	return &PostCheckerJob{sp: sp}
}

// Run satisfies cron.Job.
func (j *PostCheckerJob) Run() {
	j.Tick(context.Background(), time.Now().UTC())
}

// Tick advances every due post and returns how many were advanced. A failed
// update is logged and skipped so the rest of the batch still goes out.
func (j *PostCheckerJob) Tick(ctx context.Context, now time.Time) int {
	due, err := j.sp.ListDue(ctx, now)
	if err != nil {
		slog.Info(err.Error())
		return 0
	}

	advanced := 0
	for _, post := range due {
		if err := j.sp.MarkPosted(ctx, post.ID); err != nil {
			slog.Info(fmt.Sprintf("failed to mark post %d posted: %v", post.ID, err))
			continue
		}
		advanced++
		slog.Info(fmt.Sprintf("posted to %s: %s", post.Platform, snippet(post.Caption, 50)))
	}
	return advanced
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
