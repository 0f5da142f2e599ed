package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/models"
)

type ScheduledPostRepository interface {
	Create(ctx context.Context, post *models.ScheduledPost) (int64, error)
	ListOrderedByTime(ctx context.Context) ([]*models.ScheduledPost, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error)
	MarkPosted(ctx context.Context, id int64) error
	Remove(ctx context.Context, id int64) (bool, error)
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

func (r *scheduledPostRepository) Create(ctx context.Context, post *models.ScheduledPost) (int64, error) {
	query := `
		INSERT INTO scheduled_posts (platform, caption, scheduled_time, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, post.Platform, post.Caption, post.ScheduledTime, models.PostStatusPending).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, apperror.Storage(err)
	}

	return id, nil
}

func (r *scheduledPostRepository) ListOrderedByTime(ctx context.Context) ([]*models.ScheduledPost, error) {
	query := `
		SELECT id, platform, caption, scheduled_time, status, created_at
		FROM scheduled_posts
		ORDER BY scheduled_time
	`
	return r.list(ctx, query)
}

// ListDue selects pending posts whose time has arrived. The comparison is
// inclusive: a post scheduled exactly at now is due.
func (r *scheduledPostRepository) ListDue(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error) {
	query := `
		SELECT id, platform, caption, scheduled_time, status, created_at
		FROM scheduled_posts
		WHERE status = $1 AND scheduled_time <= $2
		ORDER BY scheduled_time
	`
	return r.list(ctx, query, models.PostStatusPending, now)
}

func (r *scheduledPostRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.ScheduledPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, apperror.Storage(err)
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		var post models.ScheduledPost
		err := rows.Scan(&post.ID, &post.Platform, &post.Caption, &post.ScheduledTime, &post.Status, &post.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, apperror.Storage(err)
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, apperror.Storage(err)
	}

	return posts, nil
}

// MarkPosted flips pending to posted. The status guard keeps the transition
// one-way: posted and cancelled rows are never touched.
func (r *scheduledPostRepository) MarkPosted(ctx context.Context, id int64) error {
	query := `UPDATE scheduled_posts SET status = $1 WHERE id = $2 AND status = $3`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPosted, id, models.PostStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return apperror.Storage(err)
	}
	return nil
}

func (r *scheduledPostRepository) Remove(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM scheduled_posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return false, apperror.Storage(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, apperror.Storage(err)
	}

	return affected > 0, nil
}
