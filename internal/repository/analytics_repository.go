package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/models"
)

// AnalyticsRepository is append-only: snapshots are never updated or deleted.
type AnalyticsRepository interface {
	Create(ctx context.Context, snap *models.AnalyticsSnapshot) (int64, error)
	Latest(ctx context.Context, platform string) (*models.AnalyticsSnapshot, error)
	History(ctx context.Context, platform string, since time.Time) ([]*models.AnalyticsSnapshot, error)
}

type analyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

const analyticsColumns = `id, platform, account_id, followers, views, likes, comments, impressions, reach, watch_time, raw, timestamp`

func (r *analyticsRepository) Create(ctx context.Context, snap *models.AnalyticsSnapshot) (int64, error) {
	query := `
		INSERT INTO analytics_snapshots (platform, account_id, followers, views, likes, comments, impressions, reach, watch_time, raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		snap.Platform,
		snap.AccountID,
		snap.Followers,
		snap.Views,
		snap.Likes,
		snap.Comments,
		snap.Impressions,
		snap.Reach,
		snap.WatchTime,
		nullableJSON(snap.Raw),
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, apperror.Storage(err)
	}

	return id, nil
}

func (r *analyticsRepository) Latest(ctx context.Context, platform string) (*models.AnalyticsSnapshot, error) {
	query := `
		SELECT ` + analyticsColumns + `
		FROM analytics_snapshots
		WHERE platform = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, platform)

	snap, err := scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, apperror.Storage(err)
	}

	return snap, nil
}

func (r *analyticsRepository) History(ctx context.Context, platform string, since time.Time) ([]*models.AnalyticsSnapshot, error) {
	query := `
		SELECT ` + analyticsColumns + `
		FROM analytics_snapshots
		WHERE platform = $1 AND timestamp >= $2
		ORDER BY timestamp
	`
	rows, err := r.db.QueryContext(ctx, query, platform, since)
	if err != nil {
		slog.Info(err.Error())
		return nil, apperror.Storage(err)
	}
	defer rows.Close()

	var snaps []*models.AnalyticsSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, apperror.Storage(err)
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, apperror.Storage(err)
	}

	return snaps, nil
}

func scanSnapshot(row rowScanner) (*models.AnalyticsSnapshot, error) {
	var snap models.AnalyticsSnapshot
	err := row.Scan(&snap.ID, &snap.Platform, &snap.AccountID,
		&snap.Followers, &snap.Views, &snap.Likes, &snap.Comments,
		&snap.Impressions, &snap.Reach, &snap.WatchTime,
		&snap.Raw, &snap.Timestamp)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
