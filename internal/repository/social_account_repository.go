package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/models"
)

type SocialAccountRepository interface {
	Create(ctx context.Context, sa *models.SocialAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SocialAccount, error)
	ListAll(ctx context.Context) ([]*models.SocialAccount, error)
	ListByPlatform(ctx context.Context, platform string) ([]*models.SocialAccount, error)
	SetToken(ctx context.Context, id int64, accessToken string, expiresAt *time.Time) error
	Remove(ctx context.Context, id int64) (bool, error)
}

type socialAccountRepository struct {
	db *sql.DB
}

func NewSocialAccountRepository(db *sql.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

const socialAccountColumns = `id, platform, account_id, access_token, refresh_token, token_expires_at, meta_data, created_at`

func (r *socialAccountRepository) Create(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	query := `
		INSERT INTO social_accounts (platform, account_id, access_token, refresh_token, token_expires_at, meta_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	refreshToken := sql.NullString{String: sa.RefreshToken, Valid: sa.RefreshToken != ""}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		sa.Platform,
		sa.AccountID,
		sa.AccessToken,
		refreshToken,
		sa.TokenExpiresAt,
		nullableJSON(sa.MetaData),
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, apperror.Storage(err)
	}

	return id, nil
}

func (r *socialAccountRepository) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + ` FROM social_accounts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	sa, err := scanSocialAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, apperror.Storage(err)
	}

	return sa, nil
}

func (r *socialAccountRepository) ListAll(ctx context.Context) ([]*models.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + ` FROM social_accounts ORDER BY id`
	return r.list(ctx, query)
}

func (r *socialAccountRepository) ListByPlatform(ctx context.Context, platform string) ([]*models.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + ` FROM social_accounts WHERE platform = $1 ORDER BY id`
	return r.list(ctx, query, platform)
}

func (r *socialAccountRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.SocialAccount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, apperror.Storage(err)
	}
	defer rows.Close()

	var accounts []*models.SocialAccount
	for rows.Next() {
		sa, err := scanSocialAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, apperror.Storage(err)
		}
		accounts = append(accounts, sa)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, apperror.Storage(err)
	}

	return accounts, nil
}

// SetToken is the only mutation: token refresh rewrites the access token and
// expiry, nothing else.
func (r *socialAccountRepository) SetToken(ctx context.Context, id int64, accessToken string, expiresAt *time.Time) error {
	query := `
		UPDATE social_accounts
		SET access_token = $2,
			token_expires_at = COALESCE($3, token_expires_at)
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, accessToken, expiresAt)
	if err != nil {
		slog.Info(err.Error())
		return apperror.Storage(err)
	}
	return nil
}

func (r *socialAccountRepository) Remove(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM social_accounts WHERE id = $1`
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSocialAccount(row rowScanner) (*models.SocialAccount, error) {
	var sa models.SocialAccount
	var refreshToken sql.NullString
	var expiresAt sql.NullTime

	err := row.Scan(&sa.ID, &sa.Platform, &sa.AccountID, &sa.AccessToken,
		&refreshToken, &expiresAt, &sa.MetaData, &sa.CreatedAt)
	if err != nil {
		return nil, err
	}

	sa.RefreshToken = refreshToken.String
	if expiresAt.Valid {
		t := expiresAt.Time
		sa.TokenExpiresAt = &t
	}

	return &sa, nil
}

// nullableJSON keeps empty blobs as SQL NULL instead of invalid empty JSON.
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
