package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	config "github.com/vidreacher/vidreacher-api/configs"
	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/models"
	"github.com/vidreacher/vidreacher-api/internal/platform"
	"github.com/vidreacher/vidreacher-api/internal/repository"
	"github.com/vidreacher/vidreacher-api/pkg/utils"
)

var (
	ErrNotRefreshable = errors.New("only youtube accounts can refresh token")
	ErrNoRefreshToken = errors.New("no refresh token available")
)

// GoogleAPI is what the YouTube linking flow needs from the Google adapter.
type GoogleAPI interface {
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	FetchChannel(ctx context.Context, accessToken string) *platform.Channel
}

type YoutubeService interface {
	Callback(ctx context.Context, code string) (int64, error)
	RefreshToken(ctx context.Context, accountID int64) error
}

type youtubeService struct {
	cfg config.Config
	api GoogleAPI
	sa  repository.SocialAccountRepository
}

func NewYoutubeService(cfg config.Config, api GoogleAPI, sa repository.SocialAccountRepository) YoutubeService {
	return &youtubeService{
		cfg: cfg,
		api: api,
		sa:  sa,
	}
}

// Callback exchanges the code and persists exactly one youtube account.
// Channel resolution is best-effort: linking completes with account id
// "unknown" when the lookup fails.
func (s *youtubeService) Callback(ctx context.Context, code string) (int64, error) {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return 0, err
	}

	token, err := s.api.ExchangeCode(ctx, code)
	if err != nil {
		return 0, err
	}

	accountID := "unknown"
	var metaData []byte
	if channel := s.api.FetchChannel(ctx, token.AccessToken); channel != nil {
		accountID = channel.ID
		metaData = channel.Raw
	}

	encryptedAccess, err := utils.EncryptToken(token.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return 0, err
	}

	var encryptedRefresh string
	if token.RefreshToken != "" {
		encryptedRefresh, err = utils.EncryptToken(token.RefreshToken, []byte(s.cfg.SecretKey))
		if err != nil {
			return 0, err
		}
	}

	var expiresAt *time.Time
	if !token.Expiry.IsZero() {
		t := token.Expiry
		expiresAt = &t
	}

	return s.sa.Create(ctx, &models.SocialAccount{
		Platform:       models.PlatformYoutube,
		AccountID:      accountID,
		AccessToken:    encryptedAccess,
		RefreshToken:   encryptedRefresh,
		TokenExpiresAt: expiresAt,
		MetaData:       metaData,
	})
}

// RefreshToken forces a refresh for a stored youtube account and rewrites
// its access token and expiry in place.
func (s *youtubeService) RefreshToken(ctx context.Context, accountID int64) error {
	account, err := s.sa.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return apperror.NotFound("social account", accountID)
	}

	if account.Platform != models.PlatformYoutube {
		return ErrNotRefreshable
	}
	if account.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	refreshToken, err := utils.DecryptToken(account.RefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	token, err := s.api.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	encryptedAccess, err := utils.EncryptToken(token.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	var expiresAt *time.Time
	if !token.Expiry.IsZero() {
		t := token.Expiry
		expiresAt = &t
	}

	return s.sa.SetToken(ctx, account.ID, encryptedAccess, expiresAt)
}
