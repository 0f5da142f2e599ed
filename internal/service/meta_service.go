package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	config "github.com/vidreacher/vidreacher-api/configs"
	"github.com/vidreacher/vidreacher-api/internal/models"
	"github.com/vidreacher/vidreacher-api/internal/platform"
	"github.com/vidreacher/vidreacher-api/internal/repository"
	"github.com/vidreacher/vidreacher-api/pkg/utils"
)

// MetaAPI is what the Meta linking flow needs from the Graph adapter. Only
// ExchangeCode can fail the flow; everything else is best-effort.
type MetaAPI interface {
	ExchangeCode(ctx context.Context, code string) (*platform.Token, error)
	UpgradeLongLivedToken(ctx context.Context, accessToken string) (string, int64)
	ListManagedPages(ctx context.Context, accessToken string) []platform.Page
	ResolveInstagramBusinessAccount(ctx context.Context, pageID, accessToken string) (string, json.RawMessage)
	FetchProfile(ctx context.Context, accessToken string) *platform.Profile
}

type MetaService interface {
	Callback(ctx context.Context, code string) ([]int64, error)
}

type metaService struct {
	cfg config.Config
	api MetaAPI
	sa  repository.SocialAccountRepository
}

func NewMetaService(cfg config.Config, api MetaAPI, sa repository.SocialAccountRepository) MetaService {
	return &metaService{
		cfg: cfg,
		api: api,
		sa:  sa,
	}
}

// Callback completes the Meta OAuth dance: exchange the code, best-effort
// upgrade to a long-lived token, then persist one account per managed page
// (or a single profile-level facebook account when the user manages none).
// Returns the ids of every row written.
func (s *metaService) Callback(ctx context.Context, code string) ([]int64, error) {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return nil, err
	}

	token, err := s.api.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	longToken, expiresIn := s.api.UpgradeLongLivedToken(ctx, token.AccessToken)

	var expiresAt *time.Time
	if expiresIn > 0 {
		t := time.Now().UTC().Add(time.Duration(expiresIn) * time.Second)
		expiresAt = &t
	}

	encryptedToken, err := utils.EncryptToken(longToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	pages := s.api.ListManagedPages(ctx, longToken)

	if len(pages) == 0 {
		// No managed pages: still link the bare user profile.
		accountID := "unknown"
		if profile := s.api.FetchProfile(ctx, longToken); profile != nil {
			accountID = profile.ID
		}

		metaData, _ := json.Marshal(map[string]interface{}{
			"pages": []interface{}{},
			"me":    accountID,
		})

		id, err := s.sa.Create(ctx, &models.SocialAccount{
			Platform:       models.PlatformFacebook,
			AccountID:      accountID,
			AccessToken:    encryptedToken,
			TokenExpiresAt: expiresAt,
			MetaData:       metaData,
		})
		if err != nil {
			return nil, err
		}

		return []int64{id}, nil
	}

	var savedIDs []int64
	for _, page := range pages {
		igID, pageInfo := s.api.ResolveInstagramBusinessAccount(ctx, page.ID, longToken)

		platformName := models.PlatformFacebook
		accountID := page.ID
		if igID != "" {
			platformName = models.PlatformInstagram
			accountID = igID
		}

		metaData, _ := json.Marshal(map[string]json.RawMessage{
			"page":      page.Raw,
			"page_info": pageInfo,
		})

		id, err := s.sa.Create(ctx, &models.SocialAccount{
			Platform:       platformName,
			AccountID:      accountID,
			AccessToken:    encryptedToken,
			TokenExpiresAt: expiresAt,
			MetaData:       metaData,
		})
		if err != nil {
			// One bad page never blocks the remaining pages.
			slog.Info(err.Error())
			continue
		}

		savedIDs = append(savedIDs, id)
	}

	return savedIDs, nil
}
