package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	config "github.com/vidreacher/vidreacher-api/configs"
	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/models"
	"github.com/vidreacher/vidreacher-api/internal/platform"
	"github.com/vidreacher/vidreacher-api/internal/repository"
	"github.com/vidreacher/vidreacher-api/internal/transfer"
	"github.com/vidreacher/vidreacher-api/pkg/utils"
)

const defaultHistoryDays = 30

type MetaMetricsAPI interface {
	FetchInstagramMetrics(ctx context.Context, accountID, accessToken string) (*platform.NormalizedMetrics, error)
	FetchPageMetrics(ctx context.Context, accountID, accessToken string) (*platform.NormalizedMetrics, error)
}

type GoogleMetricsAPI interface {
	FetchChannelMetrics(ctx context.Context, channelID, accessToken string) (*platform.NormalizedMetrics, error)
}

type AnalyticsService interface {
	CollectAll(ctx context.Context) error
	Latest(ctx context.Context, platformName string) (*models.AnalyticsSnapshot, error)
	History(ctx context.Context, platformName string, days int) ([]*models.AnalyticsSnapshot, error)
	Overview(ctx context.Context) (map[string]*transfer.OverviewEntry, error)
}

type analyticsService struct {
	cfg    config.Config
	meta   MetaMetricsAPI
	google GoogleMetricsAPI
	sa     repository.SocialAccountRepository
	ar     repository.AnalyticsRepository
}

func NewAnalyticsService(
	cfg config.Config,
	meta MetaMetricsAPI,
	google GoogleMetricsAPI,
	sa repository.SocialAccountRepository,
	ar repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{
		cfg:    cfg,
		meta:   meta,
		google: google,
		sa:     sa,
		ar:     ar,
	}
}

// CollectAll appends one snapshot per linked account. Every account is
// isolated: a failed fetch or write is logged and the loop moves on, so one
// bad credential never starves the rest of the batch.
func (s *analyticsService) CollectAll(ctx context.Context) error {
	accounts, err := s.sa.ListAll(ctx)
	if err != nil {
		return err
	}

	for _, account := range accounts {
		token, err := utils.DecryptToken(account.AccessToken, []byte(s.cfg.SecretKey))
		if err != nil {
			slog.Info(fmt.Sprintf("skipping %s account %s: %v", account.Platform, account.AccountID, err))
			continue
		}

		var metrics *platform.NormalizedMetrics
		switch account.Platform {
		case models.PlatformInstagram:
			metrics, err = s.meta.FetchInstagramMetrics(ctx, account.AccountID, token)
		case models.PlatformFacebook:
			metrics, err = s.meta.FetchPageMetrics(ctx, account.AccountID, token)
		case models.PlatformYoutube:
			metrics, err = s.google.FetchChannelMetrics(ctx, account.AccountID, token)
		default:
			continue
		}
		if err != nil {
			slog.Info(fmt.Sprintf("metrics fetch failed for %s account %s: %v", account.Platform, account.AccountID, err))
			continue
		}

		snap := &models.AnalyticsSnapshot{
			Platform:    account.Platform,
			AccountID:   account.AccountID,
			Followers:   metrics.Followers,
			Views:       metrics.Views,
			Impressions: metrics.Impressions,
			Reach:       metrics.Reach,
			Raw:         metrics.Raw,
		}
		if _, err := s.ar.Create(ctx, snap); err != nil {
			slog.Info(fmt.Sprintf("snapshot write failed for %s account %s: %v", account.Platform, account.AccountID, err))
		}
	}

	return nil
}

func (s *analyticsService) Latest(ctx context.Context, platformName string) (*models.AnalyticsSnapshot, error) {
	snap, err := s.ar.Latest(ctx, platformName)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("no metrics for %s: %w", platformName, apperror.ErrNotFound)
	}
	return snap, nil
}

func (s *analyticsService) History(ctx context.Context, platformName string, days int) ([]*models.AnalyticsSnapshot, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.ar.History(ctx, platformName, since)
}

func (s *analyticsService) Overview(ctx context.Context) (map[string]*transfer.OverviewEntry, error) {
	platforms := []string{models.PlatformInstagram, models.PlatformYoutube, models.PlatformFacebook}

	result := make(map[string]*transfer.OverviewEntry, len(platforms))
	for _, p := range platforms {
		snap, err := s.ar.Latest(ctx, p)
		if err != nil {
			return nil, err
		}
		if snap == nil {
			result[p] = nil
			continue
		}
		result[p] = &transfer.OverviewEntry{
			Followers: snap.Followers,
			Views:     snap.Views,
			Timestamp: snap.Timestamp,
		}
	}

	return result, nil
}
