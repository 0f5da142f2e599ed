package service

import (
	"context"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/models"
	"github.com/vidreacher/vidreacher-api/internal/repository"
)

// AuthURLBuilder builds a provider authorization URL for a state token.
type AuthURLBuilder interface {
	AuthURL(state string) string
}

type PlatformService interface {
	AuthURL(platformName, state string) string
	List(ctx context.Context) ([]*models.SocialAccount, error)
	Disconnect(ctx context.Context, id int64) error
}

type platformService struct {
	meta   AuthURLBuilder
	google AuthURLBuilder
	sa     repository.SocialAccountRepository
}

func NewPlatformService(meta, google AuthURLBuilder, sa repository.SocialAccountRepository) PlatformService {
	return &platformService{
		meta:   meta,
		google: google,
		sa:     sa,
	}
}

func (s *platformService) AuthURL(platformName, state string) string {
	switch platformName {
	case "meta":
		return s.meta.AuthURL(state)
	case "google":
		return s.google.AuthURL(state)
	default:
		return ""
	}
}

func (s *platformService) List(ctx context.Context) ([]*models.SocialAccount, error) {
	return s.sa.ListAll(ctx)
}

func (s *platformService) Disconnect(ctx context.Context, id int64) error {
	deleted, err := s.sa.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("social account", id)
	}
	return nil
}
