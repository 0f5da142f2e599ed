package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/models"
	"github.com/vidreacher/vidreacher-api/internal/repository"
	"github.com/vidreacher/vidreacher-api/internal/transfer"
)

type PostService interface {
	Schedule(ctx context.Context, req *transfer.SchedulePostRequest) (int64, error)
	List(ctx context.Context) ([]*models.ScheduledPost, error)
	Remove(ctx context.Context, id int64) error
}

type postService struct {
	sp repository.ScheduledPostRepository
}

func NewPostService(sp repository.ScheduledPostRepository) PostService {
	return &postService{sp: sp}
}

func (s *postService) Schedule(ctx context.Context, req *transfer.SchedulePostRequest) (int64, error) {
	scheduledTime, err := time.Parse(time.RFC3339, req.ScheduledTime)
	if err != nil {
		return 0, fmt.Errorf("invalid scheduled_time: %w", err)
	}

	post := &models.ScheduledPost{
		Platform:      req.Platform,
		Caption:       req.Caption,
		ScheduledTime: scheduledTime.UTC(),
		Status:        models.PostStatusPending,
	}
	return s.sp.Create(ctx, post)
}

func (s *postService) List(ctx context.Context) ([]*models.ScheduledPost, error) {
	return s.sp.ListOrderedByTime(ctx)
}

func (s *postService) Remove(ctx context.Context, id int64) error {
	deleted, err := s.sp.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("scheduled post", id)
	}
	return nil
}
