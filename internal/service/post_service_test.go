package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/models"
	"github.com/vidreacher/vidreacher-api/internal/transfer"
)

func TestSchedulePost(t *testing.T) {
	repo := newFakeScheduledPostRepo()
	svc := NewPostService(repo)

	id, err := svc.Schedule(context.Background(), &transfer.SchedulePostRequest{
		Platform:      models.PlatformInstagram,
		Caption:       "launch day",
		ScheduledTime: "2026-09-01T14:30:00Z",
	})
	require.NoError(t, err)

	post := repo.posts[id]
	require.NotNil(t, post)
	assert.Equal(t, models.PostStatusPending, post.Status)
	assert.Equal(t, time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC), post.ScheduledTime)
}

func TestSchedulePostInvalidTime(t *testing.T) {
	svc := NewPostService(newFakeScheduledPostRepo())
	_, err := svc.Schedule(context.Background(), &transfer.SchedulePostRequest{
		Platform:      models.PlatformInstagram,
		Caption:       "launch day",
		ScheduledTime: "tomorrow at noon",
	})
	assert.Error(t, err)
}

func TestRemovePost(t *testing.T) {
	repo := newFakeScheduledPostRepo()
	id, err := repo.Create(context.Background(), &models.ScheduledPost{
		Platform:      models.PlatformYoutube,
		Caption:       "teaser",
		ScheduledTime: time.Now().UTC(),
	})
	require.NoError(t, err)

	svc := NewPostService(repo)
	require.NoError(t, svc.Remove(context.Background(), id))

	err = svc.Remove(context.Background(), id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
