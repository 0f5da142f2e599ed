package service

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/oauth2"

	"github.com/vidreacher/vidreacher-api/internal/models"
	"github.com/vidreacher/vidreacher-api/internal/platform"
)

// testSecretKey is a 32-byte AES key used across service tests.
const testSecretKey = "0123456789abcdef0123456789abcdef"

type fakeSocialAccountRepo struct {
	accounts map[int64]*models.SocialAccount
	nextID   int64

	createErr      error
	failAccountIDs map[string]bool
}

func newFakeSocialAccountRepo() *fakeSocialAccountRepo {
	return &fakeSocialAccountRepo{accounts: make(map[int64]*models.SocialAccount)}
}

func (f *fakeSocialAccountRepo) Create(_ context.Context, sa *models.SocialAccount) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if f.failAccountIDs[sa.AccountID] {
		return 0, errAccountRejected
	}
	f.nextID++
	stored := *sa
	stored.ID = f.nextID
	f.accounts[f.nextID] = &stored
	return f.nextID, nil
}

func (f *fakeSocialAccountRepo) GetByID(_ context.Context, id int64) (*models.SocialAccount, error) {
	sa, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	result := *sa
	return &result, nil
}

func (f *fakeSocialAccountRepo) ListAll(_ context.Context) ([]*models.SocialAccount, error) {
	var result []*models.SocialAccount
	for id := int64(1); id <= f.nextID; id++ {
		if sa, ok := f.accounts[id]; ok {
			copied := *sa
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeSocialAccountRepo) ListByPlatform(_ context.Context, platformName string) ([]*models.SocialAccount, error) {
	all, _ := f.ListAll(context.Background())
	var result []*models.SocialAccount
	for _, sa := range all {
		if sa.Platform == platformName {
			result = append(result, sa)
		}
	}
	return result, nil
}

func (f *fakeSocialAccountRepo) SetToken(_ context.Context, id int64, accessToken string, expiresAt *time.Time) error {
	sa, ok := f.accounts[id]
	if !ok {
		return nil
	}
	sa.AccessToken = accessToken
	if expiresAt != nil {
		sa.TokenExpiresAt = expiresAt
	}
	return nil
}

func (f *fakeSocialAccountRepo) Remove(_ context.Context, id int64) (bool, error) {
	if _, ok := f.accounts[id]; !ok {
		return false, nil
	}
	delete(f.accounts, id)
	return true, nil
}

type fakeScheduledPostRepo struct {
	posts  map[int64]*models.ScheduledPost
	nextID int64
}

func newFakeScheduledPostRepo() *fakeScheduledPostRepo {
	return &fakeScheduledPostRepo{posts: make(map[int64]*models.ScheduledPost)}
}

func (f *fakeScheduledPostRepo) Create(_ context.Context, post *models.ScheduledPost) (int64, error) {
	f.nextID++
	stored := *post
	stored.ID = f.nextID
	stored.Status = models.PostStatusPending
	f.posts[f.nextID] = &stored
	return f.nextID, nil
}

func (f *fakeScheduledPostRepo) ListOrderedByTime(_ context.Context) ([]*models.ScheduledPost, error) {
	var result []*models.ScheduledPost
	for id := int64(1); id <= f.nextID; id++ {
		if p, ok := f.posts[id]; ok {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeScheduledPostRepo) ListDue(_ context.Context, now time.Time) ([]*models.ScheduledPost, error) {
	var result []*models.ScheduledPost
	for id := int64(1); id <= f.nextID; id++ {
		p, ok := f.posts[id]
		if !ok || p.Status != models.PostStatusPending || p.ScheduledTime.After(now) {
			continue
		}
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeScheduledPostRepo) MarkPosted(_ context.Context, id int64) error {
	if p, ok := f.posts[id]; ok && p.Status == models.PostStatusPending {
		p.Status = models.PostStatusPosted
	}
	return nil
}

func (f *fakeScheduledPostRepo) Remove(_ context.Context, id int64) (bool, error) {
	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

type fakeAnalyticsRepo struct {
	snaps []*models.AnalyticsSnapshot
}

func (f *fakeAnalyticsRepo) Create(_ context.Context, snap *models.AnalyticsSnapshot) (int64, error) {
	stored := *snap
	stored.ID = int64(len(f.snaps) + 1)
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}
	f.snaps = append(f.snaps, &stored)
	return stored.ID, nil
}

func (f *fakeAnalyticsRepo) Latest(_ context.Context, platformName string) (*models.AnalyticsSnapshot, error) {
	var latest *models.AnalyticsSnapshot
	for _, s := range f.snaps {
		if s.Platform != platformName {
			continue
		}
		if latest == nil || s.Timestamp.After(latest.Timestamp) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeAnalyticsRepo) History(_ context.Context, platformName string, since time.Time) ([]*models.AnalyticsSnapshot, error) {
	var result []*models.AnalyticsSnapshot
	for _, s := range f.snaps {
		if s.Platform == platformName && !s.Timestamp.Before(since) {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakeMetaAPI struct {
	token       *platform.Token
	exchangeErr error

	longToken   string
	longExpires int64

	pages    []platform.Page
	igByPage map[string]string
	profile  *platform.Profile
}

func (f *fakeMetaAPI) ExchangeCode(_ context.Context, code string) (*platform.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.token, nil
}

func (f *fakeMetaAPI) UpgradeLongLivedToken(_ context.Context, accessToken string) (string, int64) {
	if f.longToken == "" {
		return accessToken, 0
	}
	return f.longToken, f.longExpires
}

func (f *fakeMetaAPI) ListManagedPages(_ context.Context, _ string) []platform.Page {
	return f.pages
}

func (f *fakeMetaAPI) ResolveInstagramBusinessAccount(_ context.Context, pageID, _ string) (string, json.RawMessage) {
	return f.igByPage[pageID], json.RawMessage(`{"id":"` + pageID + `"}`)
}

func (f *fakeMetaAPI) FetchProfile(_ context.Context, _ string) *platform.Profile {
	return f.profile
}

type fakeGoogleAPI struct {
	token       *oauth2.Token
	exchangeErr error

	refreshed       *oauth2.Token
	refreshErr      error
	gotRefreshToken string

	channel *platform.Channel
}

func (f *fakeGoogleAPI) ExchangeCode(_ context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.token, nil
}

func (f *fakeGoogleAPI) Refresh(_ context.Context, refreshToken string) (*oauth2.Token, error) {
	f.gotRefreshToken = refreshToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshed, nil
}

func (f *fakeGoogleAPI) FetchChannel(_ context.Context, _ string) *platform.Channel {
	return f.channel
}
