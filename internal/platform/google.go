package platform

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"

	config "github.com/vidreacher/vidreacher-api/configs"
	"github.com/vidreacher/vidreacher-api/internal/apperror"
)

// GoogleClient covers the Google side: OAuth code exchange and refresh via
// golang.org/x/oauth2, channel lookups and statistics via the YouTube Data
// API.
type GoogleClient struct {
	conf *oauth2.Config

	// apiOpts lets tests point the YouTube service at a local server.
	apiOpts []option.ClientOption
}

func NewGoogleClient(cfg config.Config) *GoogleClient {
	return &GoogleClient{
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthRedirectBase + "/oauth/google/callback",
			Scopes: []string{
				"https://www.googleapis.com/auth/youtube.readonly",
				"https://www.googleapis.com/auth/yt-analytics.readonly",
				"openid", "email", "profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (c *GoogleClient) AuthURL(state string) string {
	return c.conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// ExchangeCode trades an authorization code for tokens. Required: failures
// carry the provider's response for the caller to surface.
func (c *GoogleClient) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, googleProviderError(err)
	}
	return tok, nil
}

// Refresh obtains a fresh access token from a stored refresh token.
func (c *GoogleClient) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := c.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := source.Token()
	if err != nil {
		return nil, googleProviderError(err)
	}
	return tok, nil
}

// FetchChannel resolves the user's own channel. Best-effort nil: linking
// still completes with an "unknown" account id.
func (c *GoogleClient) FetchChannel(ctx context.Context, accessToken string) *Channel {
	svc, err := c.youtubeService(ctx, accessToken)
	if err != nil {
		slog.Info(err.Error())
		return nil
	}

	resp, err := svc.Channels.List([]string{"id", "snippet"}).Mine(true).Context(ctx).Do()
	if err != nil {
		slog.Info(err.Error())
		return nil
	}
	if len(resp.Items) == 0 {
		return nil
	}

	raw, _ := json.Marshal(resp)
	return &Channel{ID: resp.Items[0].Id, Raw: raw}
}

// FetchChannelMetrics reads subscriber and view counts from channel
// statistics. A hidden subscriber count stays absent rather than zero.
func (c *GoogleClient) FetchChannelMetrics(ctx context.Context, channelID, accessToken string) (*NormalizedMetrics, error) {
	svc, err := c.youtubeService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Channels.List([]string{"statistics"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, googleProviderError(err)
	}

	metrics := &NormalizedMetrics{}
	if raw, err := json.Marshal(resp); err == nil {
		metrics.Raw = raw
	}

	if len(resp.Items) > 0 && resp.Items[0].Statistics != nil {
		stats := resp.Items[0].Statistics
		if !stats.HiddenSubscriberCount {
			subscribers := int64(stats.SubscriberCount)
			metrics.Followers = &subscribers
		}
		views := int64(stats.ViewCount)
		metrics.Views = &views
	}

	return metrics, nil
}

func (c *GoogleClient) youtubeService(ctx context.Context, accessToken string) (*youtube.Service, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	client.Timeout = 15 * time.Second

	opts := append([]option.ClientOption{option.WithHTTPClient(client)}, c.apiOpts...)
	return youtube.NewService(ctx, opts...)
}

func googleProviderError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return &apperror.ProviderError{Status: status, Body: string(retrieveErr.Body)}
	}
	return classifyTransport(err)
}
