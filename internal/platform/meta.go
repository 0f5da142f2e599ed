package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	config "github.com/vidreacher/vidreacher-api/configs"
	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/transfer"
)

const (
	defaultGraphBase  = "https://graph.facebook.com/v16.0"
	defaultDialogBase = "https://www.facebook.com/v16.0"

	// Minimal scopes that work without App Review. instagram_basic and the
	// insight scopes produce "Invalid Scopes" on unreviewed apps.
	metaScopes = "pages_show_list,public_profile,email"
)

// MetaClient talks to the Facebook Graph API for the combined
// Facebook/Instagram side of linking and metrics collection.
type MetaClient struct {
	appID       string
	appSecret   string
	redirectURI string
	graphBase   string
	dialogBase  string
	http        *http.Client
}

func NewMetaClient(cfg config.Config) *MetaClient {
	return &MetaClient{
		appID:       cfg.MetaAppID,
		appSecret:   cfg.MetaAppSecret,
		redirectURI: cfg.OAuthRedirectBase + "/oauth/meta/callback",
		graphBase:   defaultGraphBase,
		dialogBase:  defaultDialogBase,
		http:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *MetaClient) AuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.appID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", metaScopes)
	params.Set("response_type", "code")
	params.Set("state", state)
	return c.dialogBase + "/dialog/oauth?" + params.Encode()
}

// ExchangeCode trades an authorization code for a short-lived user token.
// This is the one required call in the Meta flow: any failure here fails
// the whole linking attempt.
func (c *MetaClient) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	params := url.Values{}
	params.Set("client_id", c.appID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("client_secret", c.appSecret)
	params.Set("code", code)

	status, body, err := c.get(ctx, c.graphBase+"/oauth/access_token", params)
	if err != nil {
		return nil, err
	}

	var tok transfer.MetaTokenResponse
	if err := json.Unmarshal(body, &tok); err != nil || status != http.StatusOK || tok.AccessToken == "" {
		return nil, &apperror.ProviderError{Status: status, Body: string(body)}
	}

	return &Token{AccessToken: tok.AccessToken, ExpiresIn: tok.ExpiresIn}, nil
}

// UpgradeLongLivedToken exchanges a short-lived token for a long-lived one.
// Best-effort: on any failure the short-lived token comes back with a zero
// lifetime and linking continues.
func (c *MetaClient) UpgradeLongLivedToken(ctx context.Context, accessToken string) (string, int64) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", c.appID)
	params.Set("client_secret", c.appSecret)
	params.Set("fb_exchange_token", accessToken)

	status, body, err := c.get(ctx, c.graphBase+"/oauth/access_token", params)
	if err != nil {
		slog.Info(err.Error())
		return accessToken, 0
	}

	var tok transfer.MetaTokenResponse
	if err := json.Unmarshal(body, &tok); err != nil || status != http.StatusOK || tok.AccessToken == "" {
		slog.Info(fmt.Sprintf("long-lived token exchange returned status %d", status))
		return accessToken, 0
	}

	return tok.AccessToken, tok.ExpiresIn
}

// ListManagedPages returns the pages the user manages. Best-effort: empty on
// any failure.
func (c *MetaClient) ListManagedPages(ctx context.Context, accessToken string) []Page {
	params := url.Values{}
	params.Set("access_token", accessToken)

	status, body, err := c.get(ctx, c.graphBase+"/me/accounts", params)
	if err != nil || status != http.StatusOK {
		if err != nil {
			slog.Info(err.Error())
		}
		return nil
	}

	var res transfer.MetaPagesResponse
	if err := json.Unmarshal(body, &res); err != nil {
		slog.Info(err.Error())
		return nil
	}

	var pages []Page
	for _, raw := range res.Data {
		var p transfer.MetaPage
		if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" {
			continue
		}
		pages = append(pages, Page{ID: p.ID, Name: p.Name, Raw: raw})
	}
	return pages
}

// ResolveInstagramBusinessAccount looks up the IG business account connected
// to a page. Best-effort: empty id on any failure. The raw page info payload
// is returned either way for audit storage.
func (c *MetaClient) ResolveInstagramBusinessAccount(ctx context.Context, pageID, accessToken string) (string, json.RawMessage) {
	params := url.Values{}
	params.Set("fields", "instagram_business_account")
	params.Set("access_token", accessToken)

	status, body, err := c.get(ctx, c.graphBase+"/"+pageID, params)
	if err != nil || status != http.StatusOK {
		if err != nil {
			slog.Info(err.Error())
		}
		return "", nil
	}

	var info transfer.MetaPageInfo
	if err := json.Unmarshal(body, &info); err != nil {
		slog.Info(err.Error())
		return "", body
	}
	if info.InstagramBusinessAccount == nil {
		return "", body
	}
	return info.InstagramBusinessAccount.ID, body
}

// FetchProfile fetches the user's own id and name. Best-effort nil.
func (c *MetaClient) FetchProfile(ctx context.Context, accessToken string) *Profile {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("access_token", accessToken)

	status, body, err := c.get(ctx, c.graphBase+"/me", params)
	if err != nil || status != http.StatusOK {
		if err != nil {
			slog.Info(err.Error())
		}
		return nil
	}

	var profile transfer.MetaProfile
	if err := json.Unmarshal(body, &profile); err != nil || profile.ID == "" {
		return nil
	}
	return &Profile{ID: profile.ID, Name: profile.Name}
}

// FetchInstagramMetrics reads follower count from the IG user node plus
// impressions/reach from the insights edge. The profile request failing
// fails the call; everything past it degrades field by field.
func (c *MetaClient) FetchInstagramMetrics(ctx context.Context, accountID, accessToken string) (*NormalizedMetrics, error) {
	params := url.Values{}
	params.Set("fields", "followers_count")
	params.Set("access_token", accessToken)

	status, body, err := c.get(ctx, c.graphBase+"/"+accountID, params)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &apperror.ProviderError{Status: status, Body: string(body)}
	}

	metrics := &NormalizedMetrics{}

	var profile struct {
		FollowersCount *int64 `json:"followers_count"`
	}
	if err := json.Unmarshal(body, &profile); err == nil {
		metrics.Followers = profile.FollowersCount
	}

	insightParams := url.Values{}
	insightParams.Set("metric", "impressions,reach")
	insightParams.Set("access_token", accessToken)

	insightStatus, insightBody, err := c.get(ctx, c.graphBase+"/"+accountID+"/insights", insightParams)
	if err == nil && insightStatus == http.StatusOK {
		metrics.Impressions = lastInsightValue(insightBody, "impressions")
		metrics.Reach = lastInsightValue(insightBody, "reach")
	} else if err != nil {
		slog.Info(err.Error())
	}

	raw, _ := json.Marshal(map[string]json.RawMessage{"profile": body})
	metrics.Raw = raw
	return metrics, nil
}

// FetchPageMetrics reads page impressions from the page insights edge.
func (c *MetaClient) FetchPageMetrics(ctx context.Context, accountID, accessToken string) (*NormalizedMetrics, error) {
	params := url.Values{}
	params.Set("metric", "page_impressions,page_engaged_users")
	params.Set("access_token", accessToken)

	status, body, err := c.get(ctx, c.graphBase+"/"+accountID+"/insights", params)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &apperror.ProviderError{Status: status, Body: string(body)}
	}

	return &NormalizedMetrics{
		Impressions: lastInsightValue(body, "page_impressions"),
		Raw:         body,
	}, nil
}

func (c *MetaClient) get(ctx context.Context, rawURL string, params url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, classifyTransport(err)
	}

	return resp.StatusCode, body, nil
}

// lastInsightValue pulls the most recent value of a named metric out of an
// insights payload. Anything that does not parse is treated as absent.
func lastInsightValue(body []byte, name string) *int64 {
	var insights transfer.MetaInsightsResponse
	if err := json.Unmarshal(body, &insights); err != nil {
		return nil
	}
	for _, metric := range insights.Data {
		if metric.Name != name || len(metric.Values) == 0 {
			continue
		}
		return parseMetricValue(metric.Values[len(metric.Values)-1].Value)
	}
	return nil
}
