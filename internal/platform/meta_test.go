package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/vidreacher/vidreacher-api/configs"
	"github.com/vidreacher/vidreacher-api/internal/apperror"
)

func newTestMetaClient(srv *httptest.Server) *MetaClient {
	c := NewMetaClient(config.Config{
		MetaAppID:         "app-id",
		MetaAppSecret:     "app-secret",
		OAuthRedirectBase: "http://127.0.0.1:8000",
	})
	c.graphBase = srv.URL
	c.dialogBase = srv.URL
	c.http = srv.Client()
	return c
}

func TestMetaAuthURL(t *testing.T) {
	c := NewMetaClient(config.Config{
		MetaAppID:         "app-id",
		OAuthRedirectBase: "http://127.0.0.1:8000",
	})

	raw := c.AuthURL("state-token")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(raw, "https://www.facebook.com/v16.0/dialog/oauth?"))
	q := u.Query()
	assert.Equal(t, "app-id", q.Get("client_id"))
	assert.Equal(t, "http://127.0.0.1:8000/oauth/meta/callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "state-token", q.Get("state"))
	assert.Equal(t, metaScopes, q.Get("scope"))
}

func TestMetaExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/access_token", r.URL.Path)
		assert.Equal(t, "the-code", r.URL.Query().Get("code"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "short-token",
			"token_type":   "bearer",
			"expires_in":   5183944,
		})
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	tok, err := c.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "short-token", tok.AccessToken)
	assert.Equal(t, int64(5183944), tok.ExpiresIn)
}

func TestMetaExchangeCodeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid verification code format."}}`))
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	_, err := c.ExchangeCode(context.Background(), "bad-code")

	var pe *apperror.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusBadRequest, pe.Status)
	assert.Contains(t, pe.Body, "Invalid verification code")
}

func TestMetaExchangeCodeMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	_, err := c.ExchangeCode(context.Background(), "the-code")

	var pe *apperror.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusOK, pe.Status)
}

func TestMetaExchangeCodeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	c.http = &http.Client{Timeout: 20 * time.Millisecond}

	_, err := c.ExchangeCode(context.Background(), "the-code")
	assert.True(t, errors.Is(err, apperror.ErrProviderTimeout))
}

func TestMetaUpgradeLongLivedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "short-token", r.URL.Query().Get("fb_exchange_token"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "long-token",
			"expires_in":   5183944,
		})
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	token, expiresIn := c.UpgradeLongLivedToken(context.Background(), "short-token")
	assert.Equal(t, "long-token", token)
	assert.Equal(t, int64(5183944), expiresIn)
}

func TestMetaUpgradeLongLivedTokenFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"nope"}}`))
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	token, expiresIn := c.UpgradeLongLivedToken(context.Background(), "short-token")
	assert.Equal(t, "short-token", token)
	assert.Zero(t, expiresIn)
}

func TestMetaListManagedPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/accounts", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"p-1","name":"Page One"},{"id":"p-2","name":"Page Two"},{"name":"no id"}]}`))
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	pages := c.ListManagedPages(context.Background(), "token")
	require.Len(t, pages, 2)
	assert.Equal(t, "p-1", pages[0].ID)
	assert.Equal(t, "Page Two", pages[1].Name)
	assert.JSONEq(t, `{"id":"p-1","name":"Page One"}`, string(pages[0].Raw))
}

func TestMetaListManagedPagesDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	assert.Nil(t, c.ListManagedPages(context.Background(), "token"))
}

func TestMetaResolveInstagramBusinessAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/p-ig":
			w.Write([]byte(`{"instagram_business_account":{"id":"ig-9"},"id":"p-ig"}`))
		default:
			w.Write([]byte(`{"id":"p-plain"}`))
		}
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)

	igID, raw := c.ResolveInstagramBusinessAccount(context.Background(), "p-ig", "token")
	assert.Equal(t, "ig-9", igID)
	assert.NotEmpty(t, raw)

	igID, raw = c.ResolveInstagramBusinessAccount(context.Background(), "p-plain", "token")
	assert.Empty(t, igID)
	assert.NotEmpty(t, raw)
}

func TestMetaFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		w.Write([]byte(`{"id":"user-1","name":"Test User"}`))
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	profile := c.FetchProfile(context.Background(), "token")
	require.NotNil(t, profile)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "Test User", profile.Name)
}

func TestMetaFetchInstagramMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ig-1":
			w.Write([]byte(`{"followers_count":1250,"id":"ig-1"}`))
		case "/ig-1/insights":
			w.Write([]byte(`{"data":[
				{"name":"impressions","values":[{"value":10},{"value":42}]},
				{"name":"reach","values":[{"value":30}]}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	metrics, err := c.FetchInstagramMetrics(context.Background(), "ig-1", "token")
	require.NoError(t, err)

	require.NotNil(t, metrics.Followers)
	assert.Equal(t, int64(1250), *metrics.Followers)
	require.NotNil(t, metrics.Impressions)
	assert.Equal(t, int64(42), *metrics.Impressions)
	require.NotNil(t, metrics.Reach)
	assert.Equal(t, int64(30), *metrics.Reach)
}

func TestMetaFetchInstagramMetricsZeroIsNotAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ig-1":
			w.Write([]byte(`{"followers_count":0,"id":"ig-1"}`))
		case "/ig-1/insights":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"insights unavailable"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	metrics, err := c.FetchInstagramMetrics(context.Background(), "ig-1", "token")
	require.NoError(t, err)

	require.NotNil(t, metrics.Followers)
	assert.Zero(t, *metrics.Followers)
	assert.Nil(t, metrics.Impressions)
	assert.Nil(t, metrics.Reach)
}

func TestMetaFetchInstagramMetricsProfileRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"expired token"}}`))
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	_, err := c.FetchInstagramMetrics(context.Background(), "ig-1", "token")

	var pe *apperror.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusUnauthorized, pe.Status)
}

func TestMetaFetchPageMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/p-1/insights", r.URL.Path)
		w.Write([]byte(`{"data":[{"name":"page_impressions","values":[{"value":700}]}]}`))
	}))
	defer srv.Close()

	c := newTestMetaClient(srv)
	metrics, err := c.FetchPageMetrics(context.Background(), "p-1", "token")
	require.NoError(t, err)

	require.NotNil(t, metrics.Impressions)
	assert.Equal(t, int64(700), *metrics.Impressions)
	assert.Nil(t, metrics.Followers)
}
