package models

import (
	"encoding/json"
	"time"
)

const (
	PlatformInstagram = "instagram"
	PlatformYoutube   = "youtube"
	PlatformFacebook  = "facebook"
)

// SocialAccount is one linked OAuth credential. The same (platform, account_id)
// pair may appear on multiple rows: every completed OAuth run appends.
type SocialAccount struct {
	ID             int64           `db:"id" json:"id"`
	Platform       string          `db:"platform" json:"platform"`
	AccountID      string          `db:"account_id" json:"account_id"`
	AccessToken    string          `db:"access_token" json:"-"`
	RefreshToken   string          `db:"refresh_token" json:"-"`
	TokenExpiresAt *time.Time      `db:"token_expires_at" json:"token_expires_at,omitempty"`
	MetaData       json.RawMessage `db:"meta_data" json:"meta_data,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}
