package models

import (
	"encoding/json"
	"time"
)

// AnalyticsSnapshot is one immutable metrics reading for an account.
// Metric fields are pointers: nil means the provider did not report the
// value, which is not the same thing as an observed zero.
type AnalyticsSnapshot struct {
	ID          int64           `db:"id" json:"id"`
	Platform    string          `db:"platform" json:"platform"`
	AccountID   string          `db:"account_id" json:"account_id"`
	Followers   *int64          `db:"followers" json:"followers"`
	Views       *int64          `db:"views" json:"views"`
	Likes       *int64          `db:"likes" json:"likes"`
	Comments    *int64          `db:"comments" json:"comments"`
	Impressions *int64          `db:"impressions" json:"impressions"`
	Reach       *int64          `db:"reach" json:"reach"`
	WatchTime   *int64          `db:"watch_time" json:"watch_time"`
	Raw         json.RawMessage `db:"raw" json:"raw,omitempty"`
	Timestamp   time.Time       `db:"timestamp" json:"timestamp"`
}
