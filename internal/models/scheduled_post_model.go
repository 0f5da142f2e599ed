package models

import "time"

type ScheduledPost struct {
	ID            int64     `db:"id" json:"id"`
	Platform      string    `db:"platform" json:"platform"`
	Caption       string    `db:"caption" json:"caption"`
	ScheduledTime time.Time `db:"scheduled_time" json:"scheduled_time"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

const (
	PostStatusPending   = "pending"
	PostStatusPosted    = "posted"
	PostStatusCancelled = "cancelled"
)
