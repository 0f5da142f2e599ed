package transfer

import "time"

// OverviewEntry is the per-platform KPI line on the dashboard overview:
// latest followers/views reading and when it was taken.
type OverviewEntry struct {
	Followers *int64    `json:"followers"`
	Views     *int64    `json:"views"`
	Timestamp time.Time `json:"timestamp"`
}
