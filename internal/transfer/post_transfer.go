package transfer

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type SchedulePostRequest struct {
	Platform      string `json:"platform"`
	Caption       string `json:"caption"`
	ScheduledTime string `json:"scheduled_time"`
}

func (r SchedulePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Platform, validation.Required, validation.In("instagram", "youtube", "facebook")),
		validation.Field(&r.Caption, validation.Required),
		validation.Field(&r.ScheduledTime, validation.Required, validation.Date(time.RFC3339)),
	)
}
