package transfer

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CaptionRequest struct {
	Text     string `json:"text"`
	Tone     string `json:"tone"`
	Length   string `json:"length"`
	Platform string `json:"platform"`
}

func (r CaptionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required),
	)
}

type HashtagRequest struct {
	Text    string `json:"text"`
	MaxTags int    `json:"max_tags"`
}

func (r HashtagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required),
		validation.Field(&r.MaxTags, validation.Min(0), validation.Max(30)),
	)
}

type SummaryRequest struct {
	Transcript   string `json:"transcript"`
	MaxSentences int    `json:"max_sentences"`
}

func (r SummaryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Transcript, validation.Required),
		validation.Field(&r.MaxSentences, validation.Min(0), validation.Max(20)),
	)
}
