package transfer

import "encoding/json"

type MetaTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// MetaPagesResponse keeps each page entry raw so the original provider
// payload can be stored alongside the parsed fields.
type MetaPagesResponse struct {
	Data []json.RawMessage `json:"data"`
}

type MetaPage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MetaPageInfo struct {
	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
}

type MetaProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MetaInsightsResponse struct {
	Data []MetaInsightMetric `json:"data"`
}

type MetaInsightMetric struct {
	Name   string             `json:"name"`
	Values []MetaInsightValue `json:"values"`
}

// Value stays raw: insight values are usually numbers but can be objects
// for breakdown metrics, and an unparseable value must degrade to absent.
type MetaInsightValue struct {
	Value json.RawMessage `json:"value"`
}
