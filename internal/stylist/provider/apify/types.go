package apify

import "encoding/json"

// Actor run terminal statuses.
const (
	RunStatusSucceeded = "SUCCEEDED"
	RunStatusFailed    = "FAILED"
	RunStatusTimedOut  = "TIMED-OUT"
	RunStatusAborted   = "ABORTED"
)

// RunInput is the actor input: one storefront listing URL to scrape.
type RunInput struct {
	URL     string `json:"url"`
	MaxPage int    `json:"max_page"`
}

// RunStatus describes one actor run.
type RunStatus struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

// runEnvelope wraps run responses: {"data": {...}}.
type runEnvelope struct {
	Data RunStatus `json:"data"`
}

// Item is one raw scraped product. Price and image shapes vary between
// actor versions, so both stay loosely typed until normalization.
type Item struct {
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Manufacturer string          `json:"manufacturer"`
	Price        json.RawMessage `json:"price"`
	Currency     string          `json:"currency"`
	URL          string          `json:"url"`
	Image        json.RawMessage `json:"image"`
	Images       []string        `json:"images"`
	SKU          string          `json:"sku"`
	Color        string          `json:"color"`
	IsSponsored  bool            `json:"isSponsored"`
	Sponsored    bool            `json:"sponsored"`
}

// IsTerminal reports whether the run has stopped.
func (s RunStatus) IsTerminal() bool {
	switch s.Status {
	case RunStatusSucceeded, RunStatusFailed, RunStatusTimedOut, RunStatusAborted:
		return true
	default:
		return false
	}
}
