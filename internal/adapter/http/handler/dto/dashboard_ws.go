package dto

import (
	"time"

	"github.com/citydash/tripdash/pkg/validator"
)

// WSCriteriaMessage is one filter interaction sent over the dashboard
// websocket. Dates travel as YYYY-MM-DD strings like the query params do.
// The distance bounds are pointers so an explicit zero stays an inclusive
// bound while an omitted field falls back to the dataset's full range,
// same as the HTTP surface.
type WSCriteriaMessage struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	MinMiles *float64 `json:"min_miles"`
	MaxMiles *float64 `json:"max_miles"`
	Bucket   string   `json:"bucket"`
	Bins     int      `json:"bins"`
}

func (m *WSCriteriaMessage) ToCriteriaRequest(v *validator.Validator) *CriteriaRequest {
	req := &CriteriaRequest{
		Bucket: m.Bucket,
		Bins:   m.Bins,
	}

	if m.MinMiles != nil {
		req.MinMiles = *m.MinMiles
	}
	if m.MaxMiles != nil {
		req.MaxMiles = *m.MaxMiles
	}

	if m.From != "" {
		d, err := time.Parse("2006-01-02", m.From)
		v.Check(err == nil, "from", "must be a date in YYYY-MM-DD format")
		req.From = d
	}
	if m.To != "" {
		d, err := time.Parse("2006-01-02", m.To)
		v.Check(err == nil, "to", "must be a date in YYYY-MM-DD format")
		req.To = d
	}

	return req
}
