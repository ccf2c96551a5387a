package dto

import (
	"time"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/pkg/validator"
)

// CriteriaRequest is the query-string form of a filter interaction:
// from/to dates, min_miles/max_miles bounds, and chart options.
type CriteriaRequest struct {
	From     time.Time
	To       time.Time
	MinMiles float64
	MaxMiles float64
	Bucket   string
	Bins     int
}

func (r *CriteriaRequest) Validate(v *validator.Validator) {
	criteria := r.ToCriteria()
	criteria.Validate(v)

	opts := r.ToChartOptions()
	opts.Validate(v)
}

func (r *CriteriaRequest) ToCriteria() models.FilterCriteria {
	return models.FilterCriteria{
		From:     r.From,
		To:       r.To,
		MinMiles: r.MinMiles,
		MaxMiles: r.MaxMiles,
	}
}

func (r *CriteriaRequest) ToChartOptions() models.ChartOptions {
	opts := models.DefaultChartOptions()
	if r.Bucket != "" {
		opts.Bucket = types.TimeBucket(r.Bucket)
	}
	if r.Bins != 0 {
		opts.Bins = r.Bins
	}
	return opts
}
