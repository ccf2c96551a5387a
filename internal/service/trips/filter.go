package trips

import (
	"context"

	"github.com/citydash/tripdash/internal/domain/models"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
)

// Filter returns the records satisfying the criteria, in dataset order.
// The result is always a subset of the dataset and an empty result is
// valid. Inverted date or distance ranges simply match nothing.
func (s *Service) Filter(ctx context.Context, c models.FilterCriteria) []models.TripRecord {
	ctx = wrap.WithAction(ctx, "filter_dataset")

	view := make([]models.TripRecord, 0, s.dataset.Size())
	for _, r := range s.dataset.Records {
		if c.Matches(r) {
			view = append(view, r)
		}
	}

	s.l.Debug(ctx, "filtered dataset",
		"total", s.dataset.Size(),
		"matched", len(view),
	)

	return view
}
