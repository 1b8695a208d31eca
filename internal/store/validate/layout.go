package validate

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lumenview/lumen/internal/model"
)

var orientations = []model.Orientation{
	model.OrientationLandscape,
	model.OrientationPortraitLeft,
	model.OrientationPortraitRight,
}

// Layout normalizes and validates a layout record. Regions written before
// z-ordering existed get their list position backfilled as z.
func Layout(l model.Layout) (model.Layout, error) {
	regions := make([]model.Region, len(l.Regions))
	copy(regions, l.Regions)
	for i := range regions {
		if regions[i].Z == nil {
			z := i
			regions[i].Z = &z
		}
	}
	l.Regions = regions
	if l.Regions == nil {
		l.Regions = []model.Region{}
	}

	if err := validation.ValidateStruct(&l,
		validation.Field(&l.ID, validation.Required),
		validation.Field(&l.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&l.Orientation, validation.Required, in(orientations)),
		validation.Field(&l.CreatedAt, validation.Required),
		validation.Field(&l.UpdatedAt, validation.Required),
	); err != nil {
		return model.Layout{}, wrap("layout", err)
	}

	seen := make(map[string]bool, len(l.Regions))
	for i, r := range l.Regions {
		if r.ID == "" {
			return model.Layout{}, wrap("layout", fmt.Errorf("regions[%d]: id is required", i))
		}
		if seen[r.ID] {
			return model.Layout{}, wrap("layout", fmt.Errorf("regions[%d]: duplicate region id %q", i, r.ID))
		}
		seen[r.ID] = true
		if r.Width <= 0 || r.Height <= 0 {
			return model.Layout{}, wrap("layout", fmt.Errorf("regions[%d]: width and height must be positive", i))
		}
	}
	return l, nil
}
