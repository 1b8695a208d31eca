package validate

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lumenview/lumen/internal/model"
)

// Playlist normalizes and validates the shape of a playlist record. Duration
// entries must reference content ids present in the same assignment. Content
// existence is deliberately not checked here; layout/region correspondence is
// a cross-entity check done by PlaylistRegions.
func Playlist(p model.Playlist) (model.Playlist, error) {
	if p.Assignments == nil {
		p.Assignments = []model.RegionAssignment{}
	}

	if err := validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.LayoutID, validation.Required),
		validation.Field(&p.CreatedAt, validation.Required),
		validation.Field(&p.UpdatedAt, validation.Required),
	); err != nil {
		return model.Playlist{}, wrap("playlist", err)
	}

	seen := make(map[string]bool, len(p.Assignments))
	for i := range p.Assignments {
		a := &p.Assignments[i]
		if a.RegionID == "" {
			return model.Playlist{}, wrap("playlist", fmt.Errorf("assignments[%d]: region_id is required", i))
		}
		if seen[a.RegionID] {
			return model.Playlist{}, wrap("playlist", fmt.Errorf("assignments[%d]: duplicate assignment for region %q", i, a.RegionID))
		}
		seen[a.RegionID] = true

		if a.ContentIDs == nil {
			a.ContentIDs = []string{}
		}
		if a.ContentDurations == nil {
			a.ContentDurations = []model.ContentDuration{}
		}

		ids := make(map[string]bool, len(a.ContentIDs))
		for _, cid := range a.ContentIDs {
			ids[cid] = true
		}
		for j, d := range a.ContentDurations {
			if !ids[d.ContentID] {
				return model.Playlist{}, wrap("playlist", fmt.Errorf(
					"assignments[%d].content_durations[%d]: content id %q is not in the assignment", i, j, d.ContentID))
			}
			if d.Duration <= 0 {
				return model.Playlist{}, wrap("playlist", fmt.Errorf(
					"assignments[%d].content_durations[%d]: duration must be positive", i, j))
			}
		}
	}
	return p, nil
}

// PlaylistRegions verifies that every assignment targets a region of the
// referenced layout, which must have at least one region to be usable.
func PlaylistRegions(p model.Playlist, layout model.Layout) error {
	if len(layout.Regions) == 0 {
		return wrap("playlist", fmt.Errorf("layout %q has no regions", layout.ID))
	}
	for i, a := range p.Assignments {
		if _, ok := layout.Region(a.RegionID); !ok {
			return wrap("playlist", fmt.Errorf(
				"assignments[%d]: region %q does not exist in layout %q", i, a.RegionID, layout.ID))
		}
	}
	return nil
}
