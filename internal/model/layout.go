package model

import "time"

// Orientation of the physical display a layout targets.
type Orientation string

const (
	OrientationLandscape     Orientation = "landscape"
	OrientationPortraitLeft  Orientation = "portrait-left"
	OrientationPortraitRight Orientation = "portrait-right"
)

// Region is one rectangular zone of a layout. Z is a pointer because older
// records predate z-ordering; the validator backfills it with the region's
// position in the list.
type Region struct {
	ID     string `json:"id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Z      *int   `json:"z"`
}

// Layout is the full detail record for a screen layout.
type Layout struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Orientation Orientation `json:"orientation"`
	Regions     []Region    `json:"regions"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LayoutSummary is the index record shown in list views.
type LayoutSummary struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Orientation Orientation `json:"orientation"`
	RegionCount int         `json:"region_count"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LayoutPatch carries partial updates; nil fields are left untouched.
type LayoutPatch struct {
	Name        *string      `json:"name"`
	Orientation *Orientation `json:"orientation"`
	Regions     *[]Region    `json:"regions"`
}

// Summary projects the detail record onto its index entry.
func (l Layout) Summary() LayoutSummary {
	return LayoutSummary{
		ID:          l.ID,
		Name:        l.Name,
		Orientation: l.Orientation,
		RegionCount: len(l.Regions),
		UpdatedAt:   l.UpdatedAt,
	}
}

// Region returns the region with the given id, if present.
func (l Layout) Region(id string) (Region, bool) {
	for _, r := range l.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}
