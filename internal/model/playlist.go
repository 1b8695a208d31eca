package model

import "time"

// ContentDuration is the per-content play time inside one region assignment.
type ContentDuration struct {
	ContentID string `json:"content_id"`
	Duration  int    `json:"duration"` // seconds
}

// RegionAssignment binds an ordered set of content ids (with per-id
// durations) to one region of the playlist's layout.
type RegionAssignment struct {
	RegionID         string            `json:"region_id"`
	ContentIDs       []string          `json:"content_ids"`
	ContentDurations []ContentDuration `json:"content_durations"`
}

// Playlist is the full detail record. LayoutID is a reference, never an
// embedded layout; content ids are likewise resolved lazily by readers.
type Playlist struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Device      string             `json:"device"` // target display name
	LayoutID    string             `json:"layout_id"`
	Assignments []RegionAssignment `json:"assignments"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// PlaylistSummary is the index record shown in list views.
type PlaylistSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Device    string    `json:"device"`
	LayoutID  string    `json:"layout_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlaylistPatch carries partial updates; nil fields are left untouched.
type PlaylistPatch struct {
	Name        *string             `json:"name"`
	Device      *string             `json:"device"`
	LayoutID    *string             `json:"layout_id"`
	Assignments *[]RegionAssignment `json:"assignments"`
}

// PlaylistRef identifies a playlist in usage reports and conflict errors.
type PlaylistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UsageReport is the result of scanning playlists for references to an
// entity id.
type UsageReport struct {
	IsUsed    bool          `json:"is_used"`
	Playlists []PlaylistRef `json:"playlists"`
}

// Summary projects the detail record onto its index entry.
func (p Playlist) Summary() PlaylistSummary {
	return PlaylistSummary{
		ID:        p.ID,
		Name:      p.Name,
		Device:    p.Device,
		LayoutID:  p.LayoutID,
		UpdatedAt: p.UpdatedAt,
	}
}

// UsesContent reports whether any assignment references the given content id.
func (p Playlist) UsesContent(contentID string) bool {
	for _, a := range p.Assignments {
		for _, cid := range a.ContentIDs {
			if cid == contentID {
				return true
			}
		}
	}
	return false
}

// StripContent removes every reference to contentID from all assignments,
// including the matching duration entries.
func (p *Playlist) StripContent(contentID string) {
	for i := range p.Assignments {
		a := &p.Assignments[i]
		ids := a.ContentIDs[:0]
		for _, cid := range a.ContentIDs {
			if cid != contentID {
				ids = append(ids, cid)
			}
		}
		a.ContentIDs = ids
		durs := a.ContentDurations[:0]
		for _, d := range a.ContentDurations {
			if d.ContentID != contentID {
				durs = append(durs, d)
			}
		}
		a.ContentDurations = durs
	}
}
