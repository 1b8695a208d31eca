package model

import "time"

// EventType is what a schedule does when it fires.
type EventType string

const (
	EventPlaylist EventType = "playlist"
	EventPowerOn  EventType = "power-on"
	EventPowerOff EventType = "power-off"
	EventReboot   EventType = "reboot"
)

// Schedule is the full detail record for one timed event. Time is a
// zero-padded 24-hour "HH:MM" string, which sorts correctly lexically.
// PlaylistID is set only for the playlist event variant.
type Schedule struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Time       string         `json:"time"`
	Weekdays   []time.Weekday `json:"weekdays"`
	Event      EventType      `json:"event"`
	PlaylistID string         `json:"playlist_id,omitempty"`
	Enabled    bool           `json:"enabled"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ScheduleSummary is the index record; the index is kept sorted by Time.
type ScheduleSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Time      string    `json:"time"`
	Event     EventType `json:"event"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SchedulePatch carries partial updates; nil fields are left untouched.
type SchedulePatch struct {
	Name       *string          `json:"name"`
	Time       *string          `json:"time"`
	Weekdays   *[]time.Weekday  `json:"weekdays"`
	Event      *EventType       `json:"event"`
	PlaylistID *string          `json:"playlist_id"`
	Enabled    *bool            `json:"enabled"`
}

// Summary projects the detail record onto its index entry.
func (s Schedule) Summary() ScheduleSummary {
	return ScheduleSummary{
		ID:        s.ID,
		Name:      s.Name,
		Time:      s.Time,
		Event:     s.Event,
		Enabled:   s.Enabled,
		UpdatedAt: s.UpdatedAt,
	}
}
