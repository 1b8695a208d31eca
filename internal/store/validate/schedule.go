package validate

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lumenview/lumen/internal/model"
)

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var eventTypes = []model.EventType{
	model.EventPlaylist,
	model.EventPowerOn,
	model.EventPowerOff,
	model.EventReboot,
}

// Schedule normalizes and validates a schedule record. Weekdays are
// de-duplicated and sorted; the playlist reference is required exactly for
// the playlist event variant.
func Schedule(s model.Schedule) (model.Schedule, error) {
	if len(s.Weekdays) > 0 {
		seen := make(map[time.Weekday]bool, len(s.Weekdays))
		days := make([]time.Weekday, 0, len(s.Weekdays))
		for _, d := range s.Weekdays {
			if !seen[d] {
				seen[d] = true
				days = append(days, d)
			}
		}
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
		s.Weekdays = days
	}

	if err := validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&s.Time, validation.Required, validation.Match(timeOfDay)),
		validation.Field(&s.Event, validation.Required, in(eventTypes)),
		validation.Field(&s.CreatedAt, validation.Required),
		validation.Field(&s.UpdatedAt, validation.Required),
	); err != nil {
		return model.Schedule{}, wrap("schedule", err)
	}

	if len(s.Weekdays) == 0 {
		return model.Schedule{}, wrap("schedule", fmt.Errorf("weekdays: cannot be empty"))
	}
	for _, d := range s.Weekdays {
		if d < time.Sunday || d > time.Saturday {
			return model.Schedule{}, wrap("schedule", fmt.Errorf("weekdays: invalid weekday %d", d))
		}
	}

	switch s.Event {
	case model.EventPlaylist:
		if s.PlaylistID == "" {
			return model.Schedule{}, wrap("schedule", fmt.Errorf("playlist_id: required for playlist events"))
		}
	case model.EventPowerOn, model.EventPowerOff, model.EventReboot:
		if s.PlaylistID != "" {
			return model.Schedule{}, wrap("schedule", fmt.Errorf("playlist_id: must be empty for %s events", s.Event))
		}
	}
	return s, nil
}
