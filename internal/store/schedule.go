package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/store/validate"
)

func scheduleDef() entityDef[model.Schedule, model.ScheduleSummary] {
	return entityDef[model.Schedule, model.ScheduleSummary]{
		name:      "schedule",
		validate:  validate.Schedule,
		id:        func(s model.Schedule) string { return s.ID },
		updatedAt: func(s model.Schedule) time.Time { return s.UpdatedAt },
		summarize: model.Schedule.Summary,
		summaryID: func(s model.ScheduleSummary) string { return s.ID },
		// Zero-padded 24h times sort correctly as strings; the stable sort
		// keeps insertion order among equal times.
		sortIndex: func(idx []model.ScheduleSummary) {
			sort.SliceStable(idx, func(i, j int) bool { return idx[i].Time < idx[j].Time })
		},
	}
}

func (s *fileStore) ListSchedules(ctx context.Context) ([]model.ScheduleSummary, error) {
	return s.schedules.ListIndex(ctx)
}

func (s *fileStore) GetSchedule(ctx context.Context, id string) (model.Schedule, error) {
	return s.schedules.GetByID(ctx, id)
}

func (s *fileStore) CreateSchedule(ctx context.Context, sc model.Schedule) (model.Schedule, error) {
	now := time.Now().UTC()
	sc.ID = uuid.NewString()
	sc.CreatedAt = now
	sc.UpdatedAt = now
	return s.schedules.Create(ctx, sc)
}

func (s *fileStore) UpdateSchedule(ctx context.Context, id string, patch model.SchedulePatch) (model.Schedule, error) {
	return s.schedules.Update(ctx, id, func(cur model.Schedule) (model.Schedule, error) {
		if patch.Name != nil {
			cur.Name = *patch.Name
		}
		if patch.Time != nil {
			cur.Time = *patch.Time
		}
		if patch.Weekdays != nil {
			cur.Weekdays = *patch.Weekdays
		}
		if patch.Event != nil {
			cur.Event = *patch.Event
			if *patch.Event != model.EventPlaylist && patch.PlaylistID == nil {
				cur.PlaylistID = ""
			}
		}
		if patch.PlaylistID != nil {
			cur.PlaylistID = *patch.PlaylistID
		}
		if patch.Enabled != nil {
			cur.Enabled = *patch.Enabled
		}
		cur.UpdatedAt = time.Now().UTC()
		return cur, nil
	})
}

func (s *fileStore) DeleteSchedule(ctx context.Context, id string) error {
	return s.schedules.Delete(ctx, id)
}
