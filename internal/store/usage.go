package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/store/vfs"
)

// ContentUsage scans every playlist's assignments for the given content id.
// Ghost index entries (playlists whose detail record has disappeared) are
// skipped, not treated as failures.
func (s *fileStore) ContentUsage(ctx context.Context, id string) (model.UsageReport, error) {
	return s.scanPlaylists(ctx, func(p model.Playlist) bool {
		return p.UsesContent(id)
	})
}

// LayoutUsage reports which playlists reference the given layout. It backs a
// warning only: deleting a referenced layout would leave playlists invalid,
// a state the system refuses to produce by cascade, so there is no forced
// variant for layouts.
func (s *fileStore) LayoutUsage(ctx context.Context, id string) (model.UsageReport, error) {
	return s.scanPlaylists(ctx, func(p model.Playlist) bool {
		return p.LayoutID == id
	})
}

func (s *fileStore) scanPlaylists(ctx context.Context, uses func(model.Playlist) bool) (model.UsageReport, error) {
	report := model.UsageReport{Playlists: []model.PlaylistRef{}}
	idx, err := s.playlists.ListIndex(ctx)
	if err != nil {
		return model.UsageReport{}, err
	}
	for _, summary := range idx {
		p, err := s.playlists.readDetail(summary.ID)
		if err != nil {
			if errors.Is(err, vfs.ErrNotFound) {
				continue
			}
			return model.UsageReport{}, err
		}
		if uses(p) {
			report.IsUsed = true
			report.Playlists = append(report.Playlists, model.PlaylistRef{ID: p.ID, Name: p.Name})
		}
	}
	return report, nil
}

// ForceDeleteContent strips the content id from every referencing playlist
// and persists each of them before removing the content record, so no reader
// ever sees a playlist pointing at a missing id.
func (s *fileStore) ForceDeleteContent(ctx context.Context, id string) error {
	usage, err := s.ContentUsage(ctx, id)
	if err != nil {
		return err
	}
	for _, ref := range usage.Playlists {
		_, err := s.playlists.Update(ctx, ref.ID, func(cur model.Playlist) (model.Playlist, error) {
			cur.StripContent(id)
			cur.UpdatedAt = time.Now().UTC()
			return cur, nil
		})
		if err != nil {
			// A playlist deleted between the scan and this update no longer
			// references anything; anything else aborts the cascade.
			if errors.Is(err, vfs.ErrNotFound) {
				continue
			}
			return fmt.Errorf("strip content %s from playlist %s: %w", id, ref.ID, err)
		}
	}
	return s.content.Delete(ctx, id)
}
