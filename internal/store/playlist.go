package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/store/validate"
	"github.com/lumenview/lumen/internal/store/vfs"
)

func playlistDef() entityDef[model.Playlist, model.PlaylistSummary] {
	return entityDef[model.Playlist, model.PlaylistSummary]{
		name:      "playlist",
		validate:  validate.Playlist,
		id:        func(p model.Playlist) string { return p.ID },
		updatedAt: func(p model.Playlist) time.Time { return p.UpdatedAt },
		summarize: model.Playlist.Summary,
		summaryID: func(s model.PlaylistSummary) string { return s.ID },
	}
}

func (s *fileStore) ListPlaylists(ctx context.Context) ([]model.PlaylistSummary, error) {
	return s.playlists.ListIndex(ctx)
}

func (s *fileStore) GetPlaylist(ctx context.Context, id string) (model.Playlist, error) {
	return s.playlists.GetByID(ctx, id)
}

// checkLayoutRegions resolves the referenced layout and verifies every
// assignment targets one of its regions. Content ids are not resolved here;
// a playlist may legitimately reference content that does not exist yet.
func (s *fileStore) checkLayoutRegions(p model.Playlist) error {
	layout, err := s.layouts.readDetail(p.LayoutID)
	if err != nil {
		if errors.Is(err, vfs.ErrNotFound) {
			return &validate.Error{Entity: "playlist", Err: fmt.Errorf("layout_id: layout %q does not exist", p.LayoutID)}
		}
		return err
	}
	return validate.PlaylistRegions(p, layout)
}

func (s *fileStore) CreatePlaylist(ctx context.Context, p model.Playlist) (model.Playlist, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.checkLayoutRegions(p); err != nil {
		return model.Playlist{}, err
	}
	return s.playlists.Create(ctx, p)
}

func (s *fileStore) UpdatePlaylist(ctx context.Context, id string, patch model.PlaylistPatch) (model.Playlist, error) {
	return s.playlists.Update(ctx, id, func(cur model.Playlist) (model.Playlist, error) {
		if patch.Name != nil {
			cur.Name = *patch.Name
		}
		if patch.Device != nil {
			cur.Device = *patch.Device
		}
		if patch.LayoutID != nil {
			cur.LayoutID = *patch.LayoutID
		}
		if patch.Assignments != nil {
			cur.Assignments = *patch.Assignments
		}
		cur.UpdatedAt = time.Now().UTC()
		if err := s.checkLayoutRegions(cur); err != nil {
			return model.Playlist{}, err
		}
		return cur, nil
	})
}

func (s *fileStore) DeletePlaylist(ctx context.Context, id string) error {
	return s.playlists.Delete(ctx, id)
}
