package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/store/validate"
)

func TestContentUsageReportsReferencingPlaylists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	layout := makeLayout(t, s)
	c := makeContent(t, s, "clip")
	other := makeContent(t, s, "unused")
	p := makePlaylist(t, s, layout.ID, c.ID)

	report, err := s.ContentUsage(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, report.IsUsed)
	require.Len(t, report.Playlists, 1)
	assert.Equal(t, model.PlaylistRef{ID: p.ID, Name: p.Name}, report.Playlists[0])

	report, err = s.ContentUsage(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, report.IsUsed)
	assert.Empty(t, report.Playlists)
}

func TestPlaylistMayReferenceMissingContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	layout := makeLayout(t, s)
	// Content ids are deliberately not resolved at playlist save time.
	p := makePlaylist(t, s, layout.ID, "never-created")

	report, err := s.ContentUsage(ctx, "never-created")
	require.NoError(t, err)
	assert.True(t, report.IsUsed)
	require.Len(t, report.Playlists, 1)
	assert.Equal(t, p.ID, report.Playlists[0].ID)
}

func TestSafeDeleteRefusedWhileReferenced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	layout := makeLayout(t, s)
	c := makeContent(t, s, "held")
	p := makePlaylist(t, s, layout.ID, c.ID)

	err := s.DeleteContent(ctx, c.ID)
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, c.ID, conflict.ID)
	require.Len(t, conflict.References, 1)
	assert.Equal(t, p.Name, conflict.References[0].Name)

	// The refusal must not have touched the record.
	_, err = s.GetContent(ctx, c.ID)
	assert.NoError(t, err)
}

func TestSafeDeleteSucceedsAfterPlaylistReleases(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	layout := makeLayout(t, s)
	c := makeContent(t, s, "released")
	p := makePlaylist(t, s, layout.ID, c.ID)

	require.NoError(t, s.DeletePlaylist(ctx, p.ID))
	assert.NoError(t, s.DeleteContent(ctx, c.ID))
}

func TestForceDeleteStripsReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	layout := makeLayout(t, s)
	c := makeContent(t, s, "torn-out")
	keep := makeContent(t, s, "kept")

	p, err := s.CreatePlaylist(ctx, model.Playlist{
		Name:     "mixed",
		Device:   "lobby-tv",
		LayoutID: layout.ID,
		Assignments: []model.RegionAssignment{
			{
				RegionID:   "main",
				ContentIDs: []string{c.ID, keep.ID},
				ContentDurations: []model.ContentDuration{
					{ContentID: c.ID, Duration: 15},
					{ContentID: keep.ID, Duration: 30},
				},
			},
		},
	})
	require.NoError(t, err)

	require.NoError(t, s.ForceDeleteContent(ctx, c.ID))

	_, err = s.GetContent(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetPlaylist(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, []string{keep.ID}, got.Assignments[0].ContentIDs)
	require.Len(t, got.Assignments[0].ContentDurations, 1)
	assert.Equal(t, keep.ID, got.Assignments[0].ContentDurations[0].ContentID)
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt) || got.UpdatedAt.Equal(p.UpdatedAt))
}

func TestForceDeleteUnreferencedContent(t *testing.T) {
	s := newTestStore(t)

	c := makeContent(t, s, "lonely")
	require.NoError(t, s.ForceDeleteContent(context.Background(), c.ID))

	_, err := s.GetContent(context.Background(), c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLayoutUsageIsAdvisoryOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	layout := makeLayout(t, s)
	makePlaylist(t, s, layout.ID)

	report, err := s.LayoutUsage(ctx, layout.ID)
	require.NoError(t, err)
	assert.True(t, report.IsUsed)

	// Deletion is never blocked or cascaded for layouts.
	assert.NoError(t, s.DeleteLayout(ctx, layout.ID))
}

func TestPlaylistRequiresExistingLayout(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreatePlaylist(context.Background(), model.Playlist{
		Name:     "orphan",
		Device:   "lobby-tv",
		LayoutID: "no-such-layout",
	})
	require.Error(t, err)

	var verr *validate.Error
	assert.ErrorAs(t, err, &verr)
}

func TestPlaylistRegionMustExistInLayout(t *testing.T) {
	s := newTestStore(t)

	layout := makeLayout(t, s)
	_, err := s.CreatePlaylist(context.Background(), model.Playlist{
		Name:     "misaimed",
		Device:   "lobby-tv",
		LayoutID: layout.ID,
		Assignments: []model.RegionAssignment{
			{RegionID: "sidebar", ContentIDs: []string{"c1"}},
		},
	})
	assert.Error(t, err)
}

func TestUpdatePlaylistRechecksLayout(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	layout := makeLayout(t, s)
	p := makePlaylist(t, s, layout.ID)

	bogus := "no-such-layout"
	_, err := s.UpdatePlaylist(ctx, p.ID, model.PlaylistPatch{LayoutID: &bogus})
	require.Error(t, err)

	got, err := s.GetPlaylist(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, layout.ID, got.LayoutID)
}
