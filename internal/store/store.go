// Package store is the file-backed catalog engine: four entity repositories
// (content, layouts, playlists, schedules) persisting index-plus-detail
// record pairs into a sandboxed virtual filesystem, with per-resource
// serialization and referential-integrity guards. There is no database
// underneath; the guarantees come from the lock manager and the fixed
// detail-then-index write order.
package store

import (
	"context"

	"github.com/spf13/afero"

	"github.com/lumenview/lumen/internal/media"
	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/store/lock"
	"github.com/lumenview/lumen/internal/store/vfs"
)

// Store is the whole contract between the catalog engine and its callers.
// Forms supply plain records (minus id/timestamps for create, patches for
// update) and get back the validated, timestamped record or a typed error.
type Store interface {
	ListContent(ctx context.Context) ([]model.ContentSummary, error)
	GetContent(ctx context.Context, id string) (model.Content, error)
	CreateContent(ctx context.Context, c model.Content) (model.Content, error)
	UpdateContent(ctx context.Context, id string, patch model.ContentPatch) (model.Content, error)
	// DeleteContent refuses with ConflictError while playlists reference id.
	DeleteContent(ctx context.Context, id string) error
	// ForceDeleteContent strips the id from every referencing playlist first,
	// then deletes the record.
	ForceDeleteContent(ctx context.Context, id string) error
	ContentUsage(ctx context.Context, id string) (model.UsageReport, error)

	ListLayouts(ctx context.Context) ([]model.LayoutSummary, error)
	GetLayout(ctx context.Context, id string) (model.Layout, error)
	CreateLayout(ctx context.Context, l model.Layout) (model.Layout, error)
	UpdateLayout(ctx context.Context, id string, patch model.LayoutPatch) (model.Layout, error)
	DeleteLayout(ctx context.Context, id string) error
	// LayoutUsage is advisory: layout deletion is never blocked or cascaded.
	LayoutUsage(ctx context.Context, id string) (model.UsageReport, error)

	ListPlaylists(ctx context.Context) ([]model.PlaylistSummary, error)
	GetPlaylist(ctx context.Context, id string) (model.Playlist, error)
	CreatePlaylist(ctx context.Context, p model.Playlist) (model.Playlist, error)
	UpdatePlaylist(ctx context.Context, id string, patch model.PlaylistPatch) (model.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error

	ListSchedules(ctx context.Context) ([]model.ScheduleSummary, error)
	GetSchedule(ctx context.Context, id string) (model.Schedule, error)
	CreateSchedule(ctx context.Context, s model.Schedule) (model.Schedule, error)
	UpdateSchedule(ctx context.Context, id string, patch model.SchedulePatch) (model.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// fileStore composes the adapter, lock manager, validators and repositories.
// All dependencies are injected; nothing here is a package-level singleton.
type fileStore struct {
	files *vfs.Store
	locks *lock.Manager

	content   *repo[model.Content, model.ContentSummary]
	layouts   *repo[model.Layout, model.LayoutSummary]
	playlists *repo[model.Playlist, model.PlaylistSummary]
	schedules *repo[model.Schedule, model.ScheduleSummary]

	thumbnailer media.Thumbnailer
	csvRenderer media.CSVRenderer
}

var _ Store = (*fileStore)(nil)

// Option configures optional collaborators on the store.
type Option func(*fileStore)

// WithThumbnailer attaches a thumbnail generator for file-backed content.
func WithThumbnailer(t media.Thumbnailer) Option {
	return func(s *fileStore) { s.thumbnailer = t }
}

// WithCSVRenderer attaches the csv-to-image renderer.
func WithCSVRenderer(r media.CSVRenderer) Option {
	return func(s *fileStore) { s.csvRenderer = r }
}

// New builds a Store over the given filesystem. Production passes a
// disk-backed fs rooted at the data directory; tests pass afero.NewMemMapFs.
func New(fs afero.Fs, opts ...Option) Store {
	files := vfs.New(fs)
	locks := lock.NewManager()

	s := &fileStore{
		files:     files,
		locks:     locks,
		content:   newRepo(contentDef(), files, locks),
		layouts:   newRepo(layoutDef(), files, locks),
		playlists: newRepo(playlistDef(), files, locks),
		schedules: newRepo(scheduleDef(), files, locks),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
