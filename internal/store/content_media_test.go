package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenview/lumen/internal/media"
	"github.com/lumenview/lumen/internal/model"
)

type fakeThumbnailer struct {
	res media.ThumbnailResult
	err error
}

func (f fakeThumbnailer) GenerateThumbnail(storagePath, mimeType string) (media.ThumbnailResult, error) {
	return f.res, f.err
}

type fakeCSVRenderer struct {
	path string
	err  error
}

func (f fakeCSVRenderer) RenderToImage(spec media.CSVSpec) (string, error) {
	return f.path, f.err
}

func videoContent() model.Content {
	return model.Content{
		Name: "clip",
		Type: model.ContentVideo,
		File: &model.FileInfo{
			Size:        2048,
			MimeType:    "video/mp4",
			StoragePath: "content/files/abc-clip.mp4",
		},
	}
}

func csvContent() model.Content {
	return model.Content{
		Name: "menu",
		Type: model.ContentCSV,
		CSV:  &model.CSVInfo{Source: "item,price\ncoffee,3"},
	}
}

func TestThumbnailSuccess(t *testing.T) {
	thumb := fakeThumbnailer{res: media.ThumbnailResult{
		Bytes:    []byte("jpeg bytes"),
		Width:    1920,
		Height:   1080,
		Duration: 12.5,
	}}
	s := newTestStore(t, WithThumbnailer(thumb))

	c, err := s.CreateContent(context.Background(), videoContent())
	require.NoError(t, err)

	require.NotNil(t, c.File)
	wantPath := fmt.Sprintf("content/thumbnails/%s.jpg", c.ID)
	assert.Equal(t, wantPath, c.File.ThumbnailPath)
	assert.Equal(t, 1920, c.File.Width)
	assert.Equal(t, 1080, c.File.Height)
	assert.Equal(t, 12.5, c.File.Duration)

	data, err := s.files.ReadBytes(wantPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)

	list, err := s.ListContent(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, wantPath, list[0].ThumbnailPath)
}

func TestThumbnailFailureIsNonFatal(t *testing.T) {
	s := newTestStore(t, WithThumbnailer(fakeThumbnailer{err: errors.New("ffmpeg exploded")}))

	c, err := s.CreateContent(context.Background(), videoContent())
	require.NoError(t, err, "a missing thumbnail must not block the record")
	require.NotNil(t, c.File)
	assert.Empty(t, c.File.ThumbnailPath)
}

func TestThumbnailKeepsProbedDimensions(t *testing.T) {
	thumb := fakeThumbnailer{res: media.ThumbnailResult{Bytes: []byte("x"), Width: 100, Height: 100}}
	s := newTestStore(t, WithThumbnailer(thumb))

	in := videoContent()
	in.File.Width = 3840
	in.File.Height = 2160

	c, err := s.CreateContent(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 3840, c.File.Width, "caller-supplied dimensions win")
	assert.Equal(t, 2160, c.File.Height)
}

func TestCSVRenderFailureAbortsCreate(t *testing.T) {
	s := newTestStore(t, WithCSVRenderer(fakeCSVRenderer{err: errors.New("bad csv")}))
	ctx := context.Background()

	_, err := s.CreateContent(ctx, csvContent())
	require.Error(t, err)

	list, err := s.ListContent(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "a half-rendered csv record must never be persisted")
}

func TestCSVRenderSetsRenderedPath(t *testing.T) {
	s := newTestStore(t, WithCSVRenderer(fakeCSVRenderer{path: "content/rendered/menu.png"}))

	c, err := s.CreateContent(context.Background(), csvContent())
	require.NoError(t, err)
	require.NotNil(t, c.CSV)
	assert.Equal(t, "content/rendered/menu.png", c.CSV.RenderedPath)
}

func TestUpdateCSVRerenders(t *testing.T) {
	s := newTestStore(t, WithCSVRenderer(fakeCSVRenderer{path: "content/rendered/v1.png"}))
	ctx := context.Background()

	c, err := s.CreateContent(ctx, csvContent())
	require.NoError(t, err)
	assert.Equal(t, "content/rendered/v1.png", c.CSV.RenderedPath)

	s.csvRenderer = fakeCSVRenderer{path: "content/rendered/v2.png"}
	updated, err := s.UpdateContent(ctx, c.ID, model.ContentPatch{
		CSV: &model.CSVInfo{Source: "item,price\ntea,2"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CSV)
	assert.Equal(t, "content/rendered/v2.png", updated.CSV.RenderedPath)
	assert.Equal(t, "item,price\ntea,2", updated.CSV.Source)
}

func TestCreateWithoutCollaborators(t *testing.T) {
	s := newTestStore(t)

	c, err := s.CreateContent(context.Background(), csvContent())
	require.NoError(t, err)
	assert.Empty(t, c.CSV.RenderedPath)

	v, err := s.CreateContent(context.Background(), videoContent())
	require.NoError(t, err)
	assert.Empty(t, v.File.ThumbnailPath)
}
