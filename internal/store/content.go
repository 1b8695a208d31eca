package store

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/lumenview/lumen/internal/media"
	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/store/validate"
)

func contentDef() entityDef[model.Content, model.ContentSummary] {
	return entityDef[model.Content, model.ContentSummary]{
		name:      "content",
		validate:  validate.Content,
		id:        func(c model.Content) string { return c.ID },
		updatedAt: func(c model.Content) time.Time { return c.UpdatedAt },
		summarize: model.Content.Summary,
		summaryID: func(s model.ContentSummary) string { return s.ID },
	}
}

func (s *fileStore) ListContent(ctx context.Context) ([]model.ContentSummary, error) {
	return s.content.ListIndex(ctx)
}

func (s *fileStore) GetContent(ctx context.Context, id string) (model.Content, error) {
	return s.content.GetByID(ctx, id)
}

func (s *fileStore) CreateContent(ctx context.Context, c model.Content) (model.Content, error) {
	now := time.Now().UTC()
	// Upload callers pre-generate the id so the stored binary can carry it;
	// everyone else gets one here.
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if c.Type == model.ContentCSV && c.CSV != nil {
		if err := s.renderCSV(c.CSV); err != nil {
			return model.Content{}, err
		}
	}
	s.generateThumbnail(&c)

	return s.content.Create(ctx, c)
}

func (s *fileStore) UpdateContent(ctx context.Context, id string, patch model.ContentPatch) (model.Content, error) {
	return s.content.Update(ctx, id, func(cur model.Content) (model.Content, error) {
		next := applyContentPatch(cur, patch)
		next.UpdatedAt = time.Now().UTC()
		if patch.CSV != nil && next.Type == model.ContentCSV && next.CSV != nil {
			next.CSV.RenderedPath = ""
			if err := s.renderCSV(next.CSV); err != nil {
				return model.Content{}, err
			}
		}
		return next, nil
	})
}

// DeleteContent is the safe variant: it refuses while any playlist still
// references the id.
func (s *fileStore) DeleteContent(ctx context.Context, id string) error {
	usage, err := s.ContentUsage(ctx, id)
	if err != nil {
		return err
	}
	if usage.IsUsed {
		return &ConflictError{Entity: "content", ID: id, References: usage.Playlists}
	}
	return s.content.Delete(ctx, id)
}

// renderCSV invokes the csv-to-image collaborator. A render failure aborts
// the calling operation; csv content is never persisted half-built.
func (s *fileStore) renderCSV(info *model.CSVInfo) error {
	if s.csvRenderer == nil || info.RenderedPath != "" {
		return nil
	}
	rendered, err := s.csvRenderer.RenderToImage(media.CSVSpec{
		Source:      info.Source,
		Columns:     info.Columns,
		HeaderColor: info.HeaderColor,
		RowColor:    info.RowColor,
	})
	if err != nil {
		return fmt.Errorf("render csv image: %w", err)
	}
	info.RenderedPath = rendered
	return nil
}

// generateThumbnail is best-effort: any failure leaves the record without a
// thumbnail and the operation proceeds.
func (s *fileStore) generateThumbnail(c *model.Content) {
	if s.thumbnailer == nil || c.File == nil || c.File.ThumbnailPath != "" {
		return
	}
	res, err := s.thumbnailer.GenerateThumbnail(c.File.StoragePath, c.File.MimeType)
	if err != nil {
		return
	}
	thumbPath := path.Join("content", "thumbnails", c.ID+".jpg")
	if err := s.files.WriteBytes(thumbPath, res.Bytes); err != nil {
		return
	}
	c.File.ThumbnailPath = thumbPath
	if c.File.Width == 0 {
		c.File.Width = res.Width
	}
	if c.File.Height == 0 {
		c.File.Height = res.Height
	}
	if c.File.Duration == 0 {
		c.File.Duration = res.Duration
	}
}

func applyContentPatch(cur model.Content, patch model.ContentPatch) model.Content {
	if patch.Name != nil {
		cur.Name = *patch.Name
	}
	if patch.Type != nil {
		cur.Type = *patch.Type
	}
	if patch.Tags != nil {
		cur.Tags = *patch.Tags
	}
	// Switching payload variants replaces the old one wholesale.
	if patch.File != nil || patch.URL != nil || patch.Text != nil || patch.Weather != nil || patch.CSV != nil {
		cur.File, cur.URL, cur.Text, cur.Weather, cur.CSV = nil, nil, nil, nil, nil
		switch {
		case patch.File != nil:
			f := *patch.File
			cur.File = &f
		case patch.URL != nil:
			u := *patch.URL
			cur.URL = &u
		case patch.Text != nil:
			t := *patch.Text
			cur.Text = &t
		case patch.Weather != nil:
			w := *patch.Weather
			cur.Weather = &w
		case patch.CSV != nil:
			v := *patch.CSV
			cur.CSV = &v
		}
	}
	return cur
}
