package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/store/validate"
)

func layoutDef() entityDef[model.Layout, model.LayoutSummary] {
	return entityDef[model.Layout, model.LayoutSummary]{
		name:      "layout",
		validate:  validate.Layout,
		id:        func(l model.Layout) string { return l.ID },
		updatedAt: func(l model.Layout) time.Time { return l.UpdatedAt },
		summarize: model.Layout.Summary,
		summaryID: func(s model.LayoutSummary) string { return s.ID },
	}
}

func (s *fileStore) ListLayouts(ctx context.Context) ([]model.LayoutSummary, error) {
	return s.layouts.ListIndex(ctx)
}

func (s *fileStore) GetLayout(ctx context.Context, id string) (model.Layout, error) {
	return s.layouts.GetByID(ctx, id)
}

func (s *fileStore) CreateLayout(ctx context.Context, l model.Layout) (model.Layout, error) {
	now := time.Now().UTC()
	l.ID = uuid.NewString()
	l.CreatedAt = now
	l.UpdatedAt = now
	return s.layouts.Create(ctx, l)
}

func (s *fileStore) UpdateLayout(ctx context.Context, id string, patch model.LayoutPatch) (model.Layout, error) {
	return s.layouts.Update(ctx, id, func(cur model.Layout) (model.Layout, error) {
		if patch.Name != nil {
			cur.Name = *patch.Name
		}
		if patch.Orientation != nil {
			cur.Orientation = *patch.Orientation
		}
		if patch.Regions != nil {
			cur.Regions = *patch.Regions
		}
		cur.UpdatedAt = time.Now().UTC()
		return cur, nil
	})
}

// DeleteLayout is never blocked by playlist references; callers consult
// LayoutUsage first if they want to warn.
func (s *fileStore) DeleteLayout(ctx context.Context, id string) error {
	return s.layouts.Delete(ctx, id)
}
