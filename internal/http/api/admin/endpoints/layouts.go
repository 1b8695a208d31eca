package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumenview/lumen/internal/http/api"
	"github.com/lumenview/lumen/internal/http/api/admin/packets"
	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/store"
)

type LayoutController struct {
	store store.Store
}

func NewLayoutController(st store.Store) *LayoutController {
	return &LayoutController{store: st}
}

func RegisterLayoutRoutes(r gin.IRoutes, st store.Store) {
	ctl := NewLayoutController(st)

	r.GET("/layouts", api.ResolveEndpoint(ctl.listLayouts))
	r.GET("/layouts/:id", api.ResolveEndpoint(ctl.getLayout))
	r.GET("/layouts/:id/usage", api.ResolveEndpoint(ctl.layoutUsage))
	r.POST("/layouts", api.ResolveEndpoint(ctl.createLayout))
	r.PUT("/layouts/:id", api.ResolveEndpoint(ctl.updateLayout))
	r.DELETE("/layouts/:id", api.ResolveEndpoint(ctl.deleteLayout))
}

func (l *LayoutController) listLayouts(ctx *gin.Context) (any, *api.Error) {
	all, err := l.store.ListLayouts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[layout] list failed")
		return nil, api.MapStoreError(err)
	}
	return all, nil
}

func (l *LayoutController) getLayout(ctx *gin.Context) (any, *api.Error) {
	layout, err := l.store.GetLayout(ctx, ctx.Param("id"))
	if err != nil {
		return nil, api.MapStoreError(err)
	}
	return layout, nil
}

// layoutUsage is advisory: the UI warns before deleting a referenced layout
// but the engine never blocks or cascades layout deletes.
func (l *LayoutController) layoutUsage(ctx *gin.Context) (any, *api.Error) {
	report, err := l.store.LayoutUsage(ctx, ctx.Param("id"))
	if err != nil {
		log.Error().Err(err).Msg("[layout] usage scan failed")
		return nil, api.MapStoreError(err)
	}
	return report, nil
}

func (l *LayoutController) createLayout(ctx *gin.Context) (any, *api.Error) {
	var req packets.CreateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	created, err := l.store.CreateLayout(ctx, model.Layout{
		Name:        req.Name,
		Orientation: req.Orientation,
		Regions:     req.Regions,
	})
	if err != nil {
		log.Error().Err(err).Msg("[layout] create failed")
		return nil, api.MapStoreError(err)
	}
	return created, nil
}

func (l *LayoutController) updateLayout(ctx *gin.Context) (any, *api.Error) {
	var patch model.LayoutPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	updated, err := l.store.UpdateLayout(ctx, ctx.Param("id"), patch)
	if err != nil {
		log.Error().Err(err).Msg("[layout] update failed")
		return nil, api.MapStoreError(err)
	}
	return updated, nil
}

func (l *LayoutController) deleteLayout(ctx *gin.Context) (any, *api.Error) {
	id := ctx.Param("id")
	if err := l.store.DeleteLayout(ctx, id); err != nil {
		log.Error().Err(err).Str("layout_id", id).Msg("[layout] delete failed")
		return nil, api.MapStoreError(err)
	}
	return packets.DeleteResponse{Deleted: id}, nil
}
