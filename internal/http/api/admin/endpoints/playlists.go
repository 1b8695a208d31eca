package endpoints

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumenview/lumen/internal/http/api"
	"github.com/lumenview/lumen/internal/http/api/admin/packets"
	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/notify"
	"github.com/lumenview/lumen/internal/store"
)

type PlaylistController struct {
	store    store.Store
	notifier *notify.Notifier
}

func NewPlaylistController(st store.Store, notifier *notify.Notifier) *PlaylistController {
	return &PlaylistController{store: st, notifier: notifier}
}

func RegisterPlaylistRoutes(r gin.IRoutes, st store.Store, notifier *notify.Notifier) {
	ctl := NewPlaylistController(st, notifier)

	r.GET("/playlists", api.ResolveEndpoint(ctl.listPlaylists))
	r.GET("/playlists/:id", api.ResolveEndpoint(ctl.getPlaylist))
	r.POST("/playlists", api.ResolveEndpoint(ctl.createPlaylist))
	r.PUT("/playlists/:id", api.ResolveEndpoint(ctl.updatePlaylist))
	r.DELETE("/playlists/:id", api.ResolveEndpoint(ctl.deletePlaylist))
}

func (p *PlaylistController) listPlaylists(ctx *gin.Context) (any, *api.Error) {
	all, err := p.store.ListPlaylists(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[playlist] list failed")
		return nil, api.MapStoreError(err)
	}
	return all, nil
}

func (p *PlaylistController) getPlaylist(ctx *gin.Context) (any, *api.Error) {
	pl, err := p.store.GetPlaylist(ctx, ctx.Param("id"))
	if err != nil {
		return nil, api.MapStoreError(err)
	}
	return pl, nil
}

func (p *PlaylistController) createPlaylist(ctx *gin.Context) (any, *api.Error) {
	var req packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	created, err := p.store.CreatePlaylist(ctx, model.Playlist{
		Name:        req.Name,
		Device:      req.Device,
		LayoutID:    req.LayoutID,
		Assignments: req.Assignments,
	})
	if err != nil {
		log.Error().Err(err).Msg("[playlist] create failed")
		return nil, api.MapStoreError(err)
	}
	go p.notifier.PlaylistChanged(context.Background(), created.ID)
	return created, nil
}

func (p *PlaylistController) updatePlaylist(ctx *gin.Context) (any, *api.Error) {
	var patch model.PlaylistPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	id := ctx.Param("id")
	updated, err := p.store.UpdatePlaylist(ctx, id, patch)
	if err != nil {
		log.Error().Err(err).Str("playlist_id", id).Msg("[playlist] update failed")
		return nil, api.MapStoreError(err)
	}
	go p.notifier.PlaylistChanged(context.Background(), id)
	return updated, nil
}

func (p *PlaylistController) deletePlaylist(ctx *gin.Context) (any, *api.Error) {
	id := ctx.Param("id")
	if err := p.store.DeletePlaylist(ctx, id); err != nil {
		log.Error().Err(err).Str("playlist_id", id).Msg("[playlist] delete failed")
		return nil, api.MapStoreError(err)
	}
	go p.notifier.PlaylistChanged(context.Background(), id)
	return packets.DeleteResponse{Deleted: id}, nil
}
