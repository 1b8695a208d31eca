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

type ScheduleController struct {
	store    store.Store
	notifier *notify.Notifier
}

func NewScheduleController(st store.Store, notifier *notify.Notifier) *ScheduleController {
	return &ScheduleController{store: st, notifier: notifier}
}

func RegisterScheduleRoutes(r gin.IRoutes, st store.Store, notifier *notify.Notifier) {
	ctl := NewScheduleController(st, notifier)

	r.GET("/schedules", api.ResolveEndpoint(ctl.listSchedules))
	r.GET("/schedules/:id", api.ResolveEndpoint(ctl.getSchedule))
	r.POST("/schedules", api.ResolveEndpoint(ctl.createSchedule))
	r.PUT("/schedules/:id", api.ResolveEndpoint(ctl.updateSchedule))
	r.DELETE("/schedules/:id", api.ResolveEndpoint(ctl.deleteSchedule))
}

// listSchedules returns the index, which the store keeps sorted by
// time-of-day ascending.
func (s *ScheduleController) listSchedules(ctx *gin.Context) (any, *api.Error) {
	all, err := s.store.ListSchedules(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[schedule] list failed")
		return nil, api.MapStoreError(err)
	}
	return all, nil
}

func (s *ScheduleController) getSchedule(ctx *gin.Context) (any, *api.Error) {
	sc, err := s.store.GetSchedule(ctx, ctx.Param("id"))
	if err != nil {
		return nil, api.MapStoreError(err)
	}
	return sc, nil
}

func (s *ScheduleController) createSchedule(ctx *gin.Context) (any, *api.Error) {
	var req packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	created, err := s.store.CreateSchedule(ctx, model.Schedule{
		Name:       req.Name,
		Time:       req.Time,
		Weekdays:   req.Weekdays,
		Event:      req.Event,
		PlaylistID: req.PlaylistID,
		Enabled:    enabled,
	})
	if err != nil {
		log.Error().Err(err).Msg("[schedule] create failed")
		return nil, api.MapStoreError(err)
	}
	go s.notifier.ScheduleChanged(context.Background(), created.ID)
	return created, nil
}

func (s *ScheduleController) updateSchedule(ctx *gin.Context) (any, *api.Error) {
	var patch model.SchedulePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	id := ctx.Param("id")
	updated, err := s.store.UpdateSchedule(ctx, id, patch)
	if err != nil {
		log.Error().Err(err).Str("schedule_id", id).Msg("[schedule] update failed")
		return nil, api.MapStoreError(err)
	}
	go s.notifier.ScheduleChanged(context.Background(), id)
	return updated, nil
}

func (s *ScheduleController) deleteSchedule(ctx *gin.Context) (any, *api.Error) {
	id := ctx.Param("id")
	if err := s.store.DeleteSchedule(ctx, id); err != nil {
		log.Error().Err(err).Str("schedule_id", id).Msg("[schedule] delete failed")
		return nil, api.MapStoreError(err)
	}
	go s.notifier.ScheduleChanged(context.Background(), id)
	return packets.DeleteResponse{Deleted: id}, nil
}
