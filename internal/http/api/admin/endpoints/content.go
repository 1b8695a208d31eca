package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumenview/lumen/internal/http/api"
	"github.com/lumenview/lumen/internal/http/api/admin/packets"
	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/storage"
	"github.com/lumenview/lumen/internal/store"
)

type ContentController struct {
	store   store.Store
	uploads storage.Storage
}

func NewContentController(st store.Store, uploads storage.Storage) *ContentController {
	return &ContentController{store: st, uploads: uploads}
}

func RegisterContentRoutes(r gin.IRoutes, st store.Store, uploads storage.Storage) {
	ctl := NewContentController(st, uploads)

	r.GET("/content", api.ResolveEndpoint(ctl.listContent))
	r.GET("/content/:id", api.ResolveEndpoint(ctl.getContent))
	r.GET("/content/:id/usage", api.ResolveEndpoint(ctl.contentUsage))
	r.POST("/content", api.ResolveEndpoint(ctl.createContent))
	r.POST("/content/upload", api.ResolveEndpoint(ctl.uploadContent))
	r.PUT("/content/:id", api.ResolveEndpoint(ctl.updateContent))
	r.DELETE("/content/:id", api.ResolveEndpoint(ctl.deleteContent))
}

func (c *ContentController) listContent(ctx *gin.Context) (any, *api.Error) {
	all, err := c.store.ListContent(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[content] list failed")
		return nil, api.MapStoreError(err)
	}
	return all, nil
}

func (c *ContentController) getContent(ctx *gin.Context) (any, *api.Error) {
	item, err := c.store.GetContent(ctx, ctx.Param("id"))
	if err != nil {
		return nil, api.MapStoreError(err)
	}
	return item, nil
}

func (c *ContentController) contentUsage(ctx *gin.Context) (any, *api.Error) {
	report, err := c.store.ContentUsage(ctx, ctx.Param("id"))
	if err != nil {
		log.Error().Err(err).Msg("[content] usage scan failed")
		return nil, api.MapStoreError(err)
	}
	return report, nil
}

func (c *ContentController) createContent(ctx *gin.Context) (any, *api.Error) {
	var req packets.CreateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := c.store.CreateContent(ctx, model.Content{
		Name:    req.Name,
		Type:    req.Type,
		File:    req.File,
		URL:     req.URL,
		Text:    req.Text,
		Weather: req.Weather,
		CSV:     req.CSV,
		Tags:    req.Tags,
	})
	if err != nil {
		log.Error().Err(err).Msg("[content] create failed")
		return nil, api.MapStoreError(err)
	}
	return created, nil
}

// uploadContent accepts a multipart form: a media file plus name/type fields.
// The binary is saved through the upload backend first; the catalog record
// references the resulting path.
func (c *ContentController) uploadContent(ctx *gin.Context) (any, *api.Error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "file is required"}
	}
	name := ctx.PostForm("name")
	if name == "" {
		name = fileHeader.Filename
	}
	contentType := model.ContentType(ctx.PostForm("type"))
	if contentType == "" {
		contentType = model.ContentImage
	}

	contentID := uuid.NewString()
	savedPath, err := c.uploads.SaveFile(fileHeader, contentID)
	if err != nil {
		log.Error().Err(err).Msg("[content] upload failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not save file"}
	}

	created, err := c.store.CreateContent(ctx, model.Content{
		ID:   contentID,
		Name: name,
		Type: contentType,
		File: &model.FileInfo{
			Size:        fileHeader.Size,
			MimeType:    fileHeader.Header.Get("Content-Type"),
			StoragePath: savedPath,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("[content] create after upload failed")
		return nil, api.MapStoreError(err)
	}
	return created, nil
}

func (c *ContentController) updateContent(ctx *gin.Context) (any, *api.Error) {
	var patch model.ContentPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	updated, err := c.store.UpdateContent(ctx, ctx.Param("id"), patch)
	if err != nil {
		log.Error().Err(err).Msg("[content] update failed")
		return nil, api.MapStoreError(err)
	}
	return updated, nil
}

// deleteContent refuses while playlists reference the id unless ?force=true,
// which strips the references first.
func (c *ContentController) deleteContent(ctx *gin.Context) (any, *api.Error) {
	id := ctx.Param("id")
	var err error
	if ctx.Query("force") == "true" {
		err = c.store.ForceDeleteContent(ctx, id)
	} else {
		err = c.store.DeleteContent(ctx, id)
	}
	if err != nil {
		log.Error().Err(err).Str("content_id", id).Msg("[content] delete failed")
		return nil, api.MapStoreError(err)
	}
	return packets.DeleteResponse{Deleted: id}, nil
}
