package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/lumenview/lumen/internal/http/api"
	"github.com/lumenview/lumen/internal/http/api/display/packets"
	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/notify"
	"github.com/lumenview/lumen/internal/store"
)

// defaultItemDuration applies when an assignment has no duration entry for a
// content id.
const defaultItemDuration = 10

type ManifestController struct {
	store store.Store
	rdb   *redis.Client
}

func NewManifestController(st store.Store, rdb *redis.Client) *ManifestController {
	return &ManifestController{store: st, rdb: rdb}
}

func RegisterDisplayRoutes(r gin.IRoutes, st store.Store, rdb *redis.Client) {
	ctl := NewManifestController(st, rdb)
	r.GET("/playlists/:id/manifest", ctl.getManifest)
}

// getManifest resolves a playlist into the flat play plan a display needs.
// This is a display read: it runs outside any lock and tolerates a stale
// snapshot. The ETag is cached in redis and invalidated by the notifier on
// every playlist mutation.
func (m *ManifestController) getManifest(ctx *gin.Context) {
	id := ctx.Param("id")

	playlist, err := m.store.GetPlaylist(ctx, id)
	if err != nil {
		if apiErr := api.MapStoreError(err); apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		}
		return
	}

	etag := m.manifestETag(ctx, playlist)
	if etag != "" && ctx.GetHeader("If-None-Match") == etag {
		ctx.Status(http.StatusNotModified)
		return
	}

	layout, err := m.store.GetLayout(ctx, playlist.LayoutID)
	if err != nil {
		log.Error().Err(err).Str("playlist_id", id).Msg("[display] manifest: layout unavailable")
		apiErr := api.MapStoreError(err)
		ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}

	resp := packets.ManifestResponse{
		PlaylistID:  playlist.ID,
		Name:        playlist.Name,
		Device:      playlist.Device,
		Orientation: string(layout.Orientation),
		Regions:     []packets.ManifestRegion{},
		UpdatedAt:   playlist.UpdatedAt.Format(time.RFC3339),
	}

	for _, assignment := range playlist.Assignments {
		region, ok := layout.Region(assignment.RegionID)
		if !ok {
			continue
		}
		z := 0
		if region.Z != nil {
			z = *region.Z
		}
		out := packets.ManifestRegion{
			RegionID: region.ID,
			X:        region.X,
			Y:        region.Y,
			Width:    region.Width,
			Height:   region.Height,
			Z:        z,
			Items:    []packets.ManifestItem{},
		}

		durations := make(map[string]int, len(assignment.ContentDurations))
		for _, d := range assignment.ContentDurations {
			durations[d.ContentID] = d.Duration
		}

		for _, contentID := range assignment.ContentIDs {
			content, err := m.store.GetContent(ctx, contentID)
			if err != nil {
				// Playlists may reference content that no longer (or does
				// not yet) exist; displays just skip those slots.
				if errors.Is(err, store.ErrNotFound) {
					continue
				}
				apiErr := api.MapStoreError(err)
				ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
				return
			}
			duration, ok := durations[contentID]
			if !ok {
				duration = defaultItemDuration
			}
			out.Items = append(out.Items, packets.ManifestItem{
				ContentID: content.ID,
				Name:      content.Name,
				Type:      string(content.Type),
				Src:       contentSrc(content),
				Duration:  duration,
			})
		}
		resp.Regions = append(resp.Regions, out)
	}

	if etag != "" {
		ctx.Header("ETag", etag)
	}
	ctx.JSON(http.StatusOK, resp)
}

// manifestETag returns the cached ETag for the playlist, computing and
// caching it when absent. Without redis there is no ETag handling.
func (m *ManifestController) manifestETag(ctx *gin.Context, playlist model.Playlist) string {
	if m.rdb == nil {
		return ""
	}
	key := notify.ManifestETagKey(playlist.ID)
	if etag, err := m.rdb.Get(ctx, key).Result(); err == nil && etag != "" {
		return etag
	}
	etag := fmt.Sprintf("%q", fmt.Sprintf("%s-%d", playlist.ID, playlist.UpdatedAt.UnixNano()))
	if err := m.rdb.Set(ctx, key, etag, 24*time.Hour).Err(); err != nil {
		log.Warn().Err(err).Str("playlist_id", playlist.ID).Msg("[display] manifest: could not cache ETag")
	}
	return etag
}

// contentSrc picks the URL or path a display loads for a content item.
func contentSrc(c model.Content) string {
	switch {
	case c.File != nil:
		return c.File.StoragePath
	case c.URL != nil:
		return c.URL.URL
	case c.CSV != nil:
		return c.CSV.RenderedPath
	default:
		return "" // text and weather render client-side from the record
	}
}
