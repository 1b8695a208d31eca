package packets

import (
	"time"

	"github.com/lumenview/lumen/internal/model"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type CreateContentRequest struct {
	Name    string             `json:"name" binding:"required"`
	Type    model.ContentType  `json:"type" binding:"required"`
	File    *model.FileInfo    `json:"file"`
	URL     *model.URLInfo     `json:"url"`
	Text    *model.TextInfo    `json:"text"`
	Weather *model.WeatherInfo `json:"weather"`
	CSV     *model.CSVInfo     `json:"csv"`
	Tags    []string           `json:"tags"`
}

type CreateLayoutRequest struct {
	Name        string            `json:"name" binding:"required"`
	Orientation model.Orientation `json:"orientation" binding:"required"`
	Regions     []model.Region    `json:"regions"`
}

type CreatePlaylistRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Device      string                   `json:"device"`
	LayoutID    string                   `json:"layout_id" binding:"required"`
	Assignments []model.RegionAssignment `json:"assignments"`
}

type CreateScheduleRequest struct {
	Name       string           `json:"name" binding:"required"`
	Time       string           `json:"time" binding:"required"`
	Weekdays   []time.Weekday   `json:"weekdays" binding:"required"`
	Event      model.EventType  `json:"event" binding:"required"`
	PlaylistID string           `json:"playlist_id"`
	Enabled    *bool            `json:"enabled"`
}
