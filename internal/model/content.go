package model

import "time"

// ContentType is the closed set of media kinds the player can render.
type ContentType string

const (
	ContentVideo   ContentType = "video"
	ContentImage   ContentType = "image"
	ContentText    ContentType = "text"
	ContentCSV     ContentType = "csv"
	ContentWeather ContentType = "weather"
	ContentURL     ContentType = "url"
	ContentYouTube ContentType = "youtube"
)

// ContentTypes lists every valid type tag, in display order.
var ContentTypes = []ContentType{
	ContentVideo, ContentImage, ContentText, ContentCSV,
	ContentWeather, ContentURL, ContentYouTube,
}

// FileInfo describes an uploaded media binary backing video/image content.
type FileInfo struct {
	Size          int64   `json:"size"`
	MimeType      string  `json:"mime_type"`
	StoragePath   string  `json:"storage_path"`
	ThumbnailPath string  `json:"thumbnail_path,omitempty"`
	Width         int     `json:"width,omitempty"`
	Height        int     `json:"height,omitempty"`
	Duration      float64 `json:"duration,omitempty"` // seconds, video only
}

// URLInfo backs url and youtube content.
type URLInfo struct {
	URL string `json:"url"`
}

// TextInfo backs text content: the message plus its styling.
type TextInfo struct {
	Text       string `json:"text"`
	FontFamily string `json:"font_family,omitempty"`
	FontSize   int    `json:"font_size,omitempty"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
}

// WeatherInfo backs weather content.
type WeatherInfo struct {
	Location string `json:"location"`
	Units    string `json:"units,omitempty"` // "metric" or "imperial"
}

// CSVInfo backs csv content: source data, column layout and the path of the
// image the renderer produced from it.
type CSVInfo struct {
	Source       string   `json:"source"`
	Columns      []string `json:"columns,omitempty"`
	HeaderColor  string   `json:"header_color,omitempty"`
	RowColor     string   `json:"row_color,omitempty"`
	RenderedPath string   `json:"rendered_path,omitempty"`
}

// Content is the full detail record for one piece of media. Exactly one of
// File/URL/Text/Weather/CSV is populated, selected by Type.
type Content struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      ContentType  `json:"type"`
	File      *FileInfo    `json:"file,omitempty"`
	URL       *URLInfo     `json:"url,omitempty"`
	Text      *TextInfo    `json:"text,omitempty"`
	Weather   *WeatherInfo `json:"weather,omitempty"`
	CSV       *CSVInfo     `json:"csv,omitempty"`
	Tags      []string     `json:"tags"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ContentSummary is the index record shown in list views.
type ContentSummary struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          ContentType `json:"type"`
	ThumbnailPath string      `json:"thumbnail_path,omitempty"`
	Tags          []string    `json:"tags"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// ContentPatch carries partial updates; nil fields are left untouched.
type ContentPatch struct {
	Name    *string      `json:"name"`
	Type    *ContentType `json:"type"`
	File    *FileInfo    `json:"file"`
	URL     *URLInfo     `json:"url"`
	Text    *TextInfo    `json:"text"`
	Weather *WeatherInfo `json:"weather"`
	CSV     *CSVInfo     `json:"csv"`
	Tags    *[]string    `json:"tags"`
}

// Summary projects the detail record onto its index entry.
func (c Content) Summary() ContentSummary {
	s := ContentSummary{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		Tags:      c.Tags,
		UpdatedAt: c.UpdatedAt,
	}
	if c.File != nil {
		s.ThumbnailPath = c.File.ThumbnailPath
	}
	return s
}
