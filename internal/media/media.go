// Package media declares the rendering collaborators the content store
// invokes. Implementations live with the player/rendering side; the store
// only depends on these contracts.
package media

// ThumbnailResult is the generated preview plus what the generator learned
// about the source file while producing it.
type ThumbnailResult struct {
	Bytes    []byte
	Width    int
	Height   int
	Duration float64 // seconds, zero for still images
}

// Thumbnailer produces a JPEG preview for an uploaded media file. Failures
// are non-fatal to content creation: the record is simply stored without a
// thumbnail.
type Thumbnailer interface {
	GenerateThumbnail(storagePath string, mimeType string) (ThumbnailResult, error)
}

// CSVSpec is the layout and styling the renderer turns into an image.
type CSVSpec struct {
	Source      string
	Columns     []string
	HeaderColor string
	RowColor    string
}

// CSVRenderer rasterizes CSV data into an image and returns its storage
// path. Failures are fatal to the calling operation: csv content is never
// persisted without its rendered image.
type CSVRenderer interface {
	RenderToImage(spec CSVSpec) (string, error)
}
