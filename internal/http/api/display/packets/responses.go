package packets

// ManifestItem is one playable entry inside a region's rotation.
type ManifestItem struct {
	ContentID string `json:"content_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Src       string `json:"src,omitempty"`
	Duration  int    `json:"duration"` // seconds
}

// ManifestRegion is the rotation for one region of the layout.
type ManifestRegion struct {
	RegionID string         `json:"region_id"`
	X        int            `json:"x"`
	Y        int            `json:"y"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Z        int            `json:"z"`
	Items    []ManifestItem `json:"items"`
}

// ManifestResponse is everything a display needs to play a playlist.
type ManifestResponse struct {
	PlaylistID  string           `json:"playlist_id"`
	Name        string           `json:"name"`
	Device      string           `json:"device"`
	Orientation string           `json:"orientation"`
	Regions     []ManifestRegion `json:"regions"`
	UpdatedAt   string           `json:"updated_at"`
}
