package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenview/lumen/internal/model"
)

var stamp = time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)

func validContent() model.Content {
	return model.Content{
		ID:        "c1",
		Name:      "promo video",
		Type:      model.ContentURL,
		URL:       &model.URLInfo{URL: "https://example.com/promo"},
		Tags:      []string{"promo"},
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
}

func TestContentValid(t *testing.T) {
	got, err := Content(validContent())
	require.NoError(t, err)
	assert.Equal(t, validContent(), got)
}

func TestContentRevalidationIsIdempotent(t *testing.T) {
	c := validContent()
	c.Tags = nil // legacy records predate tags

	once, err := Content(c)
	require.NoError(t, err)
	twice, err := Content(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.NotNil(t, once.Tags)
}

func TestContentPayloadMustMatchType(t *testing.T) {
	c := validContent()
	c.Type = model.ContentVideo // but URL payload is populated
	_, err := Content(c)
	require.Error(t, err)

	var verr *Error
	assert.ErrorAs(t, err, &verr)
}

func TestContentRejectsMultiplePayloads(t *testing.T) {
	c := validContent()
	c.Text = &model.TextInfo{Text: "hi"}
	_, err := Content(c)
	assert.Error(t, err)
}

func TestContentRejectsUnknownType(t *testing.T) {
	c := validContent()
	c.Type = "hologram"
	_, err := Content(c)
	assert.Error(t, err)
}

func TestContentPerTypePayloads(t *testing.T) {
	cases := []model.Content{
		{Type: model.ContentVideo, File: &model.FileInfo{StoragePath: "content/files/v.mp4", MimeType: "video/mp4", Size: 10}},
		{Type: model.ContentImage, File: &model.FileInfo{StoragePath: "content/files/i.png", MimeType: "image/png"}},
		{Type: model.ContentText, Text: &model.TextInfo{Text: "welcome"}},
		{Type: model.ContentWeather, Weather: &model.WeatherInfo{Location: "Austin,TX"}},
		{Type: model.ContentCSV, CSV: &model.CSVInfo{Source: "a,b\n1,2"}},
		{Type: model.ContentYouTube, URL: &model.URLInfo{URL: "https://youtu.be/x"}},
	}
	for _, c := range cases {
		c.ID, c.Name = "id", "name"
		c.CreatedAt, c.UpdatedAt = stamp, stamp
		_, err := Content(c)
		assert.NoError(t, err, "type %s", c.Type)
	}
}

func validLayout() model.Layout {
	z0, z1 := 0, 1
	return model.Layout{
		ID:          "l1",
		Name:        "two up",
		Orientation: model.OrientationLandscape,
		Regions: []model.Region{
			{ID: "r1", X: 0, Y: 0, Width: 960, Height: 1080, Z: &z0},
			{ID: "r2", X: 960, Y: 0, Width: 960, Height: 1080, Z: &z1},
		},
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
}

func TestLayoutValid(t *testing.T) {
	got, err := Layout(validLayout())
	require.NoError(t, err)
	assert.Equal(t, validLayout(), got)
}

func TestLayoutBackfillsMissingZ(t *testing.T) {
	l := validLayout()
	l.Regions[0].Z = nil
	l.Regions[1].Z = nil

	got, err := Layout(l)
	require.NoError(t, err)
	require.NotNil(t, got.Regions[0].Z)
	require.NotNil(t, got.Regions[1].Z)
	assert.Equal(t, 0, *got.Regions[0].Z)
	assert.Equal(t, 1, *got.Regions[1].Z)

	// Defaulting twice yields the same record.
	again, err := Layout(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestLayoutRejectsDuplicateRegionIDs(t *testing.T) {
	l := validLayout()
	l.Regions[1].ID = "r1"
	_, err := Layout(l)
	assert.Error(t, err)
}

func TestLayoutRejectsBadOrientation(t *testing.T) {
	l := validLayout()
	l.Orientation = "upside-down"
	_, err := Layout(l)
	assert.Error(t, err)
}

func validPlaylist() model.Playlist {
	return model.Playlist{
		ID:       "p1",
		Name:     "lobby loop",
		Device:   "lobby-tv",
		LayoutID: "l1",
		Assignments: []model.RegionAssignment{
			{
				RegionID:   "r1",
				ContentIDs: []string{"c1", "c2"},
				ContentDurations: []model.ContentDuration{
					{ContentID: "c1", Duration: 30},
				},
			},
		},
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
}

func TestPlaylistValid(t *testing.T) {
	got, err := Playlist(validPlaylist())
	require.NoError(t, err)
	assert.Equal(t, validPlaylist(), got)
}

func TestPlaylistDurationMustReferenceAssignedContent(t *testing.T) {
	p := validPlaylist()
	p.Assignments[0].ContentDurations = []model.ContentDuration{
		{ContentID: "c99", Duration: 30},
	}
	_, err := Playlist(p)
	assert.Error(t, err)
}

func TestPlaylistRejectsNonPositiveDuration(t *testing.T) {
	p := validPlaylist()
	p.Assignments[0].ContentDurations[0].Duration = 0
	_, err := Playlist(p)
	assert.Error(t, err)
}

func TestPlaylistRegionsMustExistInLayout(t *testing.T) {
	p := validPlaylist()
	layout := validLayout()

	require.NoError(t, PlaylistRegions(p, layout))

	p.Assignments[0].RegionID = "r9"
	assert.Error(t, PlaylistRegions(p, layout))

	layout.Regions = nil
	assert.Error(t, PlaylistRegions(validPlaylist(), layout))
}

func validSchedule() model.Schedule {
	return model.Schedule{
		ID:         "s1",
		Name:       "morning show",
		Time:       "09:00",
		Weekdays:   []time.Weekday{time.Monday, time.Tuesday},
		Event:      model.EventPlaylist,
		PlaylistID: "p1",
		Enabled:    true,
		CreatedAt:  stamp,
		UpdatedAt:  stamp,
	}
}

func TestScheduleValid(t *testing.T) {
	got, err := Schedule(validSchedule())
	require.NoError(t, err)
	assert.Equal(t, validSchedule(), got)
}

func TestScheduleRejectsBadTime(t *testing.T) {
	for _, bad := range []string{"24:00", "9:00", "12:60", "noon", ""} {
		s := validSchedule()
		s.Time = bad
		_, err := Schedule(s)
		assert.Error(t, err, "time %q", bad)
	}
}

func TestScheduleDedupesAndSortsWeekdays(t *testing.T) {
	s := validSchedule()
	s.Weekdays = []time.Weekday{time.Friday, time.Monday, time.Friday}

	got, err := Schedule(s)
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, got.Weekdays)
}

func TestScheduleRequiresWeekdays(t *testing.T) {
	s := validSchedule()
	s.Weekdays = nil
	_, err := Schedule(s)
	assert.Error(t, err)
}

func TestSchedulePlaylistReference(t *testing.T) {
	s := validSchedule()
	s.PlaylistID = ""
	_, err := Schedule(s)
	assert.Error(t, err, "playlist event requires playlist_id")

	s = validSchedule()
	s.Event = model.EventReboot
	_, err = Schedule(s)
	assert.Error(t, err, "reboot event must not carry playlist_id")

	s.PlaylistID = ""
	_, err = Schedule(s)
	assert.NoError(t, err)
}
