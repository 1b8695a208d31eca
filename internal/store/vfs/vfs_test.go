package vfs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func newTestStore() *Store {
	return New(afero.NewMemMapFs())
}

func TestRecordRoundTrip(t *testing.T) {
	s := newTestStore()

	in := record{ID: "a1", Name: "hello", Tags: []string{"x", "y"}}
	require.NoError(t, WriteRecord(s, "content/content-a1.json", in))

	out, err := ReadRecord[record](s, "content/content-a1.json")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadMissingRecord(t *testing.T) {
	s := newTestStore()

	_, err := ReadRecord[record](s, "content/content-missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadCorruptRecord(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.WriteBytes("content/index.json", []byte("{not json")))

	_, err := ReadRecord[[]record](s, "content/index.json")
	assert.ErrorIs(t, err, ErrCorruptRecord)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDeleteRecord(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.WriteBytes("layout/layout-1.json", []byte("{}")))
	require.NoError(t, s.Delete("layout/layout-1.json"))
	assert.False(t, s.Exists("layout/layout-1.json"))

	assert.ErrorIs(t, s.Delete("layout/layout-1.json"), ErrNotFound)
}

func TestOverwriteIsWholesale(t *testing.T) {
	s := newTestStore()

	require.NoError(t, WriteRecord(s, "x.json", record{ID: "1", Name: "first"}))
	require.NoError(t, WriteRecord(s, "x.json", record{ID: "1", Name: "second"}))

	out, err := ReadRecord[record](s, "x.json")
	require.NoError(t, err)
	assert.Equal(t, "second", out.Name)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.WriteBytes("schedule/index.json", []byte("[]")))

	names, err := s.ListChildren("schedule")
	require.NoError(t, err)
	assert.Equal(t, []string{"index.json"}, names)
}

func TestListChildrenMissingDir(t *testing.T) {
	s := newTestStore()

	names, err := s.ListChildren("nope")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPathEscapeRejected(t *testing.T) {
	s := newTestStore()

	assert.Error(t, s.WriteBytes("../outside.json", []byte("x")))
	_, err := s.ReadBytes("/etc/passwd")
	assert.Error(t, err)
}
