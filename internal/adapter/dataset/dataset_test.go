package dataset

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/country-explorer/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFile_List(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"cca3":"DEU"},{"cca3":"FRA"}]`), 0o600))

	f := NewFile(path, discardLogger())
	got, err := f.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Cached after the first read.
	require.NoError(t, os.Remove(path))
	again, err := f.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestFile_List_NotConfigured(t *testing.T) {
	_, err := NewFile("", discardLogger()).List(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFile_List_Missing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "nope.json"), discardLogger()).List(context.Background())
	require.Error(t, err)
}

func TestFile_List_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o600))

	_, err := NewFile(path, discardLogger()).List(context.Background())
	require.Error(t, err)
}

func TestBundled_List(t *testing.T) {
	got, err := NewBundled().List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, got)

	records := domain.NormalizeAll(domain.MirrorCompatAll(got))
	assert.Equal(t, "Germany", records[0].Name)
	for _, r := range records {
		assert.NotEmpty(t, r.CCA3)
		assert.Positive(t, r.Population, r.Name)
	}
}

func TestBundled_ListReturnsCopy(t *testing.T) {
	b := NewBundledFrom([]domain.RawCountry{{"cca3": "DEU"}})
	got, _ := b.List(context.Background())
	got[0] = domain.RawCountry{"cca3": "XXX"}

	again, _ := b.List(context.Background())
	assert.Equal(t, "DEU", again[0]["cca3"])
}
