package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/country-explorer/internal/domain"
)

func record(cca3, name string, population float64) domain.CountryRecord {
	return domain.CountryRecord{
		Name:       name,
		CCA3:       cca3,
		Region:     "Europe",
		Population: population,
		Flag:       "https://flagcdn.com/" + cca3 + ".svg",
		Languages:  []string{},
		Currencies: []string{},
		Borders:    []string{},
	}
}

func loadedApp(t *testing.T, store Store) *App {
	t.Helper()
	app := NewApp(store)
	require.NoError(t, app.Load())
	return app
}

func TestFavorites_ToggleTwiceRestoresSet(t *testing.T) {
	app := loadedApp(t, NewMemoryStore())
	deu, fra := record("DEU", "Germany", 83e6), record("FRA", "France", 67e6)

	_, err := app.Favorites.Toggle(deu)
	require.NoError(t, err)
	before := app.Favorites.List()

	added, err := app.Favorites.Toggle(fra)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, app.Favorites.IsFavorite("FRA"))

	added, err = app.Favorites.Toggle(fra)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, app.Favorites.IsFavorite("FRA"))

	if diff := cmp.Diff(before, app.Favorites.List()); diff != "" {
		t.Errorf("favorites changed after toggling twice (-want +got):\n%s", diff)
	}
}

func TestFavorites_IdentityIsCCA3(t *testing.T) {
	app := loadedApp(t, NewMemoryStore())

	_, _ = app.Favorites.Toggle(record("DEU", "Germany", 83e6))
	added, err := app.Favorites.Toggle(record("DEU", "Deutschland", 0))
	require.NoError(t, err)

	assert.False(t, added, "same cca3 counts as the same country")
	assert.Empty(t, app.Favorites.List())
}

func TestFavorites_PersistAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	app := loadedApp(t, NewFileStore(path))
	_, err := app.Favorites.Toggle(record("JPN", "Japan", 125e6))
	require.NoError(t, err)
	_, err = app.Theme.Toggle()
	require.NoError(t, err)

	reloaded := loadedApp(t, NewFileStore(path))
	require.Len(t, reloaded.Favorites.List(), 1)
	assert.Equal(t, "Japan", reloaded.Favorites.List()[0].Name)
	assert.Equal(t, ThemeDark, reloaded.Theme.Get())
}

func TestFavorites_Migrate(t *testing.T) {
	app := loadedApp(t, NewMemoryStore())
	stale := record("DEU", "Germany", 0)
	unknown := record("XKX", "Kosovo", 0)
	_, _ = app.Favorites.Toggle(stale)
	_, _ = app.Favorites.Toggle(unknown)

	n, err := app.Favorites.Migrate([]domain.CountryRecord{record("DEU", "Germany", 83240525), record("FRA", "France", 1)})
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	got := app.Favorites.List()
	require.Len(t, got, 2)
	assert.InDelta(t, 83240525.0, got[0].Population, 0)
	assert.Equal(t, "XKX", got[1].CCA3, "favorites missing from the dataset are kept")
}

func TestFavorites_MigrateNoopWhenComplete(t *testing.T) {
	app := loadedApp(t, NewMemoryStore())
	_, _ = app.Favorites.Toggle(record("DEU", "Germany", 83e6))

	n, err := app.Favorites.Migrate([]domain.CountryRecord{record("DEU", "Germany", 1)})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.InDelta(t, 83e6, app.Favorites.List()[0].Population, 0)
}

func TestTheme(t *testing.T) {
	app := loadedApp(t, NewMemoryStore())
	assert.Equal(t, ThemeLight, app.Theme.Get())

	next, err := app.Theme.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, next)

	next, err = app.Theme.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, next)

	require.NoError(t, app.Theme.Set(ThemeDark))
	assert.Equal(t, ThemeDark, app.Theme.Get())
	require.Error(t, app.Theme.Set("sepia"))
	assert.Equal(t, ThemeDark, app.Theme.Get())
}

func TestLoad_IgnoresCorruptValues(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(FavoritesKey, []byte(`{"not":"a list"}`)))
	require.NoError(t, store.Set(ThemeKey, []byte(`"sepia"`)))

	app := loadedApp(t, store)
	assert.Empty(t, app.Favorites.List())
	assert.Equal(t, ThemeLight, app.Theme.Get())
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o600))

	store := NewFileStore(path)
	_, ok, err := store.Get(ThemeKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ThemeKey, []byte(`"dark"`)))
	v, ok, err := NewFileStore(path).Get(ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `"dark"`, string(v))
}

func TestFileStore_RejectsNonJSON(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.Error(t, store.Set("k", []byte("not json")))
}

type failingStore struct{}

func (failingStore) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk gone") }
func (failingStore) Set(string, []byte) error         { return errors.New("disk gone") }

func TestStoreFailures(t *testing.T) {
	app := NewApp(failingStore{})
	require.Error(t, app.Load())

	_, err := app.Favorites.Toggle(record("DEU", "Germany", 1))
	require.Error(t, err)
	assert.Empty(t, app.Favorites.List(), "failed saves leave state unchanged")

	_, err = app.Theme.Toggle()
	require.Error(t, err)
	assert.Equal(t, ThemeLight, app.Theme.Get())
}

func TestNewApp_NilStorePanics(t *testing.T) {
	assert.Panics(t, func() { NewApp(nil) })
}
