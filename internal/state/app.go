package state

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/couchcryptid/country-explorer/internal/domain"
)

// Storage keys.
const (
	FavoritesKey = "ge:favorites"
	ThemeKey     = "ge:theme"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// App is the explicitly owned application state. Load it once at startup;
// every mutation is saved before it returns.
type App struct {
	Favorites *Favorites
	Theme     *Theme
}

// NewApp creates application state over store. It panics on a nil store.
func NewApp(store Store) *App {
	if store == nil {
		panic("state: nil store")
	}
	return &App{
		Favorites: &Favorites{store: store},
		Theme:     &Theme{store: store, value: ThemeLight},
	}
}

// Load reads the persisted state. Missing or unreadable values fall back to
// no favorites and the light theme; only store failures are errors.
func (a *App) Load() error {
	if err := a.Favorites.load(); err != nil {
		return err
	}
	return a.Theme.load()
}

// Favorites is an ordered set of countries keyed by cca3.
type Favorites struct {
	store Store

	mu    sync.RWMutex
	items []domain.CountryRecord
}

// List returns the favorites in insertion order.
func (f *Favorites) List() []domain.CountryRecord {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]domain.CountryRecord(nil), f.items...)
}

// IsFavorite reports whether the country with cca3 code is a favorite.
func (f *Favorites) IsFavorite(code string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.indexLocked(code) >= 0
}

// Toggle removes rec if it is a favorite and appends it otherwise. It
// reports whether rec is a favorite afterwards.
func (f *Favorites) Toggle(rec domain.CountryRecord) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make([]domain.CountryRecord, 0, len(f.items)+1)
	removed := false
	for _, c := range f.items {
		if domain.SameCountry(c, rec) {
			removed = true
			continue
		}
		next = append(next, c)
	}
	if !removed {
		next = append(next, rec)
	}

	if err := f.saveLocked(next); err != nil {
		return !removed, err
	}
	return !removed, nil
}

// Migrate replaces favorites with their current dataset entry when any
// stored favorite is incomplete. It reports how many records were replaced.
func (f *Favorites) Migrate(all []domain.CountryRecord) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stale := false
	for _, c := range f.items {
		if c.NeedsRefresh() {
			stale = true
			break
		}
	}
	if !stale || len(all) == 0 {
		return 0, nil
	}

	idx := domain.IndexByCCA3(all)
	next := make([]domain.CountryRecord, len(f.items))
	replaced := 0
	for i, c := range f.items {
		if fresh, ok := idx[c.CCA3]; ok {
			next[i] = fresh
			replaced++
			continue
		}
		next[i] = c
	}
	if err := f.saveLocked(next); err != nil {
		return 0, err
	}
	return replaced, nil
}

func (f *Favorites) indexLocked(code string) int {
	for i, c := range f.items {
		if c.CCA3 == code {
			return i
		}
	}
	return -1
}

func (f *Favorites) load() error {
	b, ok, err := f.store.Get(FavoritesKey)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	var items []domain.CountryRecord
	if ok {
		if err := json.Unmarshal(b, &items); err != nil {
			items = nil
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
	return nil
}

func (f *Favorites) saveLocked(next []domain.CountryRecord) error {
	if next == nil {
		next = []domain.CountryRecord{}
	}
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := f.store.Set(FavoritesKey, b); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	f.items = next
	return nil
}

// Theme is the light/dark preference.
type Theme struct {
	store Store

	mu    sync.RWMutex
	value string
}

// Get returns the current theme.
func (t *Theme) Get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value
}

// Set stores v, which must be ThemeLight or ThemeDark.
func (t *Theme) Set(v string) error {
	if v != ThemeLight && v != ThemeDark {
		return fmt.Errorf("state: unknown theme %q", v)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveLocked(v)
}

// Toggle flips between light and dark and returns the new theme.
func (t *Theme) Toggle() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := ThemeDark
	if t.value == ThemeDark {
		next = ThemeLight
	}
	if err := t.saveLocked(next); err != nil {
		return t.value, err
	}
	return next, nil
}

func (t *Theme) load() error {
	b, ok, err := t.store.Get(ThemeKey)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	value := ThemeLight
	var stored string
	if ok && json.Unmarshal(b, &stored) == nil && (stored == ThemeLight || stored == ThemeDark) {
		value = stored
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = value
	return nil
}

func (t *Theme) saveLocked(v string) error {
	b, _ := json.Marshal(v)
	if err := t.store.Set(ThemeKey, b); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	t.value = v
	return nil
}
