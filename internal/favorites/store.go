package favorites

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/weatherpocket/weatherpocket/internal/geo"
	"github.com/weatherpocket/weatherpocket/internal/storage"
)

const (
	// MaxFavorites caps how many locations can be bookmarked.
	MaxFavorites = 6

	storageKey = "weather-pocket-favorites"
)

var (
	// ErrDuplicate is returned when the location is already bookmarked.
	ErrDuplicate = errors.New("location is already in favorites")

	// ErrCapacity is returned when the store already holds MaxFavorites entries.
	ErrCapacity = errors.New("favorites limit of 6 locations reached")
)

// Location is a bookmarked place. ID is derived from the normalized
// coordinate and is unique within the store.
type Location struct {
	ID       string  `json:"id"`
	Nickname string  `json:"nickname"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	AddedAt  int64   `json:"addedAt"` // epoch milliseconds, display/ordering only
}

// Store owns the bookmark list and its invariants: at most MaxFavorites
// entries, unique IDs, newest-first order. Every mutation is persisted
// best-effort through the injected KV; a persistence failure is logged and
// never surfaced to the caller.
type Store struct {
	mu  sync.Mutex
	kv  storage.KV
	now func() time.Time

	entries []Location
}

// NewStore loads any previously persisted list from kv. Malformed stored
// data degrades to an empty list.
func NewStore(kv storage.KV) *Store {
	s := &Store{
		kv:  kv,
		now: time.Now,
	}

	raw, err := kv.Get(storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("favorites: failed to read stored list: %v", err)
		}
		return s
	}

	if err := json.Unmarshal([]byte(raw), &s.entries); err != nil {
		log.Printf("favorites: discarding malformed stored list: %v", err)
		s.entries = nil
	}
	return s
}

// Add bookmarks a location. The coordinate is normalized to 4 decimals
// before deriving the ID, so representations below that precision collapse
// into one entry. Nickname is expected to be trimmed and non-empty; that
// check belongs to the caller.
func (s *Store) Add(lat, lon float64, nickname string) (Location, error) {
	coord := geo.Normalize(lat, lon)
	id := coord.ID()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.entries {
		if f.ID == id {
			return Location{}, ErrDuplicate
		}
	}
	if len(s.entries) >= MaxFavorites {
		return Location{}, ErrCapacity
	}

	fav := Location{
		ID:       id,
		Nickname: nickname,
		Lat:      coord.Lat,
		Lon:      coord.Lon,
		AddedAt:  s.now().UnixMilli(),
	}

	// Newest first.
	s.entries = append([]Location{fav}, s.entries...)
	s.persist()
	return fav, nil
}

// Remove deletes the entry with the given ID. Removing an absent ID is a
// no-op, not an error.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.entries {
		if f.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist()
			return
		}
	}
}

// UpdateNickname replaces the nickname of the matching entry in place,
// keeping its list position. No-op when the ID is absent.
func (s *Store) UpdateNickname(id, nickname string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Nickname = nickname
			s.persist()
			return
		}
	}
}

// IsFavorite reports whether the given ID is bookmarked.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(id)
}

// IsFavoriteCoord reports whether the location at (lat, lon) is bookmarked,
// normalizing the pair to the canonical ID first. It agrees with IsFavorite
// for any representation of the same physical location.
func (s *Store) IsFavoriteCoord(lat, lon float64) bool {
	id := geo.LocationID(lat, lon)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(id)
}

// ClearAll empties the list.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persist()
}

// List returns a copy of the bookmarks, newest first.
func (s *Store) List() []Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Location, len(s.entries))
	copy(out, s.entries)
	return out
}

// IsFull reports whether the store is at capacity.
func (s *Store) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) >= MaxFavorites
}

func (s *Store) contains(id string) bool {
	for _, f := range s.entries {
		if f.ID == id {
			return true
		}
	}
	return false
}

// persist writes the current list through the KV. Callers hold s.mu.
// Storage failures must not fail the logical mutation.
func (s *Store) persist() {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		log.Printf("favorites: failed to encode list: %v", err)
		return
	}
	if err := s.kv.Set(storageKey, string(raw)); err != nil {
		log.Printf("favorites: failed to persist list: %v", err)
	}
}
