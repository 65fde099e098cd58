package settings

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/weatherpocket/weatherpocket/internal/storage"
)

// Unit is the temperature display unit.
type Unit string

// TimeFormat is the clock display format.
type TimeFormat string

const (
	UnitCelsius    Unit = "C"
	UnitFahrenheit Unit = "F"

	Format24h TimeFormat = "24h"
	Format12h TimeFormat = "12h"

	unitKey       = "weather-pocket-unit"
	timeFormatKey = "time-format"
)

// Store holds the two user-facing display toggles, persisted per key
// through the injected KV. Defaults are Celsius and 24-hour time.
type Store struct {
	mu sync.Mutex
	kv storage.KV

	unit   Unit
	format TimeFormat
}

// NewStore loads persisted toggles, falling back to defaults for missing
// or unrecognized values.
func NewStore(kv storage.KV) *Store {
	s := &Store{
		kv:     kv,
		unit:   UnitCelsius,
		format: Format24h,
	}

	if v, err := kv.Get(unitKey); err == nil {
		if u := Unit(v); u == UnitCelsius || u == UnitFahrenheit {
			s.unit = u
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("settings: failed to read unit: %v", err)
	}

	if v, err := kv.Get(timeFormatKey); err == nil {
		if f := TimeFormat(v); f == Format24h || f == Format12h {
			s.format = f
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("settings: failed to read time format: %v", err)
	}

	return s
}

func (s *Store) Unit() Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unit
}

func (s *Store) TimeFormat() TimeFormat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.format
}

// SetUnit stores the unit and persists it best-effort.
func (s *Store) SetUnit(u Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unit = u
	if err := s.kv.Set(unitKey, string(u)); err != nil {
		log.Printf("settings: failed to persist unit: %v", err)
	}
}

// SetTimeFormat stores the format and persists it best-effort.
func (s *Store) SetTimeFormat(f TimeFormat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.format = f
	if err := s.kv.Set(timeFormatKey, string(f)); err != nil {
		log.Printf("settings: failed to persist time format: %v", err)
	}
}

// ToggleUnit flips between Celsius and Fahrenheit.
func (s *Store) ToggleUnit() Unit {
	s.mu.Lock()
	next := UnitFahrenheit
	if s.unit == UnitFahrenheit {
		next = UnitCelsius
	}
	s.unit = next
	if err := s.kv.Set(unitKey, string(next)); err != nil {
		log.Printf("settings: failed to persist unit: %v", err)
	}
	s.mu.Unlock()
	return next
}

// ToggleTimeFormat flips between 24h and 12h.
func (s *Store) ToggleTimeFormat() TimeFormat {
	s.mu.Lock()
	next := Format12h
	if s.format == Format12h {
		next = Format24h
	}
	s.format = next
	if err := s.kv.Set(timeFormatKey, string(next)); err != nil {
		log.Printf("settings: failed to persist time format: %v", err)
	}
	s.mu.Unlock()
	return next
}

// ConvertTemp converts a Celsius reading into the configured display unit.
func (s *Store) ConvertTemp(tempC float64) float64 {
	if s.Unit() == UnitCelsius {
		return tempC
	}
	return tempC*9/5 + 32
}

// FormatTime renders hour/minute in the configured clock format.
func (s *Store) FormatTime(hour, minute int) string {
	if s.TimeFormat() == Format12h {
		period := "am"
		if hour >= 12 {
			period = "pm"
		}
		displayHour := hour % 12
		if displayHour == 0 {
			displayHour = 12
		}
		return fmt.Sprintf("%d:%02d %s", displayHour, minute, period)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
