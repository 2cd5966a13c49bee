// Package upgrades persists the player's upgrade multipliers between runs.
package upgrades

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const itemKey = "upgrades"

var ErrInvalidStats = errors.New("upgrades: invalid stats")

// Storage is the subset of *gdata.Manager the store needs.
type Storage interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Stats are the saved upgrade values. Multipliers below 1 are rejected.
type Stats struct {
	DashDistanceMultiplier float64 `json:"dashDistanceMultiplier"`
	MovementMultiplier     float64 `json:"movementMultiplier"`
	// MoveSpeedEnabled gates MovementMultiplier; while false movement runs
	// at base speed whatever the multiplier.
	MoveSpeedEnabled bool `json:"moveSpeedEnabled"`
}

func DefaultStats() Stats {
	return Stats{DashDistanceMultiplier: 1, MovementMultiplier: 1}
}

func (s Stats) Validate() error {
	switch {
	case s.DashDistanceMultiplier < 1:
		return fmt.Errorf("%w: dash distance multiplier must be >= 1, got %v", ErrInvalidStats, s.DashDistanceMultiplier)
	case s.MovementMultiplier < 1:
		return fmt.Errorf("%w: movement multiplier must be >= 1, got %v", ErrInvalidStats, s.MovementMultiplier)
	}
	return nil
}

// Store holds the current stats and implements controller.Stats. A Store
// without storage keeps its stats in memory only.
type Store struct {
	storage Storage
	stats   Stats
}

// Open opens the per-user gdata directory for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("upgrades: open %s: %w", appName, err)
	}
	return NewStore(m), nil
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage, stats: DefaultStats()}
}

// Load replaces the current stats with the saved ones. Missing data keeps the
// defaults; corrupt or invalid data is reported and the defaults are kept.
func (s *Store) Load() error {
	if s == nil || s.storage == nil {
		return nil
	}
	data, err := s.storage.LoadItem(itemKey)
	if err != nil {
		return fmt.Errorf("upgrades: load: %w", err)
	}
	if len(data) == 0 {
		s.stats = DefaultStats()
		return nil
	}

	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("upgrades: parse: %w", err)
	}
	if err := stats.Validate(); err != nil {
		return err
	}
	s.stats = stats
	return nil
}

func (s *Store) Save() error {
	if s == nil || s.storage == nil {
		return nil
	}
	data, err := json.Marshal(s.stats)
	if err != nil {
		return fmt.Errorf("upgrades: encode: %w", err)
	}
	if err := s.storage.SaveItem(itemKey, data); err != nil {
		return fmt.Errorf("upgrades: save: %w", err)
	}
	return nil
}

// Reset restores the defaults and clears the saved item.
func (s *Store) Reset() error {
	if s == nil {
		return nil
	}
	s.stats = DefaultStats()
	if s.storage == nil {
		return nil
	}
	if err := s.storage.SaveItem(itemKey, nil); err != nil {
		return fmt.Errorf("upgrades: reset: %w", err)
	}
	log.Printf("upgrades: reset to defaults")
	return nil
}

// Set validates and applies stats without saving them.
func (s *Store) Set(stats Stats) error {
	if s == nil {
		return nil
	}
	if err := stats.Validate(); err != nil {
		return err
	}
	s.stats = stats
	return nil
}

func (s *Store) Stats() Stats {
	if s == nil {
		return DefaultStats()
	}
	return s.stats
}

func (s *Store) DashDistanceMultiplier() float64 {
	if s == nil {
		return 1
	}
	return s.stats.DashDistanceMultiplier
}

func (s *Store) MovementMultiplier() float64 {
	if s == nil || !s.stats.MoveSpeedEnabled {
		return 1
	}
	return s.stats.MovementMultiplier
}
