package settings

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownSetting is returned when an operation names an id the store does not hold.
var ErrUnknownSetting = errors.New("unknown item setting")

// Stats holds the lifetime counters for one item.
type Stats struct {
	Times int `json:"times" yaml:"times"`
	Right int `json:"right" yaml:"right"`
	Wrong int `json:"wrong" yaml:"wrong"`
}

// Record counts one answer. It has no dedup logic of its own; callers decide
// which answers count.
func (s *Stats) Record(correct bool) {
	s.Times++
	if correct {
		s.Right++
	} else {
		s.Wrong++
	}
}

// Accuracy returns Right/Times, or 0 if the item was never attempted.
func (s Stats) Accuracy() float64 {
	if s.Times == 0 {
		return 0
	}
	return float64(s.Right) / float64(s.Times)
}

// ItemSetting is the per-item configuration plus lifetime stats.
type ItemSetting struct {
	ID      string
	Enabled bool
	Stats   Stats
}

// Repo is the persistence backend for item settings.
type Repo interface {
	// Load returns all stored settings in display order.
	Load(ctx context.Context) ([]ItemSetting, error)

	// Save replaces the stored settings with the given ordered list.
	Save(ctx context.Context, items []ItemSetting) error
}

// Store is the in-process handle on item settings. Entries are pointers so
// the quiz can update stats in place; Persist writes them back through the repo.
type Store struct {
	repo  Repo
	items []*ItemSetting
	index map[string]*ItemSetting
}

// Load reads settings from repo and reconciles them with the dataset ids:
// ids missing from the repo are appended enabled with zero stats, and stored
// entries whose id is no longer in the dataset are kept as-is so a later Start
// can report the inconsistency.
func Load(ctx context.Context, repo Repo, ids []string) (*Store, error) {
	stored, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	s := &Store{
		repo:  repo,
		index: make(map[string]*ItemSetting, len(ids)),
	}
	for i := range stored {
		s.add(stored[i])
	}
	for _, id := range ids {
		if _, ok := s.index[id]; !ok {
			s.add(ItemSetting{ID: id, Enabled: true})
		}
	}
	return s, nil
}

func (s *Store) add(item ItemSetting) {
	if _, dup := s.index[item.ID]; dup {
		return
	}
	p := &item
	s.items = append(s.items, p)
	s.index[item.ID] = p
}

// Items returns the settings in display order.
func (s *Store) Items() []*ItemSetting {
	return s.items
}

// Get returns the setting for id.
func (s *Store) Get(id string) (*ItemSetting, bool) {
	item, ok := s.index[id]
	return item, ok
}

// EnabledCount returns how many items are enabled.
func (s *Store) EnabledCount() int {
	n := 0
	for _, item := range s.items {
		if item.Enabled {
			n++
		}
	}
	return n
}

// SetEnabled toggles the enabled flag for the given ids.
func (s *Store) SetEnabled(enabled bool, ids ...string) error {
	for _, id := range ids {
		item, ok := s.index[id]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSetting, id)
		}
		item.Enabled = enabled
	}
	return nil
}

// SetAllEnabled sets the enabled flag on every item.
func (s *Store) SetAllEnabled(enabled bool) {
	for _, item := range s.items {
		item.Enabled = enabled
	}
}

// ResetStats zeroes the stats for the given ids, or for every item if none are given.
func (s *Store) ResetStats(ids ...string) error {
	if len(ids) == 0 {
		for _, item := range s.items {
			item.Stats = Stats{}
		}
		return nil
	}
	for _, id := range ids {
		item, ok := s.index[id]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSetting, id)
		}
		item.Stats = Stats{}
	}
	return nil
}

// Persist writes the current settings through the repo.
func (s *Store) Persist(ctx context.Context) error {
	out := make([]ItemSetting, len(s.items))
	for i, item := range s.items {
		out[i] = *item
	}
	if err := s.repo.Save(ctx, out); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}
