package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrFutureVersion    = errors.New("persisted value was written by a newer schema")
	ErrMissingMigration = errors.New("no migration registered")
)

// Envelope wraps every persisted value.
type Envelope struct {
	Version int             `json:"v"`
	SavedAt time.Time       `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

// Migration upgrades the data of version n to version n+1.
type Migration func(data json.RawMessage) (json.RawMessage, error)

// Slot is one typed, versioned value in a Backend.
type Slot[T any] struct {
	backend    Backend
	key        string
	version    int
	ttl        time.Duration
	migrations map[int]Migration
	now        func() time.Time
}

// NewSlot binds a key to a schema version. migrations[n] upgrades data from
// version n to n+1; a blob without an envelope is version 0.
func NewSlot[T any](backend Backend, key string, version int, ttl time.Duration, migrations map[int]Migration) *Slot[T] {
	return &Slot[T]{
		backend:    backend,
		key:        key,
		version:    version,
		ttl:        ttl,
		migrations: migrations,
		now:        time.Now,
	}
}

func (s *Slot[T]) Key() string { return s.key }

// Load returns the stored value, migrated to the current version.
// ok is false when nothing is stored.
func (s *Slot[T]) Load(ctx context.Context) (value T, ok bool, err error) {
	raw, found, err := s.backend.Load(ctx, s.key)
	if err != nil || !found {
		return value, false, err
	}

	version, data := unwrap(raw)
	if version > s.version {
		return value, false, fmt.Errorf("%s: v%d > v%d: %w", s.key, version, s.version, ErrFutureVersion)
	}
	for v := version; v < s.version; v++ {
		m, exists := s.migrations[v]
		if !exists {
			return value, false, fmt.Errorf("%s: v%d: %w", s.key, v, ErrMissingMigration)
		}
		if data, err = m(data); err != nil {
			return value, false, fmt.Errorf("%s: migrate v%d: %w", s.key, v, err)
		}
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("%s: decode: %w", s.key, err)
	}
	return value, true, nil
}

func (s *Slot[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", s.key, err)
	}
	blob, err := json.Marshal(Envelope{Version: s.version, SavedAt: s.now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("%s: encode envelope: %w", s.key, err)
	}
	return s.backend.Save(ctx, s.key, blob, s.ttl)
}

func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.backend.Delete(ctx, s.key)
}

// unwrap splits a blob into its version and data. Anything that is not an
// envelope is treated as a legacy raw value at version 0.
func unwrap(raw []byte) (int, json.RawMessage) {
	var head struct {
		Version *int            `json:"v"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || head.Version == nil || head.Data == nil {
		return 0, raw
	}
	return *head.Version, head.Data
}
