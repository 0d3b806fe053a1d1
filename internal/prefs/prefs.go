// Package prefs persists small user preferences (currently only the theme) in a
// durable client-side medium. Reads and writes never fail from the caller's point
// of view: problems are logged and the in-memory value wins.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mazichukwuka/portfolio/internal/logfields"
)

var (
	// ErrNotFound is returned by a Store when the key has never been written.
	ErrNotFound = errors.New("preference not found")
	// ErrUnavailable is returned when the durable medium cannot be reached.
	ErrUnavailable = errors.New("preference storage unavailable")
)

// Store is a raw key/value medium. Values are JSON text.
type Store interface {
	Get(key string) (string, error)
	Set(key, raw string) error
}

// Preference is a typed value backed by a Store.
type Preference[T any] struct {
	mu    sync.Mutex
	store Store
	key   string
	def   T
	value T
	log   *slog.Logger
}

// New creates a preference for key. The value starts at def until Load is called.
func New[T any](store Store, key string, def T, log *slog.Logger) *Preference[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Preference[T]{store: store, key: key, def: def, value: def, log: log}
}

// Read is the one-shot form of Load.
func Read[T any](store Store, key string, def T, log *slog.Logger) T {
	return New(store, key, def, log).Load()
}

// Load reads the stored value, falling back to the default on any failure.
func (p *Preference[T]) Load() T {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.value = p.def
	if p.store == nil {
		return p.value
	}
	raw, err := p.store.Get(p.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.log.Warn("Reading preference failed", logfields.PrefKey(p.key), logfields.Error(err))
		}
		return p.value
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		p.log.Warn("Parsing preference failed", logfields.PrefKey(p.key), logfields.Error(err))
		return p.value
	}
	p.value = v
	return p.value
}

// Get returns the in-memory value.
func (p *Preference[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set updates the in-memory value and writes it through. The write result is
// only logged.
func (p *Preference[T]) Set(v T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.value = v
	if p.store == nil {
		return
	}
	if err := write(p.store, p.key, v); err != nil {
		p.log.Warn("Writing preference failed", logfields.PrefKey(p.key), logfields.Error(err))
	}
}

func write(store Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return store.Set(key, string(raw))
}
