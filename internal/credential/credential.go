// Package credential holds the key used to authenticate narrative
// requests. The key lives in memory only.
package credential

import (
	"errors"
	"strings"
	"sync"
)

// ErrEmptyCredential is returned by Select for a blank key.
var ErrEmptyCredential = errors.New("credential: key is empty")

// Gate reports whether a credential is available and accepts a new one.
type Gate interface {
	HasCredential() bool
	Key() string
	Select(key string) error
	Clear()
}

// MemoryGate is a Gate backed by a mutex-guarded string.
type MemoryGate struct {
	mu  sync.RWMutex
	key string
}

// NewGate returns a Gate seeded with initial, which may be empty.
func NewGate(initial string) *MemoryGate {
	return &MemoryGate{key: strings.TrimSpace(initial)}
}

func (g *MemoryGate) HasCredential() bool {
	return g.Key() != ""
}

func (g *MemoryGate) Key() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.key
}

// Select stores key after trimming surrounding whitespace. A blank key is
// rejected and leaves the current credential in place.
func (g *MemoryGate) Select(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyCredential
	}
	g.mu.Lock()
	g.key = key
	g.mu.Unlock()
	return nil
}

func (g *MemoryGate) Clear() {
	g.mu.Lock()
	g.key = ""
	g.mu.Unlock()
}

// Mask renders key for display, keeping only the last four characters.
func Mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("•", len(key))
	}
	return strings.Repeat("•", 8) + key[len(key)-4:]
}
