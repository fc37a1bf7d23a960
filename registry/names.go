/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/suparena/attribution/errors"
)

// Separator joins namespace segments in a qualified name ("Music.Album").
const Separator = "."

// Names is a thread-safe registry of values keyed by qualified name.
// It is written while classes are declared and read-only afterwards.
type Names[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
	order   []string
}

// New creates an empty registry.
func New[T any]() *Names[T] {
	return &Names[T]{
		entries: make(map[string]T),
	}
}

// Register stores v under name. Registering a name twice is an error.
func (n *Names[T]) Register(name string, v T) error {
	if name == "" {
		return fmt.Errorf("registry: empty name: %w", errors.ErrInvalidInput)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.entries[name]; exists {
		return fmt.Errorf("registry: %q already registered: %w", name, errors.ErrDuplicateClass)
	}
	n.entries[name] = v
	n.order = append(n.order, name)
	return nil
}

// Get returns the value registered under the exact qualified name.
func (n *Names[T]) Get(name string) (T, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	v, ok := n.entries[name]
	return v, ok
}

// Resolve looks name up relative to the qualified name from, preferring the
// innermost enclosing namespace of from and falling back to the top level.
// It returns the value and the qualified name it was found under.
func (n *Names[T]) Resolve(from, name string) (T, string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ns := Namespace(from); ns != ""; ns = Namespace(ns) {
		qualified := ns + Separator + name
		if v, ok := n.entries[qualified]; ok {
			return v, qualified, true
		}
	}

	v, ok := n.entries[name]
	return v, name, ok
}

// Names returns the registered names in registration order.
func (n *Names[T]) Names() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Len returns the number of registered entries.
func (n *Names[T]) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Namespace returns the enclosing namespace of a qualified name, or "" at top level.
func Namespace(qualified string) string {
	i := strings.LastIndex(qualified, Separator)
	if i < 0 {
		return ""
	}
	return qualified[:i]
}

// BaseName returns the last segment of a qualified name.
func BaseName(qualified string) string {
	i := strings.LastIndex(qualified, Separator)
	if i < 0 {
		return qualified
	}
	return qualified[i+len(Separator):]
}
