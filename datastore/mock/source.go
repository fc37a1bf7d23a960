/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory datastore.Source for testing
package mock

import (
	"context"
	"sync"

	"github.com/suparena/attribution"
	"github.com/suparena/attribution/datastore"
	"github.com/suparena/attribution/errors"
)

// Source is an in-memory datastore.Source that records every lookup.
type Source struct {
	mu      sync.RWMutex
	name    string
	records map[string]*attribution.Record
	order   []string

	findFunc func(ctx context.Context, key any) (*attribution.Record, error)
	allFunc  func(ctx context.Context, q attribution.Query) ([]*attribution.Record, error)
	findErr  error
	allErr   error

	findCalls []any
	allCalls  []attribution.Query
}

var _ datastore.Source = (*Source)(nil)

// New creates an empty Source. name labels not-found errors.
func New(name string) *Source {
	return &Source{
		name:    name,
		records: make(map[string]*attribution.Record),
	}
}

// WithFindFunc replaces the default Find behavior
func (s *Source) WithFindFunc(f func(ctx context.Context, key any) (*attribution.Record, error)) *Source {
	s.findFunc = f
	return s
}

// WithAllFunc replaces the default All behavior
func (s *Source) WithAllFunc(f func(ctx context.Context, q attribution.Query) ([]*attribution.Record, error)) *Source {
	s.allFunc = f
	return s
}

// WithFindError makes Find return err
func (s *Source) WithFindError(err error) *Source {
	s.findErr = err
	return s
}

// WithAllError makes All return err
func (s *Source) WithAllError(err error) *Source {
	s.allErr = err
	return s
}

// Put stores records by their id. Records without an id are rejected.
func (s *Source) Put(records ...*attribution.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		key := datastore.Key(r.ID())
		if key == "" {
			return errors.NewValidationError("id", "record has no id")
		}
		if _, exists := s.records[key]; !exists {
			s.order = append(s.order, key)
		}
		s.records[key] = r
	}
	return nil
}

// Find returns the record stored under key.
func (s *Source) Find(ctx context.Context, key any) (*attribution.Record, error) {
	s.mu.Lock()
	s.findCalls = append(s.findCalls, key)
	s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.findFunc != nil {
		return s.findFunc(ctx, key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	k := datastore.Key(key)
	if r, exists := s.records[k]; exists {
		return r, nil
	}
	return nil, errors.NewNotFoundError(s.name, k)
}

// All returns the stored records whose attributes equal every query value,
// in insertion order.
func (s *Source) All(ctx context.Context, q attribution.Query) ([]*attribution.Record, error) {
	recorded := make(attribution.Query, len(q))
	for k, v := range q {
		recorded[k] = v
	}
	s.mu.Lock()
	s.allCalls = append(s.allCalls, recorded)
	s.mu.Unlock()

	if s.allErr != nil {
		return nil, s.allErr
	}
	if s.allFunc != nil {
		return s.allFunc(ctx, q)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*attribution.Record, 0)
	for _, key := range s.order {
		r := s.records[key]
		if matches(r, q) {
			results = append(results, r)
		}
	}
	return results, nil
}

func matches(r *attribution.Record, q attribution.Query) bool {
	for k, v := range q {
		if datastore.Key(r.Get(k)) != datastore.Key(v) {
			return false
		}
	}
	return true
}

// Helper methods for testing

// FindCalls returns the keys Find was called with
func (s *Source) FindCalls() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]any, len(s.findCalls))
	copy(out, s.findCalls)
	return out
}

// AllCalls returns the queries All was called with
func (s *Source) AllCalls() []attribution.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]attribution.Query, len(s.allCalls))
	copy(out, s.allCalls)
	return out
}

// Count returns the number of stored records
func (s *Source) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear removes all records and recorded calls
func (s *Source) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*attribution.Record)
	s.order = nil
	s.findCalls = nil
	s.allCalls = nil
}
