// internal/store/memory.go
//
// In-memory implementation of the round Store.
// Each session owns one *game.Round, keyed by the round ID; rounds are never
// shared between sessions and are lost when the process restarts.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Prune drops rounds that started before a cutoff (expired sessions).

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordscramble/internal/game"
)

// ErrNotFound is returned by Get for unknown round IDs.
var ErrNotFound = errors.New("store: round not found")

// Store defines the persistence interface for active rounds.
type Store interface {
	// Save adds or replaces a round under its ID.
	Save(ctx context.Context, r *game.Round) error

	// Get retrieves a round by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Round, error)

	// Delete forgets a round. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Prune removes rounds started before cutoff and returns how many.
	Prune(ctx context.Context, cutoff time.Time) (int, error)

	// Len returns the number of stored rounds.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex
	rounds map[string]*game.Round
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{rounds: make(map[string]*game.Round)}
}

func (m *memory) Save(_ context.Context, r *game.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.ID()] = r
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*game.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rounds[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rounds, id)
	return nil
}

func (m *memory) Prune(_ context.Context, cutoff time.Time) (int, error) {
	// Round state is read outside the map lock; a round may be busy with a
	// submission.
	m.mu.RLock()
	all := make(map[string]*game.Round, len(m.rounds))
	for id, r := range m.rounds {
		all[id] = r
	}
	m.mu.RUnlock()

	var expired []string
	for id, r := range all {
		if r.State().StartedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range expired {
		delete(m.rounds, id)
	}
	return len(expired), nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rounds)
}
