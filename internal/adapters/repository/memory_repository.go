package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

var (
	_ domain.EntryRepository      = (*InMemoryEntryRepository)(nil)
	_ domain.PreferenceRepository = (*InMemoryPreferenceRepository)(nil)
)

type InMemoryEntryRepository struct {
	store map[string]*domain.Entry

	mu sync.RWMutex
}

func NewInMemoryEntryRepository() *InMemoryEntryRepository {
	return &InMemoryEntryRepository{
		store: make(map[string]*domain.Entry),
	}
}

func (r *InMemoryEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[entry.ID] = entry.Clone()
	return nil
}

func (r *InMemoryEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.store[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return entry.Clone(), nil
}

func (r *InMemoryEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}

	r.store[entry.ID] = entry.Clone()
	return nil
}

func (r *InMemoryEntryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrEntryNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryEntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*domain.Entry, 0, len(r.store))
	for _, e := range r.store {
		entries = append(entries, e.Clone())
	}
	return entries, nil
}

func (r *InMemoryEntryRepository) ReplaceAll(ctx context.Context, entries []*domain.Entry) error {
	next := make(map[string]*domain.Entry, len(entries))
	for _, e := range entries {
		next[e.ID] = e.Clone()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store = next
	return nil
}

type InMemoryPreferenceRepository struct {
	prefs domain.Preferences

	mu sync.RWMutex
}

func NewInMemoryPreferenceRepository() *InMemoryPreferenceRepository {
	return &InMemoryPreferenceRepository{}
}

func (r *InMemoryPreferenceRepository) Get(ctx context.Context) (domain.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.Clone(), nil
}

func (r *InMemoryPreferenceRepository) Save(ctx context.Context, prefs domain.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs = prefs.Clone()
	return nil
}
