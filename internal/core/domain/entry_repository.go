package domain

import "context"

type EntryRepository interface {
	// Create persists a new entry.
	Create(ctx context.Context, entry *Entry) error

	// GetByID retrieves a single entry. Returns ErrEntryNotFound when absent.
	GetByID(ctx context.Context, id string) (*Entry, error)

	// Update replaces the stored entry with the same ID.
	// Returns ErrEntryNotFound when no entry has that ID.
	Update(ctx context.Context, entry *Entry) error

	// Delete removes the entry permanently. Returns ErrEntryNotFound when absent.
	Delete(ctx context.Context, id string) error

	// List returns a snapshot of every entry. No ordering is guaranteed.
	List(ctx context.Context) ([]*Entry, error)

	// ReplaceAll swaps the whole collection atomically: either every entry is
	// replaced or nothing changes.
	ReplaceAll(ctx context.Context, entries []*Entry) error
}

type PreferenceRepository interface {
	// Get returns the stored preferences, or the zero value when none were saved.
	Get(ctx context.Context) (Preferences, error)

	// Save overwrites the stored preferences, avatar included.
	Save(ctx context.Context, prefs Preferences) error
}
