package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"github.com/comitanigiacomo/capsule-journal/internal/core/codec"
	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

var (
	_ domain.EntryRepository      = (*DiskvStore)(nil)
	_ domain.PreferenceRepository = (*DiskvStore)(nil)
)

// DiskvStore keeps the journal as three blobs in a flat on-disk key-value store:
// the entry collection, the avatar image and the preferences record. Every
// mutation rewrites the affected blob, so the store is only as large as the
// journal itself.
type DiskvStore struct {
	d *diskv.Diskv

	mu sync.Mutex
}

// NewDiskvStore opens (or creates) a store rooted at basePath.
func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      filepath.Join(basePath, ".tmp"),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (s *DiskvStore) read(key string) ([]byte, error) {
	if !s.d.Has(key) {
		return nil, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("diskv read %s: %w", key, err)
	}
	return val, nil
}

func (s *DiskvStore) loadEntries() ([]*domain.Entry, error) {
	raw, err := s.read(codec.KeyEntries)
	if err != nil {
		return nil, err
	}
	return codec.DecodeEntries(raw)
}

func (s *DiskvStore) storeEntries(entries []*domain.Entry) error {
	raw, err := codec.EncodeEntries(entries)
	if err != nil {
		return err
	}
	if err := s.d.Write(codec.KeyEntries, raw); err != nil {
		return fmt.Errorf("diskv write %s: %w", codec.KeyEntries, err)
	}
	return nil
}

func indexOf(entries []*domain.Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *DiskvStore) Create(ctx context.Context, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadEntries()
	if err != nil {
		return err
	}
	if indexOf(entries, entry.ID) >= 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateEntry, entry.ID)
	}
	return s.storeEntries(append(entries, entry.Clone()))
}

func (s *DiskvStore) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadEntries()
	if err != nil {
		return nil, err
	}
	i := indexOf(entries, id)
	if i < 0 {
		return nil, domain.ErrEntryNotFound
	}
	return entries[i], nil
}

func (s *DiskvStore) Update(ctx context.Context, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadEntries()
	if err != nil {
		return err
	}
	i := indexOf(entries, entry.ID)
	if i < 0 {
		return domain.ErrEntryNotFound
	}
	entries[i] = entry.Clone()
	return s.storeEntries(entries)
}

func (s *DiskvStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadEntries()
	if err != nil {
		return err
	}
	i := indexOf(entries, id)
	if i < 0 {
		return domain.ErrEntryNotFound
	}
	return s.storeEntries(append(entries[:i], entries[i+1:]...))
}

func (s *DiskvStore) List(ctx context.Context) ([]*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadEntries()
}

func (s *DiskvStore) ReplaceAll(ctx context.Context, entries []*domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storeEntries(domain.CloneEntries(entries))
}

func (s *DiskvStore) Get(ctx context.Context) (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.read(codec.KeyPreferences)
	if err != nil {
		return domain.Preferences{}, err
	}
	prefs, err := codec.DecodePreferences(raw)
	if err != nil {
		return domain.Preferences{}, err
	}

	avatar, err := s.read(codec.KeyAvatarImage)
	if err != nil {
		return domain.Preferences{}, err
	}
	prefs.Avatar = codec.DecodeAvatar(avatar)
	return prefs, nil
}

func (s *DiskvStore) Save(ctx context.Context, prefs domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := codec.EncodePreferences(prefs)
	if err != nil {
		return err
	}
	if err := s.d.Write(codec.KeyPreferences, raw); err != nil {
		return fmt.Errorf("diskv write %s: %w", codec.KeyPreferences, err)
	}

	avatar := codec.EncodeAvatar(prefs.Avatar)
	if len(avatar) == 0 {
		if s.d.Has(codec.KeyAvatarImage) {
			if err := s.d.Erase(codec.KeyAvatarImage); err != nil {
				return fmt.Errorf("diskv erase %s: %w", codec.KeyAvatarImage, err)
			}
		}
		return nil
	}
	if err := s.d.Write(codec.KeyAvatarImage, avatar); err != nil {
		return fmt.Errorf("diskv write %s: %w", codec.KeyAvatarImage, err)
	}
	return nil
}
