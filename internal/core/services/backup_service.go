package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/comitanigiacomo/capsule-journal/internal/core/codec"
	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/logger"
)

var ErrArchiveDisabled = errors.New("snapshot archive is not configured")

const archiveKeyLayout = "backups/20060102T150405.000000000Z.json"

// BackupService exports and restores the whole journal. An import either
// replaces both the entries and the preferences or leaves both untouched.
type BackupService struct {
	entries domain.EntryRepository
	prefs   domain.PreferenceRepository
	archive domain.SnapshotArchive
	now     func() time.Time

	lock *sync.Mutex
}

// NewBackupService builds the service. archive may be nil, which disables the
// Archive operations.
func NewBackupService(entries domain.EntryRepository, prefs domain.PreferenceRepository, archive domain.SnapshotArchive) *BackupService {
	return &BackupService{
		entries: entries,
		prefs:   prefs,
		archive: archive,
		now:     time.Now,
		lock:    new(sync.Mutex),
	}
}

func (s *BackupService) Export(ctx context.Context) (*domain.BackupSnapshot, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx)
	if err != nil {
		return nil, err
	}
	return codec.Export(entries, prefs)
}

// Import decodes snapshot completely before touching any state.
func (s *BackupService) Import(ctx context.Context, snapshot *domain.BackupSnapshot) error {
	entries, prefs, err := codec.Apply(snapshot)
	if err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	previous, err := s.entries.List(ctx)
	if err != nil {
		return err
	}

	if err := s.entries.ReplaceAll(ctx, entries); err != nil {
		return fmt.Errorf("restore entries: %w", err)
	}

	if err := s.prefs.Save(ctx, prefs); err != nil {
		if rbErr := s.entries.ReplaceAll(ctx, previous); rbErr != nil {
			logger.Error("[ERROR] Backup rollback failed, entries may be inconsistent", "err", rbErr)
			return fmt.Errorf("restore preferences: %w (rollback failed: %v)", err, rbErr)
		}
		return fmt.Errorf("restore preferences: %w", err)
	}

	logger.Info("Backup restored", "entries", len(entries))
	return nil
}

func (s *BackupService) ExportBytes(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	return codec.MarshalSnapshot(snapshot)
}

func (s *BackupService) ImportBytes(ctx context.Context, data []byte) error {
	snapshot, err := codec.UnmarshalSnapshot(data)
	if err != nil {
		return err
	}
	return s.Import(ctx, snapshot)
}

// ArchiveSnapshot exports the journal to the archive and returns the object key.
func (s *BackupService) ArchiveSnapshot(ctx context.Context) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}

	data, err := s.ExportBytes(ctx)
	if err != nil {
		return "", err
	}

	key := s.now().UTC().Format(archiveKeyLayout)
	if err := s.archive.Put(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

func (s *BackupService) RestoreArchived(ctx context.Context, key string) error {
	if s.archive == nil {
		return ErrArchiveDisabled
	}

	data, err := s.archive.Get(ctx, key)
	if err != nil {
		return err
	}
	return s.ImportBytes(ctx, data)
}
