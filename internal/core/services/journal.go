package services

import (
	"sync"
	"time"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

// Journal groups the services of one journal. Entry edits, preference edits
// and backup imports made through it all run under the same lock, so an import
// never interleaves with another mutation.
type Journal struct {
	Entries     *EntryService
	Stats       *StatsService
	Preferences *PreferenceService
	Backup      *BackupService
}

// NewJournal wires the services over one store. archive may be nil.
func NewJournal(entries domain.EntryRepository, prefs domain.PreferenceRepository, archive domain.SnapshotArchive, loc *time.Location) *Journal {
	lock := new(sync.Mutex)

	j := &Journal{
		Entries:     NewEntryService(entries, loc),
		Stats:       NewStatsService(entries, loc),
		Preferences: NewPreferenceService(prefs),
		Backup:      NewBackupService(entries, prefs, archive),
	}
	j.Entries.lock = lock
	j.Preferences.lock = lock
	j.Backup.lock = lock
	return j
}
