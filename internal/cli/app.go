package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comitanigiacomo/capsule-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
)

var ErrAmbiguousID = errors.New("id prefix matches more than one entry")

// App bundles the services the commands drive, all over one on-disk store.
type App struct {
	Entries     *services.EntryService
	Stats       *services.StatsService
	Preferences *services.PreferenceService
	Backup      *services.BackupService
	Location    *time.Location
}

func NewApp(store *repository.DiskvStore, loc *time.Location) *App {
	journal := services.NewJournal(store, store, nil, loc)
	return &App{
		Entries:     journal.Entries,
		Stats:       journal.Stats,
		Preferences: journal.Preferences,
		Backup:      journal.Backup,
		Location:    loc,
	}
}

// ResolveID expands a unique id prefix to the full entry id.
func (a *App) ResolveID(ctx context.Context, prefix string) (string, error) {
	entries, err := a.Entries.List(ctx)
	if err != nil {
		return "", err
	}

	var match string
	for _, e := range entries {
		if e.ID == prefix {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrEntryNotFound, prefix)
	}
	return match, nil
}
