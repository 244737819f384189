package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

type EntryService struct {
	repo domain.EntryRepository
	loc  *time.Location
	now  func() time.Time

	// lock is shared with the other services of a Journal.
	lock *sync.Mutex
}

// NewEntryService builds the entry store. loc decides which calendar day an
// entry belongs to; nil means the local zone.
func NewEntryService(repo domain.EntryRepository, loc *time.Location) *EntryService {
	if loc == nil {
		loc = time.Local
	}
	return &EntryService{
		repo: repo,
		loc:  loc,
		now:  time.Now,
		lock: new(sync.Mutex),
	}
}

type CreateEntryInput struct {
	Date    time.Time
	Mood    string
	Content string
	Color   string
}

type UpdateEntryInput struct {
	ID      string
	Date    time.Time
	Mood    string
	Content string
	Color   string
}

func (s *EntryService) Location() *time.Location {
	return s.loc
}

// Create stores a new entry. A zero date means now.
func (s *EntryService) Create(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	entry := domain.NewEntry(date, input.Mood, input.Content, input.Color)

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *EntryService) Update(ctx context.Context, input UpdateEntryInput) (*domain.Entry, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = existing.Date
	}
	existing.Update(date, input.Mood, input.Content, input.Color)

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete fails with ErrEntryNotFound when id is unknown, including a second
// delete of the same entry.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.repo.Delete(ctx, id)
}

func (s *EntryService) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a snapshot of every entry, newest first.
func (s *EntryService) List(ctx context.Context) ([]*domain.Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(entries)
	return entries, nil
}

// FilterByDay returns the entries on the same calendar day as date.
func (s *EntryService) FilterByDay(ctx context.Context, date time.Time) ([]*domain.Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	day := domain.DayOf(date, s.loc)
	out := make([]*domain.Entry, 0)
	for _, e := range entries {
		if domain.DayOf(e.Date, s.loc) == day {
			out = append(out, e)
		}
	}
	return out, nil
}

func sortNewestFirst(entries []*domain.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}
