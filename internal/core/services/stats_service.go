package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

type StatsService struct {
	repo domain.EntryRepository
	loc  *time.Location
}

func NewStatsService(repo domain.EntryRepository, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{
		repo: repo,
		loc:  loc,
	}
}

// Summary computes the journal counters as seen on today.
func (s *StatsService) Summary(ctx context.Context, today time.Time) (*domain.JournalStats, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.JournalStats{
		Today:         domain.DayOf(today, s.loc),
		TotalDays:     domain.TotalDistinctDays(entries, s.loc),
		DaysThisMonth: domain.DistinctDaysInMonth(entries, today, s.loc),
		CurrentStreak: domain.CurrentStreakDays(entries, today, s.loc),
		LongestStreak: domain.LongestStreakDays(entries, s.loc),
		TotalEntries:  len(entries),
	}, nil
}

// Calendar lists the days of month's month that have at least one entry.
func (s *StatsService) Calendar(ctx context.Context, month time.Time) (*domain.CalendarMonth, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ref := domain.DayOf(month, s.loc)
	return &domain.CalendarMonth{
		Year:       ref.Year,
		Month:      ref.Month,
		MarkedDays: domain.DaysWithEntriesInMonth(entries, month, s.loc),
	}, nil
}
