package domain

import (
	"sort"
	"time"
)

type JournalStats struct {
	Today         Day `json:"today"`
	TotalDays     int `json:"total_days"`
	DaysThisMonth int `json:"days_this_month"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	TotalEntries  int `json:"total_entries"`
}

type CalendarMonth struct {
	Year       int        `json:"year"`
	Month      time.Month `json:"month"`
	MarkedDays []Day      `json:"marked_days"`
}

func distinctDays(entries []*Entry, loc *time.Location) map[Day]bool {
	days := make(map[Day]bool, len(entries))
	for _, e := range entries {
		days[DayOf(e.Date, loc)] = true
	}
	return days
}

// TotalDistinctDays counts the calendar days holding at least one entry.
func TotalDistinctDays(entries []*Entry, loc *time.Location) int {
	return len(distinctDays(entries, loc))
}

// DistinctDaysInMonth is TotalDistinctDays restricted to the year and month of ref.
func DistinctDaysInMonth(entries []*Entry, ref time.Time, loc *time.Location) int {
	return len(DaysWithEntriesInMonth(entries, ref, loc))
}

// DaysWithEntriesInMonth returns the sorted days of ref's month that hold entries.
func DaysWithEntriesInMonth(entries []*Entry, ref time.Time, loc *time.Location) []Day {
	month := DayOf(ref, loc)

	marked := make([]Day, 0)
	for d := range distinctDays(entries, loc) {
		if d.SameMonth(month) {
			marked = append(marked, d)
		}
	}

	sort.Slice(marked, func(i, j int) bool {
		return marked[i].Day < marked[j].Day
	})
	return marked
}

// CurrentStreakDays walks backward from today while every day has an entry.
// It is 0 when today itself has none.
func CurrentStreakDays(entries []*Entry, today time.Time, loc *time.Location) int {
	days := distinctDays(entries, loc)

	streak := 0
	for d := DayOf(today, loc); days[d]; d = d.Prev() {
		streak++
	}
	return streak
}

// LongestStreakDays is the longest run of consecutive days with entries anywhere
// in the collection.
func LongestStreakDays(entries []*Entry, loc *time.Location) int {
	days := distinctDays(entries, loc)

	longest := 0
	for d := range days {
		// only start counting at the first day of a run
		if days[d.Prev()] {
			continue
		}

		run := 0
		for cur := d; days[cur]; cur = cur.Next() {
			run++
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
