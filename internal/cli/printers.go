package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func printEntry(w io.Writer, e *domain.Entry, loc *time.Location) {
	fmt.Fprintf(w, "%s  %s  %-8s %-8s %s\n",
		shortID(e.ID), e.Date.In(loc).Format("2006-01-02 15:04"), e.Mood, e.Color, e.Content)
}

func printStats(w io.Writer, s *domain.JournalStats) {
	fmt.Fprintf(w, "as of %s\n", s.Today)
	fmt.Fprintf(w, "  entries          %d\n", s.TotalEntries)
	fmt.Fprintf(w, "  days written     %d\n", s.TotalDays)
	fmt.Fprintf(w, "  days this month  %d\n", s.DaysThisMonth)
	fmt.Fprintf(w, "  current streak   %d\n", s.CurrentStreak)
	fmt.Fprintf(w, "  longest streak   %d\n", s.LongestStreak)
}

func printPreferences(w io.Writer, p domain.Preferences) {
	name := p.DisplayName
	if !p.HasDisplayName() {
		name = "(unset)"
	}
	avatar := "none"
	if p.HasAvatar() {
		avatar = fmt.Sprintf("%d bytes", len(p.Avatar))
	}

	fmt.Fprintf(w, "name       %s\n", name)
	fmt.Fprintf(w, "dark mode  %t\n", p.DarkMode)
	fmt.Fprintf(w, "avatar     %s\n", avatar)
}
