package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEntryNotFound  = errors.New("entry not found")
	ErrDuplicateEntry = errors.New("entry already exists")
)

const (
	ColorRed    = "red"
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorPurple = "purple"

	DefaultColor = ColorBlue
	DefaultMood  = "Happy"
)

// Palette lists the named colors offered to writers. Entries may still carry any
// other color value, e.g. "#FF8800".
var Palette = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple}

type Entry struct {
	ID      string    `json:"id" db:"id"`
	Date    time.Time `json:"date" db:"entry_date"`
	Mood    string    `json:"mood" db:"mood"`
	Content string    `json:"content" db:"content"`
	Color   string    `json:"color" db:"color"`
}

func NewEntry(date time.Time, mood, content, color string) *Entry {
	e := &Entry{ID: uuid.NewString()}
	e.Update(date, mood, content, color)
	return e
}

// Update replaces every mutable field. The ID never changes.
func (e *Entry) Update(date time.Time, mood, content, color string) {
	if mood == "" {
		mood = DefaultMood
	}
	if color == "" {
		color = DefaultColor
	}

	e.Date = date
	e.Mood = mood
	e.Content = content
	e.Color = color
}

func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}

func IsPaletteColor(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

func CloneEntries(entries []*Entry) []*Entry {
	out := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Clone())
	}
	return out
}
