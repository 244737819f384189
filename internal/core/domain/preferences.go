package domain

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidName = errors.New("invalid display name")
)

const (
	DisplayNameUnset  = ""
	MinDisplayNameLen = 2
	MaxDisplayNameLen = 20
)

// Preferences is the user's settings record. The zero value is the default state.
type Preferences struct {
	DarkMode    bool   `json:"dark_mode"`
	DisplayName string `json:"display_name"`
	Avatar      []byte `json:"-"`
}

func (p *Preferences) SetDarkMode(on bool) {
	p.DarkMode = on
}

// SetDisplayName stores the trimmed candidate. It rejects names outside
// [MinDisplayNameLen, MaxDisplayNameLen] runes and names equal to the current one.
func (p *Preferences) SetDisplayName(candidate string) error {
	name := strings.TrimSpace(candidate)

	n := utf8.RuneCountInString(name)
	if n < MinDisplayNameLen || n > MaxDisplayNameLen {
		return fmt.Errorf("%w: length must be between %d and %d characters, got %d",
			ErrInvalidName, MinDisplayNameLen, MaxDisplayNameLen, n)
	}
	if name == p.DisplayName {
		return fmt.Errorf("%w: name is unchanged", ErrInvalidName)
	}

	p.DisplayName = name
	return nil
}

// SetAvatar replaces the avatar. nil or empty bytes clear it.
func (p *Preferences) SetAvatar(image []byte) {
	p.Avatar = cloneBytes(image)
}

func (p *Preferences) HasAvatar() bool {
	return len(p.Avatar) > 0
}

func (p *Preferences) HasDisplayName() bool {
	return p.DisplayName != DisplayNameUnset
}

func (p Preferences) Clone() Preferences {
	p.Avatar = cloneBytes(p.Avatar)
	return p
}

func (p Preferences) Equal(o Preferences) bool {
	return p.DarkMode == o.DarkMode &&
		p.DisplayName == o.DisplayName &&
		bytes.Equal(p.Avatar, o.Avatar)
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte{}, b...)
}
