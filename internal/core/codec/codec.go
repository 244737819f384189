// Package codec holds the byte encodings of the journal: the native entry
// encoding stored under the "entries" key, the "preferences" and "avatarImage"
// keys, and the versioned backup snapshot wire format.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

// Persisted keys used by key-value hosts.
const (
	KeyEntries     = "entries"
	KeyAvatarImage = "avatarImage"
	KeyPreferences = "preferences"
)

type entryRecord struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Mood    string `json:"mood"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

type preferencesRecord struct {
	DarkMode    bool   `json:"darkMode"`
	DisplayName string `json:"displayName"`
}

func decodeErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrDecode}, args...)...)
}

// EncodeEntries renders the collection as a JSON array. Dates keep their full
// precision and offset.
func EncodeEntries(entries []*domain.Entry) ([]byte, error) {
	records := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, entryRecord{
			ID:      e.ID,
			Date:    e.Date.Format(time.RFC3339Nano),
			Mood:    e.Mood,
			Content: e.Content,
			Color:   e.Color,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("codec: encode entries: %w", err)
	}
	return data, nil
}

// DecodeEntries parses an EncodeEntries blob. Empty input is an empty collection.
// Ids must be UUIDs and come back in canonical lowercase form.
func DecodeEntries(data []byte) ([]*domain.Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []*domain.Entry{}, nil
	}

	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, decodeErr("entries: %v", err)
	}

	seen := make(map[string]bool, len(records))
	entries := make([]*domain.Entry, 0, len(records))

	for i, r := range records {
		if r.ID == "" {
			return nil, decodeErr("entries[%d]: missing id", i)
		}
		parsed, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, decodeErr("entries[%d]: id %q is not a uuid", i, r.ID)
		}
		id := parsed.String()
		if seen[id] {
			return nil, decodeErr("entries[%d]: duplicate id %s", i, r.ID)
		}
		seen[id] = true

		date, err := time.Parse(time.RFC3339Nano, r.Date)
		if err != nil {
			return nil, decodeErr("entries[%d]: invalid date %q", i, r.Date)
		}

		entries = append(entries, &domain.Entry{
			ID:      id,
			Date:    date,
			Mood:    r.Mood,
			Content: r.Content,
			Color:   r.Color,
		})
	}

	return entries, nil
}

// EncodePreferences encodes the settings under the "preferences" key. The avatar
// has its own key and is not included.
func EncodePreferences(p domain.Preferences) ([]byte, error) {
	data, err := json.Marshal(preferencesRecord{
		DarkMode:    p.DarkMode,
		DisplayName: p.DisplayName,
	})
	if err != nil {
		return nil, fmt.Errorf("codec: encode preferences: %w", err)
	}
	return data, nil
}

// DecodePreferences returns the default preferences for empty input.
func DecodePreferences(data []byte) (domain.Preferences, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Preferences{}, nil
	}

	var r preferencesRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Preferences{}, decodeErr("preferences: %v", err)
	}

	return domain.Preferences{DarkMode: r.DarkMode, DisplayName: r.DisplayName}, nil
}

// EncodeAvatar maps empty bytes to an absent avatar.
func EncodeAvatar(image []byte) []byte {
	if len(image) == 0 {
		return nil
	}
	return append([]byte{}, image...)
}

// DecodeAvatar maps missing bytes to an absent avatar.
func DecodeAvatar(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	return append([]byte{}, data...)
}
