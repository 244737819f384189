package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

func sampleEntries() []*domain.Entry {
	rome := time.FixedZone("CET", 3600)
	return []*domain.Entry{
		{ID: "0b6c2a52-5b7e-4d51-9d4f-6a1e0f8b9c01", Date: time.Date(2025, 1, 10, 9, 15, 30, 123456789, time.UTC), Mood: "Happy", Content: "first", Color: domain.ColorBlue},
		{ID: "7f3d9e44-1c2a-4b8e-a5d6-2e9f1b0c7a12", Date: time.Date(2025, 1, 11, 23, 59, 0, 0, rome), Mood: "Calm", Content: "", Color: "#112233"},
	}
}

func TestEntries_RoundTrip(t *testing.T) {
	data, err := EncodeEntries(sampleEntries())
	require.NoError(t, err)

	decoded, err := DecodeEntries(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	for i, want := range sampleEntries() {
		got := decoded[i]
		assert.Equal(t, want.ID, got.ID)
		assert.True(t, want.Date.Equal(got.Date), "date must survive with full precision")
		assert.Equal(t, want.Mood, got.Mood)
		assert.Equal(t, want.Content, got.Content)
		assert.Equal(t, want.Color, got.Color)
	}
}

func TestDecodeEntries_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Truncated", `[{"id":"0b6c2a52-5b7e-4d51-9d4f-6a1e0f8b9c01","date":"2025-01-10T09:00:00Z"`},
		{"Not an array", `{"id":"0b6c2a52-5b7e-4d51-9d4f-6a1e0f8b9c01"}`},
		{"Missing id", `[{"date":"2025-01-10T09:00:00Z"}]`},
		{"Id is not a uuid", `[{"id":"not-a-uuid","date":"2025-01-10T09:00:00Z"}]`},
		{"Duplicate id", `[{"id":"0b6c2a52-5b7e-4d51-9d4f-6a1e0f8b9c01","date":"2025-01-10T09:00:00Z"},{"id":"0b6c2a52-5b7e-4d51-9d4f-6a1e0f8b9c01","date":"2025-01-11T09:00:00Z"}]`},
		{"Duplicate id in another case", `[{"id":"0b6c2a52-5b7e-4d51-9d4f-6a1e0f8b9c01","date":"2025-01-10T09:00:00Z"},{"id":"0B6C2A52-5B7E-4D51-9D4F-6A1E0F8B9C01","date":"2025-01-11T09:00:00Z"}]`},
		{"Bad date", `[{"id":"0b6c2a52-5b7e-4d51-9d4f-6a1e0f8b9c01","date":"yesterday"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEntries([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrDecode)
		})
	}

	t.Run("Uppercase ids are canonicalised", func(t *testing.T) {
		entries, err := DecodeEntries([]byte(`[{"id":"7F3D9E44-1C2A-4B8E-A5D6-2E9F1B0C7A12","date":"2025-01-10T09:00:00Z"}]`))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "7f3d9e44-1c2a-4b8e-a5d6-2e9f1b0c7a12", entries[0].ID)
	})

	t.Run("Empty input is an empty collection", func(t *testing.T) {
		entries, err := DecodeEntries(nil)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestPreferences_RoundTrip(t *testing.T) {
	in := domain.Preferences{DarkMode: true, DisplayName: "Al", Avatar: []byte{1}}

	data, err := EncodePreferences(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"darkMode":true,"displayName":"Al"}`, string(data))

	out, err := DecodePreferences(data)
	require.NoError(t, err)
	assert.True(t, out.DarkMode)
	assert.Equal(t, "Al", out.DisplayName)
	assert.Nil(t, out.Avatar, "avatar lives under its own key")

	_, err = DecodePreferences([]byte(`{"darkMode":"yes"}`))
	assert.ErrorIs(t, err, domain.ErrDecode)

	def, err := DecodePreferences(nil)
	require.NoError(t, err)
	assert.True(t, def.Equal(domain.Preferences{}))
}

func TestAvatar(t *testing.T) {
	assert.Nil(t, EncodeAvatar(nil))
	assert.Nil(t, DecodeAvatar(nil))
	assert.Nil(t, DecodeAvatar([]byte{}))
	assert.Nil(t, EncodeAvatar([]byte{}))
	assert.Equal(t, []byte{7, 8}, DecodeAvatar(EncodeAvatar([]byte{7, 8})))
}

func TestSnapshot_EmptyAvatarRoundTrip(t *testing.T) {
	prefs := domain.Preferences{DisplayName: "Alice", Avatar: []byte{}}

	snapshot, err := Export(nil, prefs)
	require.NoError(t, err)

	wire, err := MarshalSnapshot(snapshot)
	require.NoError(t, err)

	parsed, err := UnmarshalSnapshot(wire)
	require.NoError(t, err)

	_, restored, err := Apply(parsed)
	require.NoError(t, err)

	assert.Nil(t, restored.Avatar)
	assert.True(t, prefs.Equal(restored), "an empty avatar restores as the same preferences")
}

func TestSnapshot_RoundTrip(t *testing.T) {
	prefs := domain.Preferences{DarkMode: true, DisplayName: "Alice", Avatar: []byte{0xFF, 0xD8}}

	snapshot, err := Export(sampleEntries(), prefs)
	require.NoError(t, err)
	assert.Equal(t, domain.SnapshotVersion, snapshot.Version)

	wire, err := MarshalSnapshot(snapshot)
	require.NoError(t, err)

	parsed, err := UnmarshalSnapshot(wire)
	require.NoError(t, err)

	entries, restored, err := Apply(parsed)
	require.NoError(t, err)

	assert.Len(t, entries, 2)
	assert.Equal(t, "Alice", restored.DisplayName)
	assert.Equal(t, []byte{0xFF, 0xD8}, restored.Avatar)

	t.Run("Known loss: darkMode is not carried by string-only settings", func(t *testing.T) {
		_, present := snapshot.Settings[domain.SettingDarkMode]
		assert.False(t, present)
		assert.False(t, restored.DarkMode)
	})
}

func TestSnapshot_AbsentAvatar(t *testing.T) {
	snapshot, err := Export(nil, domain.Preferences{DisplayName: "Bo"})
	require.NoError(t, err)

	wire, err := MarshalSnapshot(snapshot)
	require.NoError(t, err)
	assert.Contains(t, string(wire), `"avatarImage":null`)

	parsed, err := UnmarshalSnapshot(wire)
	require.NoError(t, err)

	entries, prefs, err := Apply(parsed)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Nil(t, prefs.Avatar)
}

func TestUnmarshalSnapshot_Errors(t *testing.T) {
	valid, err := MarshalSnapshot(&domain.BackupSnapshot{
		Version:  domain.SnapshotVersion,
		Entries:  []byte("[]"),
		Settings: map[string]string{},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		data string
	}{
		{"Empty", ``},
		{"Truncated", string(valid[:len(valid)/2])},
		{"Wrong version", `{"version":2,"entries":"W10=","avatarImage":null,"settings":{}}`},
		{"Missing version", `{"entries":"W10=","settings":{}}`},
		{"Non-string setting", `{"version":1,"entries":"W10=","avatarImage":null,"settings":{"darkMode":true}}`},
		{"Invalid base64", `{"version":1,"entries":"!!!","avatarImage":null,"settings":{}}`},
		{"Unknown field", `{"version":1,"entries":"W10=","settings":{},"capsules":"W10="}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalSnapshot([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrDecode)
		})
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *domain.BackupSnapshot
	}{
		{"Nil snapshot", nil},
		{"Wrong version", &domain.BackupSnapshot{Version: 0, Entries: []byte("[]")}},
		{"Missing entries", &domain.BackupSnapshot{Version: domain.SnapshotVersion}},
		{"Corrupt entries", &domain.BackupSnapshot{Version: domain.SnapshotVersion, Entries: []byte(`[{"id":`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Apply(tt.snapshot)
			assert.ErrorIs(t, err, domain.ErrDecode)
		})
	}
}
