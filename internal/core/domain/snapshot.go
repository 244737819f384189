package domain

import (
	"context"
	"errors"
)

var (
	ErrDecode          = errors.New("decode error")
	ErrArchiveNotFound = errors.New("archived snapshot not found")
)

const (
	SnapshotVersion = 1

	SettingDarkMode    = "darkMode"
	SettingDisplayName = "displayName"
)

// BackupSnapshot is a point-in-time export of the entry collection and preferences.
// Entries holds the store's native entry encoding. Settings only carries string
// values: non-string settings are dropped when the snapshot is built.
type BackupSnapshot struct {
	Version     int               `json:"version"`
	Entries     []byte            `json:"entries"`
	AvatarImage []byte            `json:"avatarImage"`
	Settings    map[string]string `json:"settings"`
}

// SnapshotArchive is an off-device store for encoded snapshots.
type SnapshotArchive interface {
	// Put stores data under key, overwriting any previous object.
	Put(ctx context.Context, key string, data []byte) error
	// Get returns ErrArchiveNotFound when key is unknown.
	Get(ctx context.Context, key string) ([]byte, error)
}
