package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

var _ domain.PreferenceRepository = (*PostgresPreferenceRepository)(nil)

type PostgresPreferenceRepository struct {
	db *sqlx.DB
}

func NewPostgresPreferenceRepository(db *sqlx.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

type preferenceRow struct {
	DarkMode    bool   `db:"dark_mode"`
	DisplayName string `db:"display_name"`
	Avatar      []byte `db:"avatar"`
}

func (r *PostgresPreferenceRepository) Get(ctx context.Context) (domain.Preferences, error) {
	var row preferenceRow

	err := r.db.GetContext(ctx, &row, `SELECT dark_mode, display_name, avatar FROM preferences WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Preferences{}, nil
		}
		return domain.Preferences{}, fmt.Errorf("repository: get preferences failed: %w", err)
	}

	return domain.Preferences{
		DarkMode:    row.DarkMode,
		DisplayName: row.DisplayName,
		Avatar:      row.Avatar,
	}, nil
}

func (r *PostgresPreferenceRepository) Save(ctx context.Context, prefs domain.Preferences) error {
	query := `
		INSERT INTO preferences (id, dark_mode, display_name, avatar, updated_at)
		VALUES (1, :dark_mode, :display_name, :avatar, NOW())
		ON CONFLICT (id) DO UPDATE
		SET dark_mode = EXCLUDED.dark_mode,
		    display_name = EXCLUDED.display_name,
		    avatar = EXCLUDED.avatar,
		    updated_at = EXCLUDED.updated_at`

	row := preferenceRow{
		DarkMode:    prefs.DarkMode,
		DisplayName: prefs.DisplayName,
		Avatar:      prefs.Avatar,
	}

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("repository: save preferences failed: %w", err)
	}
	return nil
}
