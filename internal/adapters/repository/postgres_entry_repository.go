package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

var _ domain.EntryRepository = (*PostgresEntryRepository)(nil)

const pgUniqueViolation = "23505"

type PostgresEntryRepository struct {
	db *sqlx.DB
}

func NewPostgresEntryRepository(db *sqlx.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{db: db}
}

const insertEntryQuery = `
	INSERT INTO entries (id, entry_date, mood, content, color)
	VALUES (:id, :entry_date, :mood, :content, :color)`

func (r *PostgresEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	_, err := r.db.NamedExecContext(ctx, insertEntryQuery, entry)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateEntry, entry.ID)
		}
		return fmt.Errorf("repository: create entry failed: %w", err)
	}
	return nil
}

// isEntryID reports whether id can exist in the UUID column. Anything else is
// simply not found.
func isEntryID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *PostgresEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if !isEntryID(id) {
		return nil, domain.ErrEntryNotFound
	}

	var entry domain.Entry
	query := `SELECT id, entry_date, mood, content, color FROM entries WHERE id = $1`

	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("repository: get entry failed: %w", err)
	}
	return &entry, nil
}

func (r *PostgresEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	if !isEntryID(entry.ID) {
		return domain.ErrEntryNotFound
	}

	query := `
		UPDATE entries
		SET entry_date = :entry_date,
		    mood = :mood,
		    content = :content,
		    color = :color
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("repository: update entry failed: %w", err)
	}

	return expectRow(result)
}

func (r *PostgresEntryRepository) Delete(ctx context.Context, id string) error {
	if !isEntryID(id) {
		return domain.ErrEntryNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete entry failed: %w", err)
	}

	return expectRow(result)
}

func (r *PostgresEntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	entries := []*domain.Entry{}

	query := `SELECT id, entry_date, mood, content, color FROM entries ORDER BY entry_date DESC`

	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("repository: list entries failed: %w", err)
	}
	return entries, nil
}

func (r *PostgresEntryRepository) ReplaceAll(ctx context.Context, entries []*domain.Entry) error {
	for _, e := range entries {
		if !isEntryID(e.ID) {
			return fmt.Errorf("%w: entry id %q is not a uuid", domain.ErrDecode, e.ID)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("repository: clear entries: %w", err)
	}

	for _, e := range entries {
		if _, err := tx.NamedExecContext(ctx, insertEntryQuery, e); err != nil {
			return fmt.Errorf("repository: insert entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit replace: %w", err)
	}
	return nil
}

func expectRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}
