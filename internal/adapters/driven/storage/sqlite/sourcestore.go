package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

const sourceColumns = `id, name, enabled, types, uris, suites, components, options, created_at, updated_at`

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Save stores or updates a source.
func (s *sourceStore) Save(ctx context.Context, source domain.Source) error {
	if source.ID == "" {
		return domain.ErrInvalidInput
	}

	cols, err := encodeLists(source)
	if err != nil {
		return err
	}
	options, err := encodeOptions(source.Options)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if source.CreatedAt.IsZero() {
		source.CreatedAt = now
	}
	if source.UpdatedAt.IsZero() {
		source.UpdatedAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sources (`+sourceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			enabled = excluded.enabled,
			types = excluded.types,
			uris = excluded.uris,
			suites = excluded.suites,
			components = excluded.components,
			options = excluded.options,
			updated_at = excluded.updated_at
	`, source.ID, source.Name, source.Enabled, cols[0], cols[1], cols[2], cols[3], options,
		source.CreatedAt, source.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

// Get retrieves a source by ID.
func (s *sourceStore) Get(ctx context.Context, id string) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+sourceColumns+` FROM sources WHERE id = ?`, id)

	source, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return source, nil
}

// Delete removes a source.
func (s *sourceStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

// List returns all stored sources ordered by name.
func (s *sourceStore) List(ctx context.Context) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+sourceColumns+` FROM sources ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	sources := []domain.Source{}
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

func scanSource(row rowScanner) (*domain.Source, error) {
	var source domain.Source
	var types, uris, suites, components string
	var options sql.NullString
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&source.ID, &source.Name, &source.Enabled, &types, &uris, &suites,
		&components, &options, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}

	for _, col := range []struct {
		raw  string
		dest any
	}{
		{types, &source.Types},
		{uris, &source.URIs},
		{suites, &source.Suites},
		{components, &source.Components},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dest); err != nil {
			return nil, fmt.Errorf("unmarshaling source %s: %w", source.ID, err)
		}
	}

	if options.Valid && options.String != jsonNull {
		var entries []domain.Option
		if err := json.Unmarshal([]byte(options.String), &entries); err != nil {
			return nil, fmt.Errorf("unmarshaling options: %w", err)
		}
		source.Options = domain.NewOptions(entries...)
	}

	if createdAt.Valid {
		source.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		source.UpdatedAt = updatedAt.Time
	}

	return &source, nil
}

// encodeLists returns the JSON for types, uris, suites and components.
func encodeLists(source domain.Source) ([4]string, error) {
	var out [4]string
	for i, v := range []any{source.Types, source.URIs, source.Suites, source.Components} {
		b, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("marshalling source %s: %w", source.ID, err)
		}
		out[i] = string(b)
	}
	return out, nil
}

// encodeOptions returns NULL for a missing option block and a JSON array otherwise.
func encodeOptions(opts *domain.Options) (sql.NullString, error) {
	if opts == nil {
		return sql.NullString{}, nil
	}
	entries := opts.Entries()
	if entries == nil {
		entries = []domain.Option{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshalling options: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
