package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	models "io.winapps.prompts/internal/models/prompt"
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// PgxPool is the subset of *pgxpool.Pool used by PostgresRecordStore.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRecordStore keeps prompts in the "prompts" table created by db.InitPostgres.
type PostgresRecordStore struct {
	pool PgxPool
}

func NewPostgresRecordStore(pool PgxPool) *PostgresRecordStore {
	return &PostgresRecordStore{pool: pool}
}

func scanPrompt(row pgx.Row) (*models.Prompt, error) {
	var (
		p         models.Prompt
		mediaType string
	)
	if err := row.Scan(&p.ID, &p.Prompt, &p.MediaURL, &mediaType, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.MediaType = models.MediaType(mediaType)
	return &p, nil
}

func (s *PostgresRecordStore) Put(ctx context.Context, p models.Prompt) error {
	query := `
		INSERT INTO prompts (id, prompt, media_url, media_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`
	_, err := s.pool.Exec(ctx, query, p.ID, p.Prompt, p.MediaURL, string(p.MediaType), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("put prompt %s: %w", p.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("put prompt %s: %w", p.ID, err)
	}
	return nil
}

func (s *PostgresRecordStore) Scan(ctx context.Context) ([]models.Prompt, error) {
	query := `
		SELECT id, prompt, media_url, media_type, created_at, COALESCE(updated_at, '')
		FROM prompts
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scan prompts: %w", err)
	}
	defer rows.Close()

	prompts := []models.Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prompt row: %w", err)
		}
		prompts = append(prompts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan prompts: %w", err)
	}
	return prompts, nil
}

func (s *PostgresRecordStore) Get(ctx context.Context, id string) (*models.Prompt, error) {
	query := `
		SELECT id, prompt, media_url, media_type, created_at, COALESCE(updated_at, '')
		FROM prompts
		WHERE id = $1
	`
	p, err := scanPrompt(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get prompt %s: %w", id, err)
	}
	return p, nil
}

func (s *PostgresRecordStore) Update(ctx context.Context, id string, fields models.Fields, updatedAt string) (*models.Prompt, error) {
	query := `
		UPDATE prompts
		SET prompt = $1, media_url = $2, media_type = $3, updated_at = $4
		WHERE id = $5
		RETURNING id, prompt, media_url, media_type, created_at, COALESCE(updated_at, '')
	`
	p, err := scanPrompt(s.pool.QueryRow(ctx, query, fields.Prompt, fields.MediaURL, string(fields.MediaType), updatedAt, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update prompt %s: %w", id, err)
	}
	return p, nil
}

func (s *PostgresRecordStore) Delete(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM prompts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prompt %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
