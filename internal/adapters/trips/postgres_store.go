// Package trips persists itineraries, either in Postgres or in memory.
package trips

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
)

// PostgresStore keeps each itinerary as a JSONB document alongside the
// columns the list query filters on.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// InitSchema creates the trips table when it does not exist yet.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS trips (
			id          UUID PRIMARY KEY,
			destination TEXT NOT NULL,
			days        INT NOT NULL,
			budget      DOUBLE PRECISION NOT NULL,
			doc         JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS trips_destination_idx ON trips (destination);
		CREATE INDEX IF NOT EXISTS trips_created_at_idx ON trips (created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("init trips schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, it *domain.Itinerary) (string, error) {
	id := it.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()
	stored := *it
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	doc, err := json.Marshal(&stored)
	if err != nil {
		return "", fmt.Errorf("save trip: marshal itinerary: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trips (id, destination, days, budget, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, stored.Destination, stored.Days, stored.Budget, doc, now, now)
	if err != nil {
		return "", fmt.Errorf("save trip %s: %w", id, err)
	}

	it.ID = id
	it.CreatedAt = now
	it.UpdatedAt = now
	return id, nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (*domain.Itinerary, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM trips WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTripNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load trip %s: %w", id, err)
	}

	var it domain.Itinerary
	if err := json.Unmarshal(doc, &it); err != nil {
		return nil, fmt.Errorf("load trip %s: unmarshal: %w", id, err)
	}
	return &it, nil
}

func (s *PostgresStore) List(ctx context.Context, destination string, limit, offset int) ([]*domain.Itinerary, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT doc FROM trips ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	args := []any{limit, offset}
	if destination != "" {
		query = `SELECT doc FROM trips WHERE destination = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
		args = []any{destination, limit, offset}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var out []*domain.Itinerary
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("list trips: scan: %w", err)
		}
		var it domain.Itinerary
		if err := json.Unmarshal(doc, &it); err != nil {
			return nil, fmt.Errorf("list trips: unmarshal: %w", err)
		}
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Replace(ctx context.Context, id string, it *domain.Itinerary) error {
	now := time.Now().UTC()
	stored := *it
	stored.ID = id
	stored.UpdatedAt = now

	doc, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("replace trip %s: marshal: %w", id, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE trips
		SET destination = $2, days = $3, budget = $4, doc = $5, updated_at = $6
		WHERE id = $1
	`, id, stored.Destination, stored.Days, stored.Budget, doc, now)
	if err != nil {
		return fmt.Errorf("replace trip %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace trip %s: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTripNotFound, id)
	}

	it.ID = id
	it.UpdatedAt = now
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip %s: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTripNotFound, id)
	}
	return nil
}
