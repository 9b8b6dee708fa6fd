package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/knowledgestack/backend/internal/progress"
)

const playerColumns = "user_id, level, total_score, served_questions, last_login"

// PlayerRepository persists player progress records in Postgres.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

var _ progress.Repository = (*PlayerRepository)(nil)

// NewPlayerRepository wraps a pgx pool for player progress operations.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

// Get fetches one player's record, returning progress.ErrUnknownPlayer when
// absent.
func (r *PlayerRepository) Get(ctx context.Context, playerID string) (progress.PlayerProgress, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+playerColumns+" FROM players WHERE user_id = $1",
		playerID,
	)
	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return progress.PlayerProgress{}, progress.ErrUnknownPlayer
	}
	if err != nil {
		return progress.PlayerProgress{}, fmt.Errorf("select player: %w", err)
	}
	return p, nil
}

// Create inserts a fresh record with the schema defaults (level 1, score 0,
// empty history). A concurrent create of the same player just refreshes
// last_login.
func (r *PlayerRepository) Create(ctx context.Context, playerID string) (progress.PlayerProgress, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO players (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET last_login = now()
		 RETURNING `+playerColumns,
		playerID,
	)
	p, err := scanPlayer(row)
	if err != nil {
		return progress.PlayerProgress{}, fmt.Errorf("insert player: %w", err)
	}
	return p, nil
}

// Save writes the full record back.
func (r *PlayerRepository) Save(ctx context.Context, p progress.PlayerProgress) error {
	served := make([]int32, len(p.Served))
	for i, id := range p.Served {
		served[i] = int32(id)
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE players
		 SET level = $2, total_score = $3, served_questions = $4, last_login = $5
		 WHERE user_id = $1`,
		p.PlayerID, p.Level, p.TotalScore, served, p.LastLogin,
	)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func scanPlayer(row pgx.Row) (progress.PlayerProgress, error) {
	var p progress.PlayerProgress
	var served []int32
	if err := row.Scan(&p.PlayerID, &p.Level, &p.TotalScore, &served, &p.LastLogin); err != nil {
		return progress.PlayerProgress{}, err
	}
	p.Served = make([]int, len(served))
	for i, id := range served {
		p.Served[i] = int(id)
	}
	return p, nil
}
