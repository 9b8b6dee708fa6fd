package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/knowledgestack/backend/internal/catalog"
)

// QuestionRepository persists the question catalog in Postgres.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository wraps a pgx pool for catalog operations.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListAll returns every stored question ordered by ID.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]catalog.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, category, text_tr, text_en, answer, wrong, difficulty, time_limit
		 FROM questions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}
	defer rows.Close()

	var questions []catalog.Question
	for rows.Next() {
		var q catalog.Question
		if err := rows.Scan(&q.ID, &q.Category, &q.TextTR, &q.TextEN, &q.Answer, &q.Wrong, &q.Difficulty, &q.TimeLimit); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

// ReplaceAll swaps the stored catalog for the given set inside one
// transaction, mirroring the store's replace-not-append load semantics.
func (r *QuestionRepository) ReplaceAll(ctx context.Context, questions []catalog.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE questions"); err != nil {
		return fmt.Errorf("truncate questions: %w", err)
	}
	for _, q := range questions {
		_, err := tx.Exec(ctx,
			`INSERT INTO questions (id, category, text_tr, text_en, answer, wrong, difficulty, time_limit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			q.ID, q.Category, q.TextTR, q.TextEN, q.Answer, q.Wrong, q.Difficulty, q.TimeLimit,
		)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", q.ID, err)
		}
	}
	return tx.Commit(ctx)
}
