// Importer loads a questions JSON bundle into Postgres, replacing whatever
// catalog is stored there.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/knowledgestack/backend/internal/catalog"
	"github.com/knowledgestack/backend/internal/db/repository"
)

func main() {
	file := flag.String("file", "configs/questions.json", "Path to the questions JSON bundle")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to read bundle")
	}
	var bundle catalog.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to decode bundle")
	}

	// Run the bundle through the catalog store first so a broken file is
	// rejected before the database is touched.
	store := catalog.NewStore()
	if err := store.Load(bundle.Questions); err != nil {
		log.Fatal().Err(err).Msg("bundle failed validation")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("PG_HOST", "localhost"),
		getEnv("PG_PORT", "5432"),
		os.Getenv("PG_USER"),
		os.Getenv("PG_PASSWORD"),
		os.Getenv("PG_DATABASE"),
		getEnv("PG_SSL_MODE", "disable"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	repo := repository.NewQuestionRepository(pool)
	if err := repo.ReplaceAll(ctx, bundle.Questions); err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	perTier := make(map[int]int)
	for _, q := range bundle.Questions {
		perTier[q.Difficulty]++
	}
	log.Info().
		Int("total", len(bundle.Questions)).
		Int("tier1", perTier[1]).
		Int("tier2", perTier[2]).
		Int("tier3", perTier[3]).
		Int("tier4", perTier[4]).
		Msg("catalog imported")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
