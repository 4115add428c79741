package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"invoice-desk/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Advisory lock key shared by every migrator instance. Holding it ensures
// only one migrator mutates the schema at a time.
const migrationLockID = 9152204

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	if err := run(ctx, pool, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("all migrations processed")
}

func run(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	// The lock lives on a dedicated connection so it is held for the whole
	// run and released when the connection goes back to the pool.
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire lock connection: %w", err)
	}
	defer conn.Release()

	var locked bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, migrationLockID).Scan(&locked); err != nil {
		return fmt.Errorf("query advisory lock: %w", err)
	}
	if !locked {
		return errors.New("another migrator is currently running")
	}

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			checksum TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	files, err := migrationFiles(dir)
	if err != nil {
		return err
	}
	for _, filename := range files {
		if err := applyMigration(ctx, pool, dir, filename); err != nil {
			return fmt.Errorf("apply %s: %w", filename, err)
		}
	}
	return nil
}

// migrationFiles lists the .sql files in dir sorted by name, rejecting
// duplicate version prefixes.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var filenames []string
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, err := extractVersion(entry.Name())
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s: %s and %s", version, prev, entry.Name())
		}
		seen[version] = entry.Name()
		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)
	return filenames, nil
}

// extractVersion returns the NNN prefix of an NNN_description.sql filename.
func extractVersion(filename string) (string, error) {
	version, rest, ok := strings.Cut(filename, "_")
	if !ok || version == "" || rest == "" {
		return "", fmt.Errorf("invalid migration filename %q, expected NNN_description.sql", filename)
	}
	return version, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, dir, filename string) error {
	version, err := extractVersion(filename)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	sum := sha256.Sum256(content)
	checksum := hex.EncodeToString(sum[:])

	var existing string
	err = pool.QueryRow(ctx, `SELECT checksum FROM schema_migrations WHERE version = $1`, version).Scan(&existing)
	switch {
	case err == nil:
		if existing != checksum {
			return fmt.Errorf("checksum mismatch: recorded %s, file has %s", existing, checksum)
		}
		log.Info().Str("file", filename).Msg("already applied, skipping")
		return nil
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("query schema_migrations: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, filename, checksum) VALUES ($1, $2, $3)`,
		version, filename, checksum,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.Info().Str("file", filename).Msg("applied")
	return nil
}
