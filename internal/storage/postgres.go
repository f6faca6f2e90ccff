package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/bdougie/phasekit/internal/embeddings"
	"github.com/bdougie/phasekit/internal/models"
)

// PostgresConfig holds connection details for PostgreSQL
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ConnString builds a postgres:// URL with escaped credentials
func (c PostgresConfig) ConnString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	return u.String()
}

// PostgresStorage exports indexed videos and their phase profiles to PostgreSQL
type PostgresStorage struct {
	pool       *pgxpool.Pool
	dataset    string
	numClasses int
}

// NewPostgresStorage creates a new PostgreSQL storage connection
func NewPostgresStorage(ctx context.Context, config PostgresConfig, dataset string, numClasses int) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, config.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStorage{
		pool:       pool,
		dataset:    dataset,
		numClasses: numClasses,
	}, nil
}

// Close closes the database connection
func (s *PostgresStorage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// AddVideo stores a video, its phase profile and its frames, replacing any
// frames stored earlier for the same video
func (s *PostgresStorage) AddVideo(ctx context.Context, video models.Video) error {
	profile := embeddings.PhaseProfile(video.Labels(), s.numClasses)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var videoID int
	err = tx.QueryRow(ctx,
		`INSERT INTO videos (dataset, name, frame_count, profile, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (dataset, name) DO UPDATE
        SET frame_count = EXCLUDED.frame_count, profile = EXCLUDED.profile
        RETURNING id`,
		s.dataset, video.Name, len(video.Frames), pgvector.NewVector(profile), time.Now()).Scan(&videoID)
	if err != nil {
		return fmt.Errorf("failed to store video %s: %w", video.Name, err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM frames WHERE video_id = $1", videoID); err != nil {
		return fmt.Errorf("failed to clear frames of %s: %w", video.Name, err)
	}

	rows := make([][]any, len(video.Frames))
	for i, f := range video.Frames {
		rows[i] = []any{videoID, f.Index, f.Path, f.Phase, f.Label}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"frames"},
		[]string{"video_id", "frame_number", "frame_path", "phase", "label"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to store frames of %s: %w", video.Name, err)
	}

	return tx.Commit(ctx)
}

// Flush implements the Storage interface - no-op for Postgres as we save immediately
func (s *PostgresStorage) Flush() error {
	return nil
}

// Profile returns the stored phase profile of a video
func (s *PostgresStorage) Profile(ctx context.Context, name string) ([]float32, error) {
	var profile pgvector.Vector
	err := s.pool.QueryRow(ctx,
		"SELECT profile FROM videos WHERE dataset = $1 AND name = $2",
		s.dataset, name).Scan(&profile)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("video %s not found in dataset %s", name, s.dataset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile of %s: %w", name, err)
	}
	return profile.Slice(), nil
}

// SearchSimilarVideos finds videos whose phase profile is closest to profile
func (s *PostgresStorage) SearchSimilarVideos(ctx context.Context, profile []float32, limit int) ([]models.VideoSearchResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, frame_count, 1 - (profile <=> $1) AS similarity
        FROM videos
        WHERE dataset = $2
        ORDER BY profile <=> $1
        LIMIT $3`,
		pgvector.NewVector(profile), s.dataset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar videos: %w", err)
	}
	defer rows.Close()

	var results []models.VideoSearchResult
	for rows.Next() {
		var result models.VideoSearchResult
		if err := rows.Scan(&result.Name, &result.FrameCount, &result.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan search results: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// InitSchema creates the database schema if it doesn't exist
func InitSchema(ctx context.Context, config PostgresConfig) error {
	conn, err := pgx.Connect(ctx, config.ConnString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	_, err = conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS videos (
            id SERIAL PRIMARY KEY,
            dataset TEXT NOT NULL,
            name TEXT NOT NULL,
            frame_count INTEGER NOT NULL,
            profile vector,
            created_at TIMESTAMP NOT NULL,
            UNIQUE (dataset, name)
        );

        CREATE TABLE IF NOT EXISTS frames (
            id SERIAL PRIMARY KEY,
            video_id INTEGER NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
            frame_number INTEGER NOT NULL,
            frame_path TEXT NOT NULL,
            phase TEXT NOT NULL,
            label INTEGER NOT NULL
        );

        CREATE INDEX IF NOT EXISTS frames_video_idx ON frames(video_id, frame_number);
    `)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}
