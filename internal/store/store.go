// Package store keeps a local SQLite history of successful digest requests.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/vidsum/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		video_url TEXT NOT NULL,
		transcript_lang TEXT NOT NULL,
		summary_lang TEXT NOT NULL,
		summary_format TEXT NOT NULL,
		transcript_en TEXT NOT NULL,
		transcript_selected TEXT NOT NULL,
		summary_en TEXT NOT NULL,
		summary_selected TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_url ON submissions(video_url);
	CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveSubmission records sub and returns its ID. An empty ID is replaced by
// a fresh UUID and a zero Timestamp by the current time.
func (s *Store) SaveSubmission(ctx context.Context, sub internal.Submission) (string, error) {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.Timestamp.IsZero() {
		sub.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, video_url, transcript_lang, summary_lang, summary_format, transcript_en, transcript_selected, summary_en, summary_selected, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, normalizeURL(sub.Request.VideoURL), sub.Request.TranscriptLang, sub.Request.SummaryLang, sub.Request.SummaryFormat,
		sub.Response.TranscriptEN, sub.Response.TranscriptSelected, sub.Response.SummaryEN, sub.Response.SummarySelected,
		sub.Timestamp.UTC())
	if err != nil {
		return "", err
	}
	return sub.ID, nil
}

const selectColumns = `SELECT id, video_url, transcript_lang, summary_lang, summary_format, transcript_en, transcript_selected, summary_en, summary_selected, created_at FROM submissions`

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (internal.Submission, error) {
	var sub internal.Submission
	err := row.Scan(
		&sub.ID,
		&sub.Request.VideoURL, &sub.Request.TranscriptLang, &sub.Request.SummaryLang, &sub.Request.SummaryFormat,
		&sub.Response.TranscriptEN, &sub.Response.TranscriptSelected, &sub.Response.SummaryEN, &sub.Response.SummarySelected,
		&sub.Timestamp,
	)
	return sub, err
}

// GetSubmission returns the submission with the given ID, or *ErrNotFound.
func (s *Store) GetSubmission(ctx context.Context, id string) (*internal.Submission, error) {
	sub, err := scanSubmission(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, &ErrNotFound{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubmissions returns the newest submissions first. limit <= 0 means all.
func (s *Store) ListSubmissions(ctx context.Context, limit int) ([]internal.Submission, error) {
	query := selectColumns + ` ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// FindByURL returns every submission for videoURL, newest first.
func (s *Store) FindByURL(ctx context.Context, videoURL string) ([]internal.Submission, error) {
	return s.query(ctx, selectColumns+` WHERE video_url = ? ORDER BY created_at DESC`, normalizeURL(videoURL))
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]internal.Submission, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []internal.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, sub)
	}

	return results, rows.Err()
}

// DeleteSubmission permanently removes a submission by ID.
func (s *Store) DeleteSubmission(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &ErrNotFound{ID: id}
	}
	return nil
}

// ClearSubmissions removes the whole history and reports how many rows went.
func (s *Store) ClearSubmissions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submissions`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats summarises the history.
type Stats struct {
	Submissions int
	Videos      int
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT video_url) FROM submissions`).Scan(&stats.Submissions, &stats.Videos)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeURL trims whitespace and applies Unicode NFC normalization so the
// same URL pasted from different sources matches one history key.
func normalizeURL(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

// ErrNotFound reports a missing history entry.
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("submission %s not found", e.ID)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}
