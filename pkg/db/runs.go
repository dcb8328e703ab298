package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/mapreduce"
)

var ErrRunNotFound = errors.New("run not found")

// Run is one recorded word cloud.
type Run struct {
	RunID            int64
	CreatedAt        time.Time
	ServerURL        string
	AccountName      string
	AccountID        string
	StatusesCount    int
	StatusesSeen     int
	Pages            int
	Capped           bool
	StopwordsRemoved int
	OutputPath       string
	WordCount        int
}

// InsertRun stores a run and its final word counts in one transaction.
func (db *DB) InsertRun(run Run, freq analytics.FrequencyMap) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	result, err := tx.Exec(`
		INSERT INTO runs (server_url, account_name, account_id, statuses_count,
			statuses_seen, pages, capped, stopwords_removed, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ServerURL, run.AccountName, run.AccountID, run.StatusesCount,
		run.StatusesSeen, run.Pages, run.Capped, run.StopwordsRemoved, run.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO run_words (run_id, word, count) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare word insert: %w", err)
	}
	defer stmt.Close()

	for word, count := range freq {
		if _, err := stmt.Exec(runID, word, count); err != nil {
			return 0, fmt.Errorf("failed to insert word %q: %w", word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `
	r.run_id, r.created_at, r.server_url, r.account_name, r.account_id,
	r.statuses_count, r.statuses_seen, r.pages, r.capped, r.stopwords_removed,
	COALESCE(r.output_path, ''),
	(SELECT COUNT(*) FROM run_words w WHERE w.run_id = r.run_id)
`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	err := row.Scan(&r.RunID, &r.CreatedAt, &r.ServerURL, &r.AccountName, &r.AccountID,
		&r.StatusesCount, &r.StatusesSeen, &r.Pages, &r.Capped, &r.StopwordsRemoved,
		&r.OutputPath, &r.WordCount)
	return r, err
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`SELECT `+runColumns+` FROM runs r ORDER BY r.run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (db *DB) GetRun(runID int64) (Run, error) {
	r, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM runs r WHERE r.run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// RunWords returns the top n words of a run, highest count first.
func (db *DB) RunWords(runID int64, n int) ([]mapreduce.WordCount, error) {
	if n <= 0 {
		n = -1 // SQLite: no limit
	}
	rows, err := db.Query(`
		SELECT word, count FROM run_words
		WHERE run_id = ?
		ORDER BY count DESC, word ASC
		LIMIT ?
	`, runID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query run words: %w", err)
	}
	defer rows.Close()

	var words []mapreduce.WordCount
	for rows.Next() {
		var wc mapreduce.WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, wc)
	}
	return words, rows.Err()
}

// DeleteRun removes a run and, through the foreign key, its words.
func (db *DB) DeleteRun(runID int64) error {
	result, err := db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	return nil
}
