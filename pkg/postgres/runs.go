package postgres

import (
	"context"
	"fmt"

	"github.com/beyondcareer/teammatch/pkg/db"
)

// InsertMatchRun inserts a match run record
func (d *DB) InsertMatchRun(ctx context.Context, run *db.MatchRun) error {
	var roundDate *string
	if run.RoundDate != "" {
		roundDate = &run.RoundDate
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO match_run (id, round_date, started_at, threshold, team_count, unmatched_count)
		VALUES ($1, $2::text::date, $3, $4, $5, $6)
	`, run.ID, roundDate, run.StartedAt, run.Threshold, run.TeamCount, run.UnmatchedCount)
	if err != nil {
		return fmt.Errorf("failed to insert match run: %w", err)
	}
	return nil
}

// FinishMatchRun records the final counts of a match run
func (d *DB) FinishMatchRun(ctx context.Context, runID string, teamCount, unmatchedCount int) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE match_run SET team_count = $1, unmatched_count = $2 WHERE id = $3
	`, teamCount, unmatchedCount, runID)
	if err != nil {
		return fmt.Errorf("failed to finish match run: %w", err)
	}
	return nil
}

// GetMatchRuns retrieves all match runs, most recent first
func (d *DB) GetMatchRuns(ctx context.Context) ([]db.MatchRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, COALESCE(round_date::text, ''), started_at, threshold, team_count, unmatched_count
		FROM match_run
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query match runs: %w", err)
	}
	defer rows.Close()

	var runs []db.MatchRun
	for rows.Next() {
		var r db.MatchRun
		if err := rows.Scan(&r.ID, &r.RoundDate, &r.StartedAt, &r.Threshold, &r.TeamCount, &r.UnmatchedCount); err != nil {
			return nil, fmt.Errorf("failed to scan match run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match runs: %w", err)
	}

	return runs, nil
}
