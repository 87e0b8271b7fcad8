package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/beyondcareer/teammatch/pkg/core/model"
	"github.com/beyondcareer/teammatch/pkg/db"
)

// InsertTeam records a team, its membership and each member's status change in one transaction.
// Members must still be pending a match; if any of them is not, nothing is written and
// db.ErrParticipantAlreadyAssigned is returned.
func (d *DB) InsertTeam(ctx context.Context, team *db.Team, memberIDs []string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO team (id, run_id, name, size, compatibility_score, common_case_types, phase, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, team.ID, team.RunID, team.Name, team.Size, team.CompatibilityScore,
		nonNil(team.CommonCaseTypes), team.Phase, team.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}

	for position, participantID := range memberIDs {
		tag, err := tx.Exec(ctx, `
			UPDATE participant SET status = $1
			WHERE id = $2 AND status = $3
		`, string(model.StatusTeamFormed), participantID, string(model.StatusPendingMatch))
		if err != nil {
			return fmt.Errorf("failed to update participant %s: %w", participantID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("participant %s: %w", participantID, db.ErrParticipantAlreadyAssigned)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO team_member (team_id, participant_id, position)
			VALUES ($1, $2, $3)
		`, team.ID, participantID, position)
		if err != nil {
			return fmt.Errorf("failed to insert team member %s: %w", participantID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTeams retrieves the teams formed in a run, best score first
func (d *DB) GetTeams(ctx context.Context, runID string) ([]db.Team, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, name, size, compatibility_score, common_case_types, phase, created_at, notified_datetime
		FROM team
		WHERE run_id = $1
		ORDER BY compatibility_score DESC, name
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []db.Team
	for rows.Next() {
		var t db.Team
		if err := rows.Scan(&t.ID, &t.RunID, &t.Name, &t.Size, &t.CompatibilityScore,
			&t.CommonCaseTypes, &t.Phase, &t.CreatedAt, &t.NotifiedDatetime); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

// GetTeamMembers retrieves membership rows for the given teams in member order
func (d *DB) GetTeamMembers(ctx context.Context, teamIDs []string) ([]db.TeamMember, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT team_id, participant_id, position
		FROM team_member
		WHERE team_id = ANY($1)
		ORDER BY team_id, position
	`, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	var members []db.TeamMember
	for rows.Next() {
		var m db.TeamMember
		if err := rows.Scan(&m.TeamID, &m.ParticipantID, &m.Position); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team members: %w", err)
	}

	return members, nil
}

// SetTeamNotified records when a team's members were emailed
func (d *DB) SetTeamNotified(ctx context.Context, teamID string, datetime time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE team SET notified_datetime = $1 WHERE id = $2
	`, datetime, teamID)
	if err != nil {
		return fmt.Errorf("failed to set team notified datetime: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("team %s not found", teamID)
	}
	return nil
}
