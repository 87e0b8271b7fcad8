package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/beyondcareer/teammatch/pkg/core/model"
	"github.com/beyondcareer/teammatch/pkg/db"
)

const participantColumns = `
	p.id, p.full_name, p.email, p.contact_number, p.institution, p.study_year,
	p.core_strengths, p.preferred_roles, p.case_types, p.team_size,
	p.composition, p.availability, p.experience, p.status, p.submitted_at, p.imported_at
`

// GetParticipants retrieves all participant records ordered by submission time
func (d *DB) GetParticipants(ctx context.Context) ([]db.Participant, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+participantColumns+`
		FROM participant p
		ORDER BY p.submitted_at, p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	return collectParticipants(rows)
}

// GetParticipantsByStatus retrieves participants with the given status ordered by submission time
func (d *DB) GetParticipantsByStatus(ctx context.Context, status model.ParticipantStatus) ([]db.Participant, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+participantColumns+`
		FROM participant p
		WHERE p.status = $1
		ORDER BY p.submitted_at, p.id
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query participants by status: %w", err)
	}
	return collectParticipants(rows)
}

// GetUnassignedParticipants retrieves participants that are pending a match and are not a
// member of any team, ordered by submission time. The membership check covers rows whose
// status was never flipped.
func (d *DB) GetUnassignedParticipants(ctx context.Context) ([]db.Participant, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+participantColumns+`
		FROM participant p
		WHERE p.status = $1
		  AND NOT EXISTS (
			SELECT 1 FROM team_member tm WHERE tm.participant_id = p.id
		  )
		ORDER BY p.submitted_at, p.id
	`, string(model.StatusPendingMatch))
	if err != nil {
		return nil, fmt.Errorf("failed to query unassigned participants: %w", err)
	}
	return collectParticipants(rows)
}

// InsertParticipants inserts participant records, skipping IDs that already exist.
// Returns the number of rows inserted.
func (d *DB) InsertParticipants(ctx context.Context, participants []db.Participant) (int, error) {
	if len(participants) == 0 {
		return 0, nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, p := range participants {
		status := p.Status
		if status == "" {
			status = model.StatusPendingMatch
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO participant (
				id, full_name, email, contact_number, institution, study_year,
				core_strengths, preferred_roles, case_types, team_size,
				composition, availability, experience, status, submitted_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.FullName, p.Email, p.ContactNumber, p.Institution, p.StudyYear,
			nonNil(p.CoreStrengths), nonNil(p.PreferredRoles), nonNil(p.CaseTypes), p.TeamSize,
			p.Composition, p.Availability, p.Experience, string(status), p.SubmittedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert participant %s: %w", p.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

func collectParticipants(rows pgx.Rows) ([]db.Participant, error) {
	defer rows.Close()

	var participants []db.Participant
	for rows.Next() {
		var p db.Participant
		var status string
		if err := rows.Scan(
			&p.ID, &p.FullName, &p.Email, &p.ContactNumber, &p.Institution, &p.StudyYear,
			&p.CoreStrengths, &p.PreferredRoles, &p.CaseTypes, &p.TeamSize,
			&p.Composition, &p.Availability, &p.Experience, &status, &p.SubmittedAt, &p.ImportedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		p.Status = model.ParticipantStatus(status)
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}

// nonNil keeps NOT NULL array columns from receiving a NULL
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
