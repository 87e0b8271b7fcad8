package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/clients/sheetsclient"
	"github.com/beyondcareer/teammatch/pkg/core/model"
	"github.com/beyondcareer/teammatch/pkg/db"
)

// SubmissionSource reads questionnaire submissions
type SubmissionSource interface {
	ListSubmissions(cfg *config.Config) ([]model.Submission, []sheetsclient.SkippedRow, error)
}

// ImportParticipantsStore defines the database operations needed for importing
type ImportParticipantsStore interface {
	InsertParticipants(ctx context.Context, participants []db.Participant) (int, error)
}

// ImportResult summarises an import
type ImportResult struct {
	Fetched         int
	Inserted        int
	AlreadyImported int
	Skipped         []sheetsclient.SkippedRow
}

// ImportParticipants copies new questionnaire submissions into the store as pending participants.
// Submissions already in the store are left untouched, so importing is safe to repeat.
func ImportParticipants(
	ctx context.Context,
	database ImportParticipantsStore,
	source SubmissionSource,
	cfg *config.Config,
	logger *zap.Logger,
) (*ImportResult, error) {
	logger.Debug("Fetching questionnaire submissions",
		zap.String("sheet_id", cfg.QuestionnaireSheetID),
		zap.String("tab", cfg.QuestionnaireTab))

	submissions, skipped, err := source.ListSubmissions(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	for _, row := range skipped {
		logger.Info("Skipping questionnaire row", zap.Int("row", row.Row), zap.String("reason", row.Reason))
	}

	importedAt := time.Now()
	participants := make([]db.Participant, len(submissions))
	for i, s := range submissions {
		participants[i] = submissionToParticipant(s, importedAt)
	}

	inserted := 0
	if len(participants) > 0 {
		inserted, err = database.InsertParticipants(ctx, participants)
		if err != nil {
			return nil, fmt.Errorf("failed to insert participants: %w", err)
		}
	}

	logger.Debug("Imported participants",
		zap.Int("fetched", len(submissions)),
		zap.Int("inserted", inserted),
		zap.Int("skipped_rows", len(skipped)))

	return &ImportResult{
		Fetched:         len(submissions),
		Inserted:        inserted,
		AlreadyImported: len(submissions) - inserted,
		Skipped:         skipped,
	}, nil
}
