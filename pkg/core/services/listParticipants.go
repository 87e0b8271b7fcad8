package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/beyondcareer/teammatch/pkg/core/model"
	"github.com/beyondcareer/teammatch/pkg/db"
)

// ListParticipantsStore defines the database operations needed for listing participants
type ListParticipantsStore interface {
	GetParticipants(ctx context.Context) ([]db.Participant, error)
	GetParticipantsByStatus(ctx context.Context, status model.ParticipantStatus) ([]db.Participant, error)
}

// ListParticipants returns every participant, or only those with the given status if one is set
func ListParticipants(ctx context.Context, database ListParticipantsStore, logger *zap.Logger, status string) ([]db.Participant, error) {
	if status == "" {
		participants, err := database.GetParticipants(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch participants: %w", err)
		}
		logger.Debug("Fetched participants", zap.Int("count", len(participants)))
		return participants, nil
	}

	participantStatus := model.ParticipantStatus(status)
	if !participantStatus.IsValid() {
		return nil, fmt.Errorf("invalid status %q, expected %q or %q", status, model.StatusPendingMatch, model.StatusTeamFormed)
	}

	participants, err := database.GetParticipantsByStatus(ctx, participantStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}

	logger.Debug("Fetched participants", zap.String("status", status), zap.Int("count", len(participants)))
	return participants, nil
}
