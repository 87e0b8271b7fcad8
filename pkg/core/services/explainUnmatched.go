package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
	"github.com/beyondcareer/teammatch/pkg/db"
)

// ExplainUnmatchedStore defines the database operations needed for explaining the pool
type ExplainUnmatchedStore interface {
	GetUnassignedParticipants(ctx context.Context) ([]db.Participant, error)
}

// ExplainResult describes who the next run would leave without a team, and why
type ExplainResult struct {
	PoolSize    int
	WouldMatch  int
	Records     []matcher.UnmatchedRecord
	Participant string // set when a single participant was requested
}

// ExplainUnmatched runs the matching engine on the current pool without saving anything
// and returns the diagnosis for every participant it would leave unmatched.
// If participantID is set only that participant's record is returned; the result has no
// records if they would be matched.
func ExplainUnmatched(
	ctx context.Context,
	database ExplainUnmatchedStore,
	cfg *config.Config,
	logger *zap.Logger,
	participantID string,
) (*ExplainResult, error) {
	pool, err := database.GetUnassignedParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned participants: %w", err)
	}

	if participantID != "" && !containsParticipant(pool, participantID) {
		return nil, fmt.Errorf("participant %s is not waiting for a team", participantID)
	}

	outcome, err := matcher.Match(toParticipants(pool), matchingConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to run matching: %w", err)
	}

	result := &ExplainResult{
		PoolSize:    len(pool),
		WouldMatch:  outcome.MatchedCount(),
		Records:     outcome.Unmatched,
		Participant: participantID,
	}

	if participantID != "" {
		result.Records = []matcher.UnmatchedRecord{}
		for _, record := range outcome.Unmatched {
			if record.Participant.ID == participantID {
				result.Records = append(result.Records, record)
			}
		}
	}

	logger.Debug("Explained unmatched participants",
		zap.Int("pool", result.PoolSize),
		zap.Int("would_match", result.WouldMatch),
		zap.Int("records", len(result.Records)))

	return result, nil
}

func containsParticipant(participants []db.Participant, id string) bool {
	for _, p := range participants {
		if p.ID == id {
			return true
		}
	}
	return false
}
