package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/beyondcareer/teammatch/internal/config"
)

// UpcomingMatchingRounds returns the next count matching round dates on or after from.
// Rounds are scheduled by the matchingRounds rrule in the config.
func UpcomingMatchingRounds(cfg *config.Config, from time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	if cfg.MatchingRounds == "" {
		return nil, fmt.Errorf("no matchingRounds schedule configured")
	}

	rule, err := rrule.StrToRRule(cfg.MatchingRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to parse matchingRounds rrule: %w", err)
	}

	// Anchor the schedule at the start of the day so a round today is included
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	rule.DTStart(start)

	rounds := make([]time.Time, 0, count)
	next := rule.Iterator()
	for len(rounds) < count {
		round, ok := next()
		if !ok {
			break
		}
		rounds = append(rounds, round)
	}

	return rounds, nil
}

// CurrentMatchingRound returns the date of the round a run started at now belongs to:
// the first scheduled round on or after now. ok is false if no schedule is configured
// or the schedule has ended.
func CurrentMatchingRound(cfg *config.Config, now time.Time) (round time.Time, ok bool, err error) {
	if cfg.MatchingRounds == "" {
		return time.Time{}, false, nil
	}

	rounds, err := UpcomingMatchingRounds(cfg, now, 1)
	if err != nil {
		return time.Time{}, false, err
	}
	if len(rounds) == 0 {
		return time.Time{}, false, nil
	}
	return rounds[0], true, nil
}
