package e2e

import (
	"github.com/beyondcareer/teammatch/pkg/core/matcher"
	"github.com/beyondcareer/teammatch/pkg/core/matcher/criteria"
)

// Type aliases to avoid prefixing everything with matcher.
type (
	Participant     = matcher.Participant
	Team            = matcher.Team
	Config          = matcher.Config
	Outcome         = matcher.Outcome
	UnmatchedRecord = matcher.UnmatchedRecord
)

// Function aliases
var (
	Match             = matcher.Match
	AnalyzeUnmatched  = matcher.AnalyzeUnmatched
	DefaultConfig     = matcher.DefaultConfig
	CompositionAllows = matcher.CompositionAllows
	NewScorer         = matcher.NewScorer
	DefaultCriteria   = criteria.Default
)
