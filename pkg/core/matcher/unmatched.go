package matcher

import (
	"fmt"
	"slices"
	"strings"
)

// AnalyzeUnmatched explains why each participant in the residue was not placed.
//
// residue is the final unmatched set in submission order and issues holds validation
// problems for malformed records. The analysis is a pure function of its inputs:
// the same residue always yields the same reasons and potential matches.
func AnalyzeUnmatched(residue []*Participant, issues map[*Participant][]ValidationIssue, cfg Config) []UnmatchedRecord {
	scorer := NewScorer(cfg.Criteria)

	// Only valid records take part in pool-depth and pairing analysis
	valid := make([]*Participant, 0, len(residue))
	for _, p := range residue {
		if len(issues[p]) == 0 {
			valid = append(valid, p)
		}
	}

	records := make([]UnmatchedRecord, 0, len(residue))
	for _, p := range residue {
		record := UnmatchedRecord{
			Participant:      p,
			Reasons:          []Reason{},
			PotentialMatches: []PotentialMatch{},
			Recommendations:  []string{},
		}

		if recordIssues := issues[p]; len(recordIssues) > 0 {
			record.Reasons = invalidRecordReasons(recordIssues, cfg)
		} else {
			others := make([]*Participant, 0, len(valid))
			for _, other := range valid {
				if other != p {
					others = append(others, other)
				}
			}
			record.Reasons = poolReasons(p, others, scorer, cfg)
			record.PotentialMatches = potentialMatches(p, others, scorer, cfg)
		}

		slices.SortStableFunc(record.Reasons, func(a, b Reason) int {
			return int(b.Severity) - int(a.Severity)
		})
		record.Recommendations = recommendations(record.Reasons)

		records = append(records, record)
	}

	return records
}

// invalidRecordReasons groups validation issues into one CRITICAL reason per category
func invalidRecordReasons(recordIssues []ValidationIssue, cfg Config) []Reason {
	var reasons []Reason
	byCategory := make(map[ReasonCategory]int)

	for _, issue := range recordIssues {
		idx, ok := byCategory[issue.Category]
		if !ok {
			reasons = append(reasons, invalidReason(issue.Category, cfg))
			idx = len(reasons) - 1
			byCategory[issue.Category] = idx
		}
		reasons[idx].Details = append(reasons[idx].Details, issue.Message)
	}

	return reasons
}

func invalidReason(category ReasonCategory, cfg Config) Reason {
	reason := Reason{
		Category: category,
		Severity: SeverityCritical,
	}

	switch category {
	case CategoryTeamSize:
		reason.Title = "Invalid team size"
		reason.Description = "The requested team size is outside the supported range, so no team can be formed"
		reason.Suggestions = []string{fmt.Sprintf("Resubmit the questionnaire with a team size between %d and %d", cfg.MinTeamSize, cfg.MaxTeamSize)}
	case CategoryTeamPreference:
		reason.Title = "Invalid team composition details"
		reason.Description = "The team composition preference or study year could not be interpreted"
		reason.Suggestions = []string{"Resubmit the questionnaire with a study year and a composition preference of Undergraduates only, Postgraduates only or Either"}
	case CategoryAvailability:
		reason.Title = "Availability not provided"
		reason.Description = "Availability is required to find compatible teammates"
		reason.Suggestions = []string{"Resubmit the questionnaire with your availability"}
	default:
		reason.Title = "Incomplete questionnaire"
		reason.Description = "The submission is missing information required for matching"
		reason.Suggestions = []string{"Resubmit the questionnaire with all required fields completed"}
	}

	return reason
}

// poolReasons works out why a valid participant could not be grouped with the rest of the residue
func poolReasons(p *Participant, others []*Participant, scorer *Scorer, cfg Config) []Reason {
	var reasons []Reason

	if !SelfConsistent(p) {
		reasons = append(reasons, Reason{
			Category:    CategoryTeamPreference,
			Severity:    SeverityCritical,
			Title:       "Team composition preference excludes you",
			Description: fmt.Sprintf("You asked for %q but your study year %q makes you a %s student", p.Composition, p.StudyYear, strings.ToLower(p.Level.String())),
			Suggestions: []string{fmt.Sprintf("Consider relaxing team composition preference to %q", EitherLevel)},
		})
		return append(reasons, availabilityReasons(p, nil)...)
	}

	needed := p.TeamSize - 1
	var sameSize []*Participant
	for _, other := range others {
		if other.TeamSize == p.TeamSize {
			sameSize = append(sameSize, other)
		}
	}

	var compatible []*Participant
	for _, other := range sameSize {
		if SelfConsistent(other) && PairCompatible(p, other) {
			compatible = append(compatible, other)
		}
	}

	switch {
	case len(sameSize) < needed:
		reasons = append(reasons, teamSizeReason(p, others, cfg))

	case len(compatible) == 0:
		if p.Composition != EitherLevel {
			reasons = append(reasons, Reason{
				Category:    CategoryTeamPreference,
				Severity:    SeverityCritical,
				Title:       "No candidates match your team composition preference",
				Description: fmt.Sprintf("None of the %d participants wanting a team of %d satisfy %q", len(sameSize), p.TeamSize, p.Composition),
				Suggestions: []string{fmt.Sprintf("Consider relaxing team composition preference to %q", EitherLevel)},
			})
		} else {
			reasons = append(reasons, Reason{
				Category:    CategoryInsufficientCandidates,
				Severity:    SeverityHigh,
				Title:       "Other participants' composition preferences exclude you",
				Description: fmt.Sprintf("All %d participants wanting a team of %d asked for a composition that excludes %s students", len(sameSize), p.TeamSize, strings.ToLower(p.Level.String())),
				Suggestions: []string{"Wait for the next matching round when more participants have applied"},
			})
		}

	case len(compatible) < needed:
		reason := Reason{
			Category:    CategoryInsufficientCandidates,
			Severity:    SeverityMedium,
			Title:       "Too few compatible candidates",
			Description: fmt.Sprintf("Only %d compatible participants want a team of %d, %d needed", len(compatible), p.TeamSize, needed),
			Suggestions: []string{"Wait for the next matching round when more participants have applied"},
		}
		if p.Composition != EitherLevel {
			reason.Category = CategoryTeamPreference
			reason.Severity = SeverityHigh
			reason.Suggestions = []string{fmt.Sprintf("Consider relaxing team composition preference to %q", EitherLevel)}
		}
		reasons = append(reasons, reason)

	default:
		reasons = append(reasons, qualityReason(p, compatible, scorer, cfg))
	}

	return append(reasons, availabilityReasons(p, compatible)...)
}

// teamSizeReason reports that too few participants want the same team size
func teamSizeReason(p *Participant, others []*Participant, cfg Config) Reason {
	countBySize := make(map[int]int)
	for _, other := range others {
		countBySize[other.TeamSize]++
	}

	reason := Reason{
		Category: CategoryTeamSize,
		Severity: SeverityHigh,
		Title:    fmt.Sprintf("Insufficient candidates for team size %d", p.TeamSize),
		Description: fmt.Sprintf("Insufficient candidates: %d other unmatched participants requested a team of %d, %d needed",
			countBySize[p.TeamSize], p.TeamSize, p.TeamSize-1),
	}

	for size := cfg.MinTeamSize; size <= cfg.MaxTeamSize; size++ {
		reason.Details = append(reason.Details, fmt.Sprintf("%d unmatched participants requested a team of %d", countBySize[size], size))

		if size != p.TeamSize && countBySize[size] >= size-1 {
			reason.Suggestions = append(reason.Suggestions, fmt.Sprintf("Consider a team size of %d (%d participants waiting)", size, countBySize[size]))
		}
	}

	if len(reason.Suggestions) == 0 {
		reason.Suggestions = []string{fmt.Sprintf("Your requested team size of %d has no other takers yet; wait for the next matching round", p.TeamSize)}
	}

	return reason
}

// qualityReason reports that enough candidates exist but no team reached the threshold
func qualityReason(p *Participant, compatible []*Participant, scorer *Scorer, cfg Config) Reason {
	b := newBuilder(cfg, scorer, nil)
	members := b.grow(p, compatible, p.TeamSize)
	if members == nil {
		return Reason{
			Category:    CategoryInsufficientCandidates,
			Severity:    SeverityMedium,
			Title:       "No compatible combination of candidates",
			Description: "Candidates match you individually but their composition preferences conflict with each other",
			Suggestions: []string{"Wait for the next matching round when more participants have applied"},
		}
	}

	score := scorer.Score(members)
	if score >= cfg.CompatibilityThreshold {
		return Reason{
			Category:    CategoryInsufficientCandidates,
			Severity:    SeverityLow,
			Title:       "Candidates were placed in other teams first",
			Description: fmt.Sprintf("A team scoring %.0f was possible from the remaining pool but was not formed", score),
			Suggestions: []string{"Run matching again to include you in the next round"},
		}
	}

	reason := Reason{
		Category:    CategoryQualityThreshold,
		Severity:    SeverityMedium,
		Title:       "Best possible team is below the compatibility threshold",
		Description: fmt.Sprintf("The best team available scores %.0f, below the threshold of %.0f", score, cfg.CompatibilityThreshold),
		Suggestions: []string{"Broaden your case competition preferences to find more common ground"},
	}

	breakdown := scorer.Breakdown(members)
	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		reason.Details = append(reason.Details, fmt.Sprintf("%s: %.0f%%", name, breakdown[name]*100))
	}

	return reason
}

// availabilityReasons flags availability that makes grouping hard
func availabilityReasons(p *Participant, candidates []*Participant) []Reason {
	if p.Availability == NotAvailable {
		return []Reason{{
			Category:    CategoryAvailability,
			Severity:    SeverityHigh,
			Title:       "Not available for competitions",
			Description: "You indicated you are not available, so teams with you score poorly on availability",
			Suggestions: []string{"Update your availability when your schedule frees up"},
		}}
	}

	if len(candidates) == 0 {
		return nil
	}
	for _, candidate := range candidates {
		if availabilityGap(p, candidate) < 2 {
			return nil
		}
	}

	return []Reason{{
		Category:    CategoryAvailability,
		Severity:    SeverityLow,
		Title:       "Availability differs from remaining candidates",
		Description: fmt.Sprintf("Every remaining candidate differs from %q by two or more levels", p.Availability),
		Suggestions: []string{"Check whether your availability has changed since you applied"},
	}}
}

// potentialMatches scores the participant against every other valid unmatched participant
func potentialMatches(p *Participant, others []*Participant, scorer *Scorer, cfg Config) []PotentialMatch {
	matches := make([]PotentialMatch, 0, len(others))
	for _, other := range others {
		score := scorer.Score([]*Participant{p, other})
		matches = append(matches, PotentialMatch{
			Participant:    other,
			Score:          score,
			BlockingIssues: blockingIssues(p, other, score, cfg),
		})
	}

	slices.SortStableFunc(matches, func(a, b PotentialMatch) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(matches) > cfg.MaxPotentialMatches {
		matches = matches[:cfg.MaxPotentialMatches]
	}
	return matches
}

// blockingIssues lists what prevents two participants being teamed together
func blockingIssues(p, other *Participant, score float64, cfg Config) []string {
	issues := []string{}

	if p.TeamSize != other.TeamSize {
		issues = append(issues, fmt.Sprintf("Requested team sizes differ (%d vs %d)", p.TeamSize, other.TeamSize))
	}
	if !PairCompatible(p, other) {
		issues = append(issues, fmt.Sprintf("Team composition preferences conflict (%s %s vs %s %s)",
			p.Level, p.Composition, other.Level, other.Composition))
	}
	if availabilityGap(p, other) >= 2 {
		issues = append(issues, fmt.Sprintf("Availability differs (%s vs %s)", p.Availability, other.Availability))
	}
	if score < cfg.CompatibilityThreshold {
		issues = append(issues, fmt.Sprintf("Pair compatibility %.0f is below the threshold of %.0f", score, cfg.CompatibilityThreshold))
	}

	return issues
}

// recommendations collects the distinct suggestions of the reasons, most severe first
func recommendations(reasons []Reason) []string {
	recs := []string{}
	for _, reason := range reasons {
		for _, suggestion := range reason.Suggestions {
			if !slices.Contains(recs, suggestion) {
				recs = append(recs, suggestion)
			}
		}
	}
	return recs
}

func availabilityGap(a, b *Participant) int {
	gap := int(a.Availability) - int(b.Availability)
	if gap < 0 {
		gap = -gap
	}
	return gap
}
