package matcher

// CompositionAllows returns true if every member's composition preference is satisfied
// by the education level of every member (themselves included).
// An undergraduate asking for "Postgraduates only" can never be placed.
func CompositionAllows(members []*Participant) bool {
	for _, member := range members {
		for _, other := range members {
			if !member.Composition.Allows(other.Level) {
				return false
			}
		}
	}
	return true
}

// compositionAllowsWith checks whether candidate can join members without breaking
// anyone's composition preference. members are assumed to already be compatible.
func compositionAllowsWith(members []*Participant, candidate *Participant) bool {
	if !candidate.Composition.Allows(candidate.Level) {
		return false
	}
	for _, member := range members {
		if !member.Composition.Allows(candidate.Level) {
			return false
		}
		if !candidate.Composition.Allows(member.Level) {
			return false
		}
	}
	return true
}

// SelfConsistent returns true if the participant's own level satisfies their own preference
func SelfConsistent(p *Participant) bool {
	return p.Composition.Allows(p.Level)
}

// PairCompatible returns true if the two participants could share a team on composition
func PairCompatible(a, b *Participant) bool {
	return CompositionAllows([]*Participant{a, b})
}
