// Package level holds the experience/level progression rules. It is pure
// computation; persisting the result is the caller's job so that a reward can
// commit atomically with whatever event triggered it.
package level

const (
	// MaxLevel is the level cap. On reaching it, remaining experience is
	// discarded and exp is pinned to 0 (policy: surplus is not banked).
	MaxLevel = 20

	baseExp = 100
	expMult = 1.5
)

// Progress is the engagement state of one account.
type Progress struct {
	Level int
	Exp   int
	Badge bool
}

// RequiredExp returns the experience needed to advance from lvl to lvl+1:
// floor(lvl * 100 * 1.5). L1→2 needs 150, L2→3 needs 300, L3→4 needs 450.
func RequiredExp(lvl int) int {
	return int(float64(lvl) * baseExp * expMult)
}

// Apply adds reward experience to p and runs the level-up loop. Rewards <= 0
// are ignored. The second return value reports whether the badge was granted
// by this call; a badge, once set, is never cleared.
func Apply(p Progress, reward int) (Progress, bool) {
	if reward > 0 {
		p.Exp += reward
	}

	required := RequiredExp(p.Level)
	for p.Exp >= required {
		p.Exp -= required
		p.Level++

		if p.Level >= MaxLevel {
			p.Level = MaxLevel
			p.Exp = 0
			break
		}
		required = RequiredExp(p.Level)
	}

	granted := false
	if p.Level == MaxLevel && !p.Badge {
		p.Badge = true
		granted = true
	}

	return p, granted
}
