// Package matchers scores stored profiles against the set of connected
// outputs and selects the best one.
package matchers

import (
	"cmp"
	"slices"

	"github.com/randrctl/randrctl/internal/config"
	"github.com/randrctl/randrctl/internal/profile"
	"github.com/randrctl/randrctl/internal/xrandr"
	"github.com/sirupsen/logrus"
)

type MatchResult struct {
	Score   int
	Profile *profile.Profile
}

type Matcher struct {
	scoring *config.ScoringSection
}

func NewMatcher(scoring *config.ScoringSection) *Matcher {
	return &Matcher{scoring: scoring}
}

// Match scores every eligible profile and returns the results in descending
// score order. A profile naming an output that is not connected is
// disqualified and absent from the result. The ordering is deterministic:
// ties break on priority, then on output count, then on name.
func (m *Matcher) Match(profiles []*profile.Profile, connected xrandr.Outputs) []*MatchResult {
	results := []*MatchResult{}
	for _, p := range profiles {
		eligible, score := m.scoreProfile(p, connected)
		if !eligible {
			logrus.WithField("profile", p.Name).Debug("Profile disqualified, output set not connected")
			continue
		}
		logrus.WithFields(logrus.Fields{"profile": p.Name, "score": score}).Debug("Profile scored")
		results = append(results, &MatchResult{Score: score, Profile: p})
	}

	slices.SortStableFunc(results, func(a, b *MatchResult) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		if a.Profile.Priority != b.Profile.Priority {
			return cmp.Compare(b.Profile.Priority, a.Profile.Priority)
		}
		if len(a.Profile.Outputs) != len(b.Profile.Outputs) {
			return cmp.Compare(len(b.Profile.Outputs), len(a.Profile.Outputs))
		}
		return cmp.Compare(a.Profile.Name, b.Profile.Name)
	})
	return results
}

// FindBest returns the top scoring profile, or nil when no profile scores
// above zero.
func (m *Matcher) FindBest(profiles []*profile.Profile, connected xrandr.Outputs) *profile.Profile {
	results := m.Match(profiles, connected)
	if len(results) == 0 || results[0].Score <= 0 {
		return nil
	}
	return results[0].Profile
}

// scoreProfile sums per-output weights. The profile's output set must be a
// subset of the connected names; extra connected outputs are ignored.
func (m *Matcher) scoreProfile(p *profile.Profile, connected xrandr.Outputs) (bool, int) {
	byName := map[string]*xrandr.Output{}
	for _, output := range connected {
		if output.Connected {
			byName[output.Name] = output
		}
	}

	score := 0
	for _, spec := range p.Outputs {
		output, ok := byName[spec.Name]
		if !ok {
			return false, 0
		}
		score += m.scoreOutput(p.Rule(spec.Name), output)
	}
	return true, score
}

// scoreOutput picks the strongest matching signal for a single output. A
// rule whose signals all fail contributes nothing; an absent rule still
// counts the bare name match.
func (m *Matcher) scoreOutput(rule *profile.MatchRule, output *xrandr.Output) int {
	if rule.IsEmpty() {
		return *m.scoring.NameMatch
	}
	if rule.MatchEDID(output.EDID) {
		return *m.scoring.EdidMatch
	}
	if rule.MatchSupports(output.SupportedModes) {
		return *m.scoring.SupportsMatch
	}
	if rule.MatchPrefers(output.PreferredMode) {
		return *m.scoring.PrefersMatch
	}
	return 0
}
