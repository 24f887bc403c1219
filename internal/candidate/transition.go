package candidate

import (
	"fmt"
	"time"

	"github.com/spigell/talentcrew/internal/matcher"
	"github.com/spigell/talentcrew/internal/random"
)

const maxInterestScore = 90

// Decision describes what a transition did to a candidate.
type Decision struct {
	From     Stage
	To       Stage
	Advanced bool
	Reason   string
}

func hold(c Candidate, reason string) Decision {
	return Decision{From: c.Stage, To: c.Stage, Reason: reason}
}

func already(c Candidate) Decision {
	return hold(c, "already "+c.Stage.String())
}

// ValidateThreshold checks that a screening threshold is a percentage.
func ValidateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("screening threshold must be between 0 and 100, got %v", threshold)
	}
	return nil
}

// Screen annotates a sourced candidate with the match result and advances it to screened
// when the score reaches threshold. Below threshold the candidate stays sourced; its match
// attributes are written only when annotate is set.
func Screen(c Candidate, result matcher.Result, threshold float64, annotate bool) (Candidate, Decision, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return c, hold(c, err.Error()), err
	}
	if !c.Stage.Valid() {
		return c, hold(c, "unknown stage"), fmt.Errorf("unknown stage %q", c.Stage)
	}
	if c.Stage.Rank() >= StageScreened.Rank() {
		return c, already(c), nil
	}

	passed := result.Score >= threshold
	if !passed && !annotate {
		return c, hold(c, fmt.Sprintf("score %.2f below threshold %.2f", result.Score, threshold)), nil
	}

	out := c.Clone()
	score := result.Score
	expOK := result.ExperienceOK
	out.MatchScore = &score
	out.MatchingSkills = cloneStrings(result.Matching)
	out.MissingSkills = cloneStrings(result.Missing)
	out.ExperienceMatch = &expOK
	out.ExperienceGap = result.ExperienceGap

	if !passed {
		return out, hold(out, fmt.Sprintf("score %.2f below threshold %.2f", score, threshold)), nil
	}

	out.Stage = StageScreened
	return out, Decision{
		From:     c.Stage,
		To:       StageScreened,
		Advanced: true,
		Reason:   fmt.Sprintf("score %.2f meets threshold %.2f", score, threshold),
	}, nil
}

// InterestProbability maps a match score to the chance that a candidate answers positively.
func InterestProbability(score float64) float64 {
	if score > maxInterestScore {
		score = maxInterestScore
	}
	if score < 0 {
		score = 0
	}
	return score / 100
}

// DrawInterest simulates the candidate's answer to an engagement message.
func DrawInterest(src random.Source, score float64) bool {
	return src.Float64() < InterestProbability(score)
}

// Engage records an engagement attempt on a screened candidate and advances it to engaged
// when the candidate is interested. Not interested candidates stay screened.
func Engage(c Candidate, interested bool, message string) (Candidate, Decision) {
	switch {
	case !c.Stage.Valid():
		return c, hold(c, "unknown stage")
	case c.Stage.Rank() < StageScreened.Rank():
		return c, hold(c, "not screened yet")
	case c.Stage.Rank() >= StageEngaged.Rank():
		return c, already(c)
	}

	out := c.Clone()
	out.Engaged = true
	out.EngagementMessage = message
	out.IsInterested = &interested

	if !interested {
		return out, hold(out, "candidate not interested")
	}

	out.Stage = StageEngaged
	return out, Decision{From: c.Stage, To: StageEngaged, Advanced: true, Reason: "candidate interested"}
}

// Schedule books an interview slot for an engaged and interested candidate.
func Schedule(c Candidate, slot time.Time) (Candidate, Decision) {
	switch {
	case !c.Stage.Valid():
		return c, hold(c, "unknown stage")
	case c.Stage.Rank() < StageEngaged.Rank():
		return c, hold(c, "not engaged yet")
	case c.Stage.Rank() >= StageScheduled.Rank():
		return c, already(c)
	case !c.Interested():
		return c, hold(c, "candidate not interested")
	}

	out := c.Clone()
	out.InterviewTime = &slot
	out.Stage = StageScheduled
	return out, Decision{
		From:     c.Stage,
		To:       StageScheduled,
		Advanced: true,
		Reason:   "interview at " + slot.Format("2006-01-02 15:04"),
	}
}
