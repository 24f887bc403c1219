package candidate

import (
	"fmt"
	"strings"
)

// Stage is the position of a candidate in the recruitment funnel.
type Stage string

const (
	StageSourced   Stage = "sourced"
	StageScreened  Stage = "screened"
	StageEngaged   Stage = "engaged"
	StageScheduled Stage = "scheduled"
)

// legacyScheduled is written by older datasets for scheduled candidates.
const legacyScheduled = "interview_scheduled"

// Stages lists every stage in funnel order.
var Stages = []Stage{StageSourced, StageScreened, StageEngaged, StageScheduled}

// Rank returns the position of the stage in the funnel, or -1 for unknown stages.
func (s Stage) Rank() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	return s.Rank() >= 0
}

func (s Stage) String() string {
	return string(s)
}

// ParseStage converts a stored stage name into a Stage.
func ParseStage(value string) (Stage, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == legacyScheduled {
		return StageScheduled, nil
	}
	s := Stage(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown stage %q", value)
	}
	return s, nil
}
