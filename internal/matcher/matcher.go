// Package matcher scores candidates against job descriptions by keyword overlap.
package matcher

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var requiredExperienceRe = regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`)

// Result is the outcome of matching one candidate against one job description.
type Result struct {
	Score         float64
	Required      []string
	Matching      []string
	Missing       []string
	ExperienceOK  bool
	RequiredYears int
	ExperienceGap int
}

// Match compares candidate skills and experience with the requirements detected in the job description.
// Score is the share of required skills the candidate has, in percent, rounded to two decimals.
// A description without known skills scores 0.
func Match(skills []string, experienceYears int, jobDescription string) Result {
	required := ExtractSkills(jobDescription)

	has := make(map[string]bool, len(skills))
	for _, s := range NormalizeSkills(skills) {
		has[s] = true
	}

	res := Result{
		Required: required,
		Matching: make([]string, 0, len(required)),
		Missing:  make([]string, 0, len(required)),
	}

	for _, skill := range required {
		if has[skill] {
			res.Matching = append(res.Matching, skill)
			continue
		}
		res.Missing = append(res.Missing, skill)
	}

	if len(required) > 0 {
		res.Score = round2(float64(len(res.Matching)) / float64(len(required)) * 100)
	}

	years, ok := RequiredExperience(jobDescription)
	res.ExperienceOK = true
	if ok {
		res.RequiredYears = years
		res.ExperienceOK = experienceYears >= years
		if gap := years - experienceYears; gap > 0 {
			res.ExperienceGap = gap
		}
	}

	return res
}

// RequiredExperience returns the first "N years experience" requirement of the description.
func RequiredExperience(jobDescription string) (int, bool) {
	m := requiredExperienceRe.FindStringSubmatch(strings.ToLower(jobDescription))
	if m == nil {
		return 0, false
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return years, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
