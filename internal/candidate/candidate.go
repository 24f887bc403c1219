// Package candidate holds the candidate record and the pure stage transition functions
// that move it through the funnel.
package candidate

import "time"

// Candidate is one person moving through the recruitment funnel.
// Stage specific attributes stay nil until the stage that produces them has run.
type Candidate struct {
	ID      string `mapstructure:"-" json:"id"`
	Resume  string `mapstructure:"-" json:"-"`
	Version int64  `mapstructure:"-" json:"version"`

	Name            string   `mapstructure:"name" json:"name"`
	Email           string   `mapstructure:"email" json:"email"`
	Source          string   `mapstructure:"source" json:"source"`
	JobTitle        string   `mapstructure:"job_title" json:"job_title"`
	Stage           Stage    `mapstructure:"stage" json:"stage"`
	Skills          []string `mapstructure:"skills" json:"skills"`
	ExperienceYears int      `mapstructure:"experience_years" json:"experience_years"`

	MatchScore      *float64 `mapstructure:"match_score" json:"match_score,omitempty"`
	MatchingSkills  []string `mapstructure:"matching_skills" json:"matching_skills,omitempty"`
	MissingSkills   []string `mapstructure:"missing_skills" json:"missing_skills,omitempty"`
	ExperienceMatch *bool    `mapstructure:"experience_match" json:"experience_match,omitempty"`
	ExperienceGap   int      `mapstructure:"experience_gap" json:"experience_gap,omitempty"`

	Engaged           bool   `mapstructure:"engaged" json:"engaged"`
	EngagementMessage string `mapstructure:"engagement_message" json:"engagement_message,omitempty"`
	IsInterested      *bool  `mapstructure:"is_interested" json:"is_interested,omitempty"`

	InterviewTime *time.Time `mapstructure:"interview_time" json:"interview_time,omitempty"`
}

// Job is the transient job context a pipeline run works on.
type Job struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Interested reports whether the candidate answered the engagement positively.
func (c Candidate) Interested() bool {
	return c.IsInterested != nil && *c.IsInterested
}

// Score returns the match score, 0 when the candidate has not been screened.
func (c Candidate) Score() float64 {
	if c.MatchScore == nil {
		return 0
	}
	return *c.MatchScore
}

// Clone returns a deep copy so transitions never alias the input.
func (c Candidate) Clone() Candidate {
	out := c
	out.Skills = cloneStrings(c.Skills)
	out.MatchingSkills = cloneStrings(c.MatchingSkills)
	out.MissingSkills = cloneStrings(c.MissingSkills)
	if c.MatchScore != nil {
		v := *c.MatchScore
		out.MatchScore = &v
	}
	if c.ExperienceMatch != nil {
		v := *c.ExperienceMatch
		out.ExperienceMatch = &v
	}
	if c.IsInterested != nil {
		v := *c.IsInterested
		out.IsInterested = &v
	}
	if c.InterviewTime != nil {
		v := *c.InterviewTime
		out.InterviewTime = &v
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
