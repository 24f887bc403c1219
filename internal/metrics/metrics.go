// Package metrics aggregates the candidate store into the numbers shown by the
// reporting commands and the chatbot.
package metrics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/store"
)

// Summary counts candidates per stage across all jobs.
type Summary struct {
	Sourced        int     `json:"total_sourced"`
	Screened       int     `json:"total_screened"`
	Engaged        int     `json:"total_engaged"`
	Scheduled      int     `json:"total_scheduled"`
	EngagementRate float64 `json:"engagement_rate"`
}

// JobReport is the funnel of one job title.
type JobReport struct {
	JobTitle  string                  `json:"job_title"`
	Stages    map[candidate.Stage]int `json:"stages"`
	Total     int                     `json:"total"`
	FillRate  float64                 `json:"fill_rate"`
	AvgScore  float64                 `json:"avg_match_score"`
	HasScores bool                    `json:"has_scores"`
}

// Reporter reads the store and aggregates it.
type Reporter struct {
	store store.Store
}

func NewReporter(s store.Store) *Reporter {
	return &Reporter{store: s}
}

// Candidates returns the candidates matching f in insertion order.
func (r *Reporter) Candidates(ctx context.Context, f store.Filter) ([]candidate.Candidate, error) {
	records, err := r.store.Get(ctx, f)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll(records)
}

func (r *Reporter) Summary(ctx context.Context) (Summary, error) {
	cs, err := r.Candidates(ctx, store.Filter{})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(cs), nil
}

func (r *Reporter) Jobs(ctx context.Context) ([]JobReport, error) {
	cs, err := r.Candidates(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}
	return Jobs(cs), nil
}

func (r *Reporter) CandidatesPerRole(ctx context.Context) (map[string]int, error) {
	cs, err := r.Candidates(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}
	return CandidatesPerRole(cs), nil
}

func (r *Reporter) HiringStatus(ctx context.Context) (string, error) {
	reports, err := r.Jobs(ctx)
	if err != nil {
		return "", err
	}
	return HiringStatus(reports), nil
}

// Summarize counts candidates by their current stage. The engagement rate is the share
// of engaged candidates over sourced ones, with sourced taken as at least one.
func Summarize(cs []candidate.Candidate) Summary {
	var s Summary
	for _, c := range cs {
		switch c.Stage {
		case candidate.StageSourced:
			s.Sourced++
		case candidate.StageScreened:
			s.Screened++
		case candidate.StageEngaged:
			s.Engaged++
		case candidate.StageScheduled:
			s.Scheduled++
		}
	}
	s.EngagementRate = float64(s.Engaged) / float64(max(s.Sourced, 1)) * 100
	return s
}

// Jobs builds one report per job title, sorted by title.
func Jobs(cs []candidate.Candidate) []JobReport {
	byJob := make(map[string]*JobReport)
	scoreSum := make(map[string]float64)
	scored := make(map[string]int)

	for _, c := range cs {
		title := c.JobTitle
		rep, ok := byJob[title]
		if !ok {
			rep = &JobReport{JobTitle: title, Stages: make(map[candidate.Stage]int, len(candidate.Stages))}
			for _, st := range candidate.Stages {
				rep.Stages[st] = 0
			}
			byJob[title] = rep
		}
		rep.Total++
		if c.Stage.Valid() {
			rep.Stages[c.Stage]++
		}
		if c.MatchScore != nil {
			scoreSum[title] += *c.MatchScore
			scored[title]++
		}
	}

	out := make([]JobReport, 0, len(byJob))
	for title, rep := range byJob {
		rep.FillRate = float64(rep.Stages[candidate.StageScheduled]) / float64(max(rep.Total, 1)) * 100
		if n := scored[title]; n > 0 {
			rep.AvgScore = scoreSum[title] / float64(n)
			rep.HasScores = true
		}
		out = append(out, *rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobTitle < out[j].JobTitle })
	return out
}

// CandidatesPerRole counts candidates by job title.
func CandidatesPerRole(cs []candidate.Candidate) map[string]int {
	out := make(map[string]int)
	for _, c := range cs {
		out[c.JobTitle]++
	}
	return out
}

// HiringStatus renders one line per job with its funnel.
func HiringStatus(reports []JobReport) string {
	if len(reports) == 0 {
		return "There are no active job positions."
	}

	var b strings.Builder
	b.WriteString("Here is the current hiring status:\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "\n- %s: %d sourced, %d screened, %d engaged, %d scheduled (fill rate %.1f%%)",
			r.JobTitle,
			r.Stages[candidate.StageSourced],
			r.Stages[candidate.StageScreened],
			r.Stages[candidate.StageEngaged],
			r.Stages[candidate.StageScheduled],
			r.FillRate,
		)
	}
	return b.String()
}

// Text renders the summary the way the chatbot reports it.
func (s Summary) Text() string {
	return fmt.Sprintf(`Here are the current recruitment metrics:

- Candidates Sourced: %d
- Candidates Screened: %d
- Candidates Engaged: %d
- Interviews Scheduled: %d
- Engagement Rate: %.1f%%`, s.Sourced, s.Screened, s.Engaged, s.Scheduled, s.EngagementRate)
}
