package agents

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/logger"
	"github.com/spigell/talentcrew/internal/store"
)

const EngagementName = "Engagement Agent"

// Engagement contacts screened candidates and records whether they are interested.
type Engagement struct {
	*base
}

var _ Agent = (*Engagement)(nil)

func NewEngagement(deps Deps) *Engagement {
	return &Engagement{base: newBase(EngagementName, deps)}
}

func (a *Engagement) Validate() error { return a.validateDeps() }

func (a *Engagement) Status() Status {
	mode := "template"
	if a.deps.Writer.Available() {
		mode = "ai"
	}
	return a.status(map[string]string{"messages": mode})
}

func (a *Engagement) Run(ctx context.Context, job candidate.Job) Result {
	r := a.start(ctx, job, "Started engaging candidates for "+job.Title, CountEngaged, CountInterested)

	records, err := r.batch(ctx, candidate.StageScreened)
	if err != nil {
		return r.fail(ctx, "engagement", err)
	}
	if len(records) == 0 {
		return r.complete(ctx,
			"No screened candidates found for job title "+job.Title,
			"No candidates found to engage for this job title",
		)
	}

	for _, rec := range records {
		if err := r.pace(ctx); err != nil {
			return r.fail(ctx, "engagement", err)
		}

		c, err := store.Decode(rec)
		if err != nil {
			r.candidateFailed(ctx, "engage_candidate", candidate.Candidate{ID: rec.ID}, err)
			continue
		}

		message := a.message(ctx, r, c, job)
		interested := candidate.DrawInterest(a.deps.Random, c.Score())

		next, decision := candidate.Engage(c, interested, message)
		if !next.Engaged {
			r.log.Debug("candidate skipped", append(logger.CandidateFields(c.ID, c.Name),
				zap.String("reason", decision.Reason))...)
			continue
		}

		if err := r.save(ctx, next); err != nil {
			r.candidateFailed(ctx, "engage_candidate", c, fmt.Errorf("failed to engage %s: %w", c.Name, err))
			continue
		}

		r.counts[CountEngaged]++
		status := "not interested"
		if interested {
			r.counts[CountInterested]++
			status = "interested"
		}
		r.rec.Success(ctx, "engage_candidate", fmt.Sprintf("Engaged %s who was %s", c.Name, status))
	}

	engaged, interested := r.counts[CountEngaged], r.counts[CountInterested]
	return r.complete(ctx,
		fmt.Sprintf("Completed engagement with %d candidates, %d interested", engaged, interested),
		fmt.Sprintf("Successfully engaged %d candidates, %d interested", engaged, interested),
	)
}

// message asks the text generator for an outreach email and falls back to the
// template when it is not configured or fails.
func (a *Engagement) message(ctx context.Context, r *run, c candidate.Candidate, job candidate.Job) string {
	if a.deps.Writer.Available() {
		msg, err := a.deps.Writer.EngagementMessage(ctx, c.Name, job.Title, c.MatchingSkills)
		if err == nil {
			return msg
		}
		r.log.Warn("engagement message generation failed, using template",
			append(logger.CandidateFields(c.ID, c.Name), zap.Error(err))...)
	}
	return EngagementTemplate(c.Name, job.Title, c.MatchingSkills)
}
