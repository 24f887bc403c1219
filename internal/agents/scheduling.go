package agents

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/logger"
	"github.com/spigell/talentcrew/internal/store"
)

const SchedulingName = "Scheduling Agent"

// Scheduling books interview slots for engaged candidates who are interested.
type Scheduling struct {
	*base
}

var _ Agent = (*Scheduling)(nil)

func NewScheduling(deps Deps) *Scheduling {
	return &Scheduling{base: newBase(SchedulingName, deps)}
}

func (a *Scheduling) Validate() error { return a.validateDeps() }

func (a *Scheduling) Status() Status { return a.status(nil) }

func (a *Scheduling) Run(ctx context.Context, job candidate.Job) Result {
	r := a.start(ctx, job, "Started scheduling for job: "+job.Title, CountScheduled)

	records, err := r.batch(ctx, candidate.StageEngaged)
	if err != nil {
		return r.fail(ctx, "scheduling", err)
	}
	if len(records) == 0 {
		return r.complete(ctx,
			"No engaged candidates found to schedule for "+job.Title,
			"No candidates to schedule",
		)
	}

	for _, rec := range records {
		c, err := store.Decode(rec)
		if err != nil {
			r.candidateFailed(ctx, "schedule_interview", candidate.Candidate{ID: rec.ID}, err)
			continue
		}

		next, decision := candidate.Schedule(c, candidate.NextSlot(a.deps.Random, a.deps.now()))
		if !decision.Advanced {
			r.log.Debug("candidate skipped", append(logger.CandidateFields(c.ID, c.Name),
				zap.String("reason", decision.Reason))...)
			continue
		}

		if err := r.pace(ctx); err != nil {
			return r.fail(ctx, "scheduling", err)
		}

		if err := r.save(ctx, next); err != nil {
			r.candidateFailed(ctx, "schedule_interview", c, fmt.Errorf("failed to schedule %s: %w", c.Name, err))
			continue
		}

		r.counts[CountScheduled]++
		r.rec.Success(ctx, "schedule_interview", fmt.Sprintf("Scheduled interview for %s on %s",
			c.Name, next.InterviewTime.Format("2006-01-02 15:04")))
	}

	n := r.counts[CountScheduled]
	return r.complete(ctx,
		fmt.Sprintf("Scheduled interviews for %d candidates", n),
		fmt.Sprintf("Scheduled %d candidates", n),
	)
}
