package agents

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/logger"
	"github.com/spigell/talentcrew/internal/matcher"
	"github.com/spigell/talentcrew/internal/store"
)

const (
	ScreeningName = "Screening Agent"

	DefaultThreshold = 60
)

// Screening scores sourced candidates against the job description and advances
// those that reach the threshold.
type Screening struct {
	*base
	threshold float64
	annotate  bool
}

var _ Agent = (*Screening)(nil)

// NewScreening creates the screening agent. With annotate set, candidates below the
// threshold keep their match results while staying sourced.
func NewScreening(deps Deps, threshold float64, annotate bool) *Screening {
	return &Screening{base: newBase(ScreeningName, deps), threshold: threshold, annotate: annotate}
}

func (a *Screening) Validate() error {
	if err := a.validateDeps(); err != nil {
		return err
	}
	return candidate.ValidateThreshold(a.threshold)
}

func (a *Screening) Status() Status {
	return a.status(map[string]string{
		"threshold":         strconv.FormatFloat(a.threshold, 'f', 2, 64),
		"annotate_rejected": strconv.FormatBool(a.annotate),
	})
}

func (a *Screening) Run(ctx context.Context, job candidate.Job) Result {
	r := a.start(ctx, job, "Started screening candidates for "+job.Title, CountScreened, CountRejected)

	records, err := r.batch(ctx, candidate.StageSourced)
	if err != nil {
		return r.fail(ctx, "screening", err)
	}
	if len(records) == 0 {
		return r.complete(ctx,
			"No sourced candidates found to screen for "+job.Title,
			"No candidates found to screen",
		)
	}

	for _, rec := range records {
		if err := r.pace(ctx); err != nil {
			return r.fail(ctx, "screening", err)
		}

		c, err := store.Decode(rec)
		if err != nil {
			r.candidateFailed(ctx, "screen_candidate", candidate.Candidate{ID: rec.ID}, err)
			continue
		}

		res := matcher.Match(c.Skills, c.ExperienceYears, job.Description)
		next, decision, err := candidate.Screen(c, res, a.threshold, a.annotate)
		if err != nil {
			r.candidateFailed(ctx, "screen_candidate", c, err)
			continue
		}

		if decision.Advanced || a.annotate {
			if err := r.save(ctx, next); err != nil {
				r.candidateFailed(ctx, "screen_candidate", c, fmt.Errorf("failed to screen %s: %w", c.Name, err))
				continue
			}
		}

		r.log.Debug("candidate screened", append(logger.CandidateFields(c.ID, c.Name),
			zap.Float64("score", res.Score),
			zap.Bool("advanced", decision.Advanced),
			zap.String("reason", decision.Reason),
		)...)

		if decision.Advanced {
			r.counts[CountScreened]++
			r.rec.Success(ctx, "screen_candidate",
				fmt.Sprintf("Screened %s with match score %.2f%%", c.Name, res.Score))
			continue
		}

		r.counts[CountRejected]++
		r.rec.Success(ctx, "screen_candidate",
			fmt.Sprintf("Kept %s as sourced: %s", c.Name, decision.Reason))
	}

	n := r.counts[CountScreened]
	return r.complete(ctx,
		fmt.Sprintf("Screened %d candidates for %s", n, job.Title),
		fmt.Sprintf("Screened %d candidates", n),
	)
}
