package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/matcher"
	"github.com/spigell/talentcrew/internal/random"
	"github.com/spigell/talentcrew/internal/store"
)

const (
	SourcingName = "Sourcing Agent"

	DefaultSourcingCount = 5
	MaxSourcingCount     = 50
)

// DefaultSources are the channels simulated candidates come from.
var DefaultSources = []string{"LinkedIn", "Indeed", "Internal Database", "GitHub", "Stack Overflow"}

var (
	firstNames = []string{"John", "Jane", "Michael", "Sarah", "David", "Lisa", "Robert", "Emily"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Miller", "Davis", "Garcia"}
)

const resumeTemplate = `%[1]s
%[2]s

Summary:
Experienced professional with %[3]d years of experience in %[4]s roles.

Skills:
%[5]s

Experience:
- Senior %[4]s at Example Corp (2018-Present)
  Led teams and delivered successful projects

- %[4]s at Sample Inc (2015-2018)
  Developed and implemented solutions

Education:
- Bachelor's Degree in Computer Science, Example University
`

// Sourcing adds simulated candidates for a job to the store.
type Sourcing struct {
	*base
	count   int
	sources []string
}

var _ Agent = (*Sourcing)(nil)

func NewSourcing(deps Deps, count int, sources []string) *Sourcing {
	if count == 0 {
		count = DefaultSourcingCount
	}
	if len(sources) == 0 {
		sources = DefaultSources
	}
	return &Sourcing{base: newBase(SourcingName, deps), count: count, sources: sources}
}

func (a *Sourcing) Validate() error {
	if err := a.validateDeps(); err != nil {
		return err
	}
	if a.count < 1 || a.count > MaxSourcingCount {
		return fmt.Errorf("sourcing count must be between 1 and %d, got %d", MaxSourcingCount, a.count)
	}
	return nil
}

func (a *Sourcing) Status() Status {
	return a.status(map[string]string{
		"count":   fmt.Sprint(a.count),
		"sources": strings.Join(a.sources, ","),
	})
}

func (a *Sourcing) Run(ctx context.Context, job candidate.Job) Result {
	r := a.start(ctx, job, "Started sourcing for "+job.Title, CountSourced)

	for i := 0; i < a.count; i++ {
		if err := r.pace(ctx); err != nil {
			return r.fail(ctx, "sourcing", err)
		}

		source, text := a.simulate(job)
		resume := matcher.ParseResume(text)

		c := candidate.Candidate{
			Name:            resume.Name,
			Email:           resume.Email,
			Source:          source,
			JobTitle:        job.Title,
			Stage:           candidate.StageSourced,
			Skills:          resume.Skills,
			ExperienceYears: resume.ExperienceYears,
			Resume:          resume.Raw,
		}

		if _, err := a.deps.Store.Upsert(ctx, store.Encode(c)); err != nil {
			r.candidateFailed(ctx, "source_candidate", c, fmt.Errorf("failed to add candidate to database: %w", err))
			continue
		}

		r.counts[CountSourced]++
		r.rec.Success(ctx, "source_candidate", fmt.Sprintf("Sourced candidate %s from %s", c.Name, source))
	}

	n := r.counts[CountSourced]
	return r.complete(ctx,
		fmt.Sprintf("Completed sourcing with %d candidates for %s", n, job.Title),
		fmt.Sprintf("Successfully sourced %d candidates", n),
	)
}

// simulate makes up a candidate whose skills are drawn from the job description.
func (a *Sourcing) simulate(job candidate.Job) (source, resume string) {
	src := a.deps.Random
	source = a.sources[src.IntN(len(a.sources))]

	skills := matcher.ExtractSkills(job.Description)
	picked := sample(src, skills, min(len(skills), 1+src.IntN(5)))

	name := firstNames[src.IntN(len(firstNames))] + " " + lastNames[src.IntN(len(lastNames))]
	email := strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@example.com"
	years := 1 + src.IntN(10)

	resume = fmt.Sprintf(resumeTemplate, name, email, years, job.Title, strings.Join(picked, ", "))
	return source, resume
}

// sample returns k distinct elements of items in random order.
func sample(src random.Source, items []string, k int) []string {
	pool := make([]string, len(items))
	copy(pool, items)
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
