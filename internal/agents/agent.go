// Package agents implements the stage agents of the recruitment pipeline and the
// orchestrator that runs them in order for a job.
package agents

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/talentcrew/internal/activity"
	"github.com/spigell/talentcrew/internal/ai"
	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/logger"
	"github.com/spigell/talentcrew/internal/random"
	"github.com/spigell/talentcrew/internal/store"
	"github.com/spigell/talentcrew/internal/utils"
)

// Agent is one stage of the recruitment pipeline.
type Agent interface {
	Name() string
	Status() Status
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Run(ctx context.Context, job candidate.Job) Result
}

// State is the runtime state of an agent.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateError   State = "error"
)

// Counter keys reported in Result.Counts.
const (
	CountSourced    = "sourced"
	CountScreened   = "screened"
	CountRejected   = "rejected"
	CountEngaged    = "engaged"
	CountInterested = "interested"
	CountScheduled  = "scheduled"
	CountFailed     = "failed"
)

// Result is the outcome of one agent run.
type Result struct {
	Agent   string
	Success bool
	Message string
	Counts  map[string]int
}

// Status represents runtime information about an agent.
type Status struct {
	Name    string
	State   State
	Enabled bool
	Reason  string
	Details map[string]string
}

// Deps aggregates dependencies shared across all agents.
type Deps struct {
	Store    store.Store
	Activity activity.Log
	Logger   *zap.Logger
	Random   random.Source
	// Writer drafts engagement messages. Nil or unavailable means the template is used.
	Writer *ai.Writer
	// Delay paces the work between candidates.
	Delay time.Duration
	Now   func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// base carries the state shared by every agent.
type base struct {
	name string
	deps Deps

	mu       sync.Mutex
	state    State
	disabled bool
	reason   string
}

func newBase(name string, deps Deps) *base {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Random == nil {
		deps.Random = random.New(0)
	}
	return &base{name: name, deps: deps, state: StateIdle}
}

func (b *base) Name() string { return b.name }

func (b *base) Disable(reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = true
	b.reason = reason
}

func (b *base) IsEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.disabled
}

func (b *base) status(details map[string]string) Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Status{Name: b.name, State: b.state, Enabled: !b.disabled, Reason: b.reason, Details: details}
}

func (b *base) setState(s State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = s
}

func (b *base) validateDeps() error {
	if b.deps.Store == nil {
		return errors.New("store is required")
	}
	return nil
}

// run tracks one agent run. It keeps the agent state, the counters and the
// activity entries in step with each other.
type run struct {
	agent  *base
	job    candidate.Job
	log    *zap.Logger
	rec    *activity.Recorder
	counts map[string]int
}

func (b *base) start(ctx context.Context, job candidate.Job, detail string, counters ...string) *run {
	b.setState(StateRunning)

	l := logger.WithAgent(b.deps.Logger, b.name, job.Title)
	r := &run{
		agent:  b,
		job:    job,
		log:    l,
		rec:    activity.NewRecorder(b.deps.Activity, b.name, l),
		counts: make(map[string]int, len(counters)+1),
	}
	for _, c := range counters {
		r.counts[c] = 0
	}

	l.Info("agent started")
	r.rec.Success(ctx, "start", detail)
	return r
}

func (r *run) complete(ctx context.Context, detail, message string) Result {
	r.agent.setState(StateIdle)
	r.log.Info("agent completed", zap.Any("counts", r.counts))
	r.rec.Success(ctx, "complete", detail)
	return Result{Agent: r.agent.name, Success: true, Message: message, Counts: r.counts}
}

func (r *run) fail(ctx context.Context, stage string, err error) Result {
	r.agent.setState(StateError)
	r.log.Error("agent failed", zap.Error(err), zap.Any("counts", r.counts))
	r.rec.Failed(ctx, "error", err.Error())
	return Result{
		Agent:   r.agent.name,
		Success: false,
		Message: fmt.Sprintf("Error during %s: %v", stage, err),
		Counts:  r.counts,
	}
}

// candidateFailed records a per-candidate failure without stopping the batch.
func (r *run) candidateFailed(ctx context.Context, action string, c candidate.Candidate, err error) {
	r.counts[CountFailed]++
	r.log.Warn(action+" failed", append(logger.CandidateFields(c.ID, c.Name), zap.Error(err))...)
	r.rec.Failed(ctx, action, err.Error())
}

// pace waits the configured delay between candidates.
func (r *run) pace(ctx context.Context) error {
	return utils.WaitFor(ctx, r.agent.deps.Delay)
}

// batch loads the candidates at stage for the job being run.
func (r *run) batch(ctx context.Context, stage candidate.Stage) ([]store.Record, error) {
	return r.agent.deps.Store.Get(ctx, store.Filter{Stage: stage.String(), JobTitle: r.job.Title})
}

// save writes a transitioned candidate with the optimistic version check.
func (r *run) save(ctx context.Context, c candidate.Candidate) error {
	_, err := r.agent.deps.Store.Update(ctx, store.Encode(c))
	return err
}
