package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/talentcrew/internal/candidate"
)

// ErrAgentRunning is returned when a run is requested while an agent is still working.
var ErrAgentRunning = errors.New("an agent is already running")

// Config holds the tunables of the default pipeline.
type Config struct {
	SourcingCount    int
	Sources          []string
	Threshold        float64
	AnnotateRejected bool
}

// Pipeline runs agents strictly in order for a job.
type Pipeline struct {
	agents []Agent
	logger *zap.Logger
}

// New builds the sourcing, screening, engagement and scheduling pipeline.
func New(deps Deps, cfg Config) *Pipeline {
	return NewPipeline(deps.Logger,
		NewSourcing(deps, cfg.SourcingCount, cfg.Sources),
		NewScreening(deps, cfg.Threshold, cfg.AnnotateRejected),
		NewEngagement(deps),
		NewScheduling(deps),
	)
}

func NewPipeline(logger *zap.Logger, agents ...Agent) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{agents: agents, logger: logger}
}

// Agents returns the agents in run order.
func (p *Pipeline) Agents() []Agent {
	out := make([]Agent, len(p.agents))
	copy(out, p.agents)
	return out
}

// Agent looks an agent up by name or by its short stage name ("screening").
func (p *Pipeline) Agent(name string) (Agent, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, a := range p.agents {
		full := strings.ToLower(a.Name())
		if full == key || strings.TrimSuffix(full, " agent") == key {
			return a, true
		}
	}
	return nil, false
}

// DisableByName marks an agent as disabled while keeping it in the pipeline.
func (p *Pipeline) DisableByName(name, reason string) bool {
	a, ok := p.Agent(name)
	if ok {
		a.Disable(reason)
	}
	return ok
}

// Validate checks every enabled agent.
func (p *Pipeline) Validate() error {
	for _, a := range p.agents {
		if !a.IsEnabled() {
			continue
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("%s: %w", a.Name(), err)
		}
	}
	return nil
}

// Running reports whether any agent is in the running state.
func (p *Pipeline) Running() bool {
	for _, a := range p.agents {
		if a.Status().State == StateRunning {
			return true
		}
	}
	return false
}

// Run invokes the enabled agents in order and returns one Result per agent run.
// A failed stage does not stop the following ones; cancellation does.
func (p *Pipeline) Run(ctx context.Context, job candidate.Job) ([]Result, error) {
	if p.Running() {
		return nil, ErrAgentRunning
	}
	if strings.TrimSpace(job.Title) == "" {
		return nil, errors.New("job title is required")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(p.agents))
	for _, a := range p.agents {
		if !a.IsEnabled() {
			p.logger.Info("agent disabled", zap.String("name", a.Name()), zap.String("reason", a.Status().Reason))
			continue
		}

		res := a.Run(ctx, job)
		results = append(results, res)

		p.logger.Info("agent step",
			zap.String("name", a.Name()),
			zap.Bool("success", res.Success),
			zap.String("message", res.Message),
			zap.Any("counts", res.Counts),
		)

		if err := ctx.Err(); err != nil {
			return results, err
		}
	}

	return results, nil
}

// RunStage runs a single agent by name.
func (p *Pipeline) RunStage(ctx context.Context, name string, job candidate.Job) (Result, error) {
	a, ok := p.Agent(name)
	if !ok {
		return Result{}, fmt.Errorf("unknown agent %q", name)
	}
	if p.Running() {
		return Result{}, ErrAgentRunning
	}
	if err := a.Validate(); err != nil {
		return Result{}, fmt.Errorf("%s: %w", a.Name(), err)
	}
	return a.Run(ctx, job), nil
}

// Describe returns status entries for the pipeline agents.
func (p *Pipeline) Describe() []Status {
	statuses := make([]Status, 0, len(p.agents))
	for _, a := range p.agents {
		statuses = append(statuses, a.Status())
	}
	return statuses
}
