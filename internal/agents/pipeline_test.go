package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/random"
	"github.com/spigell/talentcrew/internal/store"
)

type fakeAgent struct {
	name    string
	state   State
	enabled bool
	runs    int
	order   *[]string
}

func (f *fakeAgent) Name() string { return f.name }
func (f *fakeAgent) Status() Status { return Status{Name: f.name, State: f.state, Enabled: f.enabled} }
func (f *fakeAgent) Disable(string) { f.enabled = false }
func (f *fakeAgent) IsEnabled() bool { return f.enabled }
func (f *fakeAgent) Validate() error { return nil }
func (f *fakeAgent) Run(context.Context, candidate.Job) Result {
	f.runs++
	if f.order != nil {
		*f.order = append(*f.order, f.name)
	}
	return Result{Agent: f.name, Success: true}
}

func TestPipelineRunsAllStagesInOrder(t *testing.T) {
	e := newEnv(t)
	deps := e.deps(&random.Fixed{Floats: []float64{0}, Ints: []int{0}})

	p := New(deps, Config{SourcingCount: 2, Threshold: 50, AnnotateRejected: true})
	job := candidate.Job{Title: "Python Developer", Description: "python sql"}

	results, err := p.Run(context.Background(), job)
	require.NoError(t, err)
	require.Len(t, results, 4)

	names := make([]string, 0, len(results))
	for _, r := range results {
		assert.True(t, r.Success, r.Message)
		names = append(names, r.Agent)
	}
	assert.Equal(t, []string{SourcingName, ScreeningName, EngagementName, SchedulingName}, names)

	assert.Equal(t, 2, results[0].Counts[CountSourced])
	assert.Equal(t, 2, results[1].Counts[CountScreened])
	assert.Equal(t, 2, results[2].Counts[CountInterested])
	assert.Equal(t, 2, results[3].Counts[CountScheduled])

	scheduled, err := e.db.Get(context.Background(), store.Filter{Stage: candidate.StageScheduled.String()})
	require.NoError(t, err)
	assert.Len(t, scheduled, 2)
}

func TestPipelineRefusesWhileAgentRunning(t *testing.T) {
	busy := &fakeAgent{name: "Busy Agent", state: StateRunning, enabled: true}
	p := NewPipeline(nil, &fakeAgent{name: "Idle Agent", state: StateIdle, enabled: true}, busy)

	_, err := p.Run(context.Background(), pythonJob)
	require.ErrorIs(t, err, ErrAgentRunning)
	assert.Equal(t, 0, busy.runs)

	_, err = p.RunStage(context.Background(), "idle", pythonJob)
	require.ErrorIs(t, err, ErrAgentRunning)
}

func TestPipelineSkipsDisabledAgents(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	var order []string

	first := &fakeAgent{name: "First Agent", enabled: true, order: &order}
	second := &fakeAgent{name: "Second Agent", enabled: true, order: &order}
	third := &fakeAgent{name: "Third Agent", enabled: true, order: &order}
	p := NewPipeline(zap.New(core), first, second, third)

	require.True(t, p.DisableByName("second", "not needed"))
	assert.False(t, p.DisableByName("fourth", "missing"))

	results, err := p.Run(context.Background(), pythonJob)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"First Agent", "Third Agent"}, order)

	assert.Len(t, observed.FilterMessage("agent disabled").All(), 1)
	assert.Len(t, observed.FilterMessage("agent step").All(), 2)
}

func TestPipelineRequiresJobTitle(t *testing.T) {
	p := NewPipeline(nil, &fakeAgent{name: "Only Agent", enabled: true})
	_, err := p.Run(context.Background(), candidate.Job{})
	require.Error(t, err)
}

func TestPipelineStopsOnCancellation(t *testing.T) {
	var order []string
	p := NewPipeline(nil,
		&fakeAgent{name: "First Agent", enabled: true, order: &order},
		&fakeAgent{name: "Second Agent", enabled: true, order: &order},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := p.Run(ctx, pythonJob)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 1)
}

func TestRunStageAndDescribe(t *testing.T) {
	e := newEnv(t)
	e.add(t, jane(candidate.StageSourced))

	p := New(e.deps(&random.Fixed{}), Config{Threshold: 60, AnnotateRejected: true})

	res, err := p.RunStage(context.Background(), "Screening", pythonJob)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Counts[CountScreened])

	_, err = p.RunStage(context.Background(), "hiring", pythonJob)
	require.Error(t, err)

	statuses := p.Describe()
	require.Len(t, statuses, 4)
	assert.Equal(t, SourcingName, statuses[0].Name)
	assert.Equal(t, "5", statuses[0].Details["count"])
	assert.Equal(t, "60.00", statuses[1].Details["threshold"])
	for _, s := range statuses {
		assert.Equal(t, StateIdle, s.State)
	}
}
