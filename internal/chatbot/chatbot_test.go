package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/talentcrew/internal/activity"
	"github.com/spigell/talentcrew/internal/ai"
	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/metrics"
	"github.com/spigell/talentcrew/internal/store"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubGenerator) Model() string { return "stub-model" }

type fakeReporter struct {
	candidates []candidate.Candidate
	err        error
}

func (f fakeReporter) Candidates(context.Context, store.Filter) ([]candidate.Candidate, error) {
	return f.candidates, f.err
}

func (f fakeReporter) Summary(context.Context) (metrics.Summary, error) {
	return metrics.Summarize(f.candidates), f.err
}

func (f fakeReporter) HiringStatus(context.Context) (string, error) {
	return metrics.HiringStatus(metrics.Jobs(f.candidates)), f.err
}

func (f fakeReporter) CandidatesPerRole(context.Context) (map[string]int, error) {
	return metrics.CandidatesPerRole(f.candidates), f.err
}

func pipeline() []candidate.Candidate {
	score := 66.67
	slot := time.Date(2025, 4, 15, 10, 30, 0, 0, time.UTC)
	return []candidate.Candidate{
		{Name: "Jane Smith", JobTitle: "Python Developer", Stage: candidate.StageScreened, MatchScore: &score},
		{Name: "John Brown", JobTitle: "Data Scientist", Stage: candidate.StageScheduled, InterviewTime: &slot},
	}
}

func TestReplyRouting(t *testing.T) {
	bot := New(fakeReporter{candidates: pipeline()}, nil, &activity.Memory{}, nil)
	ctx := context.Background()

	tests := []struct {
		prompt string
		want   string
	}{
		{prompt: "Show me the numbers", want: "Here are the current recruitment metrics:"},
		{prompt: "what is the hiring status of candidates?", want: "Here is the current hiring status:"},
		{prompt: "Agent controls please", want: ControlsReply},
		{prompt: "how many candidates per role", want: "Here are the number of candidates per open role:"},
		{prompt: "list candidates", want: "Here are the candidates in the pipeline:"},
		{prompt: "what's the weather", want: NoInformation},
		{prompt: "tell me about sourcing", want: NoInformation},
	}

	for _, tt := range tests {
		got := bot.Reply(ctx, tt.prompt)
		assert.True(t, strings.HasPrefix(got, tt.want), "prompt %q: got %q", tt.prompt, got)
	}
}

func TestMetricsTakePrecedenceOverCandidates(t *testing.T) {
	bot := New(fakeReporter{candidates: pipeline()}, nil, nil, nil)
	got := bot.Reply(context.Background(), "candidates statistics")
	assert.Contains(t, got, "Candidates Screened: 1")
}

func TestCandidateListing(t *testing.T) {
	bot := New(fakeReporter{candidates: pipeline()}, nil, nil, nil)

	got := bot.Reply(context.Background(), "Candidates")
	assert.Contains(t, got, "1. Jane Smith - Python Developer - screened - Score: 66.67% - Next: engagement")
	assert.Contains(t, got, "2. John Brown - Data Scientist - scheduled - Score: N/A - Next: interview 2025-04-15 10:30")

	perRole := bot.Reply(context.Background(), "candidates by role")
	assert.Contains(t, perRole, "- Data Scientist: 1 candidate(s)\n- Python Developer: 1 candidate(s)")
}

func TestNoCandidates(t *testing.T) {
	bot := New(fakeReporter{}, nil, nil, nil)
	assert.Equal(t, NoCandidates, bot.Reply(context.Background(), "candidates"))
}

func TestAgentPromptsWithoutGenerator(t *testing.T) {
	bot := New(fakeReporter{}, ai.NewWriter(nil, "", nil, 0), nil, nil)

	for _, prompt := range []string{"sourcing update", "Screen top 5", "engage them", "schedule interviews"} {
		assert.Equal(t, Unavailable, bot.Reply(context.Background(), prompt), prompt)
	}
}

func TestAgentPromptsUseGenerator(t *testing.T) {
	stub := &stubGenerator{response: "- Jane Smith: interview booked"}
	bot := New(fakeReporter{}, ai.NewWriter(stub, "gemini", nil, 0), nil, nil)

	got := bot.Reply(context.Background(), "Scheduling update for Jane")
	assert.Equal(t, "- Jane Smith: interview booked", got)
	assert.Contains(t, stub.lastPrompt, "You are the Scheduling Agent")
	assert.Contains(t, stub.lastPrompt, "The human is asking for: Scheduling update for Jane")
}

func TestGeneratorErrorsAreNotPropagated(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	bot := New(fakeReporter{}, ai.NewWriter(stub, "gemini", nil, 0), nil, nil)

	assert.Equal(t, GeneratorError, bot.Reply(context.Background(), "engagement insights"))
}

func TestLookupErrorsBecomeReplies(t *testing.T) {
	bot := New(fakeReporter{err: errors.New("db down")}, nil, nil, nil)
	assert.Equal(t, "Sorry, I could not load the metrics right now.", bot.Reply(context.Background(), "metrics"))
}

func TestReplyIsLogged(t *testing.T) {
	log := &activity.Memory{}
	bot := New(fakeReporter{}, nil, log, nil)

	long := strings.Repeat("x", 60)
	bot.Reply(context.Background(), "hi")
	bot.Reply(context.Background(), long)

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Name, entries[0].Agent)
	assert.Equal(t, "chat_response", entries[0].Action)
	assert.Equal(t, activity.StatusSuccess, entries[0].Status)
	assert.Equal(t, "User asked: hi", entries[0].Detail)
	assert.Equal(t, "User asked: "+strings.Repeat("x", 50)+"...", entries[1].Detail)
}
