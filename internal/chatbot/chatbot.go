// Package chatbot answers recruiter questions by keyword routing, falling back to
// agent personas on the text generator.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talentcrew/internal/activity"
	"github.com/spigell/talentcrew/internal/ai"
	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/metrics"
	"github.com/spigell/talentcrew/internal/store"
	"github.com/spigell/talentcrew/internal/utils"
)

const (
	Name = "Chatbot"

	Greeting       = "Hello! I'm your HR Assistant. How can I help you with recruitment today?"
	ControlsReply  = "Available agent controls: sourcing, screening, engagement, and scheduling. You can say things like 'sourcing update' or 'schedule interviews'."
	NoCandidates   = "There are currently no candidates in the pipeline."
	Unavailable    = "The AI model is not available at the moment."
	GeneratorError = "Sorry, the AI model could not answer right now. Please try again later."
	NoInformation  = "Sorry, I don't have information about that."

	loggedPromptRunes = 50
)

// Reporter is the subset of metrics.Reporter the bot reads from.
type Reporter interface {
	Candidates(ctx context.Context, f store.Filter) ([]candidate.Candidate, error)
	Summary(ctx context.Context) (metrics.Summary, error)
	HiringStatus(ctx context.Context) (string, error)
	CandidatesPerRole(ctx context.Context) (map[string]int, error)
}

type agentRoute struct {
	prefixes []string
	role     ai.Role
}

// agentRoutes are matched against the start of the prompt, in order.
var agentRoutes = []agentRoute{
	{prefixes: []string{"sourcing", "source"}, role: ai.RoleSourcing},
	{prefixes: []string{"screening", "screen"}, role: ai.RoleScreening},
	{prefixes: []string{"engagement", "engage"}, role: ai.RoleEngagement},
	{prefixes: []string{"scheduling", "schedule"}, role: ai.RoleScheduling},
}

// Bot routes chat prompts.
type Bot struct {
	reporter Reporter
	writer   *ai.Writer
	recorder *activity.Recorder
	logger   *zap.Logger
}

func New(reporter Reporter, writer *ai.Writer, log activity.Log, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		reporter: reporter,
		writer:   writer,
		recorder: activity.NewRecorder(log, Name, logger),
		logger:   logger,
	}
}

// Reply answers prompt. Errors are logged and turned into replies; they never reach the caller.
func (b *Bot) Reply(ctx context.Context, prompt string) string {
	reply := b.route(ctx, prompt)

	asked := utils.Preview(prompt, loggedPromptRunes)
	b.recorder.Success(ctx, "chat_response", "User asked: "+asked)
	b.logger.Debug("chat reply",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", asked),
	)
	return reply
}

func (b *Bot) route(ctx context.Context, prompt string) string {
	lower := strings.ToLower(prompt)

	switch {
	case containsAny(lower, "statistics", "metrics", "numbers"):
		return b.metrics(ctx)
	case containsAny(lower, "hiring status", "job status"):
		return b.hiringStatus(ctx)
	case containsAny(lower, "agent controls", "controls"):
		return ControlsReply
	case strings.Contains(lower, "candidates") && strings.Contains(lower, "role"):
		return b.perRole(ctx)
	case strings.Contains(lower, "candidates"):
		return b.candidates(ctx)
	}

	for _, route := range agentRoutes {
		for _, prefix := range route.prefixes {
			if strings.HasPrefix(lower, prefix) {
				return b.agent(ctx, route.role, prompt)
			}
		}
	}

	return NoInformation
}

func (b *Bot) metrics(ctx context.Context) string {
	s, err := b.reporter.Summary(ctx)
	if err != nil {
		return b.failed("metrics", err)
	}
	return s.Text()
}

func (b *Bot) hiringStatus(ctx context.Context) string {
	status, err := b.reporter.HiringStatus(ctx)
	if err != nil {
		return b.failed("hiring status", err)
	}
	return status
}

func (b *Bot) perRole(ctx context.Context) string {
	roles, err := b.reporter.CandidatesPerRole(ctx)
	if err != nil {
		return b.failed("candidates per role", err)
	}
	if len(roles) == 0 {
		return NoCandidates
	}

	titles := make([]string, 0, len(roles))
	for title := range roles {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	lines := make([]string, 0, len(titles))
	for _, title := range titles {
		lines = append(lines, fmt.Sprintf("- %s: %d candidate(s)", title, roles[title]))
	}
	return "Here are the number of candidates per open role:\n\n" + strings.Join(lines, "\n")
}

func (b *Bot) candidates(ctx context.Context) string {
	cs, err := b.reporter.Candidates(ctx, store.Filter{})
	if err != nil {
		return b.failed("candidates", err)
	}
	if len(cs) == 0 {
		return NoCandidates
	}

	lines := make([]string, 0, len(cs))
	for i, c := range cs {
		lines = append(lines, fmt.Sprintf("%d. %s - %s - %s - Score: %s - Next: %s",
			i+1, orNA(c.Name), orNA(c.JobTitle), c.Stage, score(c), nextStep(c)))
	}
	return "Here are the candidates in the pipeline:\n\n" + strings.Join(lines, "\n")
}

func (b *Bot) agent(ctx context.Context, role ai.Role, prompt string) string {
	reply, err := b.writer.AgentReply(ctx, role, prompt)
	switch {
	case errors.Is(err, ai.ErrUnavailable):
		return Unavailable
	case err != nil:
		b.logger.Warn("agent reply failed", zap.String("role", string(role)), zap.Error(err))
		return GeneratorError
	}
	return reply
}

func (b *Bot) failed(what string, err error) string {
	b.logger.Warn("chat lookup failed", zap.String("lookup", what), zap.Error(err))
	return fmt.Sprintf("Sorry, I could not load the %s right now.", what)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func score(c candidate.Candidate) string {
	if c.MatchScore == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *c.MatchScore)
}

func nextStep(c candidate.Candidate) string {
	switch c.Stage {
	case candidate.StageSourced:
		return "screening"
	case candidate.StageScreened:
		if c.Engaged && !c.Interested() {
			return "not interested"
		}
		return "engagement"
	case candidate.StageEngaged:
		return "scheduling"
	case candidate.StageScheduled:
		if c.InterviewTime != nil {
			return "interview " + c.InterviewTime.Format("2006-01-02 15:04")
		}
		return "interview"
	default:
		return "N/A"
	}
}
