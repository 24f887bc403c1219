package ai

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talentcrew/internal/logger"
	"github.com/spigell/talentcrew/internal/utils"
)

const defaultMaxLogLength = 200

// Writer renders prompts, sends them to the generator and logs previews of both sides.
// A Writer without a generator answers every request with ErrUnavailable.
type Writer struct {
	generator Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewWriter(generator Generator, provider string, l *zap.Logger, maxLogLength int) *Writer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	model := ""
	if generator != nil {
		model = generator.Model()
	}

	return &Writer{
		generator: generator,
		logger:    logger.WithAI(l, provider, model),
		maxLogLen: maxLogLength,
	}
}

// Available reports whether a generator is configured.
func (w *Writer) Available() bool {
	return w != nil && w.generator != nil
}

// EngagementMessage drafts an outreach email for a screened candidate.
func (w *Writer) EngagementMessage(ctx context.Context, name, jobTitle string, matchingSkills []string) (string, error) {
	return w.generate(ctx, "engagement", EngagementPrompt(name, jobTitle, matchingSkills))
}

// AgentReply answers a chat query in the persona of an agent.
func (w *Writer) AgentReply(ctx context.Context, role Role, query string) (string, error) {
	prompt, err := AgentPrompt(role, query)
	if err != nil {
		return "", err
	}
	return w.generate(ctx, string(role), prompt)
}

func (w *Writer) generate(ctx context.Context, purpose, prompt string) (string, error) {
	if !w.Available() {
		return "", ErrUnavailable
	}

	w.logger.Debug("generate content request",
		zap.String("purpose", purpose),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, w.maxLogLen)),
	)

	raw, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", purpose, err)
	}

	w.logger.Debug("generate content response",
		zap.String("purpose", purpose),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, w.maxLogLen)),
	)

	return raw, nil
}
