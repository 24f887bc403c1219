package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"google.golang.org/genai"
)

type fakeModels struct {
	mu    sync.Mutex
	calls []fakeCall
	queue []fakeResponse
}

type fakeCall struct {
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prompt := ""
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		prompt = contents[0].Parts[0].Text
	}
	f.calls = append(f.calls, fakeCall{model: model, prompt: prompt, config: config})

	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeneratorJoinsTextParts(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("  Hello Jane,  ", "", "Best regards"), nil)

	g := newGenerator(models, "gemini-pro", 0)

	output, err := g.GenerateContent(context.Background(), "  write an email  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "Hello Jane,\nBest regards" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(models.calls))
	}
	if models.calls[0].model != "gemini-pro" || models.calls[0].prompt != "write an email" {
		t.Fatalf("unexpected call: %+v", models.calls[0])
	}

	cfg := models.calls[0].config
	if cfg == nil || cfg.Temperature == nil || *cfg.Temperature != temperature || cfg.MaxOutputTokens != maxOutputTokens {
		t.Fatalf("unexpected generation config: %+v", cfg)
	}
}

func TestGeneratorReportsBlockedPrompts(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(&genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"},
	}, nil)

	g := newGenerator(models, "", 0)

	_, err := g.GenerateContent(context.Background(), "msg")
	if err == nil || err.Error() != "prompt blocked: SAFETY" {
		t.Fatalf("expected blocked prompt error, got %v", err)
	}
}

func TestGeneratorReturnsAPIErrors(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})

	g := newGenerator(models, "", 0)
	if g.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", g.Model())
	}

	if _, err := g.GenerateContent(context.Background(), "msg"); err == nil {
		t.Fatal("expected api error to be returned")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected single call without retries, got %d", len(models.calls))
	}
}

func TestGeneratorRejectsEmptyInputAndOutput(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("   "), nil)

	g := newGenerator(models, "gemini-pro", 0)

	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if len(models.calls) != 0 {
		t.Fatal("empty prompt must not reach the api")
	}

	if _, err := g.GenerateContent(context.Background(), "msg"); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestGeneratorRateLimitHonoursContext(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("first"), nil)

	g := newGenerator(models, "gemini-pro", 1)

	if _, err := g.GenerateContent(context.Background(), "one"); err != nil {
		t.Fatalf("first call should pass the limiter: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := g.GenerateContent(ctx, "two"); err == nil {
		t.Fatal("expected limiter wait to fail before the next slot")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected second call to be held back, got %d calls", len(models.calls))
	}
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", "", 0); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestNilGenerator(t *testing.T) {
	var g *Generator
	if g.Model() != "" {
		t.Fatal("expected empty model for nil generator")
	}
	if _, err := g.GenerateContent(context.Background(), "msg"); err == nil {
		t.Fatal("expected error for nil generator")
	}
}
