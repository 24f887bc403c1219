// Package ai renders the prompts used by the pipeline and sends them to a text generator.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no text generator is configured.
var ErrUnavailable = errors.New("ai model is not available")

// Generator produces text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
