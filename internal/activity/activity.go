// Package activity keeps the append-only log of what the agents and the chatbot did.
package activity

import (
	"context"
	"fmt"
	"time"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Entry is one logged action.
type Entry struct {
	ID        string
	Agent     string
	Action    string
	Status    string
	Detail    string
	Timestamp time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s: %s - %s", e.Agent, e.Action, e.Status, e.Detail)
}

// Log receives activity entries.
type Log interface {
	Append(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
