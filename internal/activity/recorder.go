package activity

import (
	"context"

	"go.uber.org/zap"
)

// Recorder appends entries for one agent. Append failures are logged and swallowed so
// that a broken activity log never stops pipeline work.
type Recorder struct {
	log    Log
	agent  string
	logger *zap.Logger
}

func NewRecorder(log Log, agent string, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{log: log, agent: agent, logger: logger}
}

func (r *Recorder) Success(ctx context.Context, action, detail string) {
	r.record(ctx, action, StatusSuccess, detail)
}

func (r *Recorder) Failed(ctx context.Context, action, detail string) {
	r.record(ctx, action, StatusFailed, detail)
}

func (r *Recorder) record(ctx context.Context, action, status, detail string) {
	if r == nil || r.log == nil {
		return
	}
	err := r.log.Append(ctx, Entry{Agent: r.agent, Action: action, Status: status, Detail: detail})
	if err != nil {
		r.logger.Warn("append activity",
			zap.String("agent", r.agent),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
