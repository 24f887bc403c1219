package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldAgent is the structured log field key for the agent name.
	FieldAgent = "agent"
	// FieldJob is the structured log field key for the job title a run works on.
	FieldJob = "job_title"
	// FieldCandidateID is the structured log field key for the candidate identifier.
	FieldCandidateID = "candidate_id"
	// FieldCandidate is the structured log field key for the candidate name.
	FieldCandidate = "candidate"
)

// Field is a string key/value pair destined for a structured log entry.
type Field struct {
	Key   string
	Value string
}

// Strings converts fields into zap fields. Keys and values are trimmed and
// pairs left blank on either side are dropped.
func Strings(fields ...Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		key, value := strings.TrimSpace(f.Key), strings.TrimSpace(f.Value)
		if key == "" || value == "" {
			continue
		}
		out = append(out, zap.String(key, value))
	}
	return out
}

// With attaches fields to l. A nil logger becomes a no-op logger.
func With(l *zap.Logger, fields ...zap.Field) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// AIFields describes the text generation backend.
func AIFields(provider, model string) []zap.Field {
	return Strings(Field{FieldProvider, provider}, Field{FieldModel, model})
}

// WithAI attaches the AI provider and model to l.
func WithAI(l *zap.Logger, provider, model string) *zap.Logger {
	return With(l, AIFields(provider, model)...)
}

// AgentFields describes an agent working on a job.
func AgentFields(agent, jobTitle string) []zap.Field {
	return Strings(Field{FieldAgent, agent}, Field{FieldJob, jobTitle})
}

// WithAgent attaches the agent and job to l.
func WithAgent(l *zap.Logger, agent, jobTitle string) *zap.Logger {
	return With(l, AgentFields(agent, jobTitle)...)
}

// CandidateFields identifies a candidate.
func CandidateFields(id, name string) []zap.Field {
	return Strings(Field{FieldCandidateID, id}, Field{FieldCandidate, name})
}
