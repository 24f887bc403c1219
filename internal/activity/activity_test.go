package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/talentcrew/internal/store"
)

func newSQL(t *testing.T) *SQL {
	t.Helper()

	db, err := store.OpenSQLite(context.Background(), store.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := NewSQL(db)
	clock := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	log.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return log
}

func TestSQLAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	log := newSQL(t)

	for _, action := range []string{"start", "source_candidate", "complete"} {
		require.NoError(t, log.Append(ctx, Entry{Agent: "Sourcing Agent", Action: action, Status: StatusSuccess}))
	}

	recent, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "complete", recent[0].Action)
	assert.Equal(t, "source_candidate", recent[1].Action)
	assert.NotEmpty(t, recent[0].ID)
	assert.True(t, recent[0].Timestamp.After(recent[1].Timestamp))

	all, err := log.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	var log Memory

	require.NoError(t, log.Append(ctx, Entry{Action: "one"}))
	require.NoError(t, log.Append(ctx, Entry{Action: "two"}))
	require.NoError(t, log.Append(ctx, Entry{Action: "three"}))

	recent, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Action)
	assert.Equal(t, "two", recent[1].Action)

	entries := log.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "one", entries[0].Action)
}

type failingLog struct{}

func (failingLog) Append(context.Context, Entry) error { return errors.New("log is down") }
func (failingLog) Recent(context.Context, int) ([]Entry, error) {
	return nil, errors.New("log is down")
}

func TestRecorderSwallowsAppendFailures(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	rec := NewRecorder(failingLog{}, "Screening Agent", zap.New(core))

	rec.Failed(context.Background(), "screen_candidate", "boom")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "append activity", entries[0].Message)
	assert.Equal(t, "Screening Agent", entries[0].ContextMap()["agent"])
}

func TestRecorderWritesAgentEntries(t *testing.T) {
	var log Memory
	rec := NewRecorder(&log, "Scheduling Agent", nil)

	rec.Success(context.Background(), "start", "Started scheduling for job: Python Developer")

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Scheduling Agent", entries[0].Agent)
	assert.Equal(t, StatusSuccess, entries[0].Status)
	assert.Equal(t, "Scheduling Agent start: success - Started scheduling for job: Python Developer", entries[0].String())
}
