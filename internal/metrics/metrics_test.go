package metrics

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/talentcrew/internal/candidate"
	"github.com/spigell/talentcrew/internal/store"
)

func scored(title string, stage candidate.Stage, score float64) candidate.Candidate {
	return candidate.Candidate{JobTitle: title, Stage: stage, MatchScore: &score}
}

func TestSummarizeEmptyDoesNotDivideByZero(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s)
	assert.Contains(t, s.Text(), "Engagement Rate: 0.0%")
}

func TestSummarize(t *testing.T) {
	cs := []candidate.Candidate{
		{Stage: candidate.StageSourced},
		{Stage: candidate.StageSourced},
		{Stage: candidate.StageSourced},
		{Stage: candidate.StageSourced},
		{Stage: candidate.StageScreened},
		{Stage: candidate.StageEngaged},
		{Stage: candidate.StageScheduled},
	}

	s := Summarize(cs)
	assert.Equal(t, 4, s.Sourced)
	assert.Equal(t, 1, s.Screened)
	assert.Equal(t, 1, s.Engaged)
	assert.Equal(t, 1, s.Scheduled)
	assert.Equal(t, 25.0, s.EngagementRate)

	text := s.Text()
	assert.True(t, strings.HasPrefix(text, "Here are the current recruitment metrics:"))
	assert.Contains(t, text, "- Interviews Scheduled: 1")
	assert.Contains(t, text, "- Engagement Rate: 25.0%")
}

func TestSummarizeEngagedWithoutSourced(t *testing.T) {
	s := Summarize([]candidate.Candidate{{Stage: candidate.StageEngaged}, {Stage: candidate.StageEngaged}})
	assert.Equal(t, 200.0, s.EngagementRate)
}

func TestJobs(t *testing.T) {
	cs := []candidate.Candidate{
		scored("Python Developer", candidate.StageScheduled, 80),
		scored("Python Developer", candidate.StageScreened, 60),
		{JobTitle: "Python Developer", Stage: candidate.StageSourced},
		{JobTitle: "Python Developer", Stage: candidate.StageSourced},
		{JobTitle: "Data Scientist", Stage: candidate.StageSourced},
	}

	reports := Jobs(cs)
	require.Len(t, reports, 2)

	ds, py := reports[0], reports[1]
	assert.Equal(t, "Data Scientist", ds.JobTitle)
	assert.Equal(t, 1, ds.Total)
	assert.Equal(t, 0.0, ds.FillRate)
	assert.False(t, ds.HasScores)
	assert.Equal(t, 0, ds.Stages[candidate.StageScheduled])

	assert.Equal(t, "Python Developer", py.JobTitle)
	assert.Equal(t, 4, py.Total)
	assert.Equal(t, 2, py.Stages[candidate.StageSourced])
	assert.Equal(t, 25.0, py.FillRate)
	assert.True(t, py.HasScores)
	assert.Equal(t, 70.0, py.AvgScore)

	status := HiringStatus(reports)
	assert.Contains(t, status, "- Python Developer: 2 sourced, 1 screened, 0 engaged, 1 scheduled (fill rate 25.0%)")
	assert.Equal(t, "There are no active job positions.", HiringStatus(nil))
}

func TestCandidatesPerRoleKeysOnJobTitle(t *testing.T) {
	got := CandidatesPerRole([]candidate.Candidate{
		{JobTitle: "UX Designer"},
		{JobTitle: "UX Designer"},
		{JobTitle: "DevOps Engineer"},
	})
	assert.Equal(t, map[string]int{"UX Designer": 2, "DevOps Engineer": 1}, got)
}

func TestReporterReadsStore(t *testing.T) {
	ctx := context.Background()
	db, err := store.OpenSQLite(ctx, store.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	for _, c := range []candidate.Candidate{
		{Name: "Jane Smith", JobTitle: "Python Developer", Stage: candidate.StageSourced},
		{Name: "John Brown", JobTitle: "Python Developer", Stage: candidate.StageEngaged},
	} {
		_, err := db.Upsert(ctx, store.Encode(c))
		require.NoError(t, err)
	}

	r := NewReporter(db)

	s, err := r.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Sourced)
	assert.Equal(t, 100.0, s.EngagementRate)

	roles, err := r.CandidatesPerRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Python Developer": 2}, roles)

	engaged, err := r.Candidates(ctx, store.Filter{Stage: "engaged"})
	require.NoError(t, err)
	require.Len(t, engaged, 1)
	assert.Equal(t, "John Brown", engaged[0].Name)

	status, err := r.HiringStatus(ctx)
	require.NoError(t, err)
	assert.Contains(t, status, "Python Developer: 1 sourced")
}
