package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/emergent-chefs/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readReport(t *testing.T, path string) reportSchema {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report reportSchema
	require.NoError(t, toml.Unmarshal(data, &report))
	return report
}

func TestReportStoreWritesSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reports", "run.toml")
	store, err := NewReportStore(path)
	require.NoError(t, err)

	snapshot := domain.Snapshot{
		RunID:          "run-1",
		Outcome:        domain.OutcomeCancelled,
		CompletedTurns: 4,
		TotalTurns:     27,
		Failures:       1,
		Agents: []domain.AgentSnapshot{
			{
				ID:                 "pasta",
				Name:               "Chef Pasta",
				Vocabulary:         []domain.Entry{{Concept: "hot", Symbol: "🌶️"}, {Concept: "mix", Symbol: "++"}},
				VocabularySize:     2,
				ShorthandFrequency: 0.35,
			},
			{ID: "sweet", Name: "Chef Sweet", ShorthandFrequency: 0.1},
		},
		Shared:     []domain.Entry{{Concept: "hot", Symbol: "🌶️"}},
		SharedSize: 1,
		TakenAt:    time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Save(context.Background(), snapshot))

	report := readReport(t, path)
	assert.Equal(t, currentSchemaVersion, report.Version)
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, "cancelled", report.Outcome)
	assert.Equal(t, 4, report.CompletedTurns)
	assert.Equal(t, 20, report.EvolutionLevel)
	assert.Equal(t, "2026-03-01T20:00:00Z", report.FinishedAt)
	require.Len(t, report.Agents, 2)
	assert.Equal(t, []entrySchema{{Concept: "hot", Symbol: "🌶️"}, {Concept: "mix", Symbol: "++"}}, report.Agents[0].Vocabulary)
	assert.Empty(t, report.Agents[1].Vocabulary)
	assert.Equal(t, []entrySchema{{Concept: "hot", Symbol: "🌶️"}}, report.Shared)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(reportFileMode), info.Mode().Perm())
}

func TestReportStoreReplacesExistingReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	store, err := NewReportStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), domain.Snapshot{RunID: "first"}))
	require.NoError(t, store.Save(context.Background(), domain.Snapshot{RunID: "second"}))

	assert.Equal(t, "second", readReport(t, path).RunID)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".chefs-report-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestReportStoreRejectsCanceledContext(t *testing.T) {
	t.Parallel()

	store, err := NewReportStore(filepath.Join(t.TempDir(), "run.toml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Save(ctx, domain.Snapshot{}), context.Canceled)
}

func TestNewReportStoreRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewReportStore("")
	require.Error(t, err)
}
