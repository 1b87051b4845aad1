package implementation

import (
	"context"
	"errors"
	"testing"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/internal/entity"
	"erp-agent-nexus/internal/pkg/logger"
	"erp-agent-nexus/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func sampleSessions() []*entity.ChatSession {
	return []*entity.ChatSession{
		{
			Id:     "s2",
			RoleId: "principal",
			Title:  "Generate report...",
			Messages: []entity.Message{
				{Id: "m1", Role: "user", Content: "Generate report", Timestamp: 10,
					SuggestedPrompts: []string{}, ActionItems: []entity.ActionItem{}, Visualizations: []entity.Visualization{},
					Documents: []entity.Document{}, Notifications: []entity.Notification{}},
				{Id: "m2", Role: "assistant", Content: "Done", Timestamp: 11, Source: constant.ResponseSourceRemote,
					SuggestedPrompts: []string{"Analyze this report"},
					ActionItems:      []entity.ActionItem{{Label: "Download PDF", ActionType: "download", Payload: map[string]interface{}{"path": "#"}}},
					Visualizations:   []entity.Visualization{{Type: "bar", Title: "T", Data: entity.VisualizationData{Labels: []string{"a"}, Values: []float64{1}}}},
					Documents:        []entity.Document{{Filename: "r.pdf", Path: "#", Type: "PDF", SizeBytes: 2}},
					Notifications:    []entity.Notification{{Title: "n", Message: "m", Type: "info", Timestamp: 11}},
					TokenUsage:       &entity.TokenUsage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3}},
			},
			CreatedAt:    1,
			LastActiveAt: 11,
		},
		{Id: "s1", RoleId: "orchestrator", Title: "New Orchestrator Chat", Messages: []entity.Message{}, CreatedAt: 1, LastActiveAt: 1},
	}
}

func TestSessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(memory.NewKeyValueStore(), logger.NewNopLogger())

	assert.Empty(t, repo.Load(ctx, "alice"))

	want := sampleSessions()
	require.NoError(t, repo.Save(ctx, "alice", want))

	assert.Equal(t, want, repo.Load(ctx, "alice"))
	// Loading twice without a save yields the same collection.
	assert.Equal(t, repo.Load(ctx, "alice"), repo.Load(ctx, "alice"))
	assert.Empty(t, repo.Load(ctx, "bob"))
}

func TestSessionRepositoryCorruptSlot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueStore()
	require.NoError(t, store.Set(ctx, constant.SessionStorageKeyPrefix+"alice", "{not json"))

	sessions := NewSessionRepository(store, logger.NewNopLogger()).Load(ctx, "alice")
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestSessionRepositoryDropsUnusableEntries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueStore()
	require.NoError(t, store.Set(ctx, "sessions_alice", `[null, {"title":"no id"}, {"id":"ok","title":"x"}]`))

	sessions := NewSessionRepository(store, logger.NewNopLogger()).Load(ctx, "alice")
	require.Len(t, sessions, 1)
	assert.Equal(t, "ok", sessions[0].Id)
	assert.NotNil(t, sessions[0].Messages)
}

func TestSessionRepositoryReadFailure(t *testing.T) {
	repo := NewSessionRepository(brokenStore{}, logger.NewNopLogger())

	assert.Empty(t, repo.Load(context.Background(), "alice"))
	assert.ErrorContains(t, repo.Save(context.Background(), "alice", sampleSessions()), "disk on fire")
}

func TestPreferenceRepository(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueStore()
	repo := NewPreferenceRepository(store, logger.NewNopLogger())

	assert.Equal(t, DefaultPreferences(), repo.Load(ctx, "alice"))

	require.NoError(t, repo.Save(ctx, "alice", &entity.Preferences{Theme: constant.ThemeDark, SimulationMode: true}))
	got := repo.Load(ctx, "alice")
	assert.Equal(t, constant.ThemeDark, got.Theme)
	assert.True(t, got.SimulationMode)

	require.NoError(t, store.Set(ctx, "preferences_bob", "garbage"))
	assert.Equal(t, DefaultPreferences(), repo.Load(ctx, "bob"))

	assert.Equal(t, DefaultPreferences(), NewPreferenceRepository(brokenStore{}, logger.NewNopLogger()).Load(ctx, "alice"))
}
