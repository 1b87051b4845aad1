package session

import (
	"testing"
	"time"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.UnixMilli(1_700_000_000_000)

func TestActiveSynthesizesDefaultSession(t *testing.T) {
	w := NewWorkspace("alice", nil)

	s := w.Active(now)

	require.NotNil(t, s)
	assert.Equal(t, constant.DefaultRoleId, s.RoleId)
	assert.Equal(t, "New Orchestrator Chat", s.Title)
	assert.Empty(t, s.Messages)
	assert.NotNil(t, s.Messages)
	assert.Len(t, w.Sessions(), 1)
	assert.Equal(t, s.Id, w.ActiveId())

	// Settling again creates nothing.
	assert.Nil(t, w.Settle(now))
	assert.Len(t, w.Sessions(), 1)
}

func TestActiveRepairsDanglingPointer(t *testing.T) {
	a := &entity.ChatSession{Id: "a", Title: "A"}
	b := &entity.ChatSession{Id: "b", Title: "B"}
	w := NewWorkspace("alice", []*entity.ChatSession{a, b})
	w.activeId = "gone"

	assert.Same(t, a, w.Active(now))
}

func TestCreatePrependsAndActivates(t *testing.T) {
	w := NewWorkspace("alice", nil)
	first := w.Create("principal", now)
	second := w.Create("", now)

	assert.Equal(t, "New Principal Chat", first.Title)
	assert.Equal(t, constant.DefaultRoleId, second.RoleId)
	assert.Same(t, second, w.Sessions()[0])
	assert.Same(t, second, w.Active(now))
	assert.NotEqual(t, first.Id, second.Id)
}

func TestSelect(t *testing.T) {
	w := NewWorkspace("alice", nil)
	a := w.Create("hod", now)
	w.Create("faculty", now)

	s, err := w.Select(a.Id)
	require.NoError(t, err)
	assert.Same(t, a, s)
	assert.Equal(t, a.Id, w.ActiveId())

	_, err = w.Select("missing")
	assert.ErrorIs(t, err, constant.ErrSessionNotFound)
	assert.Equal(t, a.Id, w.ActiveId())
}

func TestSelectByTitlePicksFirstMatch(t *testing.T) {
	older := &entity.ChatSession{Id: "older", Title: "Report"}
	newer := &entity.ChatSession{Id: "newer", Title: "Report"}
	w := NewWorkspace("alice", []*entity.ChatSession{newer, older})

	s, err := w.SelectByTitle("Report")
	require.NoError(t, err)
	assert.Same(t, newer, s)

	_, err = w.SelectByTitle("Nope")
	assert.ErrorIs(t, err, constant.ErrSessionNotFound)
}

func TestDeleteActiveClearsPointer(t *testing.T) {
	w := NewWorkspace("alice", nil)
	keep := w.Create("hod", now)
	drop := w.Create("faculty", now)
	w.SetLoading(drop.Id, true)

	require.NoError(t, w.Delete(drop.Id))

	assert.Empty(t, w.ActiveId())
	assert.Empty(t, w.LoadingIds())
	assert.Same(t, keep, w.Active(now))
	assert.ErrorIs(t, w.Delete(drop.Id), constant.ErrSessionNotFound)
}

func TestDeleteByTitleRemovesAllMatches(t *testing.T) {
	w := NewWorkspace("alice", []*entity.ChatSession{
		{Id: "1", Title: "Dup"},
		{Id: "2", Title: "Other"},
		{Id: "3", Title: "Dup"},
	})
	_, err := w.Select("2")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "3"}, w.DeleteByTitle("Dup"))
	require.Len(t, w.Sessions(), 1)
	assert.Equal(t, "2", w.ActiveId())
	assert.Empty(t, w.DeleteByTitle("Dup"))
}

func TestDeletingLastSessionSynthesizesNewOne(t *testing.T) {
	w := NewWorkspace("alice", nil)
	only := w.Active(now)

	require.NoError(t, w.Delete(only.Id))
	assert.Empty(t, w.Sessions())

	replacement := w.Active(now)
	assert.NotEqual(t, only.Id, replacement.Id)
	assert.Equal(t, constant.DefaultRoleId, replacement.RoleId)
}

func TestLoadingIdsFollowCollectionOrder(t *testing.T) {
	w := NewWorkspace("alice", nil)
	a := w.Create("hod", now)
	b := w.Create("faculty", now)

	w.SetLoading(a.Id, true)
	w.SetLoading(b.Id, true)
	assert.Equal(t, []string{b.Id, a.Id}, w.LoadingIds())
	assert.True(t, w.IsLoading(a.Id))

	w.SetLoading(a.Id, false)
	assert.Equal(t, []string{b.Id}, w.LoadingIds())
	assert.False(t, w.IsLoading(a.Id))
}

func TestDeleteActiveByTitleThenSettle(t *testing.T) {
	w := NewWorkspace("alice", nil)
	other := w.Create("hod", now)
	active := w.Create("", now)
	active.Title = "New orchestrator Chat..."

	assert.Equal(t, []string{active.Id}, w.DeleteByTitle("New orchestrator Chat..."))
	assert.Empty(t, w.ActiveId())

	assert.Same(t, other, w.Active(now))
	assert.Equal(t, other.Id, w.ActiveId())
}

func TestRepairActiveNeverCreates(t *testing.T) {
	empty := NewWorkspace("alice", nil)
	empty.RepairActive()
	assert.Empty(t, empty.Sessions())
	assert.Empty(t, empty.ActiveId())

	first := NewSession("hod", now)
	loaded := NewWorkspace("alice", []*entity.ChatSession{first, NewSession("faculty", now)})
	loaded.RepairActive()
	assert.Equal(t, first.Id, loaded.ActiveId())
}
