package session

import (
	"sync"
	"time"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/internal/entity"
	"erp-agent-nexus/pkg/agents"

	"github.com/google/uuid"
)

// Workspace is one user's session collection plus the active pointer.
// Callers hold the embedded mutex around every method call.
type Workspace struct {
	sync.Mutex

	UserKey  string
	sessions []*entity.ChatSession
	activeId string
	loading  map[string]bool
}

func NewWorkspace(userKey string, sessions []*entity.ChatSession) *Workspace {
	if sessions == nil {
		sessions = []*entity.ChatSession{}
	}
	return &Workspace{
		UserKey:  userKey,
		sessions: sessions,
		loading:  make(map[string]bool),
	}
}

// NewSession builds an empty session for roleId. An empty role falls back
// to the orchestrator.
func NewSession(roleId string, now time.Time) *entity.ChatSession {
	if roleId == "" {
		roleId = constant.DefaultRoleId
	}
	return &entity.ChatSession{
		Id:           uuid.NewString(),
		RoleId:       roleId,
		Title:        "New " + agents.DisplayName(roleId) + " Chat",
		Messages:     []entity.Message{},
		CreatedAt:    now.UnixMilli(),
		LastActiveAt: now.UnixMilli(),
	}
}

// Sessions returns the collection, most recently created first.
func (w *Workspace) Sessions() []*entity.ChatSession {
	return w.sessions
}

// Settle restores the invariants: at least one session exists and the active
// pointer references one of them. It returns the session it had to create,
// or nil.
func (w *Workspace) Settle(now time.Time) *entity.ChatSession {
	var created *entity.ChatSession
	if len(w.sessions) == 0 {
		created = NewSession(constant.DefaultRoleId, now)
		w.sessions = append(w.sessions, created)
	}
	w.RepairActive()
	return created
}

// RepairActive points a missing or dangling pointer at the first session.
// Unlike Settle it never creates one.
func (w *Workspace) RepairActive() {
	if len(w.sessions) > 0 && w.index(w.activeId) < 0 {
		w.activeId = w.sessions[0].Id
	}
}

func (w *Workspace) Active(now time.Time) *entity.ChatSession {
	w.Settle(now)
	return w.sessions[w.index(w.activeId)]
}

// ActiveId is the raw pointer; it may be empty or dangling before Settle.
func (w *Workspace) ActiveId() string {
	return w.activeId
}

func (w *Workspace) Create(roleId string, now time.Time) *entity.ChatSession {
	s := NewSession(roleId, now)
	w.sessions = append([]*entity.ChatSession{s}, w.sessions...)
	w.activeId = s.Id
	return s
}

func (w *Workspace) Get(id string) (*entity.ChatSession, bool) {
	if i := w.index(id); i >= 0 {
		return w.sessions[i], true
	}
	return nil, false
}

func (w *Workspace) Select(id string) (*entity.ChatSession, error) {
	s, ok := w.Get(id)
	if !ok {
		return nil, constant.ErrSessionNotFound
	}
	w.activeId = s.Id
	return s, nil
}

// SelectByTitle activates the first session with that title.
func (w *Workspace) SelectByTitle(title string) (*entity.ChatSession, error) {
	for _, s := range w.sessions {
		if s.Title == title {
			w.activeId = s.Id
			return s, nil
		}
	}
	return nil, constant.ErrSessionNotFound
}

func (w *Workspace) Delete(id string) error {
	i := w.index(id)
	if i < 0 {
		return constant.ErrSessionNotFound
	}
	w.remove(func(s *entity.ChatSession) bool { return s.Id == id })
	return nil
}

// DeleteByTitle removes every session with that title and returns their ids.
func (w *Workspace) DeleteByTitle(title string) []string {
	return w.remove(func(s *entity.ChatSession) bool { return s.Title == title })
}

func (w *Workspace) remove(match func(*entity.ChatSession) bool) []string {
	kept := w.sessions[:0:0]
	removed := []string{}
	for _, s := range w.sessions {
		if match(s) {
			removed = append(removed, s.Id)
			delete(w.loading, s.Id)
			if s.Id == w.activeId {
				w.activeId = ""
			}
			continue
		}
		kept = append(kept, s)
	}
	w.sessions = kept
	return removed
}

func (w *Workspace) SetLoading(id string, loading bool) {
	if loading {
		w.loading[id] = true
		return
	}
	delete(w.loading, id)
}

func (w *Workspace) IsLoading(id string) bool {
	return w.loading[id]
}

// LoadingIds lists sessions awaiting a reply, in collection order.
func (w *Workspace) LoadingIds() []string {
	ids := []string{}
	for _, s := range w.sessions {
		if w.loading[s.Id] {
			ids = append(ids, s.Id)
		}
	}
	return ids
}

func (w *Workspace) index(id string) int {
	if id == "" {
		return -1
	}
	for i, s := range w.sessions {
		if s.Id == id {
			return i
		}
	}
	return -1
}
