package service

import (
	"context"
	"sync"
	"time"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/internal/entity"
	"erp-agent-nexus/internal/mapper"
	"erp-agent-nexus/internal/pkg/logger"
	"erp-agent-nexus/internal/repository/contract"
	"erp-agent-nexus/pkg/chat/autosend"
	"erp-agent-nexus/pkg/chat/history"
	"erp-agent-nexus/pkg/chat/message"
	"erp-agent-nexus/pkg/chat/resolver"
	"erp-agent-nexus/pkg/chat/session"
	"erp-agent-nexus/pkg/events"

	"github.com/patrickmn/go-cache"
)

type IChatService interface {
	GetAllSessions(ctx context.Context, userKey string) (*dto.GetAllSessionsResponse, error)
	GetActiveSession(ctx context.Context, userKey string) (*entity.ChatSession, error)
	CreateSession(ctx context.Context, userKey string, request *dto.CreateSessionRequest) (*entity.ChatSession, error)
	SelectSession(ctx context.Context, userKey string, sessionId string) (*entity.ChatSession, error)
	SelectSessionByTitle(ctx context.Context, userKey string, title string) (*entity.ChatSession, error)
	DeleteSession(ctx context.Context, userKey string, sessionId string) (*dto.DeleteSessionsResponse, error)
	DeleteSessionsByTitle(ctx context.Context, userKey string, title string) (*dto.DeleteSessionsResponse, error)
	SendChat(ctx context.Context, userKey string, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	QueueAutoSend(ctx context.Context, userKey string, request *dto.AutoSendRequest) (*dto.AutoSendResponse, error)
	AutoSend(ctx context.Context, userKey string, token string) (*dto.SendChatResponse, error)
}

// ResponseResolver is satisfied by *resolver.Resolver.
type ResponseResolver interface {
	Resolve(ctx context.Context, q resolver.Query) *resolver.Result
}

type ChatServiceConfig struct {
	HistoryLimit  int
	AutoSendDelay time.Duration
	WorkspaceTTL  time.Duration
}

// chatService owns the per-user workspaces. A workspace mutex is held for
// every mutation and released while a response is being resolved.
type chatService struct {
	sessionRepo    contract.SessionRepository
	preferenceRepo contract.PreferenceRepository
	resolver       ResponseResolver
	autoSend       *autosend.Registry
	publisher      IPublisherService
	mapper         *mapper.ChatMapper
	logger         logger.ILogger
	config         ChatServiceConfig

	workspaces *cache.Cache // user key -> *workspaceEntry
	loadMu     sync.Mutex
	now        func() time.Time
}

func NewChatService(
	sessionRepo contract.SessionRepository,
	preferenceRepo contract.PreferenceRepository,
	responseResolver ResponseResolver,
	autoSend *autosend.Registry,
	publisher IPublisherService,
	log logger.ILogger,
	cfg ChatServiceConfig,
) IChatService {
	if cfg.WorkspaceTTL <= 0 {
		cfg.WorkspaceTTL = time.Hour
	}
	return &chatService{
		sessionRepo:    sessionRepo,
		preferenceRepo: preferenceRepo,
		resolver:       responseResolver,
		autoSend:       autoSend,
		publisher:      publisher,
		mapper:         mapper.NewChatMapper(),
		logger:         log,
		config:         cfg,
		workspaces:     cache.New(cfg.WorkspaceTTL, cfg.WorkspaceTTL/2),
		now:            time.Now,
	}
}

// workspaceEntry loads its workspace once. Callers for the same user wait on
// that load; other users do not.
type workspaceEntry struct {
	once sync.Once
	ws   *session.Workspace
}

// workspace loads the user's collection on first use. Access slides the expiry.
func (cs *chatService) workspace(ctx context.Context, userKey string) *session.Workspace {
	cs.loadMu.Lock()
	entry := &workspaceEntry{}
	if x, found := cs.workspaces.Get(userKey); found {
		entry = x.(*workspaceEntry)
	}
	cs.workspaces.Set(userKey, entry, cache.DefaultExpiration)
	cs.loadMu.Unlock()

	entry.once.Do(func() {
		// A cancelled first caller must not leave everyone with an empty collection.
		loadCtx := context.WithoutCancel(ctx)
		entry.ws = session.NewWorkspace(userKey, cs.sessionRepo.Load(loadCtx, userKey))
	})
	return entry.ws
}

// persist must be called with the workspace locked. Failures are logged only.
func (cs *chatService) persist(ctx context.Context, ws *session.Workspace) {
	if err := cs.sessionRepo.Save(ctx, ws.UserKey, ws.Sessions()); err != nil {
		cs.logger.Error("ChatService", "Failed to persist sessions", map[string]interface{}{
			"user":  ws.UserKey,
			"error": err.Error(),
		})
	}
}

func (cs *chatService) publish(ctx context.Context, event events.Event) {
	if cs.publisher == nil {
		return
	}
	if err := cs.publisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("ChatService", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

// settle must be called with the workspace locked. It returns the event for a
// synthesized session so the caller can publish it after unlocking.
func (cs *chatService) settle(ctx context.Context, ws *session.Workspace, now time.Time) *events.BaseEvent {
	created := ws.Settle(now)
	if created == nil {
		return nil
	}
	cs.persist(ctx, ws)
	cs.logger.Info("ChatService", "Synthesized default session", map[string]interface{}{
		"user":       ws.UserKey,
		"session_id": created.Id,
	})
	ev := events.NewSessionCreated(ws.UserKey, created, now)
	return &ev
}

func (cs *chatService) publishIfAny(ctx context.Context, ev *events.BaseEvent) {
	if ev != nil {
		cs.publish(ctx, *ev)
	}
}

func (cs *chatService) GetAllSessions(ctx context.Context, userKey string) (*dto.GetAllSessionsResponse, error) {
	ws := cs.workspace(ctx, userKey)

	ws.Lock()
	created := cs.settle(ctx, ws, cs.now())
	res := cs.mapper.SessionsToResponse(ws.ActiveId(), ws.LoadingIds(), ws.Sessions())
	ws.Unlock()

	cs.publishIfAny(ctx, created)
	return res, nil
}

func (cs *chatService) GetActiveSession(ctx context.Context, userKey string) (*entity.ChatSession, error) {
	ws := cs.workspace(ctx, userKey)

	ws.Lock()
	created := cs.settle(ctx, ws, cs.now())
	active := cs.mapper.CloneSession(ws.Active(cs.now()))
	ws.Unlock()

	cs.publishIfAny(ctx, created)
	return active, nil
}

func (cs *chatService) CreateSession(ctx context.Context, userKey string, request *dto.CreateSessionRequest) (*entity.ChatSession, error) {
	ws := cs.workspace(ctx, userKey)
	now := cs.now()

	ws.Lock()
	s := ws.Create(request.RoleId, now)
	cs.persist(ctx, ws)
	res := cs.mapper.CloneSession(s)
	ws.Unlock()

	cs.logger.Info("ChatService", "Session created", map[string]interface{}{
		"user":       userKey,
		"session_id": res.Id,
		"role_id":    res.RoleId,
	})
	cs.publish(ctx, events.NewSessionCreated(userKey, res, now))
	return res, nil
}

func (cs *chatService) SelectSession(ctx context.Context, userKey string, sessionId string) (*entity.ChatSession, error) {
	ws := cs.workspace(ctx, userKey)

	ws.Lock()
	defer ws.Unlock()

	s, err := ws.Select(sessionId)
	if err != nil {
		return nil, err
	}
	return cs.mapper.CloneSession(s), nil
}

func (cs *chatService) SelectSessionByTitle(ctx context.Context, userKey string, title string) (*entity.ChatSession, error) {
	ws := cs.workspace(ctx, userKey)

	ws.Lock()
	defer ws.Unlock()

	s, err := ws.SelectByTitle(title)
	if err != nil {
		return nil, err
	}
	return cs.mapper.CloneSession(s), nil
}

func (cs *chatService) DeleteSession(ctx context.Context, userKey string, sessionId string) (*dto.DeleteSessionsResponse, error) {
	ws := cs.workspace(ctx, userKey)

	ws.Lock()
	if err := ws.Delete(sessionId); err != nil {
		ws.Unlock()
		return nil, err
	}
	return cs.afterDelete(ctx, ws, []string{sessionId}), nil
}

// DeleteSessionsByTitle removes every matching session; no match is not an error.
func (cs *chatService) DeleteSessionsByTitle(ctx context.Context, userKey string, title string) (*dto.DeleteSessionsResponse, error) {
	ws := cs.workspace(ctx, userKey)

	ws.Lock()
	return cs.afterDelete(ctx, ws, ws.DeleteByTitle(title)), nil
}

// afterDelete settles, persists and unlocks the workspace.
func (cs *chatService) afterDelete(ctx context.Context, ws *session.Workspace, removed []string) *dto.DeleteSessionsResponse {
	now := cs.now()
	if len(removed) > 0 {
		cs.persist(ctx, ws)
	}
	created := cs.settle(ctx, ws, now)
	listing := cs.mapper.SessionsToResponse(ws.ActiveId(), ws.LoadingIds(), ws.Sessions())
	ws.Unlock()

	if len(removed) > 0 {
		cs.logger.Info("ChatService", "Sessions deleted", map[string]interface{}{
			"user":        ws.UserKey,
			"session_ids": removed,
		})
		cs.publish(ctx, events.NewSessionDeleted(ws.UserKey, removed, now))
	}
	cs.publishIfAny(ctx, created)

	return &dto.DeleteSessionsResponse{
		Deleted:                len(removed),
		GetAllSessionsResponse: *listing,
	}
}

func (cs *chatService) SendChat(ctx context.Context, userKey string, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	// The reply must be recorded even if the client goes away.
	ctx = context.WithoutCancel(ctx)
	ws := cs.workspace(ctx, userKey)
	now := cs.now()

	ws.Lock()
	var target *entity.ChatSession
	if request.SessionId != "" {
		s, ok := ws.Get(request.SessionId)
		if !ok {
			ws.Unlock()
			return nil, constant.ErrSessionNotFound
		}
		target = s
	} else {
		// The pointer is not persisted; a reloaded workspace starts without one.
		ws.RepairActive()
		s, ok := ws.Get(ws.ActiveId())
		if !ok {
			ws.Unlock()
			return nil, constant.ErrNoActiveSession
		}
		target = s
	}

	if ws.IsLoading(target.Id) {
		ws.Unlock()
		return nil, constant.ErrSessionBusy
	}

	prior := target.Messages
	sent := message.AppendUser(target, request.Message, now)
	ws.SetLoading(target.Id, true)
	cs.persist(ctx, ws)
	sessionSnapshot := cs.mapper.CloneSession(target)
	ws.Unlock()

	cs.publish(ctx, events.NewMessageAppended(userKey, sessionSnapshot, sent, now))

	simulation := false
	if request.SimulationMode != nil {
		simulation = *request.SimulationMode
	} else if cs.preferenceRepo != nil {
		simulation = cs.preferenceRepo.Load(ctx, userKey).SimulationMode
	}

	result := cs.resolver.Resolve(ctx, resolver.Query{
		Text:           request.Message,
		RoleId:         target.RoleId,
		SimulationMode: simulation,
		History:        history.Build(prior, sent, cs.config.HistoryLimit),
	})

	replyAt := cs.now()

	ws.Lock()
	reply := message.AppendAssistant(target, result.Response, replyAt)
	ws.SetLoading(target.Id, false)
	_, stillThere := ws.Get(target.Id)
	if stillThere {
		cs.persist(ctx, ws)
	}
	sessionSnapshot = cs.mapper.CloneSession(target)
	ws.Unlock()

	details := map[string]interface{}{
		"user":       userKey,
		"session_id": target.Id,
		"outcome":    string(result.State),
		"source":     reply.Source,
	}
	if !stillThere {
		cs.logger.Info("ChatService", "Session deleted while awaiting reply, discarding", details)
	} else {
		cs.logger.Info("ChatService", "Reply recorded", details)
		cs.publish(ctx, events.NewMessageAppended(userKey, sessionSnapshot, reply, replyAt))
	}

	return &dto.SendChatResponse{
		SessionId:    sessionSnapshot.Id,
		SessionTitle: sessionSnapshot.Title,
		Sent:         &sent,
		Reply:        &reply,
		Outcome:      string(result.State),
	}, nil
}

func (cs *chatService) QueueAutoSend(ctx context.Context, userKey string, request *dto.AutoSendRequest) (*dto.AutoSendResponse, error) {
	token := cs.autoSend.Issue(userKey, request.Message)
	return &dto.AutoSendResponse{
		Token:     token.Id,
		ExpiresAt: token.ExpiresAt.UnixMilli(),
	}, nil
}

// AutoSend consumes the token, makes sure there is an active session and sends
// the queued text to it.
func (cs *chatService) AutoSend(ctx context.Context, userKey string, token string) (*dto.SendChatResponse, error) {
	text, err := cs.autoSend.Consume(userKey, token)
	if err != nil {
		return nil, err
	}
	// Consumed: from here on the text must reach a session or the token is released.
	ctx = context.WithoutCancel(ctx)

	ws := cs.workspace(ctx, userKey)
	ws.Lock()
	created := cs.settle(ctx, ws, cs.now())
	ws.Unlock()
	cs.publishIfAny(ctx, created)

	if cs.config.AutoSendDelay > 0 {
		time.Sleep(cs.config.AutoSendDelay)
	}

	cs.logger.Debug("ChatService", "Auto-sending queued message", map[string]interface{}{"user": userKey})
	res, err := cs.SendChat(ctx, userKey, &dto.SendChatRequest{Message: text})
	if err != nil {
		// SendChat only fails before the user message is appended.
		cs.autoSend.Release(userKey, token)
		cs.logger.Info("ChatService", "Auto-send rejected, token released for retry", map[string]interface{}{
			"user":  userKey,
			"error": err.Error(),
		})
		return nil, err
	}
	return res, nil
}
