package bootstrap

import (
	"context"
	"fmt"
	"log"

	"erp-agent-nexus/internal/config"
	"erp-agent-nexus/internal/controller"
	"erp-agent-nexus/internal/handler"
	"erp-agent-nexus/internal/mapper"
	"erp-agent-nexus/internal/model"
	"erp-agent-nexus/internal/pkg/logger"
	"erp-agent-nexus/internal/repository/contract"
	"erp-agent-nexus/internal/repository/implementation"
	"erp-agent-nexus/internal/repository/memory"
	"erp-agent-nexus/internal/service"
	"erp-agent-nexus/internal/websocket"
	"erp-agent-nexus/pkg/chat/autosend"
	"erp-agent-nexus/pkg/chat/remote"
	"erp-agent-nexus/pkg/chat/resolver"
	"erp-agent-nexus/pkg/chat/simulator"
	"erp-agent-nexus/pkg/database"
	pktNats "erp-agent-nexus/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	AgentController      controller.IAgentController
	ChatController       controller.IChatController
	PreferenceController controller.IPreferenceController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService // nil without NATS

	// WebSockets
	PushHandler  *handler.PushHandler
	WebSocketHub *websocket.Hub

	Logger logger.ILogger

	cancel  context.CancelFunc
	closers []func()
}

func NewContainer(cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ctx, cancel := context.WithCancel(context.Background())
	c := &Container{Logger: sysLogger, cancel: cancel}

	// 1. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 2. Infrastructure
	var rdb *redis.Client
	if cfg.Storage.RedisURL != "" {
		rdb = newRedisClient(cfg.Storage.RedisURL)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.Events.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	store, err := newKeyValueStore(cfg.Storage, rdb)
	if err != nil {
		cancel()
		return nil, err
	}
	log.Printf("[INFO] Using storage backend: %s", cfg.Storage.Backend)

	sessionRepo := implementation.NewSessionRepository(store, sysLogger)
	preferenceRepo := implementation.NewPreferenceRepository(store, sysLogger)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/push.log")
	wsHub := websocket.NewHub(rdb, uuid.NewString(), wsLogger)
	go wsHub.Run(ctx)
	c.WebSocketHub = wsHub

	// 3. Services
	responseResolver := resolver.New(
		remote.NewClient(cfg.Chat.APIURL),
		simulator.NewGenerator(cfg.Chat.SimulatedLatency),
		mapper.NewChatMapper(),
		sysLogger,
		resolver.Config{
			Timeout:              cfg.Chat.Timeout,
			MaxRetries:           cfg.Chat.MaxRetries,
			RetryInitialInterval: cfg.Chat.RetryInitialInterval,
		},
	)

	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)

	// A nil *Publisher must not become a non-nil interface.
	var forwarder service.EventForwarder
	if natsPub != nil {
		forwarder = natsPub
	}
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.Topic, wsHub, forwarder, sysLogger)

	if natsSub != nil {
		c.NotificationService = service.NewNotificationService(natsSub, wsHub, sysLogger)
	}

	chatService := service.NewChatService(
		sessionRepo,
		preferenceRepo,
		responseResolver,
		autosend.NewRegistry(cfg.Chat.AutoSendTTL),
		publisherService,
		sysLogger,
		service.ChatServiceConfig{
			HistoryLimit:  cfg.Chat.HistoryLimit,
			AutoSendDelay: cfg.Chat.AutoSendDelay,
			WorkspaceTTL:  cfg.Chat.WorkspaceTTL,
		},
	)
	authService := service.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, sysLogger)
	preferenceService := service.NewPreferenceService(preferenceRepo)

	// 4. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.AgentController = controller.NewAgentController()
	c.ChatController = controller.NewChatController(chatService)
	c.PreferenceController = controller.NewPreferenceController(preferenceService)
	c.PushHandler = handler.NewPushHandler(wsHub, cfg.Auth.JWTSecret, wsLogger)

	return c, nil
}

// Close stops background work and releases connections.
func (c *Container) Close() {
	c.cancel()
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func newRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return rdb
}

func newKeyValueStore(cfg config.StorageConfig, rdb *redis.Client) (contract.KeyValueStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return memory.NewKeyValueStore(), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("storage backend redis requires REDIS_URL")
		}
		return implementation.NewRedisKeyValueStore(rdb, "nexus:"), nil
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("storage backend postgres requires DB_CONNECTION_STRING")
		}
		db, err := database.NewGormDBFromDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.AutoMigrate(&model.KeyValueEntry{}); err != nil {
			return nil, fmt.Errorf("migrate kv_entries: %w", err)
		}
		return implementation.NewGormKeyValueStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
