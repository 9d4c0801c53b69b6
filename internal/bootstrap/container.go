package bootstrap

import (
	"context"
	"log"
	"time"

	"matchchat-be/internal/config"
	"matchchat-be/internal/controller"
	"matchchat-be/internal/handler"
	"matchchat-be/internal/pkg/logger"
	"matchchat-be/internal/pkg/mailer"
	"matchchat-be/internal/repository/memory"
	"matchchat-be/internal/repository/unitofwork"
	"matchchat-be/internal/service"
	"matchchat-be/internal/websocket"

	pktNats "matchchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	OAuthController   controller.IOAuthController
	ProfileController controller.IProfileController
	MatchController   controller.IMatchController
	ChatController    controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	DeliveryService service.IDeliveryService

	// WebSockets
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	tokenProvider := service.NewJwtTokenProvider(cfg.Jwt.Secret, cfg.Jwt.ExpiryHours)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chatstream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Match session cache
	sessionRepo := memory.NewMatchSessionRepository(
		time.Duration(cfg.Match.SessionTTLMinutes) * time.Minute,
	)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Match.InvalidationTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Match.InvalidationTopic,
		sessionRepo,
	)

	authService := service.NewAuthService(uowFactory, emailService, tokenProvider)
	oauthService := service.NewOAuthService(uowFactory, tokenProvider)
	profileService := service.NewProfileService(uowFactory, publisherService, natsPub, cfg.App.UploadDir, cfg.App.BaseURL)
	matchService := service.NewMatchService(uowFactory, sessionRepo, natsPub)
	chatService := service.NewChatService(uowFactory, natsPub)

	// 3.5 Real-time delivery worker
	deliveryService := service.NewDeliveryService(natsSub, wsHub, chatService, wsLogger)
	if natsSub != nil {
		if err := deliveryService.Start(); err != nil {
			log.Printf("[WARN] Failed to start delivery worker: %v", err)
		}
	}

	chatStreamHandler := handler.NewChatStreamHandler(wsHub, chatService, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		OAuthController:   controller.NewOAuthController(oauthService, cfg.App.ClientURL),
		ProfileController: controller.NewProfileController(profileService),
		MatchController:   controller.NewMatchController(matchService),
		ChatController:    controller.NewChatController(chatService),

		ConsumerService: consumerService,
		DeliveryService: deliveryService,

		ChatStreamHandler: chatStreamHandler,
		WebSocketHub:      wsHub,
	}
}
