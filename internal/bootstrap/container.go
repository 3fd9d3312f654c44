package bootstrap

import (
	"log"

	"ai-chatbot-be/internal/config"
	"ai-chatbot-be/internal/controller"
	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/internal/repository/memory"
	"ai-chatbot-be/internal/repository/unitofwork"
	"ai-chatbot-be/internal/service"
	"ai-chatbot-be/pkg/llm/openai"
	pktNats "ai-chatbot-be/pkg/nats"
	"ai-chatbot-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	ChatController      controller.IChatController
	FeedbackController  controller.IFeedbackController
	AnalyticsController controller.IAnalyticsController
	DocumentController  controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure handles main.go may need to close
	SysLogger *logger.ZapLogger
	NatsPub   *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := logger.NewIsolatedLogger(cfg.App.LlmLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Providers and in-memory state
	llmProvider := openai.NewOpenAiProvider(
		cfg.OpenAi.BaseURL,
		cfg.OpenAi.APIKey,
		cfg.OpenAi.DefaultModel,
	)
	log.Printf("[INFO] Using LLM Provider: OpenAI-compatible (%s)", cfg.OpenAi.DefaultModel)

	streamRepo := memory.NewStreamRepository(cfg.OpenAi.StreamTimeout)
	vectors := vectorstore.NewNoopStore()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ActivityTopic, uowFactory, natsPub)

	authService := service.NewAuthService(uowFactory, publisherService, cfg.Jwt.Secret, cfg.Jwt.ExpiresIn)
	chatService := service.NewChatService(
		uowFactory,
		llmProvider,
		publisherService,
		streamRepo,
		llmLogger,
		cfg.OpenAi.DefaultModel,
		cfg.OpenAi.StreamTimeout,
	)
	feedbackService := service.NewFeedbackService(uowFactory)
	analyticsService := service.NewAnalyticsService(uowFactory, streamRepo)
	documentService := service.NewDocumentService(uowFactory, vectors)

	// 5. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		ChatController:      controller.NewChatController(chatService),
		FeedbackController:  controller.NewFeedbackController(feedbackService),
		AnalyticsController: controller.NewAnalyticsController(analyticsService),
		DocumentController:  controller.NewDocumentController(documentService),
		ConsumerService:     consumerService,
		SysLogger:           sysLogger,
		NatsPub:             natsPub,
	}
}
