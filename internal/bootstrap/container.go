package bootstrap

import (
	"log"
	"os"

	"ai-musicchat-be/internal/config"
	"ai-musicchat-be/internal/controller"
	"ai-musicchat-be/internal/pkg/logger"
	"ai-musicchat-be/internal/repository/unitofwork"
	"ai-musicchat-be/internal/service"
	"ai-musicchat-be/pkg/llm/factory"
	"ai-musicchat-be/pkg/music/analyzer"
	"ai-musicchat-be/pkg/music/chatrouter"
	"ai-musicchat-be/pkg/music/traits"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

// NewContainer wires every component once at startup with explicit
// constructor injection. Missing wiring is a compile error here, not a
// runtime lookup failure.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	llmLog := log.New(os.Stdout, "[LLM] ", log.LstdFlags)

	// 4. Model-backed Components
	turnRouter := chatrouter.NewRouter(llmProvider, llmLog)
	preferenceAnalyzer := analyzer.NewAnalyzer(llmProvider, llmLog)
	traitExtractor := traits.NewExtractor(llmProvider, llmLog)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Chat.TurnTopicName)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Chat.TurnTopicName,
		uowFactory,
	)

	chatService := service.NewChatService(
		uowFactory,
		turnRouter,
		preferenceAnalyzer,
		traitExtractor,
		publisherService,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService),
		ConsumerService: consumerService,
	}
}
