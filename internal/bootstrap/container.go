package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"ai-multichat-be/internal/config"
	"ai-multichat-be/internal/controller"
	"ai-multichat-be/internal/pkg/logger"
	"ai-multichat-be/internal/repository/contract"
	"ai-multichat-be/internal/repository/implementation"
	"ai-multichat-be/internal/repository/memory"
	"ai-multichat-be/internal/service"
	"ai-multichat-be/pkg/chain"
	"ai-multichat-be/pkg/llm/dispatch"
	"ai-multichat-be/pkg/llm/hosted"
	"ai-multichat-be/pkg/llm/ollama"
	"ai-multichat-be/pkg/scira"

	"gorm.io/gorm"
)

type Container struct {
	ChatController controller.IChatController
	Logger         logger.ILogger
}

// NewContainer wires every dependency of the chat surface. A nil db selects
// the in-memory repositories, so the service runs without Postgres.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var conversationRepo contract.ConversationRepository
	var messageRepo contract.MessageRepository
	if db != nil {
		conversationRepo = implementation.NewConversationRepository(db)
		messageRepo = implementation.NewMessageRepository(db)
	} else {
		log.Println("[WARN] No database configured, conversations are kept in memory")
		conversationRepo = memory.NewConversationRepository()
		messageRepo = memory.NewMessageRepository()
	}

	// Model clients
	sciraCfg := scira.DefaultConfig(cfg.Ai.SciraURL)
	sciraCfg.AnswerTimeout = time.Duration(cfg.Ai.SciraAnswerTimeoutSeconds) * time.Second
	sciraCfg.CacheTTL = time.Duration(cfg.Ai.SciraCacheTTLSeconds) * time.Second
	sciraClient := scira.NewClient(sciraCfg, log.New(os.Stdout, "[scira] ", log.LstdFlags))

	hostedProvider := hosted.NewProvider(cfg.Keys.Together, cfg.Ai.TogetherBaseURL, "")
	localProvider := ollama.NewProvider(cfg.Ai.OllamaBaseURL, "")

	dispatcher := dispatch.New(sciraClient, hostedProvider, localProvider)
	orchestrator := chain.New(func(modelID string) (chain.Caller, error) {
		target, err := dispatcher.Resolve(modelID)
		if err != nil {
			return nil, err
		}
		return target, nil
	})

	chatService := service.NewChatService(
		conversationRepo,
		messageRepo,
		dispatcher,
		orchestrator,
		cfg.Keys.Together != "",
		cfg.Ai.ContextWindowTurns,
		sysLogger,
	)

	return &Container{
		ChatController: controller.NewChatController(chatService),
		Logger:         sysLogger,
	}
}

// Shutdown flushes buffered log entries.
func (c *Container) Shutdown(ctx context.Context) {
	_ = c.Logger.Sync()
}
