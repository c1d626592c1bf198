package bootstrap

import (
	"context"
	"log"
	"os"

	"gorm.io/gorm"

	"ai-bookchat-be/internal/config"
	"ai-bookchat-be/internal/controller"
	"ai-bookchat-be/internal/pkg/logger"
	"ai-bookchat-be/internal/repository/unitofwork"
	"ai-bookchat-be/internal/service"
	"ai-bookchat-be/pkg/database"
	"ai-bookchat-be/pkg/embedding"
	"ai-bookchat-be/pkg/llm/factory"
	pktNats "ai-bookchat-be/pkg/nats"
	"ai-bookchat-be/pkg/rag"
	"ai-bookchat-be/pkg/rag/index"
	"ai-bookchat-be/pkg/whatsapp"
)

type Container struct {
	// Controllers
	WhatsappController controller.IWhatsappController
	PaymentController  controller.IPaymentController
	AdminController    controller.IAdminController
	HealthController   controller.IHealthController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	CorpusService   service.ICorpusService

	Logger logger.ILogger

	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Answer engine over an initially empty index; the corpus service
	// fills it before the server starts accepting traffic.
	emptySnapshot, err := index.NewSnapshot(nil, cfg.Rag.EmbeddingDimension)
	if err != nil {
		log.Fatalf("[FATAL] Failed to create index snapshot: %v", err)
	}
	idx := index.New(emptySnapshot)

	engine, err := rag.NewEngine(rag.Config{
		TopK:           cfg.Rag.RetrievalTopK,
		MinScore:       cfg.Rag.SimilarityThreshold,
		ContextBudget:  cfg.Rag.ContextCharBudget,
		CallTimeout:    cfg.Rag.CallTimeout,
		RefusalPhrases: cfg.Rag.RefusalPhrases,
		BookTitle:      cfg.Book.Title,
	}, idx, NewEngineEmbedder(embeddingProvider), NewEngineSynthesizer(llmProvider, cfg.Rag.MaxTokensResponse), log.New(os.Stdout, "[engine] ", log.LstdFlags))
	if err != nil {
		log.Fatalf("[FATAL] Failed to build answer engine: %v", err)
	}

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	waClient := whatsapp.NewClient(cfg.WhatsApp.ApiVersion, cfg.WhatsApp.PhoneNumberId, cfg.WhatsApp.AccessToken)

	// 5. Services
	corpusService := service.NewCorpusService(uowFactory, idx, cfg.Rag.EmbeddingDimension, sysLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, cfg.Book.TrialCredits, cfg.Book.DailyLimit, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, subscriptionService, waClient, natsPub, cfg.Payment, sysLogger)
	chatService := service.NewChatService(uowFactory, engine, subscriptionService, paymentService, waClient, natsPub, cfg.Book, cfg.Payment, sysLogger)
	adminService := service.NewAdminService(uowFactory, corpusService, subscriptionService, cfg.Admin, sysLogger)

	var consumerService service.IConsumerService
	if natsSub != nil {
		consumerService = service.NewConsumerService(natsSub, uowFactory, sysLogger)
	}

	// 6. Load the corpus before serving.
	if _, err := corpusService.Reload(context.Background()); err != nil {
		log.Printf("[WARN] Corpus load failed, starting with empty index: %v", err)
	}

	return &Container{
		WhatsappController: controller.NewWhatsappController(chatService, cfg.WhatsApp.VerifyToken, sysLogger),
		PaymentController:  controller.NewPaymentController(paymentService, sysLogger),
		AdminController:    controller.NewAdminController(adminService, cfg.Admin.JwtSecret),
		HealthController:   controller.NewHealthController(idx, database.NewPinger(db)),
		ConsumerService:    consumerService,
		CorpusService:      corpusService,
		Logger:             sysLogger,
		natsPub:            natsPub,
		natsSub:            natsSub,
	}
}

// Shutdown releases the bus connections and flushes logs.
func (c *Container) Shutdown() {
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	_ = c.Logger.Sync()
}
