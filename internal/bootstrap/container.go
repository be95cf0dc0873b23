package bootstrap

import (
	"context"
	"log"

	"bestill-chatbot-be/internal/config"
	"bestill-chatbot-be/internal/constant"
	"bestill-chatbot-be/internal/controller"
	"bestill-chatbot-be/internal/pkg/logger"
	"bestill-chatbot-be/internal/repository/contract"
	"bestill-chatbot-be/internal/repository/csvfile"
	"bestill-chatbot-be/internal/repository/dynamo"
	"bestill-chatbot-be/internal/repository/memory"
	"bestill-chatbot-be/internal/repository/redisrepo"
	"bestill-chatbot-be/internal/service"
	"bestill-chatbot-be/pkg/capture"
	"bestill-chatbot-be/pkg/llm/factory"

	pkgNats "bestill-chatbot-be/pkg/nats"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ChatController    controller.IChatController
	JournalController controller.IJournalController
	ProfileController controller.IProfileController

	// Background services (run by main)
	AuditService service.IAuditService

	// Exposed for graceful shutdown
	Logger  logger.ILogger
	NatsPub *pkgNats.Publisher
	NatsSub *pkgNats.Subscriber
}

// NewContainer wires every dependency from configuration. Store, capture
// and sink backends are selected by config switches; anything optional
// (NATS, tracing) degrades with a warning instead of failing startup.
func NewContainer(cfg *config.Config) *Container {
	ctx := context.Background()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 1. Durable stores
	var (
		transcripts contract.TranscriptRepository
		credentials contract.CredentialRepository
		profiles    contract.ProfileRepository
		journals    contract.JournalRepository
	)

	switch cfg.App.StoreDriver {
	case "memory":
		transcripts = memory.NewTranscriptRepository()
		credentials = memory.NewCredentialRepository()
		profiles = memory.NewProfileRepository()
		journals = memory.NewJournalRepository()
		log.Printf("[INFO] Using Store Driver: MEMORY")
	default:
		client, err := dynamo.NewClient(ctx, cfg.Aws.Region)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize DynamoDB client: %v", err)
		}
		transcripts = dynamo.NewTranscriptRepository(client, cfg.Aws.HistoryTable)
		credentials = dynamo.NewCredentialRepository(client, cfg.Aws.CredentialsTable)
		profiles = dynamo.NewProfileRepository(client, cfg.Aws.ProfilesTable)
		journals = dynamo.NewJournalRepository(client, cfg.Aws.JournalTable)
		log.Printf("[INFO] Using Store Driver: DYNAMODB (%s)", cfg.Aws.Region)
	}

	// 2. Guided-capture session store
	questions := capture.DefaultQuestions()
	machine := capture.NewMachine(constant.CaptureTriggerPhrase, questions)

	var captures contract.CaptureRepository
	if cfg.App.CaptureStore == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		captures = redisrepo.NewCaptureRepository(rdb)
		log.Printf("[INFO] Using Capture Store: REDIS")
	} else {
		captures = memory.NewCaptureRepository()
		log.Printf("[INFO] Using Capture Store: MEMORY")
	}

	// 3. Journal sink: where completed captures land
	var sink contract.EntrySink = journals
	if cfg.App.JournalSink == "csv" {
		sink = csvfile.NewJournalSink(cfg.App.JournalCsvPath, questions)
		log.Printf("[INFO] Using Journal Sink: CSV (%s)", cfg.App.JournalCsvPath)
	}

	// 4. Model provider
	llmProvider, err := factory.NewLLMProvider(
		ctx,
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Aws.Region,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Event bus
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	var publisher service.EventPublisher
	if natsPub != nil {
		publisher = natsPub
	}

	var (
		natsSub      *pkgNats.Subscriber
		auditService service.IAuditService
	)
	if natsPub != nil {
		natsSub, err = pkgNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			auditService = service.NewAuditService(natsSub, sysLogger)
		}
	}

	// 6. Services
	chatService := service.NewChatService(
		transcripts,
		captures,
		sink,
		machine,
		llmProvider,
		publisher,
		sysLogger,
		cfg.Ai.ModelTimeout,
	)
	authService := service.NewAuthService(credentials, profiles, cfg.Auth, sysLogger)
	journalService := service.NewJournalService(journals, publisher)
	profileService := service.NewProfileService(profiles)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		ChatController:    controller.NewChatController(chatService),
		JournalController: controller.NewJournalController(journalService),
		ProfileController: controller.NewProfileController(profileService),
		AuditService:      auditService,
		Logger:            sysLogger,
		NatsPub:           natsPub,
		NatsSub:           natsSub,
	}
}
