package bootstrap

import (
	"log"
	"time"

	"ceo-diagnostic-be/internal/config"
	"ceo-diagnostic-be/internal/constant"
	"ceo-diagnostic-be/internal/controller"
	"ceo-diagnostic-be/internal/pkg/logger"
	"ceo-diagnostic-be/internal/pkg/mailer"
	"ceo-diagnostic-be/internal/pkg/webhook"
	"ceo-diagnostic-be/internal/repository/contract"
	"ceo-diagnostic-be/internal/repository/implementation"
	"ceo-diagnostic-be/internal/repository/memory"
	"ceo-diagnostic-be/internal/service"

	pktNats "ceo-diagnostic-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	AdminController   controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

// NewContainer wires the dependency graph. db may be nil: the wizard
// then runs in demo mode against the in-memory store only, and the
// admin surface is not registered.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	}

	hookClient := webhook.NewClient(cfg.Webhook.URL, time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second)

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS mirror, optional
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// Repositories
	wizardRepo := memory.NewWizardRepository()
	var sessionRepo contract.DiagnosticSessionRepository
	if db != nil {
		sessionRepo = implementation.NewDiagnosticSessionRepository(db)
	} else {
		log.Println("[WARN] No database configured, running in demo mode")
	}

	// Services
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EventTopic,
		natsPub,
		sysLogger,
	)

	sessionService := service.NewSessionService(
		constant.FrameworkCategories,
		wizardRepo,
		sessionRepo,
		hookClient,
		emailService,
		pubSub,
		cfg.App.EventTopic,
		sysLogger,
	)

	container := &Container{
		SessionController: controller.NewSessionController(sessionService),
		ConsumerService:   consumerService,
		Logger:            sysLogger,
	}

	if sessionRepo != nil {
		adminService := service.NewAdminService(sessionRepo)
		container.AdminController = controller.NewAdminController(adminService)
	}

	return container
}
