package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	_ "github.com/jhoicas/atelier-api/docs"
	"github.com/jhoicas/atelier-api/internal/application/billing"
	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
	infraai "github.com/jhoicas/atelier-api/internal/infrastructure/ai"
	infraemail "github.com/jhoicas/atelier-api/internal/infrastructure/email"
	inframetrics "github.com/jhoicas/atelier-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/atelier-api/internal/infrastructure/pdf"
	"github.com/jhoicas/atelier-api/internal/infrastructure/postgres"
	infrastripe "github.com/jhoicas/atelier-api/internal/infrastructure/stripe"
	httpRouter "github.com/jhoicas/atelier-api/internal/interfaces/http"
	"github.com/jhoicas/atelier-api/pkg/config"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

var autoMigrate bool

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Iniciar el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve()
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Aplicar migraciones pendientes al iniciar")
	return cmd
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if autoMigrate {
		if err := postgres.NewMigrator(pool).Up(ctx); err != nil {
			return err
		}
		log.Info().Msg("migraciones aplicadas")
	}

	metrics := inframetrics.New(cfg.Metrics.Prefix)

	productRepo := postgres.NewProductRepository(pool)
	overrideRepo := postgres.NewOverrideRepository(pool)
	specRepo := postgres.NewSpecRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	spaceRepo := postgres.NewSpaceRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	milestoneRepo := postgres.NewMilestoneRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	meetingRepo := postgres.NewMeetingRepository(pool)
	recordingRepo := postgres.NewRecordingRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	templateRepo := postgres.NewEmailTemplateRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	roleRateRepo := postgres.NewRoleRateRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sin API key las reuniones se resumen con el resumidor offline.
	var summarizer ports.Summarizer = infraai.NewOfflineSummarizer()
	if cfg.AI.AnthropicAPIKey != "" {
		summarizer = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY vacío: se usa el resumidor offline")
	}

	var paymentProvider billing.PaymentProvider
	if cfg.Stripe.SecretKey != "" {
		paymentProvider = infrastripe.NewClient(cfg.Stripe.SecretKey)
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY vacío: los pagos de hitos responderán 503")
	}
	webhookVerifier := infrastripe.NewWebhookVerifier(cfg.Stripe.WebhookSecret)

	mailer := infraemail.NewSMTPMailer(cfg.SMTP)
	if !cfg.SMTP.Enabled() {
		log.Warn().Msg("SMTP_HOST vacío: el envío de correos responderá 503")
	}

	catalogUC := usecase.NewCatalogUseCase(productRepo, overrideRepo, metrics, log)
	projectUC := usecase.NewProjectUseCase(projectRepo, clientRepo, locationRepo, log)
	deps := httpRouter.RouterDeps{
		CatalogUC:   catalogUC,
		SpecUC:      usecase.NewSpecUseCase(specRepo, projectRepo, spaceRepo, productRepo, txRunner, metrics, log),
		ScheduleUC:  usecase.NewScheduleUseCase(projectRepo, spaceRepo, specRepo, catalogUC, infrapdf.NewMarotoPDFGenerator()),
		ProjectUC:   projectUC,
		SpaceUC:     usecase.NewSpaceUseCase(spaceRepo, projectRepo),
		ClientUC:    usecase.NewClientUseCase(clientRepo),
		LocationUC:  usecase.NewLocationUseCase(locationRepo),
		MeetingUC:   usecase.NewMeetingUseCase(meetingRepo, recordingRepo, projectRepo, summarizer, txRunner, log),
		TaskUC:      usecase.NewTaskUseCase(taskRepo, projectRepo),
		EmailUC:     usecase.NewEmailUseCase(templateRepo, infraemail.NewMarkdownRenderer(), mailer, log),
		MilestoneUC: billing.NewMilestoneUseCase(milestoneRepo, paymentRepo, projectRepo, paymentProvider, cfg.Stripe.Currency, log),
		WebhookUC:   billing.NewWebhookUseCase(webhookVerifier, txRunner, "stripe", metrics, log),
		ContractUC:  usecase.NewContractUseCase(contractRepo, postgres.NewContractTemplateRepository(pool), projectRepo, clientRepo, log),
		TimeEntryUC: usecase.NewTimeEntryUseCase(postgres.NewTimeEntryRepository(pool), contractRepo, projectRepo, roleRateRepo),
		SettingsUC:  usecase.NewSettingsUseCase(roleRateRepo, postgres.NewRoomTemplateRepository(pool), postgres.NewVendorRepRepository(pool)),
		IntakeUC:    usecase.NewIntakeUseCase(postgres.NewIntakeRepository(pool), clientRepo, projectUC, log),
		JWTSecret:   cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Atelier API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
