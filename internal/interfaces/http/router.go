package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atelier-api/internal/application/billing"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *usecase.CatalogUseCase
	SpecUC      *usecase.SpecUseCase
	ScheduleUC  *usecase.ScheduleUseCase
	ProjectUC   *usecase.ProjectUseCase
	SpaceUC     *usecase.SpaceUseCase
	ClientUC    *usecase.ClientUseCase
	LocationUC  *usecase.LocationUseCase
	MeetingUC   *usecase.MeetingUseCase
	TaskUC      *usecase.TaskUseCase
	EmailUC     *usecase.EmailUseCase
	MilestoneUC *billing.MilestoneUseCase
	WebhookUC   *billing.WebhookUseCase
	ContractUC  *usecase.ContractUseCase
	TimeEntryUC *usecase.TimeEntryUseCase
	SettingsUC  *usecase.SettingsUseCase
	IntakeUC    *usecase.IntakeUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	billingHandler := NewBillingHandler(deps.MilestoneUC, deps.WebhookUC)

	// Webhooks (público, autenticado por firma). Va antes del grupo protegido.
	api.Post("/webhooks/stripe", billingHandler.StripeWebhook)

	// Formularios de captación (públicos, sin token)
	intakeHandler := NewIntakeHandler(deps.IntakeUC)
	public := api.Group("/public", PublicRateLimit(20, time.Minute))
	public.Get("/intake/:slug", intakeHandler.PublicForm)
	public.Post("/intake/:slug", intakeHandler.Submit)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(RoleOwner, RoleAdmin)

	// Catálogo
	catalog := protected.Group("/catalog/products")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog.Get("/", catalogHandler.List)
	catalog.Post("/custom", catalogHandler.CreateCustom)
	catalog.Get("/:id", catalogHandler.Get)
	catalog.Put("/:id", catalogHandler.Update)
	catalog.Put("/:id/override", catalogHandler.UpsertOverride)

	// Clientes
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)

	// Sedes
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/nearest", locationHandler.Nearest)
	locations.Post("/", adminOnly, locationHandler.Create)

	// Proyectos y todo lo que cuelga de ellos
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.SpaceUC)
	projects.Get("/", projectHandler.List)
	projects.Post("/", projectHandler.Create)
	projects.Get("/:id", projectHandler.Get)
	projects.Patch("/:id/status", projectHandler.UpdateStatus)
	projects.Get("/:projectId/spaces", projectHandler.ListSpaces)
	projects.Post("/:projectId/spaces", projectHandler.CreateSpace)

	specHandler := NewSpecHandler(deps.SpecUC, deps.ScheduleUC)
	projects.Get("/:projectId/specs/schedule.pdf", specHandler.SchedulePDF)
	projects.Get("/:projectId/specs", specHandler.List)
	projects.Post("/:projectId/specs", specHandler.Create)
	projects.Put("/:projectId/specs/:id", specHandler.Update)
	projects.Delete("/:projectId/specs/:id", specHandler.Delete)

	projects.Get("/:projectId/milestones", billingHandler.ListMilestones)
	projects.Post("/:projectId/milestones", billingHandler.CreateMilestone)
	projects.Post("/:projectId/milestones/:milestoneId/pay", billingHandler.Pay)

	meetingHandler := NewMeetingHandler(deps.MeetingUC)
	projects.Get("/:projectId/meetings", meetingHandler.List)
	projects.Post("/:projectId/meetings", meetingHandler.Create)

	taskHandler := NewTaskHandler(deps.TaskUC)
	projects.Get("/:projectId/tasks", taskHandler.List)
	projects.Post("/:projectId/tasks", taskHandler.Create)
	projects.Put("/:projectId/tasks/:taskId", taskHandler.Update)
	projects.Delete("/:projectId/tasks/:taskId", taskHandler.Delete)

	contractHandler := NewContractHandler(deps.ContractUC, deps.TimeEntryUC)
	projects.Get("/:projectId/contracts", contractHandler.List)
	projects.Post("/:projectId/contracts", contractHandler.Create)
	projects.Get("/:projectId/time-entries/summary", contractHandler.TimeSummary)
	projects.Get("/:projectId/time-entries", contractHandler.ListTime)
	projects.Post("/:projectId/time-entries", contractHandler.LogTime)
	projects.Delete("/:projectId/time-entries/:entryId", contractHandler.DeleteTime)

	// Contratos
	contracts := protected.Group("/contracts")
	contracts.Get("/templates", contractHandler.ListTemplates)
	contracts.Post("/templates", adminOnly, contractHandler.CreateTemplate)
	contracts.Get("/:contractId", contractHandler.Get)
	contracts.Patch("/:contractId/status", contractHandler.UpdateStatus)
	contracts.Post("/:contractId/amendments", contractHandler.CreateAmendment)

	// Grabaciones de reuniones
	meetings := protected.Group("/meetings")
	meetings.Post("/:meetingId/recordings", meetingHandler.AddRecording)
	meetings.Post("/:meetingId/recordings/:recordingId/process", meetingHandler.Process)
	meetings.Post("/:meetingId/recordings/:recordingId/create-tasks", meetingHandler.CreateTasks)

	// Correo
	emailHandler := NewEmailHandler(deps.EmailUC)
	protected.Get("/settings/email-templates", emailHandler.ListTemplates)
	protected.Put("/settings/email-templates/:key", adminOnly, emailHandler.UpsertTemplate)
	protected.Post("/email/send", emailHandler.Send)

	// Configuración del estudio
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings := protected.Group("/settings")
	settings.Get("/role-rates", settingsHandler.ListRoleRates)
	settings.Post("/role-rates", adminOnly, settingsHandler.UpsertRoleRate)
	settings.Delete("/role-rates/:id", adminOnly, settingsHandler.DeleteRoleRate)
	settings.Get("/room-templates", settingsHandler.ListRoomTemplates)
	settings.Post("/room-templates", adminOnly, settingsHandler.CreateRoomTemplate)
	settings.Delete("/room-templates/:id", adminOnly, settingsHandler.DeleteRoomTemplate)
	settings.Get("/vendor-reps", settingsHandler.ListVendorReps)
	settings.Post("/vendor-reps", adminOnly, settingsHandler.CreateVendorRep)
	settings.Put("/vendor-reps/:id", adminOnly, settingsHandler.UpdateVendorRep)
	settings.Delete("/vendor-reps/:id", adminOnly, settingsHandler.DeleteVendorRep)
	settings.Get("/intake-forms", intakeHandler.ListForms)
	settings.Post("/intake-forms", adminOnly, intakeHandler.CreateForm)
	settings.Get("/intake-forms/:formId/submissions", intakeHandler.ListSubmissions)
}
