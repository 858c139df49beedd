package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
)

// MeetingHandler reuniones, grabaciones y resúmenes con IA.
type MeetingHandler struct {
	uc *usecase.MeetingUseCase
}

// NewMeetingHandler construye el handler.
func NewMeetingHandler(uc *usecase.MeetingUseCase) *MeetingHandler {
	return &MeetingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reunión
// @Tags         meetings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string                    true  "ID del proyecto"
// @Param        body       body  dto.CreateMeetingRequest  true  "Reunión"
// @Success      201  {object}  dto.MeetingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/meetings [post]
func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateMeetingRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), tenantID, c.Params("projectId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar reuniones del proyecto
// @Tags         meetings
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {array}   dto.MeetingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/meetings [get]
func (h *MeetingHandler) List(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), tenantID, c.Params("projectId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddRecording godoc
// @Summary      Registrar grabación de una reunión
// @Tags         meetings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        meetingId  path  string                      true  "ID de la reunión"
// @Param        body       body  dto.CreateRecordingRequest  true  "Grabación"
// @Success      201  {object}  dto.RecordingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/meetings/{meetingId}/recordings [post]
func (h *MeetingHandler) AddRecording(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateRecordingRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddRecording(c.UserContext(), tenantID, c.Params("meetingId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Process godoc
// @Summary      Resumir la transcripción y extraer action items
// @Tags         meetings
// @Security     Bearer
// @Produce      json
// @Param        meetingId    path  string  true  "ID de la reunión"
// @Param        recordingId  path  string  true  "ID de la grabación"
// @Success      200  {object}  dto.RecordingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/meetings/{meetingId}/recordings/{recordingId}/process [post]
func (h *MeetingHandler) Process(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.Process(c.UserContext(), tenantID, c.Params("meetingId"), c.Params("recordingId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateTasks godoc
// @Summary      Convertir action items en tareas del proyecto
// @Tags         meetings
// @Security     Bearer
// @Produce      json
// @Param        meetingId    path  string  true  "ID de la reunión"
// @Param        recordingId  path  string  true  "ID de la grabación"
// @Success      201  {object}  dto.CreateTasksResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/meetings/{meetingId}/recordings/{recordingId}/create-tasks [post]
func (h *MeetingHandler) CreateTasks(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.CreateTasks(c.UserContext(), tenantID, c.Params("meetingId"), c.Params("recordingId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
