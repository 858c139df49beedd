package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
)

// IntakeHandler formularios de captación: administración y envío público.
type IntakeHandler struct {
	uc *usecase.IntakeUseCase
}

// NewIntakeHandler construye el handler.
func NewIntakeHandler(uc *usecase.IntakeUseCase) *IntakeHandler {
	return &IntakeHandler{uc: uc}
}

// ListForms godoc
// @Summary      Listar formularios de captación
// @Tags         intake
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.IntakeFormResponse
// @Router       /api/settings/intake-forms [get]
func (h *IntakeHandler) ListForms(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.ListForms(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateForm godoc
// @Summary      Crear formulario de captación (owner o admin)
// @Tags         intake
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIntakeFormRequest  true  "Formulario"
// @Success      201  {object}  dto.IntakeFormResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/settings/intake-forms [post]
func (h *IntakeHandler) CreateForm(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateIntakeFormRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateForm(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSubmissions godoc
// @Summary      Listar respuestas de un formulario
// @Tags         intake
// @Security     Bearer
// @Produce      json
// @Param        formId  path  string  true  "ID del formulario"
// @Success      200  {array}   dto.IntakeSubmissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/intake-forms/{formId}/submissions [get]
func (h *IntakeHandler) ListSubmissions(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.ListSubmissions(c.UserContext(), tenantID, c.Params("formId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PublicForm godoc
// @Summary      Datos públicos del formulario
// @Tags         intake
// @Produce      json
// @Param        slug  path  string  true  "Slug del formulario"
// @Success      200  {object}  dto.PublicIntakeFormResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/intake/{slug} [get]
func (h *IntakeHandler) PublicForm(c *fiber.Ctx) error {
	out, err := h.uc.PublicForm(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar solicitud pública; crea cliente y proyecto prospect
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        slug  path  string                   true  "Slug del formulario"
// @Param        body  body  dto.SubmitIntakeRequest  true  "Solicitud"
// @Success      201  {object}  dto.SubmitIntakeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/public/intake/{slug} [post]
func (h *IntakeHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitIntakeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Submit(c.UserContext(), c.Params("slug"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
