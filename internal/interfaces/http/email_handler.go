package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
)

// EmailHandler plantillas de correo y envío.
type EmailHandler struct {
	uc *usecase.EmailUseCase
}

// NewEmailHandler construye el handler.
func NewEmailHandler(uc *usecase.EmailUseCase) *EmailHandler {
	return &EmailHandler{uc: uc}
}

// ListTemplates godoc
// @Summary      Listar plantillas de correo
// @Tags         email
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EmailTemplateResponse
// @Router       /api/settings/email-templates [get]
func (h *EmailHandler) ListTemplates(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.ListTemplates(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpsertTemplate godoc
// @Summary      Crear o reemplazar plantilla (owner o admin)
// @Tags         email
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string                          true  "Clave de la plantilla"
// @Param        body  body  dto.UpsertEmailTemplateRequest  true  "Asunto y cuerpo markdown"
// @Success      200   {object}  dto.EmailTemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings/email-templates/{key} [put]
func (h *EmailHandler) UpsertTemplate(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.UpsertEmailTemplateRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpsertTemplate(c.UserContext(), tenantID, c.Params("key"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Send godoc
// @Summary      Enviar correo a partir de una plantilla
// @Tags         email
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendEmailRequest  true  "Plantilla, destinatario y datos"
// @Success      200   {object}  dto.SendEmailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/email/send [post]
func (h *EmailHandler) Send(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.SendEmailRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Send(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
