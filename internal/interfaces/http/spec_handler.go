package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
)

// SpecHandler specs de producto por proyecto y su PDF de cronograma.
type SpecHandler struct {
	uc       *usecase.SpecUseCase
	schedule *usecase.ScheduleUseCase
}

// NewSpecHandler construye el handler.
func NewSpecHandler(uc *usecase.SpecUseCase, schedule *usecase.ScheduleUseCase) *SpecHandler {
	return &SpecHandler{uc: uc, schedule: schedule}
}

// List godoc
// @Summary      Listar specs del proyecto
// @Tags         specs
// @Security     Bearer
// @Produce      json
// @Param        projectId  path   string  true   "ID del proyecto"
// @Param        space_id   query  string  false  "Filtrar por espacio"
// @Success      200  {array}   dto.SpecResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/specs [get]
func (h *SpecHandler) List(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), tenantID, c.Params("projectId"), c.Query("space_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar producto a un espacio del proyecto
// @Tags         specs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string                 true  "ID del proyecto"
// @Param        body       body  dto.CreateSpecRequest  true  "Spec"
// @Success      201  {object}  dto.SpecResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/specs [post]
func (h *SpecHandler) Create(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateSpecRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), tenantID, c.Params("projectId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar spec
// @Tags         specs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string                 true  "ID del proyecto"
// @Param        id         path  string                 true  "ID del spec"
// @Param        body       body  dto.UpdateSpecRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.SpecResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/specs/{id} [put]
func (h *SpecHandler) Update(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.UpdateSpecRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), tenantID, c.Params("projectId"), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar spec
// @Tags         specs
// @Security     Bearer
// @Param        projectId  path  string  true  "ID del proyecto"
// @Param        id         path  string  true  "ID del spec"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/specs/{id} [delete]
func (h *SpecHandler) Delete(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), tenantID, c.Params("projectId"), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SchedulePDF godoc
// @Summary      Descargar cronograma de specs en PDF
// @Tags         specs
// @Security     Bearer
// @Produce      application/pdf
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/specs/schedule.pdf [get]
func (h *SpecHandler) SchedulePDF(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	projectID := c.Params("projectId")
	pdf, err := h.schedule.PDF(c.UserContext(), tenantID, projectID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="specs-%s.pdf"`, projectID))
	return c.Send(pdf)
}
