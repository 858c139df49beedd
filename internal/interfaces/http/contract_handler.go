package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
)

// ContractHandler contratos, enmiendas, plantillas y horas del proyecto.
type ContractHandler struct {
	contracts *usecase.ContractUseCase
	hours     *usecase.TimeEntryUseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(contracts *usecase.ContractUseCase, hours *usecase.TimeEntryUseCase) *ContractHandler {
	return &ContractHandler{contracts: contracts, hours: hours}
}

// ListTemplates godoc
// @Summary      Listar plantillas de contrato
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ContractTemplateResponse
// @Router       /api/contracts/templates [get]
func (h *ContractHandler) ListTemplates(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.contracts.ListTemplates(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateTemplate godoc
// @Summary      Crear plantilla de contrato (owner o admin)
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContractTemplateRequest  true  "Plantilla; body admite placeholders entre llaves dobles"
// @Success      201  {object}  dto.ContractTemplateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/contracts/templates [post]
func (h *ContractHandler) CreateTemplate(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateContractTemplateRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.contracts.CreateTemplate(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar contratos del proyecto con sus enmiendas
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {array}   dto.ContractResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/contracts [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.contracts.List(c.UserContext(), tenantID, c.Params("projectId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear contrato en borrador
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string                     true  "ID del proyecto"
// @Param        body       body  dto.CreateContractRequest  true  "Contrato"
// @Success      201  {object}  dto.ContractResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/contracts [post]
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateContractRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.contracts.Create(c.UserContext(), tenantID, c.Params("projectId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener contrato
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        contractId  path  string  true  "ID del contrato"
// @Success      200  {object}  dto.ContractResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{contractId} [get]
func (h *ContractHandler) Get(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.contracts.Get(c.UserContext(), tenantID, c.Params("contractId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del contrato
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        contractId  path  string                           true  "ID del contrato"
// @Param        body        body  dto.UpdateContractStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.ContractResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/contracts/{contractId}/status [patch]
func (h *ContractHandler) UpdateStatus(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.UpdateContractStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.contracts.UpdateStatus(c.UserContext(), tenantID, c.Params("contractId"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateAmendment godoc
// @Summary      Agregar enmienda al contrato
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        contractId  path  string                      true  "ID del contrato"
// @Param        body        body  dto.CreateAmendmentRequest  true  "Enmienda"
// @Success      201  {object}  dto.AmendmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/contracts/{contractId}/amendments [post]
func (h *ContractHandler) CreateAmendment(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateAmendmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.contracts.CreateAmendment(c.UserContext(), tenantID, c.Params("contractId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTime godoc
// @Summary      Listar horas del proyecto
// @Tags         time
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {array}   dto.TimeEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/time-entries [get]
func (h *ContractHandler) ListTime(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.hours.List(c.UserContext(), tenantID, c.Params("projectId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LogTime godoc
// @Summary      Registrar horas del usuario
// @Tags         time
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string                      true  "ID del proyecto"
// @Param        body       body  dto.CreateTimeEntryRequest  true  "Horas"
// @Success      201  {object}  dto.TimeEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/time-entries [post]
func (h *ContractHandler) LogTime(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateTimeEntryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.hours.Create(c.UserContext(), tenantID, GetUserID(c), c.Params("projectId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteTime godoc
// @Summary      Eliminar registro de horas
// @Tags         time
// @Security     Bearer
// @Param        projectId  path  string  true  "ID del proyecto"
// @Param        entryId    path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/time-entries/{entryId} [delete]
func (h *ContractHandler) DeleteTime(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	if err := h.hours.Delete(c.UserContext(), tenantID, c.Params("projectId"), c.Params("entryId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TimeSummary godoc
// @Summary      Horas por contrato frente a lo asignado, valorizadas por tarifa de rol
// @Tags         time
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.TimeSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/time-entries/summary [get]
func (h *ContractHandler) TimeSummary(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.hours.Summary(c.UserContext(), tenantID, c.Params("projectId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
