package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
)

// SettingsHandler ajustes del estudio.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// ListRoleRates godoc
// @Summary      Listar tarifas por rol
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RoleRateResponse
// @Router       /api/settings/role-rates [get]
func (h *SettingsHandler) ListRoleRates(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.ListRoleRates(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpsertRoleRate godoc
// @Summary      Crear o cambiar tarifa de un rol (owner o admin)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertRoleRateRequest  true  "Rol y tarifa por hora"
// @Success      200  {object}  dto.RoleRateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/settings/role-rates [post]
func (h *SettingsHandler) UpsertRoleRate(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.UpsertRoleRateRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpsertRoleRate(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteRoleRate godoc
// @Summary      Eliminar tarifa (owner o admin)
// @Tags         settings
// @Security     Bearer
// @Param        id  path  string  true  "ID de la tarifa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/role-rates/{id} [delete]
func (h *SettingsHandler) DeleteRoleRate(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	if err := h.uc.DeleteRoleRate(c.UserContext(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRoomTemplates godoc
// @Summary      Listar elementos sugeridos por tipo de espacio
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        roomType  query  string  false  "Tipo de espacio; incluye los genéricos"
// @Success      200  {array}  dto.RoomTemplateResponse
// @Router       /api/settings/room-templates [get]
func (h *SettingsHandler) ListRoomTemplates(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.ListRoomTemplates(c.UserContext(), tenantID, c.Query("roomType"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateRoomTemplate godoc
// @Summary      Crear elemento sugerido (owner o admin)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoomTemplateRequest  true  "Elemento"
// @Success      201  {object}  dto.RoomTemplateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/settings/room-templates [post]
func (h *SettingsHandler) CreateRoomTemplate(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateRoomTemplateRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateRoomTemplate(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteRoomTemplate godoc
// @Summary      Eliminar elemento sugerido (owner o admin)
// @Tags         settings
// @Security     Bearer
// @Param        id  path  string  true  "ID del elemento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/room-templates/{id} [delete]
func (h *SettingsHandler) DeleteRoomTemplate(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	if err := h.uc.DeleteRoomTemplate(c.UserContext(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListVendorReps godoc
// @Summary      Listar contactos de proveedores
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        vendor  query  string  false  "Proveedor"
// @Success      200  {array}  dto.VendorRepResponse
// @Router       /api/settings/vendor-reps [get]
func (h *SettingsHandler) ListVendorReps(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.uc.ListVendorReps(c.UserContext(), tenantID, c.Query("vendor"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateVendorRep godoc
// @Summary      Crear contacto de proveedor (owner o admin)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VendorRepRequest  true  "Contacto"
// @Success      201  {object}  dto.VendorRepResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/vendor-reps [post]
func (h *SettingsHandler) CreateVendorRep(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.VendorRepRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateVendorRep(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateVendorRep godoc
// @Summary      Editar contacto de proveedor (owner o admin)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del contacto"
// @Param        body  body  dto.VendorRepRequest  true  "Contacto"
// @Success      200  {object}  dto.VendorRepResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/vendor-reps/{id} [put]
func (h *SettingsHandler) UpdateVendorRep(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.VendorRepRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateVendorRep(c.UserContext(), tenantID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteVendorRep godoc
// @Summary      Eliminar contacto de proveedor (owner o admin)
// @Tags         settings
// @Security     Bearer
// @Param        id  path  string  true  "ID del contacto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/vendor-reps/{id} [delete]
func (h *SettingsHandler) DeleteVendorRep(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	if err := h.uc.DeleteVendorRep(c.UserContext(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
