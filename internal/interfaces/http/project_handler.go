package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
)

// ProjectHandler proyectos y sus espacios.
type ProjectHandler struct {
	projects *usecase.ProjectUseCase
	spaces   *usecase.SpaceUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(projects *usecase.ProjectUseCase, spaces *usecase.SpaceUseCase) *ProjectHandler {
	return &ProjectHandler{projects: projects, spaces: spaces}
}

// Create godoc
// @Summary      Crear proyecto
// @Description  Con lat/lng asigna la sede más cercana del estudio.
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "Proyecto"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateProjectRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.projects.Create(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener proyecto
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.projects.Get(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar proyectos
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.Paginated[dto.ProjectResponse]
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.projects.List(c.UserContext(), tenantID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del proyecto"
// @Param        body  body  dto.UpdateProjectStatusRequest  true  "Estado"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.UpdateProjectStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.projects.UpdateStatus(c.UserContext(), tenantID, c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateSpace godoc
// @Summary      Crear espacio en el proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string                  true  "ID del proyecto"
// @Param        body       body  dto.CreateSpaceRequest  true  "Espacio"
// @Success      201  {object}  dto.SpaceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/spaces [post]
func (h *ProjectHandler) CreateSpace(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateSpaceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.spaces.Create(c.UserContext(), tenantID, c.Params("projectId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSpaces godoc
// @Summary      Listar espacios del proyecto
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {array}   dto.SpaceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/spaces [get]
func (h *ProjectHandler) ListSpaces(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.spaces.List(c.UserContext(), tenantID, c.Params("projectId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// pageFromQuery lee limit/offset con los topes del listado.
func pageFromQuery(c *fiber.Ctx) dto.Page {
	return dto.Page{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}.Normalize()
}
