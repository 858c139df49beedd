package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

// contractTransitions estados alcanzables desde cada estado. void es terminal.
var contractTransitions = map[string][]string{
	entity.ContractStatusDraft:  {entity.ContractStatusSent, entity.ContractStatusSigned, entity.ContractStatusVoid},
	entity.ContractStatusSent:   {entity.ContractStatusDraft, entity.ContractStatusSigned, entity.ContractStatusVoid},
	entity.ContractStatusSigned: {entity.ContractStatusVoid},
}

// ContractUseCase contratos de proyecto, sus enmiendas y las plantillas del estudio.
type ContractUseCase struct {
	contracts repository.ContractRepository
	templates repository.ContractTemplateRepository
	projects  repository.ProjectRepository
	clients   repository.ClientRepository
	log       *logger.Logger
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(
	contracts repository.ContractRepository,
	templates repository.ContractTemplateRepository,
	projects repository.ProjectRepository,
	clients repository.ClientRepository,
	log *logger.Logger,
) *ContractUseCase {
	return &ContractUseCase{contracts: contracts, templates: templates, projects: projects, clients: clients, log: log.Component("contracts")}
}

// CreateTemplate crea una plantilla de contrato.
func (uc *ContractUseCase) CreateTemplate(ctx context.Context, tenantID string, in dto.CreateContractTemplateRequest) (*dto.ContractTemplateResponse, error) {
	now := time.Now()
	t := &entity.ContractTemplate{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      strings.TrimSpace(in.Name),
		Type:      strings.TrimSpace(in.Type),
		Body:      in.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	out := toContractTemplateResponse(t)
	return &out, nil
}

// ListTemplates lista las plantillas del estudio.
func (uc *ContractUseCase) ListTemplates(ctx context.Context, tenantID string) ([]dto.ContractTemplateResponse, error) {
	list, err := uc.templates.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContractTemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toContractTemplateResponse(t))
	}
	return out, nil
}

// Create crea un contrato en borrador. Con plantilla, su cuerpo se completa con los datos del proyecto.
func (uc *ContractUseCase) Create(ctx context.Context, tenantID, projectID string, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	project, err := uc.projects.GetByID(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: proyecto %s", domain.ErrNotFound, projectID)
	}
	if err := validateContractAmounts(in.BillingModel, in.BaseHoursAllocated, in.BaseFlatAmount); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &entity.Contract{
		ID:                 uuid.New().String(),
		TenantID:           tenantID,
		ProjectID:          projectID,
		Title:              strings.TrimSpace(in.Title),
		BillingModel:       in.BillingModel,
		BaseHoursAllocated: in.BaseHoursAllocated,
		BaseFlatAmount:     in.BaseFlatAmount,
		Status:             entity.ContractStatusDraft,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.TemplateID != nil && *in.TemplateID != "" {
		tpl, err := uc.templates.GetByID(ctx, tenantID, *in.TemplateID)
		if err != nil {
			return nil, err
		}
		if tpl == nil {
			return nil, fmt.Errorf("%w: plantilla %s no existe", domain.ErrInvalidInput, *in.TemplateID)
		}
		data, err := uc.contractData(ctx, project, c)
		if err != nil {
			return nil, err
		}
		c.TemplateID = &tpl.ID
		c.Body = FillPlaceholders(tpl.Body, data)
	}
	if err := uc.contracts.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("tenant_id", tenantID).Str("project_id", projectID).Str("contract_id", c.ID).
		Str("billing_model", c.BillingModel).Msg("contrato creado")
	out := toContractResponse(c, nil)
	return &out, nil
}

// contractData valores disponibles para los {{placeholders}} de la plantilla.
func (uc *ContractUseCase) contractData(ctx context.Context, p *entity.Project, c *entity.Contract) (map[string]string, error) {
	data := map[string]string{
		"projectName":    p.Name,
		"projectAddress": p.Address,
		"contractTitle":  c.Title,
		"billingModel":   c.BillingModel,
		"date":           c.CreatedAt.Format("2006-01-02"),
	}
	if c.BaseHoursAllocated != nil {
		data["baseHours"] = c.BaseHoursAllocated.String()
	}
	if c.BaseFlatAmount != nil {
		data["baseAmount"] = c.BaseFlatAmount.StringFixed(2)
	}
	if p.ClientID != nil {
		client, err := uc.clients.GetByID(ctx, p.TenantID, *p.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			data["clientName"] = client.Name
			data["clientEmail"] = client.Email
		}
	}
	return data, nil
}

// List lista los contratos del proyecto con sus enmiendas.
func (uc *ContractUseCase) List(ctx context.Context, tenantID, projectID string) ([]dto.ContractResponse, error) {
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	list, err := uc.contracts.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	amendments, err := uc.contracts.ListAmendments(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContractResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContractResponse(c, amendments))
	}
	return out, nil
}

// Get obtiene un contrato con sus enmiendas.
func (uc *ContractUseCase) Get(ctx context.Context, tenantID, contractID string) (*dto.ContractResponse, error) {
	c, err := uc.contract(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	amendments, err := uc.contracts.ListAmendments(ctx, tenantID, []string{c.ID})
	if err != nil {
		return nil, err
	}
	out := toContractResponse(c, amendments)
	return &out, nil
}

// UpdateStatus cambia el estado. Las transiciones no previstas en contractTransitions son ErrConflict.
func (uc *ContractUseCase) UpdateStatus(ctx context.Context, tenantID, contractID, status string) (*dto.ContractResponse, error) {
	if !entity.ValidContractStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	c, err := uc.contract(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if c.Status != status {
		if !canTransition(c.Status, status) {
			return nil, fmt.Errorf("%w: contrato %s no puede pasar de %s a %s", domain.ErrConflict, c.ID, c.Status, status)
		}
		c.Status = status
		c.UpdatedAt = time.Now()
		if err := uc.contracts.UpdateStatus(ctx, tenantID, c.ID, status, c.UpdatedAt); err != nil {
			return nil, err
		}
	}
	return uc.Get(ctx, tenantID, c.ID)
}

func canTransition(from, to string) bool {
	for _, s := range contractTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CreateAmendment agrega una enmienda en borrador. Un contrato anulado no admite enmiendas.
func (uc *ContractUseCase) CreateAmendment(ctx context.Context, tenantID, contractID string, in dto.CreateAmendmentRequest) (*dto.AmendmentResponse, error) {
	c, err := uc.contract(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if c.Status == entity.ContractStatusVoid {
		return nil, fmt.Errorf("%w: contrato %s anulado", domain.ErrConflict, c.ID)
	}
	if isNegative(in.ExtraHoursAllocated) || isNegative(in.ExtraFlatAmount) {
		return nil, fmt.Errorf("%w: horas y monto extra no pueden ser negativos", domain.ErrInvalidInput)
	}
	a := &entity.Amendment{
		ID:                  uuid.New().String(),
		TenantID:            tenantID,
		ContractID:          c.ID,
		Title:               strings.TrimSpace(in.Title),
		Description:         in.Description,
		ExtraHoursAllocated: in.ExtraHoursAllocated,
		ExtraFlatAmount:     in.ExtraFlatAmount,
		Status:              entity.ContractStatusDraft,
		CreatedAt:           time.Now(),
	}
	if err := uc.contracts.CreateAmendment(ctx, a); err != nil {
		return nil, err
	}
	out := toAmendmentResponse(a)
	return &out, nil
}

func (uc *ContractUseCase) contract(ctx context.Context, tenantID, contractID string) (*entity.Contract, error) {
	c, err := uc.contracts.GetByID(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: contrato %s", domain.ErrNotFound, contractID)
	}
	return c, nil
}

// validateContractAmounts: hourly exige horas, flat_rate exige monto e hybrid ambos. Nada negativo.
func validateContractAmounts(model string, hours, amount *decimal.Decimal) error {
	if !entity.ValidBillingModel(model) {
		return fmt.Errorf("%w: modelo de cobro %q", domain.ErrInvalidInput, model)
	}
	if isNegative(hours) || isNegative(amount) {
		return fmt.Errorf("%w: horas y monto no pueden ser negativos", domain.ErrInvalidInput)
	}
	needHours := model == entity.BillingModelHourly || model == entity.BillingModelHybrid
	needAmount := model == entity.BillingModelFlatRate || model == entity.BillingModelHybrid
	if needHours && hours == nil {
		return fmt.Errorf("%w: %s requiere baseHoursAllocated", domain.ErrInvalidInput, model)
	}
	if needAmount && amount == nil {
		return fmt.Errorf("%w: %s requiere baseFlatAmount", domain.ErrInvalidInput, model)
	}
	return nil
}

func isNegative(d *decimal.Decimal) bool {
	return d != nil && d.IsNegative()
}

func toContractTemplateResponse(t *entity.ContractTemplate) dto.ContractTemplateResponse {
	return dto.ContractTemplateResponse{ID: t.ID, Name: t.Name, Type: t.Type, Body: t.Body, CreatedAt: t.CreatedAt}
}

func toContractResponse(c *entity.Contract, amendments []*entity.Amendment) dto.ContractResponse {
	out := dto.ContractResponse{
		ID:                 c.ID,
		ProjectID:          c.ProjectID,
		TemplateID:         c.TemplateID,
		Title:              c.Title,
		Body:               c.Body,
		BillingModel:       c.BillingModel,
		BaseHoursAllocated: c.BaseHoursAllocated,
		BaseFlatAmount:     c.BaseFlatAmount,
		Status:             c.Status,
		Amendments:         []dto.AmendmentResponse{},
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	for _, a := range amendments {
		if a.ContractID == c.ID {
			out.Amendments = append(out.Amendments, toAmendmentResponse(a))
		}
	}
	return out
}

func toAmendmentResponse(a *entity.Amendment) dto.AmendmentResponse {
	return dto.AmendmentResponse{
		ID:                  a.ID,
		ContractID:          a.ContractID,
		Title:               a.Title,
		Description:         a.Description,
		ExtraHoursAllocated: a.ExtraHoursAllocated,
		ExtraFlatAmount:     a.ExtraFlatAmount,
		Status:              a.Status,
		CreatedAt:           a.CreatedAt,
	}
}
