package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// TimeEntryUseCase registro de horas y resumen contra lo contratado.
type TimeEntryUseCase struct {
	entries   repository.TimeEntryRepository
	contracts repository.ContractRepository
	projects  repository.ProjectRepository
	rates     repository.RoleRateRepository
}

// NewTimeEntryUseCase construye el caso de uso.
func NewTimeEntryUseCase(
	entries repository.TimeEntryRepository,
	contracts repository.ContractRepository,
	projects repository.ProjectRepository,
	rates repository.RoleRateRepository,
) *TimeEntryUseCase {
	return &TimeEntryUseCase{entries: entries, contracts: contracts, projects: projects, rates: rates}
}

// Create registra horas del usuario. La enmienda implica su contrato; ambos deben ser del proyecto.
func (uc *TimeEntryUseCase) Create(ctx context.Context, tenantID, userID, projectID string, in dto.CreateTimeEntryRequest) (*dto.TimeEntryResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: usuario requerido", domain.ErrUnauthorized)
	}
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	if !in.Hours.IsPositive() || in.Hours.GreaterThan(decimal.NewFromInt(entity.MaxHoursPerEntry)) {
		return nil, fmt.Errorf("%w: hours debe estar entre 0 y %d", domain.ErrInvalidInput, entity.MaxHoursPerEntry)
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, in.Date)
	}

	contractID, amendmentID, err := uc.resolveTarget(ctx, tenantID, projectID, nonEmpty(in.ContractID), nonEmpty(in.AmendmentID))
	if err != nil {
		return nil, err
	}
	e := &entity.TimeEntry{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ProjectID:   projectID,
		ContractID:  contractID,
		AmendmentID: amendmentID,
		UserID:      userID,
		RoleName:    strings.TrimSpace(in.RoleName),
		Date:        date,
		Hours:       in.Hours,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	out := toTimeEntryResponse(e)
	return &out, nil
}

// resolveTarget valida contrato y enmienda contra el proyecto.
func (uc *TimeEntryUseCase) resolveTarget(ctx context.Context, tenantID, projectID string, contractID, amendmentID *string) (*string, *string, error) {
	if amendmentID != nil {
		a, err := uc.contracts.GetAmendment(ctx, tenantID, *amendmentID)
		if err != nil {
			return nil, nil, err
		}
		if a == nil {
			return nil, nil, fmt.Errorf("%w: enmienda %s no existe", domain.ErrInvalidInput, *amendmentID)
		}
		if contractID != nil && *contractID != a.ContractID {
			return nil, nil, fmt.Errorf("%w: la enmienda no pertenece al contrato %s", domain.ErrInvalidInput, *contractID)
		}
		contractID = &a.ContractID
	}
	if contractID == nil {
		return nil, nil, nil
	}
	c, err := uc.contracts.GetByID(ctx, tenantID, *contractID)
	if err != nil {
		return nil, nil, err
	}
	if c == nil || c.ProjectID != projectID {
		return nil, nil, fmt.Errorf("%w: contrato %s no pertenece al proyecto", domain.ErrInvalidInput, *contractID)
	}
	if c.Status == entity.ContractStatusVoid {
		return nil, nil, fmt.Errorf("%w: contrato %s anulado", domain.ErrConflict, c.ID)
	}
	return contractID, amendmentID, nil
}

// List lista las horas del proyecto, las más recientes primero.
func (uc *TimeEntryUseCase) List(ctx context.Context, tenantID, projectID string) ([]dto.TimeEntryResponse, error) {
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	list, err := uc.entries.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TimeEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toTimeEntryResponse(e))
	}
	return out, nil
}

// Delete elimina un registro del proyecto.
func (uc *TimeEntryUseCase) Delete(ctx context.Context, tenantID, projectID, entryID string) error {
	e, err := uc.entries.GetByID(ctx, tenantID, entryID)
	if err != nil {
		return err
	}
	if e == nil || e.ProjectID != projectID {
		return fmt.Errorf("%w: registro de horas %s", domain.ErrNotFound, entryID)
	}
	return uc.entries.Delete(ctx, tenantID, e.ID)
}

// Summary agrupa las horas por contrato, las compara con lo asignado (base más enmiendas no anuladas)
// y valoriza cada hora con la tarifa de su rol. Roles sin tarifa suman horas pero no monto.
func (uc *TimeEntryUseCase) Summary(ctx context.Context, tenantID, projectID string) (*dto.TimeSummaryResponse, error) {
	if err := requireProject(ctx, uc.projects, tenantID, projectID); err != nil {
		return nil, err
	}
	entries, err := uc.entries.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	contracts, err := uc.contracts.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(contracts))
	for _, c := range contracts {
		ids = append(ids, c.ID)
	}
	amendments, err := uc.contracts.ListAmendments(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	rateList, err := uc.rates.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	rates := make(map[string]decimal.Decimal, len(rateList))
	for _, r := range rateList {
		rates[strings.ToLower(r.RoleName)] = r.HourlyRate
	}

	type acc struct{ hours, amount decimal.Decimal }
	byContract := map[string]*acc{}
	unrated := map[string]bool{}
	out := &dto.TimeSummaryResponse{ProjectID: projectID, UnratedRoles: []string{}}
	for _, e := range entries {
		key := ""
		if e.ContractID != nil {
			key = *e.ContractID
		}
		a := byContract[key]
		if a == nil {
			a = &acc{}
			byContract[key] = a
		}
		a.hours = a.hours.Add(e.Hours)
		out.TotalHours = out.TotalHours.Add(e.Hours)
		rate, ok := rates[strings.ToLower(e.RoleName)]
		if !ok {
			unrated[e.RoleName] = true
			continue
		}
		amount := e.Hours.Mul(rate)
		a.amount = a.amount.Add(amount)
		out.BillableAmount = out.BillableAmount.Add(amount)
	}

	out.Contracts = make([]dto.ContractHours, 0, len(contracts)+1)
	for _, c := range contracts {
		row := dto.ContractHours{ContractID: &c.ID, Title: c.Title, AllocatedHours: c.AllocatedHours(amendments)}
		if a := byContract[c.ID]; a != nil {
			row.LoggedHours, row.BillableAmount = a.hours, a.amount
		}
		if row.AllocatedHours != nil {
			remaining := row.AllocatedHours.Sub(row.LoggedHours)
			row.RemainingHours = &remaining
			row.OverAllocated = remaining.IsNegative()
		}
		out.Contracts = append(out.Contracts, row)
	}
	if a := byContract[""]; a != nil {
		out.Contracts = append(out.Contracts, dto.ContractHours{Title: "Sin contrato", LoggedHours: a.hours, BillableAmount: a.amount})
	}
	for role := range unrated {
		out.UnratedRoles = append(out.UnratedRoles, role)
	}
	sort.Strings(out.UnratedRoles)
	return out, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func toTimeEntryResponse(e *entity.TimeEntry) dto.TimeEntryResponse {
	return dto.TimeEntryResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		ContractID:  e.ContractID,
		AmendmentID: e.AmendmentID,
		UserID:      e.UserID,
		RoleName:    e.RoleName,
		Date:        e.Date.Format(dateLayout),
		Hours:       e.Hours,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}
