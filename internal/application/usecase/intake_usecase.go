package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IntakeWarningNoProject se devuelve cuando la solicitud se guardó pero no se pudo crear el proyecto.
const IntakeWarningNoProject = "solicitud guardada; no se pudo crear el proyecto"

// IntakeUseCase formularios públicos de captación. Cada envío deja un cliente y un proyecto prospect.
type IntakeUseCase struct {
	intake   repository.IntakeRepository
	clients  repository.ClientRepository
	projects *ProjectUseCase
	log      *logger.Logger
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(
	intake repository.IntakeRepository,
	clients repository.ClientRepository,
	projects *ProjectUseCase,
	log *logger.Logger,
) *IntakeUseCase {
	return &IntakeUseCase{intake: intake, clients: clients, projects: projects, log: log.Component("intake")}
}

// CreateForm crea un formulario. El slug es global y solo admite minúsculas, dígitos y guiones.
func (uc *IntakeUseCase) CreateForm(ctx context.Context, tenantID string, in dto.CreateIntakeFormRequest) (*dto.IntakeFormResponse, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if !slugRe.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug %q", domain.ErrInvalidInput, in.Slug)
	}
	f := &entity.IntakeForm{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Slug:        slug,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.intake.CreateForm(ctx, f); err != nil {
		return nil, err
	}
	out := toIntakeFormResponse(f)
	return &out, nil
}

// ListForms lista los formularios del estudio.
func (uc *IntakeUseCase) ListForms(ctx context.Context, tenantID string) ([]dto.IntakeFormResponse, error) {
	list, err := uc.intake.ListForms(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IntakeFormResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toIntakeFormResponse(f))
	}
	return out, nil
}

// ListSubmissions lista las respuestas de un formulario del estudio.
func (uc *IntakeUseCase) ListSubmissions(ctx context.Context, tenantID, formID string) ([]dto.IntakeSubmissionResponse, error) {
	f, err := uc.intake.GetForm(ctx, tenantID, formID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: formulario %s", domain.ErrNotFound, formID)
	}
	list, err := uc.intake.ListSubmissions(ctx, tenantID, f.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IntakeSubmissionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.IntakeSubmissionResponse{
			ID:                s.ID,
			Name:              s.Name,
			Email:             s.Email,
			Phone:             s.Phone,
			EnteredAddress:    s.EnteredAddress,
			Responses:         s.Responses,
			ResolvedProjectID: s.ResolvedProjectID,
			CreatedAt:         s.CreatedAt,
		})
	}
	return out, nil
}

// PublicForm datos públicos del formulario.
func (uc *IntakeUseCase) PublicForm(ctx context.Context, slug string) (*dto.PublicIntakeFormResponse, error) {
	f, err := uc.form(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &dto.PublicIntakeFormResponse{Slug: f.Slug, Name: f.Name, Description: f.Description}, nil
}

// Submit guarda la respuesta y luego intenta resolverla: busca o crea el cliente por email y crea un
// proyecto prospect. Si la resolución falla la respuesta queda guardada y se devuelve un aviso.
func (uc *IntakeUseCase) Submit(ctx context.Context, slug string, in dto.SubmitIntakeRequest) (*dto.SubmitIntakeResponse, error) {
	f, err := uc.form(ctx, slug)
	if err != nil {
		return nil, err
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return nil, fmt.Errorf("%w: lat y lng van juntos", domain.ErrInvalidInput)
	}
	sub := &entity.IntakeSubmission{
		ID:             uuid.New().String(),
		TenantID:       f.TenantID,
		FormID:         f.ID,
		Name:           strings.TrimSpace(in.Name),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:          strings.TrimSpace(in.Phone),
		EnteredAddress: strings.TrimSpace(in.Address),
		Responses:      in.Responses,
		CreatedAt:      time.Now(),
	}
	if err := uc.intake.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	projectID, err := uc.resolve(ctx, f, sub, in)
	if err != nil {
		uc.log.Error().Err(err).Str("tenant_id", f.TenantID).Str("submission_id", sub.ID).
			Msg("no se pudo resolver la solicitud")
		return &dto.SubmitIntakeResponse{SubmissionID: sub.ID, Warning: IntakeWarningNoProject}, nil
	}
	uc.log.Info().Str("tenant_id", f.TenantID).Str("submission_id", sub.ID).Str("project_id", projectID).
		Msg("solicitud convertida en proyecto")
	return &dto.SubmitIntakeResponse{SubmissionID: sub.ID, ProjectID: &projectID}, nil
}

func (uc *IntakeUseCase) resolve(ctx context.Context, f *entity.IntakeForm, sub *entity.IntakeSubmission, in dto.SubmitIntakeRequest) (string, error) {
	client, err := uc.clients.FindByEmail(ctx, f.TenantID, sub.Email)
	if err != nil {
		return "", err
	}
	if client == nil {
		now := time.Now()
		client = &entity.Client{
			ID:        uuid.New().String(),
			TenantID:  f.TenantID,
			Name:      sub.Name,
			Email:     sub.Email,
			Phone:     sub.Phone,
			Address:   sub.EnteredAddress,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.clients.Create(ctx, client); err != nil {
			return "", fmt.Errorf("crear cliente: %w", err)
		}
	}
	clientID := client.ID
	p, err := uc.projects.Create(ctx, f.TenantID, dto.CreateProjectRequest{
		ClientID:    &clientID,
		Name:        "Proyecto " + sub.Name,
		Status:      entity.ProjectStatusProspect,
		Address:     sub.EnteredAddress,
		Lat:         in.Lat,
		Lng:         in.Lng,
		Description: "Solicitud desde el formulario " + f.Name,
	})
	if err != nil {
		return "", fmt.Errorf("crear proyecto: %w", err)
	}
	if err := uc.intake.ResolveSubmission(ctx, sub.ID, p.ID); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (uc *IntakeUseCase) form(ctx context.Context, slug string) (*entity.IntakeForm, error) {
	f, err := uc.intake.GetFormBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: formulario %q", domain.ErrNotFound, slug)
	}
	return f, nil
}

func toIntakeFormResponse(f *entity.IntakeForm) dto.IntakeFormResponse {
	return dto.IntakeFormResponse{ID: f.ID, Slug: f.Slug, Name: f.Name, Description: f.Description, CreatedAt: f.CreatedAt}
}
