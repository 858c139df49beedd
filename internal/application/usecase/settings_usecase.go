package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

// SettingsUseCase ajustes del estudio: tarifas por rol, elementos por tipo de espacio y contactos de proveedores.
type SettingsUseCase struct {
	rates   repository.RoleRateRepository
	rooms   repository.RoomTemplateRepository
	vendors repository.VendorRepRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(
	rates repository.RoleRateRepository,
	rooms repository.RoomTemplateRepository,
	vendors repository.VendorRepRepository,
) *SettingsUseCase {
	return &SettingsUseCase{rates: rates, rooms: rooms, vendors: vendors}
}

// ── Tarifas por rol ──

// ListRoleRates lista las tarifas por nombre de rol.
func (uc *SettingsUseCase) ListRoleRates(ctx context.Context, tenantID string) ([]dto.RoleRateResponse, error) {
	list, err := uc.rates.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleRateResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRoleRateResponse(r))
	}
	return out, nil
}

// UpsertRoleRate crea la tarifa del rol o reemplaza la existente.
func (uc *SettingsUseCase) UpsertRoleRate(ctx context.Context, tenantID string, in dto.UpsertRoleRateRequest) (*dto.RoleRateResponse, error) {
	if in.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("%w: hourlyRate no puede ser negativo", domain.ErrInvalidInput)
	}
	role := strings.TrimSpace(in.RoleName)
	if role == "" {
		return nil, fmt.Errorf("%w: roleName vacío", domain.ErrInvalidInput)
	}
	now := time.Now()
	saved, err := uc.rates.Upsert(ctx, &entity.RoleRate{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		RoleName:   role,
		HourlyRate: in.HourlyRate,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	out := toRoleRateResponse(saved)
	return &out, nil
}

// DeleteRoleRate elimina una tarifa.
func (uc *SettingsUseCase) DeleteRoleRate(ctx context.Context, tenantID, id string) error {
	ok, err := uc.rates.Delete(ctx, tenantID, id)
	return requireDeleted(ok, err, "tarifa", id)
}

// ── Elementos por tipo de espacio ──

// ListRoomTemplates lista los elementos sugeridos; con roomType incluye los genéricos.
func (uc *SettingsUseCase) ListRoomTemplates(ctx context.Context, tenantID, roomType string) ([]dto.RoomTemplateResponse, error) {
	list, err := uc.rooms.List(ctx, tenantID, strings.TrimSpace(roomType))
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomTemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.RoomTemplateResponse{ID: t.ID, RoomType: t.RoomType, Key: t.Key, Label: t.Label})
	}
	return out, nil
}

// CreateRoomTemplate crea un elemento sugerido. La key se guarda en minúsculas con guiones bajos.
func (uc *SettingsUseCase) CreateRoomTemplate(ctx context.Context, tenantID string, in dto.CreateRoomTemplateRequest) (*dto.RoomTemplateResponse, error) {
	key := elementKey(in.Key)
	if key == "" {
		return nil, fmt.Errorf("%w: key vacía", domain.ErrInvalidInput)
	}
	t := &entity.RoomTemplate{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		RoomType:  strings.TrimSpace(in.RoomType),
		Key:       key,
		Label:     strings.TrimSpace(in.Label),
		CreatedAt: time.Now(),
	}
	if err := uc.rooms.Create(ctx, t); err != nil {
		return nil, err
	}
	return &dto.RoomTemplateResponse{ID: t.ID, RoomType: t.RoomType, Key: t.Key, Label: t.Label}, nil
}

// DeleteRoomTemplate elimina un elemento sugerido.
func (uc *SettingsUseCase) DeleteRoomTemplate(ctx context.Context, tenantID, id string) error {
	ok, err := uc.rooms.Delete(ctx, tenantID, id)
	return requireDeleted(ok, err, "elemento", id)
}

func elementKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// ── Contactos de proveedores ──

// ListVendorReps lista contactos; vendor filtra por proveedor.
func (uc *SettingsUseCase) ListVendorReps(ctx context.Context, tenantID, vendor string) ([]dto.VendorRepResponse, error) {
	list, err := uc.vendors.List(ctx, tenantID, strings.TrimSpace(vendor))
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorRepResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVendorRepResponse(v))
	}
	return out, nil
}

// CreateVendorRep registra un contacto de proveedor.
func (uc *SettingsUseCase) CreateVendorRep(ctx context.Context, tenantID string, in dto.VendorRepRequest) (*dto.VendorRepResponse, error) {
	now := time.Now()
	v := &entity.VendorRep{ID: uuid.New().String(), TenantID: tenantID, CreatedAt: now}
	applyVendorRep(v, in, now)
	if err := uc.vendors.Create(ctx, v); err != nil {
		return nil, err
	}
	out := toVendorRepResponse(v)
	return &out, nil
}

// UpdateVendorRep reemplaza los datos del contacto.
func (uc *SettingsUseCase) UpdateVendorRep(ctx context.Context, tenantID, id string, in dto.VendorRepRequest) (*dto.VendorRepResponse, error) {
	v, err := uc.vendors.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: contacto %s", domain.ErrNotFound, id)
	}
	applyVendorRep(v, in, time.Now())
	if err := uc.vendors.Update(ctx, v); err != nil {
		return nil, err
	}
	out := toVendorRepResponse(v)
	return &out, nil
}

// DeleteVendorRep elimina un contacto.
func (uc *SettingsUseCase) DeleteVendorRep(ctx context.Context, tenantID, id string) error {
	ok, err := uc.vendors.Delete(ctx, tenantID, id)
	return requireDeleted(ok, err, "contacto", id)
}

func applyVendorRep(v *entity.VendorRep, in dto.VendorRepRequest, now time.Time) {
	v.VendorName = strings.TrimSpace(in.VendorName)
	v.RepName = strings.TrimSpace(in.RepName)
	v.RepEmail = strings.ToLower(strings.TrimSpace(in.RepEmail))
	v.RepPhone = strings.TrimSpace(in.RepPhone)
	v.Notes = in.Notes
	v.UpdatedAt = now
}

// requireDeleted convierte un Delete sin fila afectada en ErrNotFound.
func requireDeleted(ok bool, err error, what, id string) error {
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
	}
	return nil
}

func toRoleRateResponse(r *entity.RoleRate) dto.RoleRateResponse {
	return dto.RoleRateResponse{ID: r.ID, RoleName: r.RoleName, HourlyRate: r.HourlyRate, UpdatedAt: r.UpdatedAt}
}

func toVendorRepResponse(v *entity.VendorRep) dto.VendorRepResponse {
	return dto.VendorRepResponse{
		ID:         v.ID,
		VendorName: v.VendorName,
		RepName:    v.RepName,
		RepEmail:   v.RepEmail,
		RepPhone:   v.RepPhone,
		Notes:      v.Notes,
		UpdatedAt:  v.UpdatedAt,
	}
}
