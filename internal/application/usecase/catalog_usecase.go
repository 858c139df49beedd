package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/catalog"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

// CatalogUseCase lectura del catálogo resuelto por estudio y escritura de overrides.
type CatalogUseCase struct {
	products  repository.ProductRepository
	overrides repository.OverrideRepository
	metrics   ports.Metrics
	log       *logger.Logger
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	products repository.ProductRepository,
	overrides repository.OverrideRepository,
	metrics ports.Metrics,
	log *logger.Logger,
) *CatalogUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &CatalogUseCase{products: products, overrides: overrides, metrics: metrics, log: log.Component("catalog")}
}

// List devuelve los productos activos visibles para el estudio ya resueltos con sus overrides.
// Los marcados como hidden se omiten en la consulta salvo que q.IncludeHidden sea true.
func (uc *CatalogUseCase) List(ctx context.Context, tenantID string, q dto.CatalogQuery) (*dto.CatalogListResponse, error) {
	q.Page = q.Page.Normalize()
	list, err := uc.products.ListVisible(ctx, tenantID, repository.ProductFilter{
		Search:        strings.TrimSpace(q.Search),
		Category:      strings.TrimSpace(q.Category),
		ExcludeHidden: !q.IncludeHidden,
		Limit:         q.FetchLimit(),
		Offset:        q.Offset,
	})
	if err != nil {
		return nil, err
	}
	resolved, err := uc.resolveAll(ctx, tenantID, list)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResolvedProductResponse, 0, len(resolved))
	for _, r := range resolved {
		items = append(items, toResolvedResponse(r))
	}
	out := dto.NewPaginated(items, q.Page)
	return &out, nil
}

// Get devuelve un producto visible para el estudio, resuelto.
func (uc *CatalogUseCase) Get(ctx context.Context, tenantID, productID string) (*dto.ResolvedProductResponse, error) {
	p, err := uc.visibleProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	resolved, err := uc.resolveAll(ctx, tenantID, []*entity.Product{p})
	if err != nil {
		return nil, err
	}
	out := toResolvedResponse(resolved[0])
	return &out, nil
}

// ResolveMany resuelve un conjunto de productos por ID. Los que no existan o no sean
// visibles para el estudio no aparecen en el mapa.
func (uc *CatalogUseCase) ResolveMany(ctx context.Context, tenantID string, productIDs []string) (map[string]catalog.ResolvedProduct, error) {
	seen := make(map[string]bool, len(productIDs))
	var products []*entity.Product
	for _, id := range productIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, err := uc.products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil && p.VisibleTo(tenantID) {
			products = append(products, p)
		}
	}
	resolved, err := uc.resolveAll(ctx, tenantID, products)
	if err != nil {
		return nil, err
	}
	out := make(map[string]catalog.ResolvedProduct, len(resolved))
	for _, r := range resolved {
		out[r.Product.ID] = r
	}
	return out, nil
}

// CreateCustom crea un producto privado del estudio.
func (uc *CatalogUseCase) CreateCustom(ctx context.Context, tenantID string, in dto.CreateCustomProductRequest) (*dto.ResolvedProductResponse, error) {
	if in.ListPrice != nil && in.ListPrice.IsNegative() {
		return nil, fmt.Errorf("%w: listPrice no puede ser negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	owner := tenantID
	p := &entity.Product{
		ID:            uuid.New().String(),
		Scope:         entity.ProductScopeTenant,
		OwnerTenantID: &owner,
		SKU:           strings.TrimSpace(in.SKU),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Category:      strings.TrimSpace(in.Category),
		VendorName:    strings.TrimSpace(in.VendorName),
		ListPrice:     in.ListPrice,
		Status:        entity.ProductStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	out := toResolvedResponse(catalog.Resolve(p, nil).View)
	return &out, nil
}

// Update modifica un producto privado del estudio. Los productos globales son de solo lectura.
func (uc *CatalogUseCase) Update(ctx context.Context, tenantID, productID string, in dto.UpdateProductRequest) (*dto.ResolvedProductResponse, error) {
	p, err := uc.visibleProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(tenantID) {
		return nil, fmt.Errorf("%w: los productos globales no se editan desde el estudio", domain.ErrForbidden)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.VendorName != nil {
		p.VendorName = strings.TrimSpace(*in.VendorName)
	}
	if in.ListPrice != nil {
		if in.ListPrice.IsNegative() {
			return nil, fmt.Errorf("%w: listPrice no puede ser negativo", domain.ErrInvalidInput)
		}
		p.ListPrice = in.ListPrice
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	p.UpdatedAt = time.Now()
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.Get(ctx, tenantID, productID)
}

// UpsertOverride crea o reemplaza el override del estudio para el producto en una sola escritura atómica.
func (uc *CatalogUseCase) UpsertOverride(ctx context.Context, tenantID, productID string, in dto.UpsertOverrideRequest) (*dto.OverrideResponse, error) {
	if _, err := uc.visibleProduct(ctx, tenantID, productID); err != nil {
		return nil, err
	}
	now := time.Now()
	o := &entity.TenantProductOverride{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		ProductID:     productID,
		CostPrice:     in.CostPrice,
		SellPrice:     in.SellPrice,
		MarkupPercent: in.MarkupPercent,
		Availability:  in.Availability,
		InternalNotes: in.InternalNotes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := catalog.NormalizeOverride(o); err != nil {
		if errors.Is(err, catalog.ErrInvalidOverride) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil, err
	}
	saved, err := uc.overrides.Upsert(ctx, o)
	if err != nil {
		return nil, err
	}
	uc.metrics.OverrideUpserted()
	uc.log.Debug().Str("tenant_id", tenantID).Str("product_id", productID).
		Str("availability", saved.Availability).Msg("override guardado")
	return toOverrideResponse(saved), nil
}

func (uc *CatalogUseCase) visibleProduct(ctx context.Context, tenantID, productID string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	// Los productos privados de otro estudio se reportan como inexistentes.
	if p == nil || !p.VisibleTo(tenantID) {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return p, nil
}

// resolveAll carga los overrides del estudio en una sola consulta y resuelve cada producto.
func (uc *CatalogUseCase) resolveAll(ctx context.Context, tenantID string, products []*entity.Product) ([]catalog.ResolvedProduct, error) {
	if len(products) == 0 {
		return nil, nil
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	overrides, err := uc.overrides.ListForProducts(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]*entity.TenantProductOverride, len(overrides))
	for _, o := range overrides {
		byProduct[o.ProductID] = append(byProduct[o.ProductID], o)
	}
	out := make([]catalog.ResolvedProduct, len(products))
	for i, p := range products {
		res := catalog.Resolve(p, byProduct[p.ID])
		if res.Duplicates > 0 {
			uc.metrics.OverrideDuplicates(res.Duplicates)
			uc.log.Warn().Str("tenant_id", tenantID).Str("product_id", p.ID).
				Str("chosen_override_id", res.View.OverrideID).Int("duplicates", res.Duplicates).
				Msg("overrides duplicados para (tenant, producto); se usa el más reciente")
		}
		out[i] = res.View
	}
	return out, nil
}

func toResolvedResponse(r catalog.ResolvedProduct) dto.ResolvedProductResponse {
	p := r.Product
	return dto.ResolvedProductResponse{
		ID:               p.ID,
		Scope:            p.Scope,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		Category:         p.Category,
		VendorName:       p.VendorName,
		ListPrice:        p.ListPrice,
		Status:           p.Status,
		UserPrice:        r.UserPrice,
		UserCost:         r.UserCost,
		UserMarkup:       r.UserMarkup,
		UserNotes:        r.UserNotes,
		UserAvailability: r.UserAvailability,
		EffectivePrice:   r.EffectivePrice(),
		Priced:           r.Priced(),
	}
}

func toOverrideResponse(o *entity.TenantProductOverride) *dto.OverrideResponse {
	return &dto.OverrideResponse{
		ID:            o.ID,
		TenantID:      o.TenantID,
		ProductID:     o.ProductID,
		CostPrice:     o.CostPrice,
		SellPrice:     o.SellPrice,
		MarkupPercent: o.MarkupPercent,
		InternalNotes: o.InternalNotes,
		Availability:  o.Availability,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
