package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

// ── Contratos ─────────────────────────────────────────────────────────────────

type ContractTemplateRepo struct{ s *Store }

var _ repository.ContractTemplateRepository = (*ContractTemplateRepo)(nil)

func (r *ContractTemplateRepo) Create(_ context.Context, t *entity.ContractTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contractTemplates[t.ID] = *t
	return nil
}

func (r *ContractTemplateRepo) GetByID(_ context.Context, tenantID, id string) (*entity.ContractTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.contractTemplates[id]
	if !ok || t.TenantID != tenantID {
		return nil, nil
	}
	return &t, nil
}

func (r *ContractTemplateRepo) List(_ context.Context, tenantID string) ([]*entity.ContractTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ContractTemplate
	for _, t := range r.s.contractTemplates {
		t := t
		if t.TenantID == tenantID {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type ContractRepo struct{ s *Store }

var _ repository.ContractRepository = (*ContractRepo)(nil)

func (r *ContractRepo) Create(_ context.Context, c *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.projects[c.ProjectID]; !ok || p.TenantID != c.TenantID {
		return domain.ErrNotFound
	}
	r.s.contracts[c.ID] = *c
	return nil
}

func (r *ContractRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contracts[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	return &c, nil
}

func (r *ContractRepo) ListByProject(_ context.Context, tenantID, projectID string) ([]*entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Contract
	for _, c := range r.s.contracts {
		c := c
		if c.TenantID == tenantID && c.ProjectID == projectID {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ContractRepo) UpdateStatus(_ context.Context, tenantID, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.contracts[id]; ok && c.TenantID == tenantID {
		c.Status, c.UpdatedAt = status, at
		r.s.contracts[id] = c
	}
	return nil
}

func (r *ContractRepo) CreateAmendment(_ context.Context, a *entity.Amendment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[a.ContractID]; !ok {
		return domain.ErrNotFound
	}
	r.s.amendments[a.ID] = *a
	return nil
}

func (r *ContractRepo) GetAmendment(_ context.Context, tenantID, id string) (*entity.Amendment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.amendments[id]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	return &a, nil
}

func (r *ContractRepo) ListAmendments(_ context.Context, tenantID string, contractIDs []string) ([]*entity.Amendment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[string]bool, len(contractIDs))
	for _, id := range contractIDs {
		want[id] = true
	}
	var out []*entity.Amendment
	for _, a := range r.s.amendments {
		a := a
		if a.TenantID == tenantID && want[a.ContractID] {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ── Horas ─────────────────────────────────────────────────────────────────────

type TimeEntryRepo struct{ s *Store }

var _ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)

func (r *TimeEntryRepo) Create(_ context.Context, e *entity.TimeEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.timeEntries[e.ID] = *e
	return nil
}

func (r *TimeEntryRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.timeEntries[id]; ok && e.TenantID == tenantID {
		delete(r.s.timeEntries, id)
	}
	return nil
}

func (r *TimeEntryRepo) GetByID(_ context.Context, tenantID, id string) (*entity.TimeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.timeEntries[id]
	if !ok || e.TenantID != tenantID {
		return nil, nil
	}
	return &e, nil
}

func (r *TimeEntryRepo) ListByProject(_ context.Context, tenantID, projectID string) ([]*entity.TimeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TimeEntry
	for _, e := range r.s.timeEntries {
		e := e
		if e.TenantID == tenantID && e.ProjectID == projectID {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ── Ajustes del estudio ───────────────────────────────────────────────────────

type RoleRateRepo struct{ s *Store }

var _ repository.RoleRateRepository = (*RoleRateRepo)(nil)

func (r *RoleRateRepo) Upsert(_ context.Context, rate *entity.RoleRate) (*entity.RoleRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.roleRates {
		if existing.TenantID == rate.TenantID && existing.RoleName == rate.RoleName {
			existing.HourlyRate, existing.UpdatedAt = rate.HourlyRate, rate.UpdatedAt
			r.s.roleRates[id] = existing
			return &existing, nil
		}
	}
	r.s.roleRates[rate.ID] = *rate
	out := *rate
	return &out, nil
}

func (r *RoleRateRepo) Delete(_ context.Context, tenantID, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rate, ok := r.s.roleRates[id]; ok && rate.TenantID == tenantID {
		delete(r.s.roleRates, id)
		return true, nil
	}
	return false, nil
}

func (r *RoleRateRepo) List(_ context.Context, tenantID string) ([]*entity.RoleRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.RoleRate
	for _, rate := range r.s.roleRates {
		rate := rate
		if rate.TenantID == tenantID {
			out = append(out, &rate)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoleName < out[j].RoleName })
	return out, nil
}

type RoomTemplateRepo struct{ s *Store }

var _ repository.RoomTemplateRepository = (*RoomTemplateRepo)(nil)

func (r *RoomTemplateRepo) Create(_ context.Context, t *entity.RoomTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.roomTemplates {
		if existing.TenantID == t.TenantID && existing.RoomType == t.RoomType && existing.Key == t.Key {
			return domain.ErrDuplicate
		}
	}
	r.s.roomTemplates[t.ID] = *t
	return nil
}

func (r *RoomTemplateRepo) Delete(_ context.Context, tenantID, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.roomTemplates[id]; ok && t.TenantID == tenantID {
		delete(r.s.roomTemplates, id)
		return true, nil
	}
	return false, nil
}

func (r *RoomTemplateRepo) List(_ context.Context, tenantID, roomType string) ([]*entity.RoomTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.RoomTemplate
	for _, t := range r.s.roomTemplates {
		t := t
		if t.TenantID != tenantID {
			continue
		}
		if roomType != "" && t.RoomType != "" && t.RoomType != roomType {
			continue
		}
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RoomType != out[j].RoomType {
			return out[i].RoomType < out[j].RoomType
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

type VendorRepRepo struct{ s *Store }

var _ repository.VendorRepRepository = (*VendorRepRepo)(nil)

func (r *VendorRepRepo) Create(_ context.Context, v *entity.VendorRep) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.vendorReps[v.ID] = *v
	return nil
}

func (r *VendorRepRepo) Update(_ context.Context, v *entity.VendorRep) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.vendorReps[v.ID]; ok && cur.TenantID == v.TenantID {
		updated := *v
		updated.CreatedAt = cur.CreatedAt
		r.s.vendorReps[v.ID] = updated
	}
	return nil
}

func (r *VendorRepRepo) Delete(_ context.Context, tenantID, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.vendorReps[id]; ok && v.TenantID == tenantID {
		delete(r.s.vendorReps, id)
		return true, nil
	}
	return false, nil
}

func (r *VendorRepRepo) GetByID(_ context.Context, tenantID, id string) (*entity.VendorRep, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vendorReps[id]
	if !ok || v.TenantID != tenantID {
		return nil, nil
	}
	return &v, nil
}

func (r *VendorRepRepo) List(_ context.Context, tenantID, vendor string) ([]*entity.VendorRep, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.VendorRep
	for _, v := range r.s.vendorReps {
		v := v
		if v.TenantID == tenantID && (vendor == "" || strings.EqualFold(v.VendorName, vendor)) {
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].VendorName), strings.ToLower(out[j].VendorName)
		if a != b {
			return a < b
		}
		return out[i].RepName < out[j].RepName
	})
	return out, nil
}

// ── Formularios públicos ──────────────────────────────────────────────────────

type IntakeRepo struct{ s *Store }

var _ repository.IntakeRepository = (*IntakeRepo)(nil)

func (r *IntakeRepo) CreateForm(_ context.Context, f *entity.IntakeForm) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.intakeForms {
		if existing.Slug == f.Slug {
			return domain.ErrDuplicate
		}
	}
	r.s.intakeForms[f.ID] = *f
	return nil
}

func (r *IntakeRepo) GetFormBySlug(_ context.Context, slug string) (*entity.IntakeForm, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.intakeForms {
		if f.Slug == slug {
			return &f, nil
		}
	}
	return nil, nil
}

func (r *IntakeRepo) GetForm(_ context.Context, tenantID, id string) (*entity.IntakeForm, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.intakeForms[id]
	if !ok || f.TenantID != tenantID {
		return nil, nil
	}
	return &f, nil
}

func (r *IntakeRepo) ListForms(_ context.Context, tenantID string) ([]*entity.IntakeForm, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.IntakeForm
	for _, f := range r.s.intakeForms {
		f := f
		if f.TenantID == tenantID {
			out = append(out, &f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *IntakeRepo) CreateSubmission(_ context.Context, sub *entity.IntakeSubmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateSubmission"); err != nil {
		return err
	}
	r.s.submissions[sub.ID] = *sub
	return nil
}

func (r *IntakeRepo) ResolveSubmission(_ context.Context, id, projectID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sub, ok := r.s.submissions[id]; ok {
		pid := projectID
		sub.ResolvedProjectID = &pid
		r.s.submissions[id] = sub
	}
	return nil
}

func (r *IntakeRepo) ListSubmissions(_ context.Context, tenantID, formID string) ([]*entity.IntakeSubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.IntakeSubmission
	for _, sub := range r.s.submissions {
		sub := sub
		if sub.TenantID == tenantID && sub.FormID == formID {
			out = append(out, &sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
