// Package memstore implementa los puertos de repositorio en memoria para tests
// de casos de uso y handlers sin base de datos.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/domain/repository"
)

// Store guarda todas las entidades. Los repos devuelven copias para imitar la base.
type Store struct {
	mu         sync.Mutex
	products   map[string]entity.Product
	overrides  map[string]entity.TenantProductOverride
	specs      map[string]entity.ProjectProduct
	projects   map[string]entity.Project
	spaces     map[string]entity.Space
	clients    map[string]entity.Client
	locations  map[string]entity.TenantLocation
	milestones map[string]entity.ProjectMilestone
	payments   map[string]entity.PaymentRecord
	meetings   map[string]entity.Meeting
	recordings map[string]entity.MeetingRecording
	tasks      map[string]entity.Task
	templates  map[string]entity.EmailTemplate

	contractTemplates map[string]entity.ContractTemplate
	contracts         map[string]entity.Contract
	amendments        map[string]entity.Amendment
	timeEntries       map[string]entity.TimeEntry
	roleRates         map[string]entity.RoleRate
	roomTemplates     map[string]entity.RoomTemplate
	vendorReps        map[string]entity.VendorRep
	intakeForms       map[string]entity.IntakeForm
	submissions       map[string]entity.IntakeSubmission

	// TxCount cuenta las transacciones ejecutadas.
	TxCount int
	// FailOn hace fallar la operación con ese nombre (ej. "SetTagConflict").
	FailOn map[string]error
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		products:   map[string]entity.Product{},
		overrides:  map[string]entity.TenantProductOverride{},
		specs:      map[string]entity.ProjectProduct{},
		projects:   map[string]entity.Project{},
		spaces:     map[string]entity.Space{},
		clients:    map[string]entity.Client{},
		locations:  map[string]entity.TenantLocation{},
		milestones: map[string]entity.ProjectMilestone{},
		payments:   map[string]entity.PaymentRecord{},
		meetings:   map[string]entity.Meeting{},
		recordings: map[string]entity.MeetingRecording{},
		tasks:      map[string]entity.Task{},
		templates:  map[string]entity.EmailTemplate{},
		FailOn:     map[string]error{},

		contractTemplates: map[string]entity.ContractTemplate{},
		contracts:         map[string]entity.Contract{},
		amendments:        map[string]entity.Amendment{},
		timeEntries:       map[string]entity.TimeEntry{},
		roleRates:         map[string]entity.RoleRate{},
		roomTemplates:     map[string]entity.RoomTemplate{},
		vendorReps:        map[string]entity.VendorRep{},
		intakeForms:       map[string]entity.IntakeForm{},
		submissions:       map[string]entity.IntakeSubmission{},
	}
}

func (s *Store) fail(op string) error {
	return s.FailOn[op]
}

// Repos de acceso.
func (s *Store) Products() *ProductRepo             { return &ProductRepo{s} }
func (s *Store) Overrides() *OverrideRepo           { return &OverrideRepo{s} }
func (s *Store) Specs() *SpecRepo                   { return &SpecRepo{s} }
func (s *Store) Projects() *ProjectRepo             { return &ProjectRepo{s} }
func (s *Store) Spaces() *SpaceRepo                 { return &SpaceRepo{s} }
func (s *Store) Clients() *ClientRepo               { return &ClientRepo{s} }
func (s *Store) Locations() *LocationRepo           { return &LocationRepo{s} }
func (s *Store) Milestones() *MilestoneRepo         { return &MilestoneRepo{s} }
func (s *Store) Payments() *PaymentRepo             { return &PaymentRepo{s} }
func (s *Store) Meetings() *MeetingRepo             { return &MeetingRepo{s} }
func (s *Store) Recordings() *RecordingRepo         { return &RecordingRepo{s} }
func (s *Store) Tasks() *TaskRepo                   { return &TaskRepo{s} }
func (s *Store) EmailTemplates() *EmailTemplateRepo { return &EmailTemplateRepo{s} }

func (s *Store) ContractTemplates() *ContractTemplateRepo { return &ContractTemplateRepo{s} }
func (s *Store) Contracts() *ContractRepo                 { return &ContractRepo{s} }
func (s *Store) TimeEntries() *TimeEntryRepo              { return &TimeEntryRepo{s} }
func (s *Store) RoleRates() *RoleRateRepo                 { return &RoleRateRepo{s} }
func (s *Store) RoomTemplates() *RoomTemplateRepo         { return &RoomTemplateRepo{s} }
func (s *Store) VendorReps() *VendorRepRepo               { return &VendorRepRepo{s} }
func (s *Store) Intake() *IntakeRepo                      { return &IntakeRepo{s} }

// ── Transacciones ─────────────────────────────────────────────────────────────

// RunSpecs ejecuta fn; si falla restaura los specs previos.
func (s *Store) RunSpecs(ctx context.Context, fn func(specs repository.SpecRepository) error) error {
	s.mu.Lock()
	s.TxCount++
	snapshot := make(map[string]entity.ProjectProduct, len(s.specs))
	for k, v := range s.specs {
		snapshot[k] = v
	}
	s.mu.Unlock()
	if err := fn(s.Specs()); err != nil {
		s.mu.Lock()
		s.specs = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// RunTasks ejecuta fn; si falla restaura las tareas previas.
func (s *Store) RunTasks(ctx context.Context, fn func(tasks repository.TaskRepository) error) error {
	s.mu.Lock()
	s.TxCount++
	snapshot := make(map[string]entity.Task, len(s.tasks))
	for k, v := range s.tasks {
		snapshot[k] = v
	}
	s.mu.Unlock()
	if err := fn(s.Tasks()); err != nil {
		s.mu.Lock()
		s.tasks = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// RunPayments ejecuta fn; si falla restaura pagos e hitos.
func (s *Store) RunPayments(ctx context.Context, fn func(payments repository.PaymentRepository, milestones repository.MilestoneRepository) error) error {
	s.mu.Lock()
	s.TxCount++
	pays := make(map[string]entity.PaymentRecord, len(s.payments))
	for k, v := range s.payments {
		pays[k] = v
	}
	ms := make(map[string]entity.ProjectMilestone, len(s.milestones))
	for k, v := range s.milestones {
		ms[k] = v
	}
	s.mu.Unlock()
	if err := fn(s.Payments(), s.Milestones()); err != nil {
		s.mu.Lock()
		s.payments, s.milestones = pays, ms
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── Productos y overrides ─────────────────────────────────────────────────────

type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) ListVisible(_ context.Context, tenantID string, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	search := strings.ToLower(f.Search)
	for _, p := range r.s.products {
		p := p
		if p.Status != entity.ProductStatusActive || !p.VisibleTo(tenantID) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.ExcludeHidden && r.s.currentAvailability(tenantID, p.ID) == entity.AvailabilityHidden {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) &&
			!strings.Contains(strings.ToLower(p.VendorName), search) {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, f.Limit, f.Offset), nil
}

// currentAvailability devuelve la disponibilidad del override más reciente, como el subselect SQL.
func (s *Store) currentAvailability(tenantID, productID string) string {
	var best *entity.TenantProductOverride
	for _, o := range s.overrides {
		o := o
		if o.TenantID != tenantID || o.ProductID != productID || o.VariantID != nil {
			continue
		}
		if best == nil || o.CreatedAt.After(best.CreatedAt) || (o.CreatedAt.Equal(best.CreatedAt) && o.ID > best.ID) {
			best = &o
		}
	}
	if best == nil || best.Availability == "" {
		return entity.AvailabilityDefault
	}
	return best.Availability
}

type OverrideRepo struct{ s *Store }

var _ repository.OverrideRepository = (*OverrideRepo)(nil)

// Upsert respeta la unicidad (tenant, producto, variante) igual que los índices parciales.
func (r *OverrideRepo) Upsert(_ context.Context, o *entity.TenantProductOverride) (*entity.TenantProductOverride, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Upsert"); err != nil {
		return nil, err
	}
	for id, existing := range r.s.overrides {
		if existing.TenantID == o.TenantID && existing.ProductID == o.ProductID && sameVariant(existing.VariantID, o.VariantID) {
			updated := *o
			updated.ID = id
			updated.CreatedAt = existing.CreatedAt
			r.s.overrides[id] = updated
			return &updated, nil
		}
	}
	r.s.overrides[o.ID] = *o
	out := *o
	return &out, nil
}

func (r *OverrideRepo) ListForProducts(_ context.Context, tenantID string, productIDs []string) ([]*entity.TenantProductOverride, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		want[id] = true
	}
	var out []*entity.TenantProductOverride
	for _, o := range r.s.overrides {
		o := o
		if o.TenantID == tenantID && o.VariantID == nil && want[o.ProductID] {
			out = append(out, &o)
		}
	}
	return out, nil
}

// InsertRaw guarda un override sin controlar unicidad (simula datos heredados duplicados).
func (r *OverrideRepo) InsertRaw(o entity.TenantProductOverride) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.overrides[o.ID] = o
}

func sameVariant(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ── Specs ─────────────────────────────────────────────────────────────────────

type SpecRepo struct{ s *Store }

var _ repository.SpecRepository = (*SpecRepo)(nil)

func (r *SpecRepo) Create(_ context.Context, sp *entity.ProjectProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.specs[sp.ID] = *sp
	return nil
}

func (r *SpecRepo) Update(_ context.Context, sp *entity.ProjectProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.specs[sp.ID]
	if !ok {
		return nil
	}
	if current.TenantID != sp.TenantID {
		return nil
	}
	// Mismas columnas que el UPDATE de postgres.SpecRepo; tag_conflict solo lo escribe SetTagConflict.
	current.SpaceID = sp.SpaceID
	current.ProductID = sp.ProductID
	current.VariantID = sp.VariantID
	current.ElementKey = sp.ElementKey
	current.ElementLabel = sp.ElementLabel
	current.Quantity = sp.Quantity
	current.Unit = sp.Unit
	current.ProjectTag = sp.ProjectTag
	current.Notes = sp.Notes
	current.ClientStatus = sp.ClientStatus
	current.UpdatedAt = sp.UpdatedAt
	r.s.specs[sp.ID] = current
	return nil
}

func (r *SpecRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sp, ok := r.s.specs[id]; ok && sp.TenantID == tenantID {
		delete(r.s.specs, id)
	}
	return nil
}

func (r *SpecRepo) GetByID(_ context.Context, tenantID, id string) (*entity.ProjectProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.specs[id]
	if !ok || sp.TenantID != tenantID {
		return nil, nil
	}
	return &sp, nil
}

func (r *SpecRepo) ListByProject(_ context.Context, tenantID, projectID, spaceID string) ([]*entity.ProjectProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProjectProduct
	for _, sp := range r.s.specs {
		sp := sp
		if sp.TenantID == tenantID && sp.ProjectID == projectID && (spaceID == "" || sp.SpaceID == spaceID) {
			out = append(out, &sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *SpecRepo) ListByTag(_ context.Context, projectID, tag string) ([]*entity.ProjectProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProjectProduct
	for _, sp := range r.s.specs {
		sp := sp
		if sp.ProjectID == projectID && sp.ProjectTag != nil && *sp.ProjectTag == tag {
			out = append(out, &sp)
		}
	}
	return out, nil
}

func (r *SpecRepo) SetTagConflict(_ context.Context, ids []string, conflict bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("SetTagConflict"); err != nil {
		return err
	}
	for _, id := range ids {
		if sp, ok := r.s.specs[id]; ok {
			sp.TagConflict = conflict
			r.s.specs[id] = sp
		}
	}
	return nil
}

// ── Proyectos, espacios, clientes, sedes ──────────────────────────────────────

type ProjectRepo struct{ s *Store }

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

func (r *ProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("ProjectCreate"); err != nil {
		return err
	}
	r.s.projects[p.ID] = *p
	return nil
}

func (r *ProjectRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	return &p, nil
}

func (r *ProjectRepo) List(_ context.Context, tenantID string, limit, offset int) ([]*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Project
	for _, p := range r.s.projects {
		p := p
		if p.TenantID == tenantID {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *ProjectRepo) UpdateStatus(_ context.Context, tenantID, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.projects[id]; ok && p.TenantID == tenantID {
		p.Status, p.UpdatedAt = status, at
		r.s.projects[id] = p
	}
	return nil
}

type SpaceRepo struct{ s *Store }

var _ repository.SpaceRepository = (*SpaceRepo)(nil)

func (r *SpaceRepo) Create(_ context.Context, sp *entity.Space) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.spaces[sp.ID] = *sp
	return nil
}

func (r *SpaceRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Space, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.spaces[id]
	if !ok || sp.TenantID != tenantID {
		return nil, nil
	}
	return &sp, nil
}

func (r *SpaceRepo) ListByProject(_ context.Context, tenantID, projectID string) ([]*entity.Space, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Space
	for _, sp := range r.s.spaces {
		sp := sp
		if sp.TenantID == tenantID && sp.ProjectID == projectID {
			out = append(out, &sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

type ClientRepo struct{ s *Store }

var _ repository.ClientRepository = (*ClientRepo)(nil)

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) FindByEmail(_ context.Context, tenantID, email string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *entity.Client
	for _, c := range r.s.clients {
		c := c
		if c.TenantID == tenantID && strings.EqualFold(c.Email, email) {
			if found == nil || c.CreatedAt.Before(found.CreatedAt) {
				found = &c
			}
		}
	}
	return found, nil
}

func (r *ClientRepo) List(_ context.Context, tenantID string, limit, offset int) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.s.clients {
		c := c
		if c.TenantID == tenantID {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

type LocationRepo struct{ s *Store }

var _ repository.LocationRepository = (*LocationRepo)(nil)

func (r *LocationRepo) Create(_ context.Context, l *entity.TenantLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) List(_ context.Context, tenantID string) ([]*entity.TenantLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TenantLocation
	for _, l := range r.s.locations {
		l := l
		if l.TenantID == tenantID {
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ── Cobros ────────────────────────────────────────────────────────────────────

type MilestoneRepo struct{ s *Store }

var _ repository.MilestoneRepository = (*MilestoneRepo)(nil)

func (r *MilestoneRepo) Create(_ context.Context, m *entity.ProjectMilestone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.milestones[m.ID] = *m
	return nil
}

func (r *MilestoneRepo) GetByID(_ context.Context, tenantID, id string) (*entity.ProjectMilestone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.milestones[id]
	if !ok || m.TenantID != tenantID {
		return nil, nil
	}
	return &m, nil
}

func (r *MilestoneRepo) ListByProject(_ context.Context, tenantID, projectID string) ([]*entity.ProjectMilestone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProjectMilestone
	for _, m := range r.s.milestones {
		m := m
		if m.TenantID == tenantID && m.ProjectID == projectID {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].TargetDate, out[j].TargetDate
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Before(*b)
	})
	return out, nil
}

func (r *MilestoneRepo) MarkPaid(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.milestones[id]; ok {
		m.Status, m.UpdatedAt = entity.MilestoneStatusPaid, at
		r.s.milestones[id] = m
	}
	return nil
}

type PaymentRepo struct{ s *Store }

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

func (r *PaymentRepo) Create(_ context.Context, p *entity.PaymentRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.payments {
		if existing.ExternalPaymentID == p.ExternalPaymentID {
			return domain.ErrDuplicate
		}
	}
	r.s.payments[p.ID] = *p
	return nil
}

func (r *PaymentRepo) GetByExternalID(_ context.Context, externalID string) (*entity.PaymentRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.ExternalPaymentID == externalID {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PaymentRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.payments[id]; ok {
		p.Status, p.UpdatedAt = status, at
		r.s.payments[id] = p
	}
	return nil
}

// All devuelve todos los pagos (aserciones de tests).
func (r *PaymentRepo) All() []entity.PaymentRecord {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.PaymentRecord, 0, len(r.s.payments))
	for _, p := range r.s.payments {
		out = append(out, p)
	}
	return out
}

// ── Reuniones y tareas ────────────────────────────────────────────────────────

type MeetingRepo struct{ s *Store }

var _ repository.MeetingRepository = (*MeetingRepo)(nil)

func (r *MeetingRepo) Create(_ context.Context, m *entity.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.meetings[m.ID] = *m
	return nil
}

func (r *MeetingRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok || m.TenantID != tenantID {
		return nil, nil
	}
	return &m, nil
}

func (r *MeetingRepo) ListByProject(_ context.Context, tenantID, projectID string) ([]*entity.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Meeting
	for _, m := range r.s.meetings {
		m := m
		if m.TenantID == tenantID && m.ProjectID == projectID {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type RecordingRepo struct{ s *Store }

var _ repository.RecordingRepository = (*RecordingRepo)(nil)

func (r *RecordingRepo) Create(_ context.Context, rec *entity.MeetingRecording) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.recordings[rec.ID] = *rec
	return nil
}

func (r *RecordingRepo) GetByID(_ context.Context, tenantID, id string) (*entity.MeetingRecording, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.recordings[id]
	if !ok || rec.TenantID != tenantID {
		return nil, nil
	}
	return &rec, nil
}

func (r *RecordingRepo) SaveAnalysis(_ context.Context, rec *entity.MeetingRecording) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.recordings[rec.ID]; ok {
		cur.Summary, cur.ActionItems, cur.ProcessedAt = rec.Summary, rec.ActionItems, rec.ProcessedAt
		r.s.recordings[rec.ID] = cur
	}
	return nil
}

type TaskRepo struct{ s *Store }

var _ repository.TaskRepository = (*TaskRepo)(nil)

func (r *TaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("TaskCreate"); err != nil {
		return err
	}
	r.s.tasks[t.ID] = *t
	return nil
}

func (r *TaskRepo) Update(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tasks[t.ID] = *t
	return nil
}

func (r *TaskRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tasks[id]; ok && t.TenantID == tenantID {
		delete(r.s.tasks, id)
	}
	return nil
}

func (r *TaskRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.TenantID != tenantID {
		return nil, nil
	}
	return &t, nil
}

func (r *TaskRepo) ListByProject(_ context.Context, tenantID, projectID string) ([]*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Task
	for _, t := range r.s.tasks {
		t := t
		if t.TenantID == tenantID && t.ProjectID == projectID {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// ── Plantillas de correo ──────────────────────────────────────────────────────

type EmailTemplateRepo struct{ s *Store }

var _ repository.EmailTemplateRepository = (*EmailTemplateRepo)(nil)

func (r *EmailTemplateRepo) Upsert(_ context.Context, t *entity.EmailTemplate) (*entity.EmailTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.templates {
		if existing.TenantID == t.TenantID && existing.Key == t.Key {
			updated := *t
			updated.ID, updated.CreatedAt = id, existing.CreatedAt
			r.s.templates[id] = updated
			return &updated, nil
		}
	}
	r.s.templates[t.ID] = *t
	out := *t
	return &out, nil
}

func (r *EmailTemplateRepo) GetByKey(_ context.Context, tenantID, key string) (*entity.EmailTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.templates {
		if t.TenantID == tenantID && t.Key == key {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *EmailTemplateRepo) List(_ context.Context, tenantID string) ([]*entity.EmailTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.EmailTemplate
	for _, t := range r.s.templates {
		t := t
		if t.TenantID == tenantID {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
