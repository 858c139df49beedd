package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/application/billing"
	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/ports"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/infrastructure/ai"
	"github.com/jhoicas/atelier-api/internal/infrastructure/email"
	"github.com/jhoicas/atelier-api/internal/infrastructure/pdf"
	"github.com/jhoicas/atelier-api/internal/infrastructure/stripe"
	apphttp "github.com/jhoicas/atelier-api/internal/interfaces/http"
	"github.com/jhoicas/atelier-api/internal/testutil/memstore"
	"github.com/jhoicas/atelier-api/pkg/logger"
	pkgjwt "github.com/jhoicas/atelier-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	otherTenantID = "00000000-0000-0000-0000-0000000000b2"
	webhookSecret = "whsec_test_router"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []ports.EmailMessage
}

func (m *captureMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type testServer struct {
	app    *fiber.App
	st     *memstore.Store
	mailer *captureMailer
}

// newTestServer arma el router completo sobre memstore, sin proveedor de pagos.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := memstore.New()
	log := logger.Nop()
	metrics := ports.NopMetrics{}
	mailer := &captureMailer{}

	catalogUC := usecase.NewCatalogUseCase(st.Products(), st.Overrides(), metrics, log)
	projectUC := usecase.NewProjectUseCase(st.Projects(), st.Clients(), st.Locations(), log)
	deps := apphttp.RouterDeps{
		CatalogUC:   catalogUC,
		SpecUC:      usecase.NewSpecUseCase(st.Specs(), st.Projects(), st.Spaces(), st.Products(), st, metrics, log),
		ScheduleUC:  usecase.NewScheduleUseCase(st.Projects(), st.Spaces(), st.Specs(), catalogUC, pdf.NewMarotoPDFGenerator()),
		ProjectUC:   projectUC,
		SpaceUC:     usecase.NewSpaceUseCase(st.Spaces(), st.Projects()),
		ClientUC:    usecase.NewClientUseCase(st.Clients()),
		LocationUC:  usecase.NewLocationUseCase(st.Locations()),
		MeetingUC:   usecase.NewMeetingUseCase(st.Meetings(), st.Recordings(), st.Projects(), ai.NewOfflineSummarizer(), st, log),
		TaskUC:      usecase.NewTaskUseCase(st.Tasks(), st.Projects()),
		EmailUC:     usecase.NewEmailUseCase(st.EmailTemplates(), email.NewMarkdownRenderer(), mailer, log),
		MilestoneUC: billing.NewMilestoneUseCase(st.Milestones(), st.Payments(), st.Projects(), nil, "cop", log),
		WebhookUC:   billing.NewWebhookUseCase(stripe.NewWebhookVerifier(webhookSecret), st, "stripe", metrics, log),
		ContractUC:  usecase.NewContractUseCase(st.Contracts(), st.ContractTemplates(), st.Projects(), st.Clients(), log),
		TimeEntryUC: usecase.NewTimeEntryUseCase(st.TimeEntries(), st.Contracts(), st.Projects(), st.RoleRates()),
		SettingsUC:  usecase.NewSettingsUseCase(st.RoleRates(), st.RoomTemplates(), st.VendorReps()),
		IntakeUC:    usecase.NewIntakeUseCase(st.Intake(), st.Clients(), projectUC, log),
		JWTSecret:   testJWTSecret,
	}
	app := fiber.New()
	apphttp.Router(app, deps)

	now := time.Now()
	require.NoError(t, st.Products().Create(context.Background(), &entity.Product{
		ID: "prod-sofa", Scope: entity.ProductScopeGlobal, SKU: "SOF-1", Name: "Sofá Lino",
		Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, st.Products().Create(context.Background(), &entity.Product{
		ID: "prod-lampara", Scope: entity.ProductScopeGlobal, SKU: "LAM-1", Name: "Lámpara Arco",
		Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	return &testServer{app: app, st: st, mailer: mailer}
}

// call lanza una petición con JSON opcional y token del tenant/rol indicados.
func (s *testServer) call(t *testing.T, method, path, tenantID, role string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenantID != "" {
		tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenantID, role, testIssuer, testExpMin)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createProject crea un proyecto con un espacio vía API y devuelve sus IDs.
func (s *testServer) createProject(t *testing.T, tenantID string) (string, string) {
	t.Helper()
	resp := s.call(t, http.MethodPost, "/api/projects", tenantID, apphttp.RoleDesigner, map[string]interface{}{"name": "Casa Rosales"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProjectResponse
	decode(t, resp, &p)

	resp = s.call(t, http.MethodPost, "/api/projects/"+p.ID+"/spaces", tenantID, apphttp.RoleDesigner, map[string]interface{}{"name": "Sala"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sp dto.SpaceResponse
	decode(t, resp, &sp)
	return p.ID, sp.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación y roles
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SinTokenRetorna401(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodGet, "/api/projects", "", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_SedesSoloOwnerOAdminCrean(t *testing.T) {
	s := newTestServer(t)
	body := map[string]interface{}{"name": "Sede Norte", "lat": 4.70, "lng": -74.05}

	resp := s.call(t, http.MethodPost, "/api/locations", testTenantID, apphttp.RoleDesigner, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/locations", testTenantID, apphttp.RoleAdmin, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.call(t, http.MethodGet, "/api/locations/nearest?lat=4.71&lng=-74.06", testTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var near dto.NearestLocationResponse
	decode(t, resp, &near)
	assert.Equal(t, "Sede Norte", near.Location.Name)
	assert.Less(t, near.DistanceKm, 5.0)
}

func TestRouter_SedeMasCercanaSinCoordenadasRetorna400(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodGet, "/api/locations/nearest?lat=norte", testTenantID, apphttp.RoleDesigner, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_OverrideSeVeEnElCatalogo(t *testing.T) {
	s := newTestServer(t)

	resp := s.call(t, http.MethodPut, "/api/catalog/products/prod-sofa/override", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"sellPrice": "6500.00", "availability": "preferred"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.call(t, http.MethodGet, "/api/catalog/products/prod-sofa", testTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]interface{}
	decode(t, resp, &got)
	assert.Equal(t, "6500", got["userPrice"])
	assert.Equal(t, "preferred", got["userAvailability"])

	// Otro estudio ve el producto sin precio.
	resp = s.call(t, http.MethodGet, "/api/catalog/products/prod-sofa", otherTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var other map[string]interface{}
	decode(t, resp, &other)
	assert.Nil(t, other["userPrice"])
	assert.Equal(t, "default", other["userAvailability"])
}

func TestRouter_OverrideDisponibilidadInvalidaRetorna400(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodPut, "/api/catalog/products/prod-sofa/override", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"availability": "archivado"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ProductoPrivadoNoVisibleParaOtroEstudio(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodPost, "/api/catalog/products/custom", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"name": "Mesa a medida", "sku": "MES-X"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.ResolvedProductResponse
	decode(t, resp, &created)

	resp = s.call(t, http.MethodGet, "/api/catalog/products/"+created.ID, otherTenantID, apphttp.RoleDesigner, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ProductoGlobalEsSoloLectura(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodPut, "/api/catalog/products/prod-sofa", testTenantID, apphttp.RoleOwner,
		map[string]interface{}{"name": "Renombrado"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Specs y PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_TagCompartidoPorProductosDistintosMarcaConflicto(t *testing.T) {
	s := newTestServer(t)
	projectID, spaceID := s.createProject(t, testTenantID)
	base := "/api/projects/" + projectID + "/specs"

	resp := s.call(t, http.MethodPost, base, testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"spaceId": spaceID, "productId": "prod-sofa", "projectTag": "F-12"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.call(t, http.MethodPost, base, testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"spaceId": spaceID, "productId": "prod-lampara", "projectTag": "F-12"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var second dto.SpecResponse
	decode(t, resp, &second)
	assert.True(t, second.TagConflict)

	resp = s.call(t, http.MethodGet, base, testTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.SpecResponse
	decode(t, resp, &list)
	require.Len(t, list, 2)
	for _, sp := range list {
		assert.True(t, sp.TagConflict, "todos los specs del tag quedan marcados")
	}

	// Al borrar el segundo, el primero queda limpio.
	resp = s.call(t, http.MethodDelete, base+"/"+second.ID, testTenantID, apphttp.RoleDesigner, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.call(t, http.MethodGet, base, testTenantID, apphttp.RoleDesigner, nil)
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.False(t, list[0].TagConflict)
}

func TestRouter_SpecEnProyectoAjenoRetorna404(t *testing.T) {
	s := newTestServer(t)
	projectID, spaceID := s.createProject(t, testTenantID)
	resp := s.call(t, http.MethodPost, "/api/projects/"+projectID+"/specs", otherTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"spaceId": spaceID, "productId": "prod-sofa"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_CronogramaPDF(t *testing.T) {
	s := newTestServer(t)
	projectID, spaceID := s.createProject(t, testTenantID)
	resp := s.call(t, http.MethodPost, "/api/projects/"+projectID+"/specs", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"spaceId": spaceID, "productId": "prod-sofa", "projectTag": "S-1"})
	resp.Body.Close()

	resp = s.call(t, http.MethodGet, "/api/projects/"+projectID+"/specs/schedule.pdf", testTenantID, apphttp.RoleDesigner, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cobros y webhook
// ──────────────────────────────────────────────────────────────────────────────

func (s *testServer) createMilestone(t *testing.T, projectID string) dto.MilestoneResponse {
	t.Helper()
	resp := s.call(t, http.MethodPost, "/api/projects/"+projectID+"/milestones", testTenantID, apphttp.RoleOwner,
		map[string]interface{}{"name": "Anticipo", "amount": "1500.00"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var m dto.MilestoneResponse
	decode(t, resp, &m)
	return m
}

func TestRouter_PagarSinProveedorRetorna503(t *testing.T) {
	s := newTestServer(t)
	projectID, _ := s.createProject(t, testTenantID)
	m := s.createMilestone(t, projectID)

	resp := s.call(t, http.MethodPost, "/api/projects/"+projectID+"/milestones/"+m.ID+"/pay", testTenantID, apphttp.RoleOwner, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func stripeRequest(t *testing.T, payload []byte, signature string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.HeaderStripeSignature, signature)
	return req
}

func TestRouter_WebhookFirmaInvalidaRetorna400(t *testing.T) {
	s := newTestServer(t)
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	resp, err := s.app.Test(stripeRequest(t, payload, "t=1,v1=deadbeef"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_WebhookExitosoMarcaHitoPagado(t *testing.T) {
	s := newTestServer(t)
	projectID, _ := s.createProject(t, testTenantID)
	m := s.createMilestone(t, projectID)

	payload, err := json.Marshal(map[string]interface{}{
		"id":   "evt_ok",
		"type": billing.EventPaymentSucceeded,
		"data": map[string]interface{}{"object": map[string]interface{}{
			"id": "pi_ok", "amount_received": 150000, "currency": "cop",
			"metadata": map[string]string{"tenantId": testTenantID, "projectId": projectID, "milestoneId": m.ID},
		}},
	})
	require.NoError(t, err)

	// Público: no lleva Authorization.
	resp, err := s.app.Test(stripeRequest(t, payload, stripe.SignatureHeader(webhookSecret, time.Now(), payload)), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ack dto.WebhookAck
	decode(t, resp, &ack)
	assert.True(t, ack.Received)

	resp = s.call(t, http.MethodGet, "/api/projects/"+projectID+"/milestones", testTenantID, apphttp.RoleOwner, nil)
	var list []dto.MilestoneResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MilestoneStatusPaid, list[0].Status)

	pays := s.st.Payments().All()
	require.Len(t, pays, 1)
	assert.Equal(t, entity.PaymentStatusSucceeded, pays[0].Status)
	assert.Equal(t, "1500", pays[0].Amount.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Reuniones y tareas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ReunionProcesadaCreaTareas(t *testing.T) {
	s := newTestServer(t)
	projectID, _ := s.createProject(t, testTenantID)

	resp := s.call(t, http.MethodPost, "/api/projects/"+projectID+"/meetings", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"title": "Revisión de telas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var meeting dto.MeetingResponse
	decode(t, resp, &meeting)

	transcript := "Ana: Voy a enviar las muestras de tela el 2025-04-10.\nLuis: Perfecto, gracias."
	resp = s.call(t, http.MethodPost, "/api/meetings/"+meeting.ID+"/recordings", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"transcript": transcript})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec dto.RecordingResponse
	decode(t, resp, &rec)

	recPath := "/api/meetings/" + meeting.ID + "/recordings/" + rec.ID
	resp = s.call(t, http.MethodPost, recPath+"/process", testTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &rec)
	assert.NotEmpty(t, rec.Summary)
	require.NotEmpty(t, rec.ActionItems)
	assert.NotNil(t, rec.ProcessedAt)

	resp = s.call(t, http.MethodPost, recPath+"/create-tasks", testTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CreateTasksResponse
	decode(t, resp, &created)
	assert.Equal(t, len(rec.ActionItems), created.CreatedCount)

	resp = s.call(t, http.MethodGet, "/api/projects/"+projectID+"/tasks", testTenantID, apphttp.RoleDesigner, nil)
	var tasks []dto.TaskResponse
	decode(t, resp, &tasks)
	assert.Len(t, tasks, created.CreatedCount)
}

func TestRouter_ProcesarSinTranscripcionRetorna400(t *testing.T) {
	s := newTestServer(t)
	projectID, _ := s.createProject(t, testTenantID)

	resp := s.call(t, http.MethodPost, "/api/projects/"+projectID+"/meetings", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"title": "Visita de obra"})
	var meeting dto.MeetingResponse
	decode(t, resp, &meeting)

	resp = s.call(t, http.MethodPost, "/api/meetings/"+meeting.ID+"/recordings", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"storageUrl": "https://files.example.com/visita.mp3"})
	var rec dto.RecordingResponse
	decode(t, resp, &rec)

	resp = s.call(t, http.MethodPost, "/api/meetings/"+meeting.ID+"/recordings/"+rec.ID+"/process", testTenantID, apphttp.RoleDesigner, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_TareaCrudCompleto(t *testing.T) {
	s := newTestServer(t)
	projectID, _ := s.createProject(t, testTenantID)
	base := "/api/projects/" + projectID + "/tasks"

	resp := s.call(t, http.MethodPost, base, testTenantID, apphttp.RoleDesigner, map[string]interface{}{"title": "Pedir cotización"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var task dto.TaskResponse
	decode(t, resp, &task)
	assert.Equal(t, entity.TaskStatusTodo, task.Status)

	resp = s.call(t, http.MethodPut, base+"/"+task.ID, testTenantID, apphttp.RoleDesigner, map[string]interface{}{"status": "done"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &task)
	assert.Equal(t, "done", task.Status)

	resp = s.call(t, http.MethodPut, base+"/"+task.ID, testTenantID, apphttp.RoleDesigner, map[string]interface{}{"status": "archivada"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.call(t, http.MethodDelete, base+"/"+task.ID, testTenantID, apphttp.RoleDesigner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.call(t, http.MethodDelete, base+"/"+task.ID, testTenantID, apphttp.RoleDesigner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Correo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_PlantillaYEnvioDeCorreo(t *testing.T) {
	s := newTestServer(t)
	tpl := map[string]interface{}{"subject": "Hola {{clientName}}", "body": "Tu proyecto **{{projectName}}** avanza."}

	resp := s.call(t, http.MethodPut, "/api/settings/email-templates/welcome", testTenantID, apphttp.RoleDesigner, tpl)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.call(t, http.MethodPut, "/api/settings/email-templates/welcome", testTenantID, apphttp.RoleOwner, tpl)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/email/send", testTenantID, apphttp.RoleDesigner, map[string]interface{}{
		"templateKey": "welcome", "toEmail": "cliente@example.com",
		"data": map[string]string{"clientName": "Marta", "projectName": "Casa Rosales"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.SendEmailResponse
	decode(t, resp, &out)
	assert.True(t, out.Sent)
	assert.Equal(t, "Hola Marta", out.Subject)

	require.Len(t, s.mailer.sent, 1)
	assert.Equal(t, "cliente@example.com", s.mailer.sent[0].To)
	assert.True(t, strings.Contains(s.mailer.sent[0].HTMLBody, "<strong>Casa Rosales</strong>"))
}

func TestRouter_EnvioConPlantillaInexistenteRetorna404(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodPost, "/api/email/send", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"templateKey": "nope", "toEmail": "cliente@example.com"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contratos y horas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ContratoConPlantillaEnmiendaYResumenDeHoras(t *testing.T) {
	s := newTestServer(t)
	projectID, _ := s.createProject(t, testTenantID)

	resp := s.call(t, http.MethodPost, "/api/contracts/templates", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"name": "Estándar", "body": "x"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo owner/admin crean plantillas")

	resp = s.call(t, http.MethodPost, "/api/contracts/templates", testTenantID, apphttp.RoleAdmin,
		map[string]interface{}{"name": "Estándar", "body": "Proyecto {{projectName}}: {{baseHours}} horas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tpl dto.ContractTemplateResponse
	decode(t, resp, &tpl)

	resp = s.call(t, http.MethodPost, "/api/projects/"+projectID+"/contracts", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"title": "Diseño", "templateId": tpl.ID, "billingModel": "hourly", "baseHoursAllocated": "2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var contract dto.ContractResponse
	decode(t, resp, &contract)
	assert.Equal(t, "Proyecto Casa Rosales: 2 horas", contract.Body)

	resp = s.call(t, http.MethodPost, "/api/contracts/"+contract.ID+"/amendments", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"title": "Cocina", "extraHoursAllocated": "1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.call(t, http.MethodPost, "/api/settings/role-rates", testTenantID, apphttp.RoleOwner,
		map[string]interface{}{"roleName": "Diseñador", "hourlyRate": "100"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.call(t, http.MethodPost, "/api/projects/"+projectID+"/time-entries", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"contractId": contract.ID, "roleName": "Diseñador", "date": "2026-03-02", "hours": "4"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry dto.TimeEntryResponse
	decode(t, resp, &entry)
	assert.Equal(t, testUserID, entry.UserID)

	resp = s.call(t, http.MethodGet, "/api/projects/"+projectID+"/time-entries/summary", testTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sum dto.TimeSummaryResponse
	decode(t, resp, &sum)
	require.Len(t, sum.Contracts, 1)
	assert.Equal(t, "3", sum.Contracts[0].AllocatedHours.String())
	assert.True(t, sum.Contracts[0].OverAllocated)
	assert.Equal(t, "400", sum.BillableAmount.String())

	resp = s.call(t, http.MethodDelete, "/api/projects/"+projectID+"/time-entries/"+entry.ID, testTenantID, apphttp.RoleDesigner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRouter_HorasConFechaInvalidaRetorna400(t *testing.T) {
	s := newTestServer(t)
	projectID, _ := s.createProject(t, testTenantID)

	resp := s.call(t, http.MethodPost, "/api/projects/"+projectID+"/time-entries", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"roleName": "Diseñador", "date": "02/03/2026", "hours": "2"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ContratoAnuladoNoAdmiteEnmiendas(t *testing.T) {
	s := newTestServer(t)
	projectID, _ := s.createProject(t, testTenantID)

	resp := s.call(t, http.MethodPost, "/api/projects/"+projectID+"/contracts", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"title": "Fijo", "billingModel": "flat_rate", "baseFlatAmount": "1500"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var contract dto.ContractResponse
	decode(t, resp, &contract)

	resp = s.call(t, http.MethodPatch, "/api/contracts/"+contract.ID+"/status", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"status": "void"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.call(t, http.MethodPost, "/api/contracts/"+contract.ID+"/amendments", testTenantID, apphttp.RoleDesigner,
		map[string]interface{}{"title": "Extra"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración del estudio
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_AjustesSoloOwnerOAdminEscriben(t *testing.T) {
	s := newTestServer(t)
	writes := []struct {
		method, path string
		body         map[string]interface{}
	}{
		{http.MethodPost, "/api/settings/role-rates", map[string]interface{}{"roleName": "Diseñador", "hourlyRate": "90"}},
		{http.MethodPost, "/api/settings/room-templates", map[string]interface{}{"roomType": "Cocina", "key": "campana", "label": "Campana"}},
		{http.MethodPost, "/api/settings/vendor-reps", map[string]interface{}{"vendorName": "Telas Andinas", "repName": "Luis"}},
		{http.MethodPost, "/api/settings/intake-forms", map[string]interface{}{"slug": "consulta", "name": "Consulta"}},
	}
	for _, w := range writes {
		resp := s.call(t, w.method, w.path, testTenantID, apphttp.RoleDesigner, w.body)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, w.path)
	}

	resp := s.call(t, http.MethodPost, "/api/settings/room-templates", testTenantID, apphttp.RoleAdmin,
		map[string]interface{}{"roomType": "Cocina", "key": "Mesón Cuarzo", "label": "Mesón"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var room dto.RoomTemplateResponse
	decode(t, resp, &room)
	assert.Equal(t, "mesón_cuarzo", room.Key)

	resp = s.call(t, http.MethodGet, "/api/settings/room-templates?roomType=Cocina", testTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rooms []dto.RoomTemplateResponse
	decode(t, resp, &rooms)
	assert.Len(t, rooms, 1)

	resp = s.call(t, http.MethodDelete, "/api/settings/room-templates/"+room.ID, testTenantID, apphttp.RoleOwner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.call(t, http.MethodDelete, "/api/settings/room-templates/"+room.ID, testTenantID, apphttp.RoleOwner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ContactoDeProveedorSeActualiza(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodPost, "/api/settings/vendor-reps", testTenantID, apphttp.RoleAdmin,
		map[string]interface{}{"vendorName": "Telas Andinas", "repName": "Luis", "repEmail": "luis@telas.co"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rep dto.VendorRepResponse
	decode(t, resp, &rep)

	resp = s.call(t, http.MethodPut, "/api/settings/vendor-reps/"+rep.ID, testTenantID, apphttp.RoleAdmin,
		map[string]interface{}{"vendorName": "Telas Andinas", "repName": "Luisa"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &rep)
	assert.Equal(t, "Luisa", rep.RepName)

	resp = s.call(t, http.MethodPut, "/api/settings/vendor-reps/"+rep.ID, otherTenantID, apphttp.RoleAdmin,
		map[string]interface{}{"vendorName": "x", "repName": "y"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Formularios públicos
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_FormularioPublicoSinTokenCreaProyecto(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodPost, "/api/settings/intake-forms", testTenantID, apphttp.RoleOwner,
		map[string]interface{}{"slug": "consulta-inicial", "name": "Consulta inicial"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var form dto.IntakeFormResponse
	decode(t, resp, &form)

	resp = s.call(t, http.MethodGet, "/api/public/intake/consulta-inicial", "", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public dto.PublicIntakeFormResponse
	decode(t, resp, &public)
	assert.Equal(t, "Consulta inicial", public.Name)

	resp = s.call(t, http.MethodPost, "/api/public/intake/consulta-inicial", "", "",
		map[string]interface{}{"name": "Ana Ruiz", "email": "ana@example.com", "responses": map[string]interface{}{"estilo": "nórdico"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.SubmitIntakeResponse
	decode(t, resp, &out)
	require.NotNil(t, out.ProjectID)
	assert.Empty(t, out.Warning)

	resp = s.call(t, http.MethodGet, "/api/projects/"+*out.ProjectID, testTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p dto.ProjectResponse
	decode(t, resp, &p)
	assert.Equal(t, "Proyecto Ana Ruiz", p.Name)

	resp = s.call(t, http.MethodGet, "/api/settings/intake-forms/"+form.ID+"/submissions", testTenantID, apphttp.RoleDesigner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var subs []dto.IntakeSubmissionResponse
	decode(t, resp, &subs)
	require.Len(t, subs, 1)
	assert.Equal(t, "nórdico", subs[0].Responses["estilo"])
}

func TestRouter_FormularioPublicoInexistenteRetorna404(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodPost, "/api/public/intake/no-existe", "", "",
		map[string]interface{}{"name": "Ana", "email": "ana@example.com"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_FormularioPublicoEmailInvalidoRetorna400(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodPost, "/api/settings/intake-forms", testTenantID, apphttp.RoleOwner,
		map[string]interface{}{"slug": "consulta", "name": "Consulta"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.call(t, http.MethodPost, "/api/public/intake/consulta", "", "",
		map[string]interface{}{"name": "Ana", "email": "no-es-email"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
