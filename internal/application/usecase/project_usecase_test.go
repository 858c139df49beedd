package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/atelier-api/internal/application/dto"
	"github.com/jhoicas/atelier-api/internal/application/usecase"
	"github.com/jhoicas/atelier-api/internal/domain"
	"github.com/jhoicas/atelier-api/internal/domain/entity"
	"github.com/jhoicas/atelier-api/internal/testutil/memstore"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

func seedLocations(t *testing.T, st *memstore.Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Now()
	require.NoError(t, st.Locations().Create(ctx, &entity.TenantLocation{ID: "nyc", TenantID: tenantA, Name: "Nueva York", Lat: 40.7128, Lng: -74.0060, CreatedAt: base}))
	require.NoError(t, st.Locations().Create(ctx, &entity.TenantLocation{ID: "la", TenantID: tenantA, Name: "Los Ángeles", Lat: 34.0522, Lng: -118.2437, CreatedAt: base.Add(time.Second)}))
}

func TestProject_CreaConSedeMasCercana(t *testing.T) {
	st := memstore.New()
	seedLocations(t, st)
	uc := usecase.NewProjectUseCase(st.Projects(), st.Clients(), st.Locations(), logger.Nop())

	lat, lng := 39.9526, -75.1652 // Filadelfia
	out, err := uc.Create(context.Background(), tenantA, dto.CreateProjectRequest{Name: "Loft", Lat: &lat, Lng: &lng})
	require.NoError(t, err)
	require.NotNil(t, out.AssignedLocationID)
	assert.Equal(t, "nyc", *out.AssignedLocationID)
	assert.Equal(t, entity.ProjectStatusProspect, out.Status)
}

func TestProject_SinCoordenadasNoAsignaSede(t *testing.T) {
	st := memstore.New()
	seedLocations(t, st)
	uc := usecase.NewProjectUseCase(st.Projects(), st.Clients(), st.Locations(), logger.Nop())

	out, err := uc.Create(context.Background(), tenantA, dto.CreateProjectRequest{Name: "Loft"})
	require.NoError(t, err)
	assert.Nil(t, out.AssignedLocationID)
}

func TestProject_ClienteDeOtroEstudioEsInvalido(t *testing.T) {
	st := memstore.New()
	require.NoError(t, st.Clients().Create(context.Background(), &entity.Client{ID: "c1", TenantID: tenantB, Name: "Ana"}))
	uc := usecase.NewProjectUseCase(st.Projects(), st.Clients(), st.Locations(), logger.Nop())

	_, err := uc.Create(context.Background(), tenantA, dto.CreateProjectRequest{Name: "Loft", ClientID: strPtr("c1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestProject_UpdateStatus(t *testing.T) {
	st := memstore.New()
	seedProject(t, st, tenantA, "p1")
	uc := usecase.NewProjectUseCase(st.Projects(), st.Clients(), st.Locations(), logger.Nop())
	ctx := context.Background()

	out, err := uc.UpdateStatus(ctx, tenantA, "p1", entity.ProjectStatusOnHold)
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusOnHold, out.Status)

	_, err = uc.UpdateStatus(ctx, tenantA, "p1", "archivado")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.UpdateStatus(ctx, tenantB, "p1", entity.ProjectStatusActive)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLocation_Nearest(t *testing.T) {
	st := memstore.New()
	seedLocations(t, st)
	uc := usecase.NewLocationUseCase(st.Locations())
	ctx := context.Background()

	out, err := uc.Nearest(ctx, tenantA, 33.9, -118.4) // cerca de LA
	require.NoError(t, err)
	assert.Equal(t, "la", out.Location.ID)
	assert.Less(t, out.DistanceKm, 50.0)

	_, err = uc.Nearest(ctx, tenantB, 33.9, -118.4)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "estudio sin sedes")

	_, err = uc.Nearest(ctx, tenantA, 95, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSpaceYTask_CRUD(t *testing.T) {
	st := memstore.New()
	seedProject(t, st, tenantA, "p1")
	ctx := context.Background()

	spaces := usecase.NewSpaceUseCase(st.Spaces(), st.Projects())
	_, err := spaces.Create(ctx, tenantA, "p1", dto.CreateSpaceRequest{Name: "Cocina", SortOrder: 2})
	require.NoError(t, err)
	list, err := spaces.List(ctx, tenantA, "p1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	tasks := usecase.NewTaskUseCase(st.Tasks(), st.Projects())
	task, err := tasks.Create(ctx, tenantA, "p1", dto.CreateTaskRequest{Title: "Pedir muestras"})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusTodo, task.Status)

	done := entity.TaskStatusDone
	updated, err := tasks.Update(ctx, tenantA, "p1", task.ID, dto.UpdateTaskRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, done, updated.Status)

	// Tarea de otro proyecto: no encontrada.
	seedProject(t, st, tenantA, "p2")
	_, err = tasks.Update(ctx, tenantA, "p2", task.ID, dto.UpdateTaskRequest{Status: &done})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, tasks.Delete(ctx, tenantA, "p1", task.ID))
	remaining, err := tasks.List(ctx, tenantA, "p1")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
