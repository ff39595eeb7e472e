package interventions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edr/internal/core/apperror"
	"edr/internal/core/tx"
	"edr/internal/domain/audit"
	"edr/internal/domain/interventions"
	"edr/internal/infrastructure/storage/memstore"
)

func newTestService() *interventions.Service {
	return interventions.NewService(memstore.NewInterventionRepo(), tx.NopManager{}, audit.NopTrail{})
}

func createProgressing(t *testing.T, svc *interventions.Service, status interventions.Status) *interventions.Intervention {
	t.Helper()
	iv := interventions.NewIntervention("Panne onduleur", "Translog", "Julien Moreau")
	iv.Status = status
	require.NoError(t, svc.Create(context.Background(), iv))
	return iv
}

func TestServiceCreate_AppliesDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	iv := &interventions.Intervention{
		Title:      "Installation badge",
		Client:     "Clinique du Parc",
		Technician: "Sophie Bernard",
	}
	require.NoError(t, svc.Create(ctx, iv))

	assert.Equal(t, int64(1), iv.ID)
	assert.Equal(t, interventions.StatusToSchedule, iv.Status)
	assert.Equal(t, interventions.PriorityMedium, iv.Priority)
	assert.Equal(t, interventions.KindOther, iv.Kind)
	assert.Equal(t, iv.CreatedAt.AddDate(0, 0, 7), iv.Deadline)
}

func TestServiceCreate_SequentialIDs(t *testing.T) {
	svc := newTestService()
	first := createProgressing(t, svc, interventions.StatusToSchedule)
	second := createProgressing(t, svc, interventions.StatusToSchedule)

	assert.Equal(t, first.ID+1, second.ID)
}

func TestServiceCreate_RequiresClient(t *testing.T) {
	svc := newTestService()

	iv := &interventions.Intervention{Title: "Sans client", Technician: "Julien Moreau"}
	err := svc.Create(context.Background(), iv)

	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestChangeStatus_AllowedTransition(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	iv := createProgressing(t, svc, interventions.StatusScheduled)

	got, err := svc.ChangeStatus(ctx, iv.ID, interventions.StatusInProgress)

	require.NoError(t, err)
	assert.Equal(t, interventions.StatusInProgress, got.Status)

	stored, err := svc.GetByID(ctx, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, interventions.StatusInProgress, stored.Status)
}

func TestChangeStatus_RejectsSkippedStep(t *testing.T) {
	svc := newTestService()
	iv := createProgressing(t, svc, interventions.StatusToSchedule)

	_, err := svc.ChangeStatus(context.Background(), iv.ID, interventions.StatusCompleted)

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
}

func TestChangeStatus_CompletedCannotResume(t *testing.T) {
	svc := newTestService()
	iv := createProgressing(t, svc, interventions.StatusCompleted)

	_, err := svc.ChangeStatus(context.Background(), iv.ID, interventions.StatusInProgress)
	require.Error(t, err)
}

func TestChangeStatus_CompletedCanBeCancelled(t *testing.T) {
	svc := newTestService()
	iv := createProgressing(t, svc, interventions.StatusCompleted)

	got, err := svc.ChangeStatus(context.Background(), iv.ID, interventions.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, interventions.StatusCancelled, got.Status)
}

func TestChangeStatus_CancelledFromAnyActiveState(t *testing.T) {
	svc := newTestService()
	for _, from := range []interventions.Status{
		interventions.StatusToSchedule,
		interventions.StatusScheduled,
		interventions.StatusInProgress,
		interventions.StatusWaiting,
	} {
		iv := createProgressing(t, svc, from)
		_, err := svc.ChangeStatus(context.Background(), iv.ID, interventions.StatusCancelled)
		require.NoError(t, err, "from %s", from)
	}
}

func TestArchive_SetsStatusAndHidesFromSearch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	iv := createProgressing(t, svc, interventions.StatusCompleted)

	require.NoError(t, svc.Archive(ctx, iv.ID))

	stored, err := svc.GetByID(ctx, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, interventions.StatusArchived, stored.Status)
	assert.True(t, stored.Archived)

	visible, err := svc.Search(ctx, interventions.Filter{})
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := svc.Search(ctx, interventions.Filter{ShowArchived: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdate_ArchivedInterventionRejected(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	iv := createProgressing(t, svc, interventions.StatusCompleted)
	require.NoError(t, svc.Archive(ctx, iv.ID))

	stored, err := svc.GetByID(ctx, iv.ID)
	require.NoError(t, err)
	stored.Notes = "modification tardive"

	err = svc.Update(ctx, stored)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeArchived, appErr.Code)
}

func TestUpdate_InvalidStatusChangeRejected(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	iv := createProgressing(t, svc, interventions.StatusToSchedule)

	stored, err := svc.GetByID(ctx, iv.ID)
	require.NoError(t, err)
	stored.Status = interventions.StatusCompleted

	err = svc.Update(ctx, stored)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
}

func TestSearch_FiltersThroughPipeline(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	createProgressing(t, svc, interventions.StatusInProgress)
	createProgressing(t, svc, interventions.StatusWaiting)
	createProgressing(t, svc, interventions.StatusInProgress)

	got, err := svc.Search(ctx, interventions.Filter{Status: string(interventions.StatusInProgress)})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
