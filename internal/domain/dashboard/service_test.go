package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edr/internal/domain/audit"
	"edr/internal/domain/dashboard"
	"edr/internal/domain/interventions"
	"edr/internal/domain/inventory"
	"edr/internal/domain/quotes"
	"edr/internal/infrastructure/storage/memstore"
)

type fixtures struct {
	interventions *memstore.Collection[*interventions.Intervention]
	quotes        *memstore.Collection[*quotes.Quote]
	inventory     *memstore.Collection[*inventory.Item]
	trail         *memstore.AuditTrail
}

func newFixtures() fixtures {
	return fixtures{
		interventions: memstore.NewInterventionRepo(),
		quotes:        memstore.NewQuoteRepo(),
		inventory:     memstore.NewInventoryRepo(),
		trail:         memstore.NewAuditTrail(50),
	}
}

func (f fixtures) service() *dashboard.Service {
	return dashboard.NewService(f.interventions, f.quotes, f.inventory, f.trail)
}

func (f fixtures) addIntervention(t *testing.T, status interventions.Status, priority interventions.Priority) {
	t.Helper()
	iv := interventions.NewIntervention("Ticket", "Client", "Technicien")
	iv.Status = status
	iv.Priority = priority
	require.NoError(t, f.interventions.Create(context.Background(), iv))
}

func (f fixtures) addQuote(t *testing.T, status quotes.Status, total float64) {
	t.Helper()
	q := quotes.NewQuote(quotes.Contact{Name: "Client"}, quotes.Issuer{}, 30*24*time.Hour)
	q.Status = status
	q.Total = total
	require.NoError(t, f.quotes.Create(context.Background(), q))
}

func TestCompute_InterventionBreakdown(t *testing.T) {
	f := newFixtures()
	f.addIntervention(t, interventions.StatusInProgress, interventions.PriorityCritical)
	f.addIntervention(t, interventions.StatusInProgress, interventions.PriorityMedium)
	f.addIntervention(t, interventions.StatusWaiting, interventions.PriorityMedium)
	f.addIntervention(t, interventions.StatusCompleted, interventions.PriorityLow)
	f.addIntervention(t, interventions.StatusCancelled, interventions.PriorityLow)

	summary, err := f.service().Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.InterventionsByStatus["En cours"])
	assert.Equal(t, 1, summary.InterventionsByStatus["En attente"])
	assert.Equal(t, 2, summary.InterventionsByPriority["Moyenne"])

	// completed and cancelled do not count as open
	assert.Equal(t, 3, summary.OpenInterventions)
	assert.Equal(t, 1, summary.CompletedThisMonth)
}

func TestCompute_QuotePipelineSumsTotals(t *testing.T) {
	f := newFixtures()
	f.addQuote(t, quotes.StatusSent, 240)
	f.addQuote(t, quotes.StatusSent, 1106.80)
	f.addQuote(t, quotes.StatusApproved, 500)

	summary, err := f.service().Compute(context.Background())
	require.NoError(t, err)

	sent := summary.QuotePipeline["Envoyé"]
	assert.Equal(t, 2, sent.Count)
	assert.Equal(t, 1346.80, sent.Total)

	approved := summary.QuotePipeline["Approuvé"]
	assert.Equal(t, 1, approved.Count)
	assert.Equal(t, 500.0, approved.Total)
}

func TestCompute_LowStockCount(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	ok := inventory.NewItem("Plein")
	ok.Quantity = 10
	ok.MinQuantity = 5
	require.NoError(t, f.inventory.Create(ctx, ok))

	low := inventory.NewItem("Vide")
	low.Quantity = 1
	low.MinQuantity = 5
	require.NoError(t, f.inventory.Create(ctx, low))

	summary, err := f.service().Compute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LowStockCount)
}

func TestCompute_RecentActivityComesFromTrail(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		require.NoError(t, f.trail.Record(ctx, audit.Entry{
			Entity:   "intervention",
			EntityID: int64(i),
			Action:   audit.ActionUpdate,
		}))
	}

	summary, err := f.service().Compute(ctx)
	require.NoError(t, err)

	// feed capped at ten, newest first
	require.Len(t, summary.RecentActivity, 10)
	assert.Equal(t, int64(12), summary.RecentActivity[0].EntityID)
}

func TestCompute_ExcludesArchivedRecords(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	iv := interventions.NewIntervention("Archivée", "Client", "Technicien")
	iv.Status = interventions.StatusArchived
	iv.SetArchived(true)
	require.NoError(t, f.interventions.Create(ctx, iv))

	summary, err := f.service().Compute(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.OpenInterventions)
	assert.Empty(t, summary.InterventionsByStatus)
}

func TestCompute_EmptyStores(t *testing.T) {
	f := newFixtures()

	summary, err := f.service().Compute(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, summary.InterventionsByStatus)
	assert.NotNil(t, summary.QuotePipeline)
	assert.Zero(t, summary.LowStockCount)
	assert.False(t, summary.GeneratedAt.IsZero())
}
