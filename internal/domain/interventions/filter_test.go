package interventions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// fixtureSet builds the seven-record collection used across filter
// tests. IDs 1 and 5 are in progress; ID 4 is complete and a natural
// archive candidate.
func fixtureSet() []*Intervention {
	type row struct {
		id         int64
		title      string
		client     string
		technician string
		status     Status
		priority   Priority
		kind       Kind
		created    time.Time
	}
	rows := []row{
		{1, "Panne alarme bâtiment A", "Banque Populaire", "Julien Moreau", StatusInProgress, PriorityCritical, KindFailure, day(2026, 8, 1)},
		{2, "Installation contrôle d'accès", "Clinique du Parc", "Julien Moreau", StatusScheduled, PriorityHigh, KindInstall, day(2026, 8, 3)},
		{3, "Maintenance annuelle caméras", "Translog", "Sophie Bernard", StatusToSchedule, PriorityMedium, KindMaintenance, day(2026, 8, 5)},
		{4, "Remplacement lecteur badge HS", "Lycée Jean Macé", "Julien Moreau", StatusCompleted, PriorityLow, KindFailure, day(2026, 8, 8)},
		{5, "Mise à jour firmware centrale", "Banque Populaire", "Sophie Bernard", StatusInProgress, PriorityMedium, KindUpdate, day(2026, 8, 10)},
		{6, "Dépannage interphone hall B", "Régie Immo 69", "Julien Moreau", StatusWaiting, PriorityHigh, KindFailure, day(2026, 8, 12)},
		{7, "Extension réseau atelier", "Mécanique Générale SARL", "Sophie Bernard", StatusToSchedule, PriorityLow, KindInstall, day(2026, 8, 15)},
	}
	out := make([]*Intervention, 0, len(rows))
	for _, r := range rows {
		iv := NewIntervention(r.title, r.client, r.technician)
		iv.ID = r.id
		iv.Status = r.status
		iv.Priority = r.priority
		iv.Kind = r.kind
		iv.CreatedAt = r.created
		out = append(out, iv)
	}
	return out
}

func ids(items []*Intervention) []int64 {
	out := make([]int64, 0, len(items))
	for _, iv := range items {
		out = append(out, iv.ID)
	}
	return out
}

func TestFilter_EmptyReturnsAllNonArchived(t *testing.T) {
	items := fixtureSet()
	items[3].Status = StatusArchived

	got := Filter{}.Apply(items)

	assert.Equal(t, []int64{1, 2, 3, 5, 6, 7}, ids(got))
}

func TestFilter_PreservesOrder(t *testing.T) {
	got := Filter{}.Apply(fixtureSet())
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, ids(got))
}

func TestFilter_ShowArchivedIncludesEverything(t *testing.T) {
	items := fixtureSet()
	items[3].Status = StatusArchived

	got := Filter{ShowArchived: true}.Apply(items)

	assert.Len(t, got, 7)
}

func TestFilter_StatusInProgress(t *testing.T) {
	got := Filter{Status: "En cours"}.Apply(fixtureSet())
	assert.Equal(t, []int64{1, 5}, ids(got))
}

func TestFilter_PassThroughValues(t *testing.T) {
	for _, value := range []string{"", "Toutes", "Tous", "All"} {
		got := Filter{Status: value, Priority: value, Kind: value}.Apply(fixtureSet())
		assert.Len(t, got, 7, "value %q should not filter", value)
	}
}

func TestFilter_KeywordIsCaseInsensitive(t *testing.T) {
	got := Filter{Keyword: "ALARME"}.Apply(fixtureSet())

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilter_KeywordMatchesAnyField(t *testing.T) {
	// "moreau" only appears in the technician field
	got := Filter{Keyword: "moreau"}.Apply(fixtureSet())
	assert.Equal(t, []int64{1, 2, 4, 6}, ids(got))
}

func TestFilter_TechnicianExactMatch(t *testing.T) {
	got := Filter{Technician: "Sophie Bernard"}.Apply(fixtureSet())
	assert.Equal(t, []int64{3, 5, 7}, ids(got))

	// partial names never match
	got = Filter{Technician: "Sophie"}.Apply(fixtureSet())
	assert.Empty(t, got)
}

func TestFilter_DateBoundsAreInclusive(t *testing.T) {
	from := day(2026, 8, 5)
	to := day(2026, 8, 10)

	got := Filter{DateFrom: &from, DateTo: &to}.Apply(fixtureSet())

	// records created on the boundary days stay in
	assert.Equal(t, []int64{3, 4, 5}, ids(got))
}

func TestFilter_DateToEndOfDay(t *testing.T) {
	// a record created at 12:00 on the DateTo day must match even
	// though the filter value carries the same noon timestamp
	to := day(2026, 8, 1)
	got := Filter{DateTo: &to}.Apply(fixtureSet())
	assert.Equal(t, []int64{1}, ids(got))
}

func TestFilter_CombinedDimensionsNarrow(t *testing.T) {
	got := Filter{
		Status:     "En cours",
		Technician: "Sophie Bernard",
	}.Apply(fixtureSet())

	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].ID)
}

func TestFilter_Idempotent(t *testing.T) {
	f := Filter{Status: "En cours", Keyword: "banque"}

	once := f.Apply(fixtureSet())
	twice := f.Apply(once)

	assert.Equal(t, ids(once), ids(twice))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := fixtureSet()
	before := ids(items)

	_ = Filter{Status: "En cours"}.Apply(items)

	assert.Equal(t, before, ids(items))
	assert.Len(t, items, 7)
}

func TestFilter_NoMatchReturnsEmptyNotNilError(t *testing.T) {
	got := Filter{Client: "Inconnu SA"}.Apply(fixtureSet())
	assert.Empty(t, got)
}

func TestFilter_PredicateCommutativity(t *testing.T) {
	items := fixtureSet()
	from := day(2026, 8, 5)
	to := day(2026, 8, 12)

	pairs := []struct {
		name string
		a, b Filter
	}{
		{"status and technician", Filter{Status: "En cours"}, Filter{Technician: "Sophie Bernard"}},
		{"keyword and priority", Filter{Keyword: "moreau"}, Filter{Priority: "Haute"}},
		{"kind and date range", Filter{Kind: "Panne"}, Filter{DateFrom: &from, DateTo: &to}},
	}
	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			ab := tc.b.Apply(tc.a.Apply(items))
			ba := tc.a.Apply(tc.b.Apply(items))
			assert.Equal(t, ids(ba), ids(ab))
			assert.NotEmpty(t, ab)
		})
	}
}
