package interventions

import (
	"strings"
	"time"
)

// Sentinel filter values meaning "no filtering on this dimension".
// The UI sends "Toutes"/"Tous" for the select-all option.
var passThrough = map[string]bool{
	"":       true,
	"Toutes": true,
	"Tous":   true,
	"All":    true,
}

// Filter holds one value per filter dimension. Zero values pass through.
type Filter struct {
	// ShowArchived includes archived interventions. Default views
	// exclude them.
	ShowArchived bool

	// Keyword is matched case-insensitively against title, client,
	// technician, material and description (OR semantics).
	Keyword string

	Status     string
	Priority   string
	Kind       string
	Technician string
	Client     string

	// DateFrom/DateTo bound the creation date, inclusive.
	DateFrom *time.Time
	DateTo   *time.Time
}

// predicate narrows a collection. Predicates never mutate their input
// and are commutative: each narrows independently of the others.
type predicate func(items []*Intervention) []*Intervention

// Apply runs all active predicates in a fixed sequence over the
// collection and returns a new filtered slice. The order (archived
// visibility first, keyword search second) only matters for
// performance: the cheap archived check and the broad keyword match
// shrink the collection before the exact-match predicates run.
// An empty result is valid, not an error.
func (f Filter) Apply(items []*Intervention) []*Intervention {
	out := items
	for _, p := range f.pipeline() {
		out = p(out)
	}
	// Detach from the caller's backing array even when nothing matched a predicate.
	result := make([]*Intervention, len(out))
	copy(result, out)
	return result
}

// pipeline returns the predicates in their fixed application order.
func (f Filter) pipeline() []predicate {
	return []predicate{
		f.byArchivedVisibility,
		f.byKeyword,
		f.byStatus,
		f.byPriority,
		f.byKind,
		f.byTechnician,
		f.byClient,
		f.byDateFrom,
		f.byDateTo,
	}
}

func (f Filter) byArchivedVisibility(items []*Intervention) []*Intervention {
	if f.ShowArchived {
		return items
	}
	return keep(items, func(iv *Intervention) bool {
		return iv.Status != StatusArchived
	})
}

func (f Filter) byKeyword(items []*Intervention) []*Intervention {
	term := strings.ToLower(strings.TrimSpace(f.Keyword))
	if term == "" {
		return items
	}
	return keep(items, func(iv *Intervention) bool {
		for _, field := range []string{iv.Title, iv.Client, iv.Technician, iv.Material, iv.Description} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
}

func (f Filter) byStatus(items []*Intervention) []*Intervention {
	if passThrough[f.Status] {
		return items
	}
	return keep(items, func(iv *Intervention) bool {
		return string(iv.Status) == f.Status
	})
}

func (f Filter) byPriority(items []*Intervention) []*Intervention {
	if passThrough[f.Priority] {
		return items
	}
	return keep(items, func(iv *Intervention) bool {
		return string(iv.Priority) == f.Priority
	})
}

func (f Filter) byKind(items []*Intervention) []*Intervention {
	if passThrough[f.Kind] {
		return items
	}
	return keep(items, func(iv *Intervention) bool {
		return string(iv.Kind) == f.Kind
	})
}

func (f Filter) byTechnician(items []*Intervention) []*Intervention {
	if f.Technician == "" {
		return items
	}
	// Exact, case-sensitive match.
	return keep(items, func(iv *Intervention) bool {
		return iv.Technician == f.Technician
	})
}

func (f Filter) byClient(items []*Intervention) []*Intervention {
	if f.Client == "" {
		return items
	}
	return keep(items, func(iv *Intervention) bool {
		return iv.Client == f.Client
	})
}

func (f Filter) byDateFrom(items []*Intervention) []*Intervention {
	if f.DateFrom == nil {
		return items
	}
	from := startOfDay(*f.DateFrom)
	return keep(items, func(iv *Intervention) bool {
		return !iv.CreatedAt.Before(from)
	})
}

func (f Filter) byDateTo(items []*Intervention) []*Intervention {
	if f.DateTo == nil {
		return items
	}
	to := endOfDay(*f.DateTo)
	return keep(items, func(iv *Intervention) bool {
		return !iv.CreatedAt.After(to)
	})
}

func keep(items []*Intervention, match func(*Intervention) bool) []*Intervention {
	out := make([]*Intervention, 0, len(items))
	for _, iv := range items {
		if match(iv) {
			out = append(out, iv)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay sets the time to 23:59:59.999 so the bound is inclusive.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999e6, t.Location())
}
