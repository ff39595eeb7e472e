package interventions

import (
	"edr/internal/domain"
)

// Repository persists interventions. No module-specific queries are
// needed: the filter pipeline runs over the listed collection.
type Repository = domain.Repository[*Intervention]
