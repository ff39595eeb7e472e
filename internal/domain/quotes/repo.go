package quotes

import (
	"edr/internal/domain"
)

// Repository persists quotes with their owned item and history lists.
type Repository = domain.Repository[*Quote]
