package inventory

import "edr/internal/domain"

// Repository persists stock items.
type Repository = domain.Repository[*Item]
