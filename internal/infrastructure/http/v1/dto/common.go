// Package dto defines request and response shapes for the HTTP API.
package dto

// IDResponse returns the assigned record ID after a create.
type IDResponse struct {
	ID int64 `json:"id"`
}

// ListQuery carries the standard listing query parameters.
type ListQuery struct {
	Search          string `form:"search"`
	IncludeArchived bool   `form:"includeArchived"`
	OrderBy         string `form:"orderBy"`
	Limit           int    `form:"limit"`
	Offset          int    `form:"offset"`
}
