package dto

// InterventionFilterQuery carries the intervention search parameters.
// Empty values and the "all" labels (Toutes, Tous, All) pass every
// record through.
type InterventionFilterQuery struct {
	Keyword      string `form:"keyword"`
	Status       string `form:"status"`
	Priority     string `form:"priority"`
	Kind         string `form:"type"`
	Technician   string `form:"technician"`
	Client       string `form:"client"`
	DateFrom     string `form:"dateFrom"`
	DateTo       string `form:"dateTo"`
	ShowArchived bool   `form:"showArchived"`
}

// StatusChangeRequest asks for a lifecycle transition.
type StatusChangeRequest struct {
	Status string `json:"status" binding:"required"`
}

// StockAdjustmentRequest applies a signed quantity delta.
type StockAdjustmentRequest struct {
	Delta float64 `json:"delta" binding:"required"`
}
