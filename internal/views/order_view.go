package views

import "tableside/internal/models"

type CreateOrderRequest struct {
	TableID int64    `json:"table_id"`
	Items   []string `json:"items"`
}

type ModifyOrderRequest struct {
	AddItems    []string `json:"add_items"`
	RemoveItems []string `json:"remove_items"`
	Notes       string   `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CancelResult confirms a removal and carries the snapshot of the order as
// it was right before deletion.
type CancelResult struct {
	Cancelled bool         `json:"cancelled"`
	Order     models.Order `json:"order"`
}

type MenuSearchResult struct {
	Results []models.MenuItem `json:"results"`
}
