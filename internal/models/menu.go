package models

// MenuItem is a static catalog entry; the catalog is loaded once at startup
// and never mutated.
type MenuItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Price       float64  `json:"price"`
}
