package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"tableside/internal/models"
	"tableside/internal/views"
)

// MenuService serves the static catalog: a read-only lookup table loaded
// once at startup.
type MenuService interface {
	All() []models.MenuItem
	Search(query string) views.MenuSearchResult
}

type MenuServiceImpl struct {
	logger *zap.Logger
	items  []models.MenuItem
}

func NewMenuService(logger *zap.Logger, items []models.MenuItem) MenuService {
	return &MenuServiceImpl{logger: logger, items: items}
}

// LoadMenu reads the catalog file. Startup fails without a readable menu;
// there is no partial mode.
func LoadMenu(path string) ([]models.MenuItem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu %s: %w", path, err)
	}
	var items []models.MenuItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse menu %s: %w", path, err)
	}
	return items, nil
}

func (s *MenuServiceImpl) All() []models.MenuItem {
	return s.items
}

// Search matches the query case-insensitively against item names and
// ingredient lists. An empty query matches everything.
func (s *MenuServiceImpl) Search(query string) views.MenuSearchResult {
	q := strings.ToLower(query)
	results := make([]models.MenuItem, 0)
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(strings.Join(item.Ingredients, " ")), q) {
			results = append(results, item)
		}
	}
	return views.MenuSearchResult{Results: results}
}
