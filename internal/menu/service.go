package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"voice-orders/internal/store"
	"voice-orders/pkg/logger"
	"voice-orders/pkg/models"

	"github.com/google/uuid"
)

type Store interface {
	GetMenu(ctx context.Context) ([]models.MenuItem, error)
	SaveMenu(ctx context.Context, items []models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
}

var ErrNameRequired = errors.New("name is required")

type Service struct {
	store  Store
	logger *logger.Logger
	newID  func() string
}

func NewService(st Store, log *logger.Logger) *Service {
	return &Service{
		store:  st,
		logger: log,
		newID:  func() string { return "menu_" + uuid.NewString() },
	}
}

func (s *Service) List(ctx context.Context, category string) ([]models.MenuItem, error) {
	menu, err := s.store.GetMenu(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return menu, nil
	}

	filtered := []models.MenuItem{}
	for _, item := range menu {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *Service) Create(ctx context.Context, name, category string, price float64, description string) (models.MenuItem, error) {
	if name == "" {
		return models.MenuItem{}, ErrNameRequired
	}
	if category == "" {
		category = "Uncategorized"
	}

	item := models.MenuItem{
		ID:          s.newID(),
		Name:        name,
		Category:    category,
		Price:       price,
		Description: description,
		Available:   true,
	}

	if err := s.store.SaveMenu(ctx, []models.MenuItem{item}); err != nil {
		return models.MenuItem{}, err
	}

	s.logger.Info("", "menu_item_created", fmt.Sprintf("Menu item %q created", name))
	return item, nil
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	Available   *bool
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (models.MenuItem, error) {
	menu, err := s.store.GetMenu(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}

	idx := -1
	for i := range menu {
		if menu[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.MenuItem{}, store.ErrMenuItemNotFound
	}

	item := &menu[idx]
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.store.SaveMenu(ctx, []models.MenuItem{*item}); err != nil {
		return models.MenuItem{}, err
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteMenuItem(ctx, id)
}

// Import reads the first sheet of an XLSX workbook, merges its rows into
// the current menu by case-insensitive name, and persists the result.
func (s *Service) Import(ctx context.Context, r io.Reader) (models.ImportResult, error) {
	rows, err := ParseWorkbook(r)
	if err != nil {
		return models.ImportResult{}, err
	}

	menu, err := s.store.GetMenu(ctx)
	if err != nil {
		return models.ImportResult{}, err
	}

	menu, imported := MergeRows(menu, rows, s.newID)

	if err := s.store.SaveMenu(ctx, menu); err != nil {
		return models.ImportResult{}, err
	}

	s.logger.Info("", "menu_imported",
		fmt.Sprintf("Imported %d menu items (%d total)", imported, len(menu)))
	return models.ImportResult{Imported: imported, Total: len(menu), Items: menu}, nil
}

// MergeRows folds imported rows into the menu. An existing item with the
// same name (case-insensitive) is updated in place; everything else is
// appended as a new available item. Returns the menu and the count of
// rows applied.
func MergeRows(menu []models.MenuItem, rows []Row, newID func() string) ([]models.MenuItem, int) {
	imported := 0
	for _, row := range rows {
		if row.Name == "" {
			continue
		}

		idx := -1
		for i := range menu {
			if strings.EqualFold(menu[i].Name, row.Name) {
				idx = i
				break
			}
		}

		if idx >= 0 {
			menu[idx].Category = row.Category
			menu[idx].Price = row.Price
			menu[idx].Description = row.Description
		} else {
			menu = append(menu, models.MenuItem{
				ID:          newID(),
				Name:        row.Name,
				Category:    row.Category,
				Price:       row.Price,
				Description: row.Description,
				Available:   true,
			})
		}
		imported++
	}
	return menu, imported
}

// ParsePrice strips everything but digits, dots and minus signs before
// parsing; unparseable input is 0, never an error.
func ParsePrice(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}
