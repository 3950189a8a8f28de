package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/menuq/internal/model"
)

// MenuFilter narrows ListMenu.  Empty fields and the value "all" match
// everything.  Search is a case-insensitive substring of the name.
type MenuFilter struct {
	Search        string
	Category      string
	DietType      string
	AvailableOnly bool
}

// Match reports whether m passes the filter.
func (f MenuFilter) Match(m model.MenuItem) bool {
	if q := strings.TrimSpace(f.Search); q != "" &&
		!strings.Contains(strings.ToLower(m.Name), strings.ToLower(q)) {
		return false
	}
	if !anyOrEqual(f.Category, string(m.Category)) || !anyOrEqual(f.DietType, string(m.DietType)) {
		return false
	}
	return !f.AvailableOnly || m.Available
}

func anyOrEqual(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, "all") || strings.EqualFold(want, got)
}

// ListMenu returns the menu items matching f in store order.
func (s *Service) ListMenu(ctx context.Context, f MenuFilter) ([]model.MenuItem, error) {
	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.MenuItem, 0, len(items))
	for _, m := range items {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// normalizeMenuItem canonicalises the enums and validates the item.
func normalizeMenuItem(m model.MenuItem) (model.MenuItem, error) {
	m.Name = strings.TrimSpace(m.Name)
	if err := m.Validate(); err != nil {
		return model.MenuItem{}, err
	}
	m.DietType, _ = model.ParseDietType(string(m.DietType))
	m.Category, _ = model.ParseCategory(string(m.Category))
	return m, nil
}

// AddMenuItem stores a new item under a generated id.  Any id on m is
// ignored.
func (s *Service) AddMenuItem(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	m, err := normalizeMenuItem(m)
	if err != nil {
		return model.MenuItem{}, err
	}
	if m.ID, err = s.newID(); err != nil {
		return model.MenuItem{}, err
	}
	created, err := s.menu.Create(ctx, m)
	if err != nil {
		return model.MenuItem{}, err
	}
	s.log.Info("menu item added", "item", created.ID, "name", created.Name)
	return created, nil
}

// UpdateMenuItem replaces every field of an existing item.  Orders already
// placed keep their own copy of name and price.
func (s *Service) UpdateMenuItem(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	if m.ID == "" {
		return model.MenuItem{}, fmt.Errorf("%w: menu item id is required", model.ErrInvalid)
	}
	m, err := normalizeMenuItem(m)
	if err != nil {
		return model.MenuItem{}, err
	}
	return s.menu.Replace(ctx, m)
}

// RemoveMenuItem deletes an item.  Bills keep aggregating by the item id
// carried on each order line, so past orders are unaffected.
func (s *Service) RemoveMenuItem(ctx context.Context, id string) error {
	if err := s.menu.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("menu item removed", "item", id)
	return nil
}

// ToggleItemAvailability flips the available flag of a menu item and
// returns the stored result.
func (s *Service) ToggleItemAvailability(ctx context.Context, id string) (model.MenuItem, error) {
	m, err := s.menu.Get(ctx, id)
	if err != nil {
		return model.MenuItem{}, err
	}
	return s.menu.SetAvailable(ctx, id, !m.Available)
}
