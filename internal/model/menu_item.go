package model

import (
	"fmt"
	"strings"
)

// DietType tags a menu item as vegetarian or not.
type DietType string

const (
	DietVeg    DietType = "veg"
	DietNonVeg DietType = "non-veg"
)

// MaxPriceCents caps a menu price.  Together with MaxLineQuantity it keeps
// line and bill totals far inside int64.
const MaxPriceCents int64 = 1_000_000_000

// Category groups menu items on the customer menu.
type Category string

const (
	CategoryStarter    Category = "starter"
	CategoryMainCourse Category = "main-course"
	CategoryDessert    Category = "dessert"
	CategoryDrinks     Category = "drinks"
)

// ParseDietType accepts any casing ("Veg", "NON-VEG").
func ParseDietType(s string) (DietType, error) {
	switch d := DietType(strings.ToLower(strings.TrimSpace(s))); d {
	case DietVeg, DietNonVeg:
		return d, nil
	}
	return "", fmt.Errorf("%w: diet type %q", ErrInvalid, s)
}

// ParseCategory accepts any casing and "main course" with a space.
func ParseCategory(s string) (Category, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
	switch c := Category(norm); c {
	case CategoryStarter, CategoryMainCourse, CategoryDessert, CategoryDrinks:
		return c, nil
	}
	return "", fmt.Errorf("%w: category %q", ErrInvalid, s)
}

// MenuItem is an entry of the staff-owned menu.  Orders never reference a
// MenuItem by pointer: SubmitOrder copies name and price into each line so
// later edits or deletions do not rewrite history.
//
// Every money field of the API, here and in orders and bills, is an
// integer count of minor units: "price": 250 is 2.50, not 250.00.
type MenuItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price"`
	DietType   DietType `json:"type"`
	Category   Category `json:"category"`
	Available  bool     `json:"available"`
	Image      []byte   `json:"image,omitempty"` // opaque payload, base64 in JSON
}

// Validate checks the invariants staff edits must keep.
func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if m.PriceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalid)
	}
	if m.PriceCents > MaxPriceCents {
		return fmt.Errorf("%w: price must not exceed %d", ErrInvalid, MaxPriceCents)
	}
	if _, err := ParseDietType(string(m.DietType)); err != nil {
		return err
	}
	if _, err := ParseCategory(string(m.Category)); err != nil {
		return err
	}
	return nil
}
