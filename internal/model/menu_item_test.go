package model

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"Starter":     CategoryStarter,
		"Main-Course": CategoryMainCourse,
		"main course": CategoryMainCourse,
		"DRINKS":      CategoryDrinks,
	} {
		got, err := ParseCategory(in)
		if err != nil || got != want {
			t.Errorf("ParseCategory(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseCategory("snacks"); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestMenuItemValidate(t *testing.T) {
	ok := MenuItem{Name: "Soup", PriceCents: 5000, DietType: DietVeg, Category: CategoryStarter}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
	bad := []MenuItem{
		{Name: " ", PriceCents: 1, DietType: DietVeg, Category: CategoryStarter},
		{Name: "x", PriceCents: -1, DietType: DietVeg, Category: CategoryStarter},
		{Name: "x", PriceCents: MaxPriceCents + 1, DietType: DietVeg, Category: CategoryStarter},
		{Name: "x", PriceCents: 1, DietType: "vegan", Category: CategoryStarter},
		{Name: "x", PriceCents: 1, DietType: DietVeg, Category: "brunch"},
	}
	for i, m := range bad {
		if err := m.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("case %d: expected ErrInvalid, got %v", i, err)
		}
	}
}
