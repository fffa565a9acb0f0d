// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

// Category is one of the fixed product categories. The enumeration is
// closed: sale entries carrying any other value are rejected.
type Category string

const (
	CategoryIce         Category = "ice"
	CategorySoftDrink   Category = "soft_drink"
	CategoryEnergyDrink Category = "energy_drink"
	CategoryWater       Category = "water"
	CategoryLiquor      Category = "liquor"
	CategoryBeer        Category = "beer"
	CategoryCigarette   Category = "cigarette"
	CategoryOthers      Category = "others"
)

// Categories returns the closed enumeration in display order.
func Categories() []Category {
	return []Category{
		CategoryIce,
		CategorySoftDrink,
		CategoryEnergyDrink,
		CategoryWater,
		CategoryLiquor,
		CategoryBeer,
		CategoryCigarette,
		CategoryOthers,
	}
}

// ValidCategory reports whether c is part of the closed enumeration.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryIce, CategorySoftDrink, CategoryEnergyDrink, CategoryWater,
		CategoryLiquor, CategoryBeer, CategoryCigarette, CategoryOthers:
		return true
	}
	return false
}

// DefaultProducts lists the shop's usual products per category, used by
// entry surfaces as quick-pick shortcuts. Free-text product names are
// still accepted.
var DefaultProducts = map[Category][]string{
	CategoryIce:         {"small tube ice", "large tube ice", "crushed ice"},
	CategorySoftDrink:   {"Coke", "Pepsi", "Fanta orange", "Sprite", "7 Up"},
	CategoryEnergyDrink: {"M-150", "Carabao Dang", "Krating Daeng", "Lipo"},
	CategoryWater:       {"drinking water 600ml", "drinking water 1.5L", "mineral water"},
	CategoryLiquor:      {"Regency", "SangSom", "Hong Thong", "Blend 285"},
	CategoryBeer:        {"Leo", "Chang", "Singha", "Heineken"},
	CategoryCigarette:   {"SaiFon", "Krongthip", "L&M", "Marlboro"},
	CategoryOthers:      {"snacks", "instant noodles", "household goods"},
}
