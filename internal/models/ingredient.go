// Package models holds the domain types shared by the recipebook server and
// its clients: the ingredient catalog, recipes, users, sessions and the
// uniform result envelope.
package models

import "strings"

// Category classifies catalog ingredients.
type Category string

const (
	CategoryVegetables Category = "VEGETABLES"
	CategoryFruits     Category = "FRUITS"
	CategoryMeat       Category = "MEAT"
	CategoryDairy      Category = "DAIRY"
	CategorySpices     Category = "SPICES"
	CategoryOther      Category = "OTHER"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryVegetables, CategoryFruits, CategoryMeat, CategoryDairy, CategorySpices, CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryVegetables: "Овощи",
	CategoryFruits:     "Фрукты",
	CategoryMeat:       "Мясо",
	CategoryDairy:      "Молочные",
	CategorySpices:     "Специи",
	CategoryOther:      "Другое",
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label is the human-readable category name. Unknown values are returned
// lower-cased.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return strings.ToLower(string(c))
}

// Unit is the measure an ingredient is priced and used in.
type Unit string

const (
	UnitGrams       Unit = "GRAMS"
	UnitKilograms   Unit = "KILOGRAMS"
	UnitLiters      Unit = "LITERS"
	UnitMilliliters Unit = "MILLILITERS"
	UnitPieces      Unit = "PIECES"
)

// Units lists every unit in display order.
var Units = []Unit{UnitGrams, UnitKilograms, UnitLiters, UnitMilliliters, UnitPieces}

// UnitLabels maps units to their full names.
var UnitLabels = map[Unit]string{
	UnitGrams:       "Граммы",
	UnitKilograms:   "Килограммы",
	UnitLiters:      "Литры",
	UnitMilliliters: "Миллилитры",
	UnitPieces:      "Штуки",
}

// UnitAbbreviations maps units to the short forms printed next to quantities.
var UnitAbbreviations = map[Unit]string{
	UnitGrams:       "г",
	UnitKilograms:   "кг",
	UnitLiters:      "л",
	UnitMilliliters: "мл",
	UnitPieces:      "шт",
}

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	_, ok := UnitLabels[u]
	return ok
}

// UnitLabel looks u up in table and falls back to the lower-cased unit value
// when it is missing.
func UnitLabel(u Unit, table map[Unit]string) string {
	if l, ok := table[u]; ok {
		return l
	}
	return strings.ToLower(string(u))
}

// Label is the full unit name.
func (u Unit) Label() string { return UnitLabel(u, UnitLabels) }

// Abbreviation is the short unit name, e.g. "г" for grams.
func (u Unit) Abbreviation() string { return UnitLabel(u, UnitAbbreviations) }

// Ingredient is a catalog entry. Ingredients have no owner and are shared by
// all users.
type Ingredient struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	Unit         Unit     `json:"unit"`
	PricePerUnit *float64 `json:"pricePerUnit,omitempty"`
	Description  *string  `json:"description,omitempty"`
}
