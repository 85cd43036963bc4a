package models

import (
	"strconv"
	"time"
)

// RecipeIngredient links a recipe to a catalog ingredient with a quantity
// expressed in the ingredient's unit. Ingredient is filled on reads.
type RecipeIngredient struct {
	ID           string      `json:"id"`
	IngredientID string      `json:"ingredientId"`
	Quantity     float64     `json:"quantity"`
	Ingredient   *Ingredient `json:"ingredient,omitempty"`
}

// String renders the line as "name: quantity unit".
func (l RecipeIngredient) String() string {
	q := strconv.FormatFloat(l.Quantity, 'f', -1, 64)
	if l.Ingredient == nil {
		return l.IngredientID + ": " + q
	}
	return l.Ingredient.Name + ": " + q + " " + l.Ingredient.Unit.Abbreviation()
}

// Recipe is a named dish composed of ingredient lines kept in submission
// order.
type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	ImageURL    *string            `json:"imageUrl,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// RecipeLine is one submitted ingredient line of a recipe form.
type RecipeLine struct {
	IngredientID string
	Quantity     float64
}

// RecipeDraft is the validated content of a create or update request.
type RecipeDraft struct {
	Name        string
	Description *string
	ImageURL    *string
	Lines       []RecipeLine
}

// IngredientDraft is the validated content of a create-ingredient request.
type IngredientDraft struct {
	Name         string
	Category     Category
	Unit         Unit
	PricePerUnit float64
	Description  *string
}
