package gateway

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return models.Unit(fl.Field().String()).Valid()
	})
	return v
}

// fieldMessages maps "field" or "field.tag" to a display message.
type fieldMessages map[string]string

// check validates s and converts the first failed constraint into a
// common.ValidationError carrying the matching display message.
func check(s any, messages fieldMessages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating input: %w", err)
	}

	fe := verrs[0]
	msg, ok := messages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg, ok = messages[fe.Field()]
	}
	if !ok {
		msg = fe.Error()
	}
	return common.NewValidationError(fe.Field(), msg)
}

type registerForm struct {
	Email string `form:"email" validate:"required,email"`
}

type ingredientForm struct {
	Name         string   `form:"name" validate:"required,max=200"`
	Category     string   `form:"category" validate:"category"`
	Unit         string   `form:"unit" validate:"unit"`
	PricePerUnit *float64 `form:"pricePerUnit" validate:"required,gte=0"`
	Description  string   `form:"description" validate:"max=2000"`
}

var ingredientMessages = fieldMessages{
	"name":             msgNameRequired,
	"name.max":         msgNameTooLong,
	"category":         msgCategoryInvalid,
	"unit":             msgUnitInvalid,
	"pricePerUnit":     msgPriceRequired,
	"pricePerUnit.gte": msgPriceNegative,
	"description":      msgDescriptionLong,
}

type recipeLineForm struct {
	IngredientID string  `form:"ingredient" validate:"required"`
	Quantity     float64 `form:"quantity" validate:"gt=0"`
}

type recipeForm struct {
	Name        string           `form:"name" validate:"required,max=200"`
	Description string           `form:"description" validate:"max=5000"`
	ImageURL    string           `form:"imageUrl" validate:"omitempty,http_url"`
	Lines       []recipeLineForm `form:"lines" validate:"max=10,dive"`
}

var recipeMessages = fieldMessages{
	"name":        msgNameRequired,
	"name.max":    msgNameTooLong,
	"description": msgDescriptionLong,
	"imageUrl":    msgImageURLInvalid,
	"ingredient":  msgIngredientNeeded,
	"quantity":    msgQuantityInvalid,
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseAmount parses a decimal form value. Blank values yield nil; NaN and
// infinities are rejected.
func parseAmount(raw string) (*float64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}

// ParseIngredientForm validates the fields of an ingredient form.
func ParseIngredientForm(values url.Values) (models.IngredientDraft, error) {
	price, ok := parseAmount(values.Get("pricePerUnit"))
	if !ok {
		return models.IngredientDraft{}, common.NewValidationError("pricePerUnit", msgPriceRequired)
	}

	f := ingredientForm{
		Name:         strings.TrimSpace(values.Get("name")),
		Category:     strings.TrimSpace(values.Get("category")),
		Unit:         strings.TrimSpace(values.Get("unit")),
		PricePerUnit: price,
		Description:  strings.TrimSpace(values.Get("description")),
	}
	if err := check(f, ingredientMessages); err != nil {
		return models.IngredientDraft{}, err
	}

	return models.IngredientDraft{
		Name:         f.Name,
		Category:     models.Category(f.Category),
		Unit:         models.Unit(f.Unit),
		PricePerUnit: *f.PricePerUnit,
		Description:  optional(f.Description),
	}, nil
}

// ParseRecipeForm validates a recipe form. Lines are read from
// ingredient_<i>/quantity_<i> pairs for i below common.MaxRecipeLines;
// pairs with no ingredient are skipped and higher indexes are ignored.
func ParseRecipeForm(values url.Values) (models.RecipeDraft, error) {
	f := recipeForm{
		Name:        strings.TrimSpace(values.Get("name")),
		Description: strings.TrimSpace(values.Get("description")),
		ImageURL:    strings.TrimSpace(values.Get("imageUrl")),
	}

	for i := range common.MaxRecipeLines {
		id := strings.TrimSpace(values.Get(fmt.Sprintf("ingredient_%d", i)))
		if id == "" {
			continue
		}
		q, ok := parseAmount(values.Get(fmt.Sprintf("quantity_%d", i)))
		if !ok || q == nil {
			return models.RecipeDraft{}, common.NewValidationError(fmt.Sprintf("quantity_%d", i), msgQuantityInvalid)
		}
		f.Lines = append(f.Lines, recipeLineForm{IngredientID: id, Quantity: *q})
	}

	if err := check(f, recipeMessages); err != nil {
		return models.RecipeDraft{}, err
	}

	draft := models.RecipeDraft{
		Name:        f.Name,
		Description: optional(f.Description),
		ImageURL:    optional(f.ImageURL),
		Lines:       make([]models.RecipeLine, 0, len(f.Lines)),
	}
	for _, l := range f.Lines {
		draft.Lines = append(draft.Lines, models.RecipeLine{IngredientID: l.IngredientID, Quantity: l.Quantity})
	}
	return draft, nil
}
