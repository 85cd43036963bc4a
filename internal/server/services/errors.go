package services

import (
	"fmt"

	"github.com/dmitrijs2005/recipebook/internal/common"
)

var (
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", common.ErrorConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", common.ErrorUnauthorized)
	ErrIngredientNotFound = fmt.Errorf("%w: ingredient", common.ErrorNotFound)
	ErrIngredientInUse    = fmt.Errorf("%w: ingredient is used by recipes", common.ErrorConflict)
	ErrUnknownIngredient  = fmt.Errorf("%w: unknown ingredient", common.ErrorValidation)
	ErrRecipeNotFound     = fmt.Errorf("%w: recipe", common.ErrorNotFound)
)
