package store

import (
	"fmt"

	domainerrors "github.com/CyberCatD/youtube-to-list-app/internal/errors"
)

// Sentinel errors. They are domain errors, so errors.Is matches them against
// the domain sentinels of the same code.
var (
	ErrNotFound      = domainerrors.NotFound("resource not found")
	ErrAlreadyExists = domainerrors.Conflict("resource already exists")
)

// RecipeNotFound reports a missing recipe.
func RecipeNotFound(id int64) error {
	return domainerrors.NotFoundf("recipe %d not found", id)
}

// GroceryListNotFound reports a missing grocery list.
func GroceryListNotFound(id string) error {
	return domainerrors.NotFoundf("grocery list %s not found", id)
}

// wrapf annotates a backend failure as an internal error.
func wrapf(err error, format string, args ...any) error {
	return domainerrors.Wrap(err, domainerrors.CodeInternal, fmt.Sprintf(format, args...))
}
