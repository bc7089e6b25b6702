package validation_test

import (
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/CyberCatD/youtube-to-list-app/internal/errors"
	"github.com/CyberCatD/youtube-to-list-app/internal/validation"
)

type ingredientRequest struct {
	Name     string   `json:"name" validate:"notblank,max=200"`
	Quantity *float64 `json:"quantity,omitempty" validate:"omitnil,finite,gte=0"`
	Unit     string   `json:"unit,omitempty" validate:"max=32"`
}

type recipeRequest struct {
	Name        string              `json:"name" validate:"notblank"`
	SourceURL   string              `json:"source_url,omitempty" validate:"omitempty,url"`
	Ingredients []ingredientRequest `json:"ingredients" validate:"min=1,dive"`
}

func ptr(f float64) *float64 { return &f }

func TestValidator_Valid(t *testing.T) {
	v := validation.New()

	err := v.Validate(recipeRequest{
		Name:        "Pancakes",
		SourceURL:   "https://www.youtube.com/watch?v=abc",
		Ingredients: []ingredientRequest{{Name: "flour", Quantity: ptr(2), Unit: "cup"}, {Name: "salt"}},
	})
	assert.NoError(t, err)
}

func TestValidator_Errors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       recipeRequest
		wantField string
		wantMsg   string
	}{
		{
			name:      "blank name",
			req:       recipeRequest{Name: "  ", Ingredients: []ingredientRequest{{Name: "flour"}}},
			wantField: "name",
			wantMsg:   "is required",
		},
		{
			name:      "no ingredients",
			req:       recipeRequest{Name: "Toast"},
			wantField: "ingredients",
			wantMsg:   "must contain at least 1 entries",
		},
		{
			name:      "blank ingredient name",
			req:       recipeRequest{Name: "Toast", Ingredients: []ingredientRequest{{Name: "bread"}, {Name: ""}}},
			wantField: "ingredients[1].name",
			wantMsg:   "is required",
		},
		{
			name:      "negative quantity",
			req:       recipeRequest{Name: "Toast", Ingredients: []ingredientRequest{{Name: "bread", Quantity: ptr(-1)}}},
			wantField: "ingredients[0].quantity",
			wantMsg:   "must be greater than or equal to 0",
		},
		{
			name:      "infinite quantity",
			req:       recipeRequest{Name: "Toast", Ingredients: []ingredientRequest{{Name: "bread", Quantity: ptr(math.Inf(1))}}},
			wantField: "ingredients[0].quantity",
			wantMsg:   "must be a finite number",
		},
		{
			name:      "bad url",
			req:       recipeRequest{Name: "Toast", SourceURL: "not a url", Ingredients: []ingredientRequest{{Name: "bread"}}},
			wantField: "source_url",
			wantMsg:   "must be a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField], "details: %v", details)
		})
	}
}
