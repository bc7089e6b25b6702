package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
	"github.com/CyberCatD/youtube-to-list-app/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes",
		Summary:       "Create recipe",
		Description:   "Saves a recipe and its ingredient lines",
		Tags:          []string{"Recipes"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns all saved recipes",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe by ID",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Delete recipe",
		Description: "Deletes a recipe. Grocery lists built from it keep their items.",
		Tags:        []string{"Recipes"},
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// IngredientBody is one ingredient line in a request.
type IngredientBody struct {
	Name     string   `json:"name" doc:"Ingredient name as written in the recipe"`
	Quantity *float64 `json:"quantity,omitempty" doc:"Amount; omit for to-taste ingredients"`
	Unit     string   `json:"unit,omitempty" doc:"Unit such as cup, tbsp or g"`
}

type CreateRecipeRequest struct {
	Name        string           `json:"name" doc:"Recipe name"`
	SourceURL   string           `json:"source_url,omitempty" doc:"Video or page the recipe came from"`
	Ingredients []IngredientBody `json:"ingredients" doc:"Ingredient lines"`
}

type CreateRecipeInput struct {
	Body CreateRecipeRequest
}

type RecipeIDInput struct {
	ID int64 `path:"id" doc:"Recipe ID"`
}

type IngredientResponse struct {
	Name     string   `json:"name" doc:"Ingredient name"`
	Quantity *float64 `json:"quantity,omitempty" doc:"Amount"`
	Unit     string   `json:"unit,omitempty" doc:"Unit"`
}

type RecipeResponse struct {
	ID          int64                `json:"id" doc:"Recipe ID"`
	Name        string               `json:"name" doc:"Recipe name"`
	SourceURL   string               `json:"source_url,omitempty" doc:"Source URL"`
	Ingredients []IngredientResponse `json:"ingredients" doc:"Ingredient lines"`
	CreatedAt   time.Time            `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time            `json:"updated_at" doc:"Last update time"`
}

type RecipeOutput struct {
	Body RecipeResponse
}

type ListRecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes" doc:"Saved recipes"`
}

type ListRecipesOutput struct {
	Body ListRecipesResponse
}

// === Handlers ===

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	r, err := s.services.Recipe.CreateRecipe(ctx, service.CreateRecipeRequest{
		Name:        input.Body.Name,
		SourceURL:   input.Body.SourceURL,
		Ingredients: toIngredientRequests(input.Body.Ingredients),
	})
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: mapRecipeResponse(r)}, nil
}

func (s *Server) handleListRecipes(ctx context.Context, _ *struct{}) (*ListRecipesOutput, error) {
	recipes, err := s.services.Recipe.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeResponse, len(recipes))
	for i, r := range recipes {
		resp[i] = mapRecipeResponse(r)
	}
	return &ListRecipesOutput{Body: ListRecipesResponse{Recipes: resp}}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *RecipeIDInput) (*RecipeOutput, error) {
	r, err := s.services.Recipe.GetRecipe(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: mapRecipeResponse(r)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *RecipeIDInput) (*struct{}, error) {
	if err := s.services.Recipe.DeleteRecipe(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

// === Mappers ===

func toIngredientRequests(in []IngredientBody) []service.IngredientRequest {
	out := make([]service.IngredientRequest, len(in))
	for i, ing := range in {
		out[i] = service.IngredientRequest{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
	}
	return out
}

func mapRecipeResponse(r *domain.Recipe) RecipeResponse {
	ings := make([]IngredientResponse, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ings[i] = IngredientResponse{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
	}
	return RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		SourceURL:   r.SourceURL,
		Ingredients: ings,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
