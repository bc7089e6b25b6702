package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/service"
)

func (s *Server) registerConsolidateRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "consolidate",
		Method:      http.MethodPost,
		Path:        "/api/v1/consolidate",
		Summary:     "Preview consolidation",
		Description: "Consolidates recipes into line items without saving anything",
		Tags:        []string{"Consolidation"},
	}, s.handleConsolidate)
}

// === DTOs ===

type ConsolidateRecipe struct {
	ID          int64            `json:"id,omitempty" doc:"Recipe ID (default: position in the request, from 1)"`
	Name        string           `json:"name,omitempty" doc:"Recipe name"`
	Ingredients []IngredientBody `json:"ingredients" doc:"Ingredient lines"`
}

type ConsolidateRequest struct {
	Recipes []ConsolidateRecipe `json:"recipes" doc:"Recipes to consolidate"`
}

type ConsolidateInput struct {
	Body ConsolidateRequest
}

type ConsolidateResponse struct {
	Market string               `json:"market" doc:"Retail market of the package suggestions"`
	Items  []LineItemResponse   `json:"items" doc:"Consolidated line items"`
	Export []grocery.ExportItem `json:"export" doc:"Items flattened for ordering integrations"`
}

type ConsolidateOutput struct {
	Body ConsolidateResponse
}

// === Handlers ===

func (s *Server) handleConsolidate(_ context.Context, input *ConsolidateInput) (*ConsolidateOutput, error) {
	req := service.PreviewRequest{Recipes: make([]service.PreviewRecipe, len(input.Body.Recipes))}
	for i, r := range input.Body.Recipes {
		req.Recipes[i] = service.PreviewRecipe{
			ID:          r.ID,
			Name:        r.Name,
			Ingredients: toIngredientRequests(r.Ingredients),
		}
	}

	lines, err := s.services.GroceryList.Preview(req)
	if err != nil {
		return nil, err
	}

	items := make([]LineItemResponse, len(lines))
	for i, li := range lines {
		items[i] = mapLineItemResponse(li)
	}
	return &ConsolidateOutput{Body: ConsolidateResponse{
		Market: s.services.GroceryList.Market(),
		Items:  items,
		Export: grocery.Export(lines),
	}}, nil
}
