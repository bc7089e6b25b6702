package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/service"
)

func (s *Server) registerGroceryListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createGroceryList",
		Method:        http.MethodPost,
		Path:          "/api/v1/grocery-lists",
		Summary:       "Create grocery list",
		Description:   "Consolidates saved recipes into a new grocery list",
		Tags:          []string{"Grocery Lists"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateGroceryList)

	huma.Register(s.api, huma.Operation{
		OperationID: "listGroceryLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/grocery-lists",
		Summary:     "List grocery lists",
		Description: "Returns all grocery lists, most recently updated first",
		Tags:        []string{"Grocery Lists"},
	}, s.handleListGroceryLists)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGroceryList",
		Method:      http.MethodGet,
		Path:        "/api/v1/grocery-lists/{id}",
		Summary:     "Get grocery list",
		Description: "Returns a grocery list with its items",
		Tags:        []string{"Grocery Lists"},
	}, s.handleGetGroceryList)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteGroceryList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/grocery-lists/{id}",
		Summary:     "Delete grocery list",
		Description: "Deletes a grocery list",
		Tags:        []string{"Grocery Lists"},
	}, s.handleDeleteGroceryList)

	huma.Register(s.api, huma.Operation{
		OperationID: "addRecipeToGroceryList",
		Method:      http.MethodPost,
		Path:        "/api/v1/grocery-lists/{id}/recipes",
		Summary:     "Add recipe",
		Description: "Folds a saved recipe into the list",
		Tags:        []string{"Grocery Lists"},
	}, s.handleAddRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeRecipeFromGroceryList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/grocery-lists/{id}/recipes/{recipeID}",
		Summary:     "Remove recipe",
		Description: "Drops a recipe from the list. Quantities of shared items are not reduced.",
		Tags:        []string{"Grocery Lists"},
	}, s.handleRemoveRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateGroceryListItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/grocery-lists/{id}/items/{itemID}",
		Summary:     "Update item",
		Description: "Edits an item and recomputes its package suggestion",
		Tags:        []string{"Grocery Lists"},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleGroceryListItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/grocery-lists/{id}/items/{itemID}/toggle",
		Summary:     "Toggle item",
		Description: "Flips the checked state of an item",
		Tags:        []string{"Grocery Lists"},
	}, s.handleToggleItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportGroceryList",
		Method:      http.MethodGet,
		Path:        "/api/v1/grocery-lists/{id}/export",
		Summary:     "Export grocery list",
		Description: "Returns the list flattened for ordering integrations",
		Tags:        []string{"Grocery Lists"},
	}, s.handleExportGroceryList)
}

// === DTOs ===

type CreateGroceryListRequest struct {
	Name      string  `json:"name,omitempty" doc:"List name (default: My Grocery List)"`
	RecipeIDs []int64 `json:"recipe_ids" doc:"Recipes to consolidate"`
}

type CreateGroceryListInput struct {
	Body CreateGroceryListRequest
}

type GroceryListIDInput struct {
	ID string `path:"id" doc:"Grocery list ID"`
}

type AddRecipeRequest struct {
	RecipeID int64 `json:"recipe_id" doc:"Recipe to add"`
}

type AddRecipeInput struct {
	ID   string `path:"id" doc:"Grocery list ID"`
	Body AddRecipeRequest
}

type RemoveRecipeInput struct {
	ID       string `path:"id" doc:"Grocery list ID"`
	RecipeID int64  `path:"recipeID" doc:"Recipe ID"`
}

type ItemIDInput struct {
	ID     string `path:"id" doc:"Grocery list ID"`
	ItemID string `path:"itemID" doc:"Item ID"`
}

type UpdateItemRequest struct {
	Name          *string  `json:"name,omitempty" doc:"Display name"`
	Quantity      *float64 `json:"quantity,omitempty" doc:"Amount; requires unit"`
	Unit          *string  `json:"unit,omitempty" doc:"Unit; requires quantity"`
	ClearQuantity bool     `json:"clear_quantity,omitempty" doc:"Make the item a to-taste entry"`
	Category      *string  `json:"category,omitempty" doc:"Store section"`
	IsChecked     *bool    `json:"is_checked,omitempty" doc:"Checked state"`
}

type UpdateItemInput struct {
	ID     string `path:"id" doc:"Grocery list ID"`
	ItemID string `path:"itemID" doc:"Item ID"`
	Body   UpdateItemRequest
}

// LineItemResponse is a consolidated shopping line.
type LineItemResponse struct {
	Name               string   `json:"name" doc:"Display name"`
	Quantity           *float64 `json:"quantity,omitempty" doc:"Combined amount; absent for to-taste items"`
	Unit               string   `json:"unit,omitempty" doc:"Unit of quantity"`
	Category           string   `json:"category" doc:"Store section"`
	RecipeIDs          []int64  `json:"recipe_ids" doc:"Contributing recipes"`
	RetailPackage      string   `json:"retail_package,omitempty" doc:"Suggested package"`
	RetailPackageCount int      `json:"retail_package_count,omitempty" doc:"Number of packages"`
	ExactAmount        string   `json:"exact_amount,omitempty" doc:"Human readable exact amount"`
}

type GroceryListItemResponse struct {
	ID        string `json:"id" doc:"Item ID"`
	IsChecked bool   `json:"is_checked" doc:"Checked state"`
	LineItemResponse
}

type GroceryListResponse struct {
	ID           string                    `json:"id" doc:"Grocery list ID"`
	Name         string                    `json:"name" doc:"List name"`
	RecipeIDs    []int64                   `json:"recipe_ids" doc:"Recipes on the list"`
	Items        []GroceryListItemResponse `json:"items" doc:"Items in list order"`
	ItemCount    int                       `json:"item_count" doc:"Number of items"`
	CheckedCount int                       `json:"checked_count" doc:"Number of checked items"`
	CreatedAt    time.Time                 `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time                 `json:"updated_at" doc:"Last update time"`
}

type GroceryListOutput struct {
	Body GroceryListResponse
}

type ListGroceryListsResponse struct {
	GroceryLists []GroceryListResponse `json:"grocery_lists" doc:"Grocery lists"`
}

type ListGroceryListsOutput struct {
	Body ListGroceryListsResponse
}

type GroceryListItemOutput struct {
	Body GroceryListItemResponse
}

type ExportResponse struct {
	Items []grocery.ExportItem `json:"items" doc:"Flattened items"`
}

type ExportOutput struct {
	Body ExportResponse
}

// === Handlers ===

func (s *Server) handleCreateGroceryList(ctx context.Context, input *CreateGroceryListInput) (*GroceryListOutput, error) {
	list, err := s.services.GroceryList.CreateGroceryList(ctx, service.CreateGroceryListRequest{
		Name:      input.Body.Name,
		RecipeIDs: input.Body.RecipeIDs,
	})
	if err != nil {
		return nil, err
	}
	return &GroceryListOutput{Body: mapGroceryListResponse(list)}, nil
}

func (s *Server) handleListGroceryLists(ctx context.Context, _ *struct{}) (*ListGroceryListsOutput, error) {
	lists, err := s.services.GroceryList.ListGroceryLists(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]GroceryListResponse, len(lists))
	for i, l := range lists {
		resp[i] = mapGroceryListResponse(l)
	}
	return &ListGroceryListsOutput{Body: ListGroceryListsResponse{GroceryLists: resp}}, nil
}

func (s *Server) handleGetGroceryList(ctx context.Context, input *GroceryListIDInput) (*GroceryListOutput, error) {
	list, err := s.services.GroceryList.GetGroceryList(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GroceryListOutput{Body: mapGroceryListResponse(list)}, nil
}

func (s *Server) handleDeleteGroceryList(ctx context.Context, input *GroceryListIDInput) (*struct{}, error) {
	if err := s.services.GroceryList.DeleteGroceryList(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleAddRecipe(ctx context.Context, input *AddRecipeInput) (*GroceryListOutput, error) {
	list, err := s.services.GroceryList.AddRecipe(ctx, input.ID, input.Body.RecipeID)
	if err != nil {
		return nil, err
	}
	return &GroceryListOutput{Body: mapGroceryListResponse(list)}, nil
}

func (s *Server) handleRemoveRecipe(ctx context.Context, input *RemoveRecipeInput) (*GroceryListOutput, error) {
	list, err := s.services.GroceryList.RemoveRecipe(ctx, input.ID, input.RecipeID)
	if err != nil {
		return nil, err
	}
	return &GroceryListOutput{Body: mapGroceryListResponse(list)}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*GroceryListItemOutput, error) {
	item, err := s.services.GroceryList.UpdateItem(ctx, input.ID, input.ItemID, service.UpdateItemRequest{
		Name:          input.Body.Name,
		Quantity:      input.Body.Quantity,
		Unit:          input.Body.Unit,
		ClearQuantity: input.Body.ClearQuantity,
		Category:      input.Body.Category,
		IsChecked:     input.Body.IsChecked,
	})
	if err != nil {
		return nil, err
	}
	return &GroceryListItemOutput{Body: mapItemResponse(*item)}, nil
}

func (s *Server) handleToggleItem(ctx context.Context, input *ItemIDInput) (*GroceryListItemOutput, error) {
	item, err := s.services.GroceryList.ToggleItem(ctx, input.ID, input.ItemID)
	if err != nil {
		return nil, err
	}
	return &GroceryListItemOutput{Body: mapItemResponse(*item)}, nil
}

func (s *Server) handleExportGroceryList(ctx context.Context, input *GroceryListIDInput) (*ExportOutput, error) {
	items, err := s.services.GroceryList.ExportGroceryList(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ExportOutput{Body: ExportResponse{Items: items}}, nil
}

// === Mappers ===

func mapLineItemResponse(li grocery.LineItem) LineItemResponse {
	return LineItemResponse{
		Name:               li.Name,
		Quantity:           li.Quantity,
		Unit:               string(li.Unit),
		Category:           li.Category,
		RecipeIDs:          li.RecipeIDs,
		RetailPackage:      li.RetailPackage,
		RetailPackageCount: li.RetailPackageCount,
		ExactAmount:        li.ExactAmount,
	}
}

func mapItemResponse(it domain.GroceryListItem) GroceryListItemResponse {
	return GroceryListItemResponse{
		ID:               it.ID,
		IsChecked:        it.IsChecked,
		LineItemResponse: mapLineItemResponse(it.LineItem),
	}
}

func mapGroceryListResponse(l *domain.GroceryList) GroceryListResponse {
	items := make([]GroceryListItemResponse, len(l.Items))
	for i, it := range l.Items {
		items[i] = mapItemResponse(it)
	}
	recipeIDs := l.RecipeIDs
	if recipeIDs == nil {
		recipeIDs = []int64{}
	}
	return GroceryListResponse{
		ID:           l.ID,
		Name:         l.Name,
		RecipeIDs:    recipeIDs,
		Items:        items,
		ItemCount:    len(items),
		CheckedCount: l.Checked(),
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
