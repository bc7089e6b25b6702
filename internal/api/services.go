package api

import "github.com/CyberCatD/youtube-to-list-app/internal/service"

// Services groups the business logic services used by the API server.
type Services struct {
	Recipe      *service.RecipeService
	GroceryList *service.GroceryListService
}
