package providers

import (
	"github.com/samber/do/v2"

	"github.com/CyberCatD/youtube-to-list-app/internal/config"
	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/logger"
	"github.com/CyberCatD/youtube-to-list-app/internal/retail"
	"github.com/CyberCatD/youtube-to-list-app/internal/service"
)

// ProvideConsolidator provides the consolidation engine for the configured
// retail market.
func ProvideConsolidator(i do.Injector) (*grocery.Consolidator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	catalog, err := retail.ForMarket(cfg.Retail.Market)
	if err != nil {
		return nil, err
	}
	return grocery.New(catalog, log.Component("grocery").Logger), nil
}

// ProvideRecipeService provides the recipe service.
func ProvideRecipeService(i do.Injector) (*service.RecipeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecipeService(storeHandle.Store, log.Component("recipes").Logger), nil
}

// ProvideGroceryListService provides the grocery list service.
func ProvideGroceryListService(i do.Injector) (*service.GroceryListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	consolidator := do.MustInvoke[*grocery.Consolidator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGroceryListService(storeHandle.Store, consolidator, log.Component("grocery_lists").Logger), nil
}
