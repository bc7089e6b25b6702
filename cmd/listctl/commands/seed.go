package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CyberCatD/youtube-to-list-app/internal/config"
	"github.com/CyberCatD/youtube-to-list-app/internal/di/providers"
	domainerrors "github.com/CyberCatD/youtube-to-list-app/internal/errors"
	"github.com/CyberCatD/youtube-to-list-app/internal/service"
)

func seedCmd(opts *options) *cobra.Command {
	var (
		driver   string
		dataPath string
		listName string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample recipes into a store",
		Long: `Saves a handful of sample recipes and, with --list, a grocery list built
from them. Recipes already imported from the same source are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dataPath == "" {
				dataPath = os.Getenv("DATA_PATH")
			}
			if dataPath == "" {
				return fmt.Errorf("--data-path or DATA_PATH is required")
			}

			s, path, err := providers.OpenStore(config.StoreConfig{Driver: driver, Path: dataPath}, opts.log)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			recipes := service.NewRecipeService(s, opts.log.Component("recipes").Logger)
			out := cmd.OutOrStdout()

			var ids []int64
			for _, req := range sampleRecipes() {
				r, err := recipes.CreateRecipe(ctx, req)
				if domainerrors.Is(err, domainerrors.ErrConflict) {
					fmt.Fprintf(out, "skipped %q: already imported\n", req.Name)
					continue
				}
				if err != nil {
					return fmt.Errorf("seed %q: %w", req.Name, err)
				}
				ids = append(ids, r.ID)
				fmt.Fprintf(out, "created recipe %d %q\n", r.ID, r.Name)
			}

			if listName != "" && len(ids) > 0 {
				lists := service.NewGroceryListService(s, opts.consolidator, opts.log.Component("grocery_lists").Logger)
				list, err := lists.CreateGroceryList(ctx, service.CreateGroceryListRequest{Name: listName, RecipeIDs: ids})
				if err != nil {
					return fmt.Errorf("seed list: %w", err)
				}
				fmt.Fprintf(out, "created grocery list %s %q with %d items\n", list.ID, list.Name, len(list.Items))
			}

			fmt.Fprintf(out, "seeded %d recipes into %s\n", len(ids), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "store-driver", config.DriverBadger, "store driver (badger, sqlite)")
	cmd.Flags().StringVar(&dataPath, "data-path", "", "directory for store data (default: $DATA_PATH)")
	cmd.Flags().StringVar(&listName, "list", "", "also create a grocery list with this name")
	return cmd
}

func qty(f float64) *float64 { return &f }

func sampleRecipes() []service.CreateRecipeRequest {
	return []service.CreateRecipeRequest{
		{
			Name:      "Buttermilk Pancakes",
			SourceURL: "https://www.youtube.com/watch?v=pancakes101",
			Ingredients: []service.IngredientRequest{
				{Name: "all-purpose flour", Quantity: qty(2), Unit: "cups"},
				{Name: "buttermilk", Quantity: qty(2), Unit: "cups"},
				{Name: "eggs", Quantity: qty(2)},
				{Name: "unsalted butter, melted", Quantity: qty(3), Unit: "tbsp"},
				{Name: "sugar", Quantity: qty(2), Unit: "tbsp"},
				{Name: "salt"},
			},
		},
		{
			Name:      "Weeknight Tomato Pasta",
			SourceURL: "https://www.youtube.com/watch?v=pasta202",
			Ingredients: []service.IngredientRequest{
				{Name: "spaghetti", Quantity: qty(1), Unit: "lb"},
				{Name: "olive oil", Quantity: qty(3), Unit: "tablespoons"},
				{Name: "garlic cloves, minced", Quantity: qty(4)},
				{Name: "crushed tomatoes", Quantity: qty(28), Unit: "oz"},
				{Name: "fresh basil", Quantity: qty(0.5), Unit: "cup"},
				{Name: "salt"},
				{Name: "black pepper", Unit: "pinch"},
			},
		},
		{
			Name:      "Corn Chowder",
			SourceURL: "https://www.youtube.com/watch?v=chowder303",
			Ingredients: []service.IngredientRequest{
				{Name: "butter", Quantity: qty(2), Unit: "tbsp"},
				{Name: "yellow onion, diced", Quantity: qty(1)},
				{Name: "milk", Quantity: qty(3), Unit: "cups"},
				{Name: "potatoes", Quantity: qty(1), Unit: "lb"},
				{Name: "olive oil", Quantity: qty(1), Unit: "tbsp"},
				{Name: "salt"},
			},
		},
	}
}
