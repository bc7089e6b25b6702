package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/service"
)

func consolidateCmd(opts *options) *cobra.Command {
	var (
		asJSON bool
		export bool
	)

	cmd := &cobra.Command{
		Use:   "consolidate FILE",
		Short: "Consolidate recipes from a JSON file without saving them",
		Long: `Reads {"recipes": [...]} from FILE ("-" for stdin) and prints the
consolidated shopping list. Recipes without an id are numbered from 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readPreviewRequest(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			// Preview never touches the store.
			lists := service.NewGroceryListService(nil, opts.consolidator, opts.log.Logger)
			items, err := lists.Preview(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case export:
				return writeJSON(out, grocery.Export(items))
			case asJSON:
				return writeJSON(out, items)
			default:
				return writeTable(out, items)
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print line items as JSON")
	cmd.Flags().BoolVar(&export, "export", false, "print the ordering export as JSON")
	return cmd
}

func readPreviewRequest(stdin io.Reader, path string) (service.PreviewRequest, error) {
	var req service.PreviewRequest

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("open recipes: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("decode recipes: %w", err)
	}
	return req, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, items []grocery.LineItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tAMOUNT\tCATEGORY\tPACKAGE\tRECIPES")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.Name, formatAmount(item), item.Category, formatPackage(item), formatRecipeIDs(item.RecipeIDs))
	}
	return tw.Flush()
}

func formatAmount(item grocery.LineItem) string {
	if item.Quantity == nil {
		return "to taste"
	}
	return strings.TrimSpace(strconv.FormatFloat(*item.Quantity, 'f', -1, 64) + " " + string(item.Unit))
}

func formatPackage(item grocery.LineItem) string {
	switch {
	case item.RetailPackage == "":
		return "-"
	case item.RetailPackageCount > 1:
		return fmt.Sprintf("%d x %s", item.RetailPackageCount, item.RetailPackage)
	default:
		return item.RetailPackage
	}
}

func formatRecipeIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
