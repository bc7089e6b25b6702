package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
)

const recipesJSON = `{"recipes": [
	{"name": "Dressing", "ingredients": [
		{"name": "olive oil", "quantity": 4, "unit": "tbsp"},
		{"name": "salt", "quantity": 1, "unit": "tsp"}
	]},
	{"name": "Roast", "ingredients": [
		{"name": "olive oil", "quantity": 3, "unit": "tablespoons"}
	]}
]}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func writeRecipes(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(recipesJSON), 0o600))
	return path
}

func TestConsolidate_Table(t *testing.T) {
	out, err := run(t, "", "consolidate", writeRecipes(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ITEM"))

	assert.Contains(t, lines[1], "Olive oil")
	assert.Contains(t, lines[1], "7 ")
	assert.Contains(t, lines[1], "17 oz bottle")
	assert.Contains(t, lines[1], "1,2")

	assert.Contains(t, lines[2], "Salt")
	assert.Contains(t, lines[2], "to taste")
}

func TestConsolidate_JSONFromStdin(t *testing.T) {
	out, err := run(t, recipesJSON, "consolidate", "--json", "-")
	require.NoError(t, err)

	var items []grocery.LineItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Quantity)
	assert.InDelta(t, 7.0, *items[0].Quantity, 1e-9)
	assert.Equal(t, []int64{1, 2}, items[0].RecipeIDs)
	assert.Nil(t, items[1].Quantity)
}

func TestConsolidate_Export(t *testing.T) {
	out, err := run(t, "", "consolidate", "--export", writeRecipes(t))
	require.NoError(t, err)

	var export []grocery.ExportItem
	require.NoError(t, json.Unmarshal([]byte(out), &export))
	require.Len(t, export, 2)
	assert.Equal(t, "olive oil", export[0].Name)
	assert.Equal(t, "17 oz bottle", export[0].SuggestedPackage)
}

func TestConsolidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"missing file", "", []string{"consolidate", filepath.Join(t.TempDir(), "nope.json")}},
		{"bad json", "{", []string{"consolidate", "-"}},
		{"blank ingredient", `{"recipes":[{"ingredients":[{"name":" "}]}]}`, []string{"consolidate", "-"}},
		{"unknown market", recipesJSON, []string{"--market", "JP", "consolidate", "-"}},
		{"no file argument", "", []string{"consolidate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSeed(t *testing.T) {
	for _, driver := range []string{"badger", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			dir := t.TempDir()

			out, err := run(t, "", "seed", "--store-driver", driver, "--data-path", dir, "--list", "This week")
			require.NoError(t, err)
			assert.Contains(t, out, `created recipe 1 "Buttermilk Pancakes"`)
			assert.Contains(t, out, `created grocery list`)
			assert.Contains(t, out, "seeded 3 recipes")

			// Sources are unique, so a second run saves nothing.
			out, err = run(t, "", "seed", "--store-driver", driver, "--data-path", dir)
			require.NoError(t, err)
			assert.Equal(t, 3, strings.Count(out, "skipped"))
			assert.Contains(t, out, "seeded 0 recipes")
		})
	}
}

func TestSeed_RequiresDataPath(t *testing.T) {
	t.Setenv("DATA_PATH", "")
	_, err := run(t, "", "seed")
	assert.Error(t, err)
}
