package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/CyberCatD/youtube-to-list-app/internal/ingredient"
	"github.com/CyberCatD/youtube-to-list-app/internal/retail"
)

func (s *Server) registerReferenceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List store sections",
		Description: "Returns every store section label in the order lists are grouped by",
		Tags:        []string{"Reference"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRetailPackages",
		Method:      http.MethodGet,
		Path:        "/api/v1/retail/packages",
		Summary:     "List retail packages",
		Description: "Returns the package catalog of the configured retail market",
		Tags:        []string{"Reference"},
	}, s.handleListRetailPackages)
}

// === DTOs ===

type CategoriesResponse struct {
	Categories []string `json:"categories" doc:"Store section labels, ending with Other"`
}

type CategoriesOutput struct {
	Body CategoriesResponse
}

type RetailEntryResponse struct {
	Key      string           `json:"key" doc:"Substring matched against ingredient names"`
	Family   string           `json:"family" doc:"Unit family of package sizes: volume, weight or count"`
	Packages []retail.Package `json:"packages" doc:"Packages ascending by size, in milliliters, grams or a plain count"`
}

type RetailPackagesResponse struct {
	Market  string                `json:"market" doc:"Retail market code"`
	Markets []string              `json:"markets" doc:"Supported market codes"`
	Entries []RetailEntryResponse `json:"entries" doc:"Catalog entries in lookup order"`
}

type RetailPackagesOutput struct {
	Body RetailPackagesResponse
}

// === Handlers ===

func (s *Server) handleListCategories(_ context.Context, _ *struct{}) (*CategoriesOutput, error) {
	return &CategoriesOutput{Body: CategoriesResponse{Categories: ingredient.Categories()}}, nil
}

func (s *Server) handleListRetailPackages(_ context.Context, _ *struct{}) (*RetailPackagesOutput, error) {
	entries := s.services.GroceryList.Packages()
	resp := RetailPackagesResponse{
		Market:  s.services.GroceryList.Market(),
		Markets: retail.Markets(),
		Entries: make([]RetailEntryResponse, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = RetailEntryResponse{Key: e.Key, Family: e.Family.String(), Packages: e.Packages}
	}
	return &RetailPackagesOutput{Body: resp}, nil
}
