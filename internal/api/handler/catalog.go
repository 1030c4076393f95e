package handler

import (
	"net/http"

	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/catalog"
	"github.com/edvin/alloy/internal/model"
)

type Catalog struct{}

func NewCatalog() *Catalog {
	return &Catalog{}
}

type catalogPricingEntry struct {
	Product catalog.ProductKey   `json:"product"`
	Table   catalog.PricingTable `json:"table"`
	URL     string               `json:"url"`
}

// Get serves the fixed product and region catalog plus the pricing tables
// for each region.
func (h *Catalog) Get(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := requireSession(w, r); !ok {
		return
	}

	pricing := map[model.Region][]catalogPricingEntry{}
	for _, region := range []model.Region{model.RegionUS, model.RegionEU} {
		for _, product := range []catalog.ProductKey{catalog.ProductJira, catalog.ProductConfluence, catalog.ProductLoom, catalog.ProductPackage} {
			table, found := catalog.PricingTableFor(region, product)
			if !found {
				continue
			}
			pricing[region] = append(pricing[region], catalogPricingEntry{
				Product: product,
				Table:   table,
				URL:     catalog.HostedPricingPageURL(table),
			})
		}
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"products":  catalog.Products,
		"regions":   catalog.Regions,
		"pricing":   pricing,
		"requestId": requestID(r),
	})
}
