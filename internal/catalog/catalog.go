// Package catalog holds the fixed product and region catalog the dashboard
// sells from. The provider's item prices are created out of band; this table
// only carries what the dashboard needs to render and route checkout.
package catalog

import "github.com/edvin/alloy/internal/model"

type ProductKey string

const (
	ProductJira       ProductKey = "jira"
	ProductConfluence ProductKey = "confluence"
	ProductLoom       ProductKey = "loom"
	ProductPackage    ProductKey = "package"
)

type Product struct {
	Key        ProductKey `json:"key"`
	Label      string     `json:"label"`
	Tagline    string     `json:"tagline"`
	PricingURL string     `json:"pricing_url"`
}

type RegionInfo struct {
	Key         model.Region `json:"key"`
	Label       string       `json:"label"`
	LegalEntity string       `json:"legal_entity"`
	Office      string       `json:"office"`
	Currencies  []string     `json:"currencies"`
}

var Products = []Product{
	{Key: ProductJira, Label: "Jira", Tagline: "Product development lifecycle management", PricingURL: "https://www.atlassian.com/software/jira/pricing"},
	{Key: ProductConfluence, Label: "Confluence", Tagline: "Document management", PricingURL: "https://www.atlassian.com/software/confluence/pricing"},
	{Key: ProductLoom, Label: "Loom", Tagline: "Video management", PricingURL: "https://www.atlassian.com/software/loom/pricing"},
	{Key: ProductPackage, Label: "Alloy", Tagline: "All products bundle (priced at 150% of Jira pricing)", PricingURL: "https://www.atlassian.com/software/jira/pricing"},
}

var Regions = []RegionInfo{
	{Key: model.RegionUS, Label: "US", LegalEntity: "Atlassiancom", Office: "San Francisco (SF)", Currencies: []string{"USD"}},
	{Key: model.RegionEU, Label: "EU", LegalEntity: "Atlassian.EU", Office: "Paris", Currencies: []string{"EUR", "GBP"}},
}
