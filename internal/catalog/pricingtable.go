package catalog

import (
	"fmt"

	"github.com/edvin/alloy/internal/model"
)

// PricingTable identifies the hosted pricing page used to check out one
// product in one region.
type PricingTable struct {
	SiteID                string `json:"site_id"`
	PricingPageID         string `json:"pricing_page_id"`
	ViewportDefaultHeight string `json:"viewport_default_height,omitempty"`
}

const siteID = "01KGMYNNDETQJPZPFPBBV1WATN"

var packageTable = PricingTable{SiteID: siteID, PricingPageID: "01KGMZ9F5F881GAS44AYP19WCB", ViewportDefaultHeight: "992px"}

// pricingTables keys pricing pages by region then product. Both regions share
// the same pages today; the table keeps the region dimension so they can
// diverge without an API change.
var pricingTables = map[model.Region]map[ProductKey]PricingTable{
	model.RegionUS: {
		ProductJira:       {SiteID: siteID, PricingPageID: "01KGMZ5GR7A05EXMCD2F36TC0M", ViewportDefaultHeight: "992px"},
		ProductConfluence: {SiteID: siteID, PricingPageID: "01KGMZ7A1TYW2NJ7GGA0YRYJH0", ViewportDefaultHeight: "992px"},
		ProductLoom:       {SiteID: siteID, PricingPageID: "01KGMYSKVQCEDDYHFNXETJSQP7", ViewportDefaultHeight: "992px"},
		ProductPackage:    packageTable,
	},
	model.RegionEU: {
		ProductJira:       {SiteID: siteID, PricingPageID: "01KGMZ5GR7A05EXMCD2F36TC0M", ViewportDefaultHeight: "992px"},
		ProductConfluence: {SiteID: siteID, PricingPageID: "01KGMZ7A1TYW2NJ7GGA0YRYJH0", ViewportDefaultHeight: "992px"},
		ProductLoom:       {SiteID: siteID, PricingPageID: "01KGMYSKVQCEDDYHFNXETJSQP7", ViewportDefaultHeight: "992px"},
		ProductPackage:    packageTable,
	},
}

// PricingTableFor returns the pricing table for a product in a region.
func PricingTableFor(region model.Region, product ProductKey) (PricingTable, bool) {
	table, ok := pricingTables[region][product]
	return table, ok
}

// HostedPricingPageURL builds the hosted pricing page URL for a table.
func HostedPricingPageURL(table PricingTable) string {
	return fmt.Sprintf("https://hosted.atomicpricing.com/sites/%s/pricing/%s", table.SiteID, table.PricingPageID)
}
