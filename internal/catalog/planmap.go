package catalog

import "strings"

// planOverrides maps exact item_price_ids to products. Checked before the
// prefix fallback; add an entry here whenever an item price doesn't follow
// the naming convention.
var planOverrides = map[string]ProductKey{}

// ProductFromItemPriceID maps a provider item_price_id (e.g.
// "JIRA-Standard-USD-Monthly") to a product. Returns ("", false) for ids
// belonging to no known product.
func ProductFromItemPriceID(itemPriceID string) (ProductKey, bool) {
	if product, ok := planOverrides[itemPriceID]; ok {
		return product, true
	}

	upper := strings.ToUpper(itemPriceID)
	switch {
	case strings.HasPrefix(upper, "JIRA"):
		return ProductJira, true
	case strings.HasPrefix(upper, "CONF"):
		return ProductConfluence, true
	case strings.HasPrefix(upper, "LOOM"):
		return ProductLoom, true
	case strings.Contains(upper, "PACKAGE"), strings.Contains(upper, "BUNDLE"):
		return ProductPackage, true
	}
	return "", false
}
