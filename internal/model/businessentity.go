package model

import "strings"

// Region is the short regional code shown to merchants. The billing provider
// knows nothing about these codes; it keys customers by business entity id.
type Region string

const (
	RegionUS Region = "us"
	RegionEU Region = "eu"
)

// Chargebee business entity ids (source of truth). The UI shows "US"/"EU",
// but every API call to the provider must carry one of these ids.
var businessEntityIDByRegion = map[Region]string{
	RegionUS: "AzyeBNVANOcnj1ND2",
	RegionEU: "EU",
}

// BusinessEntityID maps a regional code to the provider's business entity id.
// Inputs that are not a known region are passed through unchanged so that
// callers may supply a raw business entity id directly.
func BusinessEntityID(region string) string {
	if id, ok := businessEntityIDByRegion[Region(strings.ToLower(region))]; ok {
		return id
	}
	return region
}

// RegionFromBusinessEntityID is the reverse mapping. It also recognizes the
// literal "US"/"EU" markers older customers were created with. Returns "" when
// the id matches neither table.
func RegionFromBusinessEntityID(id string) Region {
	for region, beID := range businessEntityIDByRegion {
		if id == beID {
			return region
		}
	}
	switch strings.ToUpper(id) {
	case "US":
		return RegionUS
	case "EU":
		return RegionEU
	}
	return ""
}
