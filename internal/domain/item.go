package domain

import "strings"

// CatalogItemKind tags which record a CatalogItem carries
type CatalogItemKind string

const (
	ItemManufacturer CatalogItemKind = "manufacturer"
	ItemMaterial     CatalogItemKind = "material"
	ItemCarrier      CatalogItemKind = "carrier"
)

// CatalogItem is a tagged union over the three browsable record kinds.
// Exactly one of the pointers matching Kind is set; consumers dispatch on
// the tag instead of type-switching.
type CatalogItem struct {
	Kind         CatalogItemKind `json:"kind"`
	Manufacturer *Manufacturer   `json:"manufacturer,omitempty"`
	Material     *Material       `json:"material,omitempty"`
	Carrier      *Carrier        `json:"carrier,omitempty"`
}

// ManufacturerItem wraps a manufacturer record
func ManufacturerItem(m *Manufacturer) CatalogItem {
	return CatalogItem{Kind: ItemManufacturer, Manufacturer: m}
}

// MaterialItem wraps a material record
func MaterialItem(m *Material) CatalogItem {
	return CatalogItem{Kind: ItemMaterial, Material: m}
}

// CarrierItem wraps a carrier record
func CarrierItem(c *Carrier) CatalogItem {
	return CatalogItem{Kind: ItemCarrier, Carrier: c}
}

// Label returns the display string for the wrapped record
func (i CatalogItem) Label() string {
	switch i.Kind {
	case ItemManufacturer:
		if i.Manufacturer != nil {
			return i.Manufacturer.Name
		}
	case ItemMaterial:
		if i.Material != nil {
			return strings.TrimSpace(i.Material.Manufacturer + " " + i.Material.Name)
		}
	case ItemCarrier:
		if i.Carrier != nil {
			return strings.TrimSpace(i.Carrier.Manufacturer + " " + i.Carrier.SpoolType)
		}
	}
	return ""
}

// MatchesSearch reports whether the wrapped record matches a
// case-insensitive substring query
func (i CatalogItem) MatchesSearch(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	switch i.Kind {
	case ItemManufacturer:
		if i.Manufacturer == nil {
			return false
		}
		if containsFold(i.Manufacturer.Name, query) {
			return true
		}
		for _, alias := range i.Manufacturer.Aliases {
			if containsFold(alias, query) {
				return true
			}
		}
		return false
	case ItemMaterial:
		if i.Material == nil {
			return false
		}
		return containsFold(i.Material.Name, query) ||
			containsFold(i.Material.Manufacturer, query) ||
			containsFold(i.Material.Color, query) ||
			containsFold(i.Material.Notes, query)
	case ItemCarrier:
		if i.Carrier == nil {
			return false
		}
		return containsFold(i.Carrier.SpoolType, query) ||
			containsFold(i.Carrier.Manufacturer, query)
	}
	return false
}

// containsFold reports whether s contains lowercased substr, ignoring case
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
