package domain

import "time"

// MaterialFamily tags the polymer family a material belongs to
type MaterialFamily string

const (
	FamilyUnknown         MaterialFamily = "unknown"
	FamilyPLA             MaterialFamily = "pla"
	FamilyPETCopolyester  MaterialFamily = "pet-copolyester" // PET, PETG, PCTG, CPE
	FamilyStyrenics       MaterialFamily = "styrenics"       // ABS, ASA, HIPS, PC-ABS
	FamilyPolycarbonate   MaterialFamily = "polycarbonate"
	FamilyPolyamide       MaterialFamily = "polyamide" // PA (Nylon)
	FamilyFlexibleTPE     MaterialFamily = "flexible-tpe"
	FamilyPolypropylene   MaterialFamily = "polypropylene"
	FamilyAcrylic         MaterialFamily = "acrylic"
	FamilyAcetal          MaterialFamily = "acetal"
	FamilyPAEK            MaterialFamily = "paek" // PEEK, PEKK
	FamilyPEI             MaterialFamily = "pei"
	FamilySulfone         MaterialFamily = "sulfone" // PPS, PPSU
	FamilyWaterSoluble    MaterialFamily = "water-soluble"
)

// Additive is a bitset of independent reinforcement/effect flags.
// Zero means no additives.
type Additive uint32

const (
	AdditiveCarbonFiber Additive = 1 << iota
	AdditiveGlassFiber
	AdditiveAramidFiber
	AdditiveBasaltFiber
	AdditiveMetalFilled
	AdditiveWood
	AdditiveCeramic
	AdditiveStone
	AdditiveMagneticIron
	AdditivePhosphorescent
	AdditiveConductive
	AdditiveESDSafe
	AdditiveGraphene
	AdditiveCarbonNanotube
	AdditiveGlitter
)

// AdditiveNone is the empty additive set
const AdditiveNone Additive = 0

// Has reports whether every flag in mask is set
func (a Additive) Has(mask Additive) bool {
	return a&mask == mask
}

// Opacity describes how much light a material lets through
type Opacity string

const (
	OpacityUnknown     Opacity = "unknown"
	OpacityOpaque      Opacity = "opaque"
	OpacityTranslucent Opacity = "translucent"
	OpacityTransparent Opacity = "transparent"
)

// Finish describes the surface appearance of a material
type Finish string

const (
	FinishUnknown  Finish = "unknown"
	FinishMatte    Finish = "matte"
	FinishGlossy   Finish = "glossy"
	FinishSilk     Finish = "silk"
	FinishSparkle  Finish = "sparkle"
	FinishTextured Finish = "textured"
)

// Manufacturer is a catalog manufacturer keyed by a stable slug
type Manufacturer struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country,omitempty"`
	Website string   `json:"website,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

// Material is a catalog filament entry. DiameterMM is always positive for
// stored rows; DensityGCM3 and GlassTransitionC are zero when unknown.
type Material struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Family           MaterialFamily `json:"family"`
	Additives        Additive       `json:"additives"`
	Color            string         `json:"color,omitempty"`
	Opacity          Opacity        `json:"opacity"`
	Finish           Finish         `json:"finish"`
	Manufacturer     string         `json:"manufacturer,omitempty"`
	DiameterMM       float64        `json:"diameterMm"`
	DensityGCM3      float64        `json:"densityGCm3,omitempty"`
	GlassTransitionC int            `json:"glassTransitionC,omitempty"`
	Notes            string         `json:"notes,omitempty"`
}

// Carrier is a physical spool/coil descriptor
type Carrier struct {
	ID               string  `json:"id"`
	SpoolType        string  `json:"spoolType"`
	EmptyWeightGrams int     `json:"emptyWeightGrams"`
	Manufacturer     string  `json:"manufacturer,omitempty"`
	SpoolRadiusMM    float64 `json:"spoolRadiusMm,omitempty"`
	SpoolHubRadiusMM float64 `json:"spoolHubRadiusMm,omitempty"`
	SpoolHeightMM    float64 `json:"spoolHeightMm,omitempty"`
	HighTemp         bool    `json:"highTemp"`
}

// SpoolMapping is the persisted link between a barcode and a resolved
// material/carrier pair. At most one mapping exists per distinct barcode
// value. Material and Carrier are hydrated copies resolved at read time;
// a dangling id hydrates to a stub holding only that id.
type SpoolMapping struct {
	ID            string      `json:"id"`
	Barcode       string      `json:"barcode"`
	BarcodeKind   BarcodeKind `json:"barcodeKind"`
	MaterialID    string      `json:"materialId"`
	CarrierID     string      `json:"carrierId,omitempty"`
	Manufacturer  string      `json:"manufacturer,omitempty"`
	LastUpdatedAt time.Time   `json:"lastUpdatedAt"`

	Material *Material `json:"material,omitempty"`
	Carrier  *Carrier  `json:"carrier,omitempty"`
}

// ExtractedInfo is the transient record produced by a field extractor.
// It lives for one lookup call and is never persisted.
type ExtractedInfo struct {
	Barcode     string
	Kind        BarcodeKind
	ProductName string
	Brand       string
	Category    string
	Fields      map[string]string
}

// LookupResult is the structured outcome of a barcode lookup. Terminal
// conditions set ErrorMessage instead of escaping as errors.
type LookupResult struct {
	Barcode      string      `json:"barcode"`
	Kind         BarcodeKind `json:"kind"`
	ProductName  string      `json:"productName,omitempty"`
	Brand        string      `json:"brand,omitempty"`
	Category     string      `json:"category,omitempty"`
	Material     *Material   `json:"material,omitempty"`
	AddedMapping bool        `json:"addedMapping"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
}
