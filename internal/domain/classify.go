package domain

import "strings"

// familyTokens maps lowercase material tokens to their polymer family.
// Lookup happens per token, first hit wins.
var familyTokens = map[string]MaterialFamily{
	"pla":      FamilyPLA,
	"pet":      FamilyPETCopolyester,
	"petg":     FamilyPETCopolyester,
	"pctg":     FamilyPETCopolyester,
	"cpe":      FamilyPETCopolyester,
	"ngen":     FamilyPETCopolyester,
	"abs":      FamilyStyrenics,
	"asa":      FamilyStyrenics,
	"hips":     FamilyStyrenics,
	"pc":       FamilyPolycarbonate,
	"pa":       FamilyPolyamide,
	"nylon":    FamilyPolyamide,
	"tpu":      FamilyFlexibleTPE,
	"tpe":      FamilyFlexibleTPE,
	"tpc":      FamilyFlexibleTPE,
	"pp":       FamilyPolypropylene,
	"pmma":     FamilyAcrylic,
	"acrylic":  FamilyAcrylic,
	"pom":      FamilyAcetal,
	"acetal":   FamilyAcetal,
	"peek":     FamilyPAEK,
	"pekk":     FamilyPAEK,
	"pei":      FamilyPEI,
	"ultem":    FamilyPEI,
	"pps":      FamilySulfone,
	"ppsu":     FamilySulfone,
	"pva":      FamilyWaterSoluble,
	"bvoh":     FamilyWaterSoluble,
}

// additiveTokens maps lowercase tokens to additive flags
var additiveTokens = map[string]Additive{
	"cf":             AdditiveCarbonFiber,
	"carbon":         AdditiveCarbonFiber,
	"gf":             AdditiveGlassFiber,
	"glass":          AdditiveGlassFiber,
	"aramid":         AdditiveAramidFiber,
	"kevlar":         AdditiveAramidFiber,
	"basalt":         AdditiveBasaltFiber,
	"metal":          AdditiveMetalFilled,
	"steel":          AdditiveMetalFilled,
	"bronze":         AdditiveMetalFilled,
	"copper":         AdditiveMetalFilled,
	"wood":           AdditiveWood,
	"ceramic":        AdditiveCeramic,
	"stone":          AdditiveStone,
	"marble":         AdditiveStone,
	"magnetic":       AdditiveMagneticIron,
	"glow":           AdditivePhosphorescent,
	"phosphorescent": AdditivePhosphorescent,
	"luminous":       AdditivePhosphorescent,
	"conductive":     AdditiveConductive,
	"esd":            AdditiveESDSafe,
	"graphene":       AdditiveGraphene,
	"nanotube":       AdditiveCarbonNanotube,
	"glitter":        AdditiveGlitter,
	"sparkle":        AdditiveGlitter,
}

// ClassifyFamily maps a free-text material description ("PLA+", "PA6-CF",
// "PETG") to a polymer family. PC-ABS blends classify as styrenics before
// tokenization would see the PC token.
func ClassifyFamily(s string) MaterialFamily {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return FamilyUnknown
	}

	if strings.Contains(lower, "pc-abs") || strings.Contains(lower, "pc/abs") {
		return FamilyStyrenics
	}

	for _, token := range splitTokens(lower) {
		if family, ok := familyTokens[token]; ok {
			return family
		}
		// PA6, PA12, PC10 and friends carry a grade suffix
		if trimmed := strings.TrimRight(token, "0123456789"); trimmed != token {
			if family, ok := familyTokens[trimmed]; ok {
				return family
			}
		}
	}

	return FamilyUnknown
}

// ClassifyAdditives scans description strings for reinforcement/effect
// tokens and ORs the matching flags together
func ClassifyAdditives(fields ...string) Additive {
	additives := AdditiveNone
	for _, field := range fields {
		for _, token := range splitTokens(strings.ToLower(field)) {
			if flag, ok := additiveTokens[token]; ok {
				additives |= flag
			}
		}
	}
	return additives
}

// ClassifyOpacity maps color/description text to an opacity
func ClassifyOpacity(fields ...string) Opacity {
	for _, field := range fields {
		lower := strings.ToLower(field)
		switch {
		case strings.Contains(lower, "transparent") || strings.Contains(lower, "clear"):
			return OpacityTransparent
		case strings.Contains(lower, "translucent"):
			return OpacityTranslucent
		}
	}

	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			return OpacityOpaque
		}
	}
	return OpacityUnknown
}

// ClassifyFinish maps name/description text to a surface finish
func ClassifyFinish(fields ...string) Finish {
	for _, field := range fields {
		lower := strings.ToLower(field)
		switch {
		case strings.Contains(lower, "matte") || strings.Contains(lower, "matt "):
			return FinishMatte
		case strings.Contains(lower, "silk"):
			return FinishSilk
		case strings.Contains(lower, "glitter") || strings.Contains(lower, "sparkle"):
			return FinishSparkle
		case strings.Contains(lower, "textured"):
			return FinishTextured
		case strings.Contains(lower, "gloss"):
			return FinishGlossy
		}
	}
	return FinishUnknown
}

// splitTokens breaks a lowercase string on anything that is not a letter
// or digit
func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		letter := r >= 'a' && r <= 'z'
		digit := r >= '0' && r <= '9'
		return !letter && !digit
	})
}
