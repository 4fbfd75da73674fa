package provider

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/spoolscan/backend/internal/domain"
)

// EANSearchBaseURL is the default search endpoint for the ean-search
// page shape
const EANSearchBaseURL = "https://www.ean-search.org/"

// Field label candidates for the ean-search result table
var (
	eanSearchNameLabels     = []string{"Product name", "Product", "Name", "Description", "Title"}
	eanSearchBrandLabels    = []string{"Brand", "Manufacturer", "Company", "Issuer", "Producent", "Maker"}
	eanSearchCategoryLabels = []string{"Category", "Group", "Type"}
)

// EANSearchExtractor derives product fields from the ean-search result
// page shape
type EANSearchExtractor struct{}

// NewEANSearchExtractor creates an extractor for the ean-search page shape
func NewEANSearchExtractor() *EANSearchExtractor {
	return &EANSearchExtractor{}
}

// Extract runs the layered fallback chain for ean-search pages: the result
// table, then headings, then the free-text scan, then the result anchor
// that links the barcode. Later rules exist for pages where the earlier
// ones have failed, so the order is load-bearing. Returns nil only for
// empty/whitespace input.
func (e *EANSearchExtractor) Extract(rawHTML string, barcode domain.Barcode) *domain.ExtractedInfo {
	if strings.TrimSpace(rawHTML) == "" {
		return nil
	}

	doc := parseDocument(rawHTML)
	if doc == nil {
		return nil
	}

	fields := extractTableFields(doc)

	productName := findField(fields, eanSearchNameLabels...)
	if productName == "" {
		productName = extractHeadline(doc)
	}
	if productName == "" {
		productName = bestCandidateLine(rawHTML, barcode.Digits)
	}
	if productName == "" {
		productName = extractBarcodeAnchorText(doc, barcode.Digits)
	}

	brand := findField(fields, eanSearchBrandLabels...)
	if brand == "" && productName != "" {
		brand = deriveBrand(productName)
	}

	return &domain.ExtractedInfo{
		Barcode:     barcode.Digits,
		Kind:        barcode.Kind,
		ProductName: productName,
		Brand:       brand,
		Category:    findField(fields, eanSearchCategoryLabels...),
		Fields:      fields,
	}
}

// extractHeadline tries the primary heading, then a secondary heading
// carrying the product-name class, then any secondary heading
func extractHeadline(doc *goquery.Document) string {
	for _, selector := range []string{"h1", "h2.product-name", "h2"} {
		if text := cleanText(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractBarcodeAnchorText finds a result anchor whose target embeds the
// barcode and uses its inner text
func extractBarcodeAnchorText(doc *goquery.Document, digits string) string {
	if digits == "" {
		return ""
	}
	selector := fmt.Sprintf(`a[href="/ean/%s"]`, digits)
	return cleanText(doc.Find(selector).First().Text())
}
