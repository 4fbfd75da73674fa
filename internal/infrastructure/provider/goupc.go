package provider

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/spoolscan/backend/internal/domain"
)

// GoUPCBaseURL is the default search endpoint for the go-upc page shape
const GoUPCBaseURL = "https://go-upc.com/search"

// Field label candidates for the go-upc product table
var (
	goUPCNameLabels     = []string{"Product", "Name", "Title"}
	goUPCBrandLabels    = []string{"Brand", "Manufacturer", "Marken"}
	goUPCCategoryLabels = []string{"Category", "Group", "Type"}
)

// GoUPCExtractor derives product fields from the go-upc product page
// shape
type GoUPCExtractor struct{}

// NewGoUPCExtractor creates an extractor for the go-upc page shape
func NewGoUPCExtractor() *GoUPCExtractor {
	return &GoUPCExtractor{}
}

// Extract runs the fallback chain for go-upc pages. This shape renders
// the product name as a classed heading and spreads details over both a
// table and labeled list items, so the key map merges the two. Returns
// nil only for empty/whitespace input.
func (e *GoUPCExtractor) Extract(rawHTML string, barcode domain.Barcode) *domain.ExtractedInfo {
	if strings.TrimSpace(rawHTML) == "" {
		return nil
	}

	doc := parseDocument(rawHTML)
	if doc == nil {
		return nil
	}

	fields := extractTableFields(doc)
	mergeLabeledListItems(doc, fields)

	productName := extractGoUPCProductName(doc)
	if productName == "" {
		productName = findField(fields, goUPCNameLabels...)
	}

	brand := findField(fields, goUPCBrandLabels...)
	if brand == "" && productName != "" {
		brand = deriveBrand(productName)
	}

	return &domain.ExtractedInfo{
		Barcode:     barcode.Digits,
		Kind:        barcode.Kind,
		ProductName: productName,
		Brand:       brand,
		Category:    findField(fields, goUPCCategoryLabels...),
		Fields:      fields,
	}
}

// extractGoUPCProductName prefers the classed product heading and falls
// back to the page title
func extractGoUPCProductName(doc *goquery.Document) string {
	if text := cleanText(doc.Find("h1.product-name").First().Text()); text != "" {
		return text
	}
	return cleanText(doc.Find("title").First().Text())
}

// mergeLabeledListItems folds <li><span class="metadata-label">K</span>V</li>
// entries into the key map. Existing keys win, matching the
// first-occurrence rule of the table scan.
func mergeLabeledListItems(doc *goquery.Document, fields map[string]string) {
	doc.Find("li span.metadata-label").Each(func(_ int, label *goquery.Selection) {
		item := label.Parent()
		if !item.Is("li") {
			return
		}

		key := strings.TrimSuffix(cleanText(label.Text()), ":")
		value := cleanText(strings.TrimPrefix(cleanText(item.Text()), cleanText(label.Text())))
		if key == "" || value == "" {
			return
		}

		lower := strings.ToLower(key)
		if _, exists := fields[lower]; !exists {
			fields[lower] = value
		}
	})
}
