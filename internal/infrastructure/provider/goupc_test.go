package provider

import (
	"testing"

	"github.com/spoolscan/backend/internal/domain"
)

func TestGoUPCExtract(t *testing.T) {
	extractor := NewGoUPCExtractor()

	t.Run("returns nil for blank input", func(t *testing.T) {
		if info := extractor.Extract("", eanBarcode("736983564504")); info != nil {
			t.Errorf("info = %+v, want nil", info)
		}
	})

	t.Run("prefers the classed product heading", func(t *testing.T) {
		html := `<html><head><title>Go-UPC Search</title></head><body>
			<h1 class="product-name">Overture PLA Matte Black 1kg</h1>
			<table><tr><td>Brand</td><td>Overture</td></tr></table>
		</body></html>`

		info := extractor.Extract(html, eanBarcode("736983564504"))
		if info == nil {
			t.Fatal("info is nil")
		}
		if info.ProductName != "Overture PLA Matte Black 1kg" {
			t.Errorf("ProductName = %q", info.ProductName)
		}
		if info.Brand != "Overture" {
			t.Errorf("Brand = %q, want Overture", info.Brand)
		}
		if info.Kind != domain.BarcodeUPC {
			t.Errorf("Kind = %v, want %v", info.Kind, domain.BarcodeUPC)
		}
	})

	t.Run("falls back to the page title", func(t *testing.T) {
		html := `<html><head><title>Hatchbox PETG Green</title></head><body></body></html>`

		info := extractor.Extract(html, eanBarcode("736983564504"))
		if info.ProductName != "Hatchbox PETG Green" {
			t.Errorf("ProductName = %q, want Hatchbox PETG Green", info.ProductName)
		}
	})

	t.Run("merges labeled list items into the field map", func(t *testing.T) {
		html := `<html><body>
			<ul>
				<li><span class="metadata-label">Brand:</span> Hatchbox</li>
				<li><span class="metadata-label">Category:</span> 3D Printer Filament</li>
			</ul>
		</body></html>`

		info := extractor.Extract(html, eanBarcode("736983564504"))
		if info.Brand != "Hatchbox" {
			t.Errorf("Brand = %q, want Hatchbox", info.Brand)
		}
		if info.Category != "3D Printer Filament" {
			t.Errorf("Category = %q, want 3D Printer Filament", info.Category)
		}
	})

	t.Run("table fields win over list items", func(t *testing.T) {
		html := `<html><body>
			<table><tr><td>Brand</td><td>FromTable</td></tr></table>
			<ul><li><span class="metadata-label">Brand:</span> FromList</li></ul>
		</body></html>`

		info := extractor.Extract(html, eanBarcode("736983564504"))
		if info.Brand != "FromTable" {
			t.Errorf("Brand = %q, want FromTable", info.Brand)
		}
	})

	t.Run("german brand label is honored", func(t *testing.T) {
		html := `<html><body>
			<h1 class="product-name">Extrudr PLA NX2</h1>
			<table><tr><td>Marken</td><td>Extrudr</td></tr></table>
		</body></html>`

		info := extractor.Extract(html, eanBarcode("4006381333931"))
		if info.Brand != "Extrudr" {
			t.Errorf("Brand = %q, want Extrudr", info.Brand)
		}
	})
}
