package domain

import "testing"

func TestCatalogItemLabel(t *testing.T) {
	t.Run("manufacturer label is its name", func(t *testing.T) {
		item := ManufacturerItem(&Manufacturer{ID: "prusament", Name: "Prusament"})
		if got := item.Label(); got != "Prusament" {
			t.Errorf("Label() = %q, want Prusament", got)
		}
	})

	t.Run("material label joins manufacturer and name", func(t *testing.T) {
		item := MaterialItem(&Material{Manufacturer: "Prusament", Name: "PLA Galaxy Black"})
		if got := item.Label(); got != "Prusament PLA Galaxy Black" {
			t.Errorf("Label() = %q, want Prusament PLA Galaxy Black", got)
		}
	})

	t.Run("material label trims when manufacturer is empty", func(t *testing.T) {
		item := MaterialItem(&Material{Name: "Generic PETG"})
		if got := item.Label(); got != "Generic PETG" {
			t.Errorf("Label() = %q, want Generic PETG", got)
		}
	})

	t.Run("carrier label joins manufacturer and spool type", func(t *testing.T) {
		item := CarrierItem(&Carrier{Manufacturer: "Bambu Lab", SpoolType: "Reusable Spool"})
		if got := item.Label(); got != "Bambu Lab Reusable Spool" {
			t.Errorf("Label() = %q, want Bambu Lab Reusable Spool", got)
		}
	})

	t.Run("empty union yields empty label", func(t *testing.T) {
		if got := (CatalogItem{}).Label(); got != "" {
			t.Errorf("Label() = %q, want empty", got)
		}
	})
}

func TestCatalogItemMatchesSearch(t *testing.T) {
	material := MaterialItem(&Material{
		Name:         "PLA Galaxy Black",
		Manufacturer: "Prusament",
		Color:        "Black",
		Notes:        "sparkly effect",
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		if !material.MatchesSearch("") {
			t.Error("empty query should match")
		}
		if !material.MatchesSearch("   ") {
			t.Error("whitespace query should match")
		}
	})

	t.Run("matches name case-insensitively", func(t *testing.T) {
		if !material.MatchesSearch("galaxy") {
			t.Error("query galaxy should match name")
		}
	})

	t.Run("matches manufacturer and notes", func(t *testing.T) {
		if !material.MatchesSearch("PRUSA") {
			t.Error("query PRUSA should match manufacturer")
		}
		if !material.MatchesSearch("sparkly") {
			t.Error("query sparkly should match notes")
		}
	})

	t.Run("rejects non-matching query", func(t *testing.T) {
		if material.MatchesSearch("polymaker") {
			t.Error("query polymaker should not match")
		}
	})

	t.Run("manufacturer aliases are searchable", func(t *testing.T) {
		item := ManufacturerItem(&Manufacturer{
			Name:    "Polymaker",
			Aliases: []string{"PolyLite", "PolyTerra"},
		})
		if !item.MatchesSearch("polyterra") {
			t.Error("query polyterra should match alias")
		}
	})

	t.Run("carrier matches on spool type", func(t *testing.T) {
		item := CarrierItem(&Carrier{SpoolType: "Cardboard Spool", Manufacturer: "eSUN"})
		if !item.MatchesSearch("cardboard") {
			t.Error("query cardboard should match spool type")
		}
	})
}
