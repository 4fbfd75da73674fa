package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/spoolscan/backend/internal/domain"
)

func TestSeedManufacturers(t *testing.T) {
	t.Run("imports a valid array", func(t *testing.T) {
		store := newTestStore(t)
		input := `[
			{"id": "prusament", "name": "Prusament", "country": "CZ"},
			{"id": "esun", "name": "eSUN", "aliases": ["e-sun"]}
		]`

		n, err := store.SeedManufacturers(context.Background(), strings.NewReader(input))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if n != 2 {
			t.Errorf("imported = %d, want 2", n)
		}
	})

	t.Run("skips records without id or name", func(t *testing.T) {
		store := newTestStore(t)
		input := `[
			{"id": "", "name": "Nameless"},
			{"id": "blank", "name": "  "},
			{"id": "ok", "name": "Keeper"}
		]`

		n, err := store.SeedManufacturers(context.Background(), strings.NewReader(input))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if n != 1 {
			t.Errorf("imported = %d, want 1", n)
		}
	})

	t.Run("duplicate names collapse last-write-wins", func(t *testing.T) {
		store := newTestStore(t)
		input := `[
			{"id": "first", "name": "Shared Name", "country": "DE"},
			{"id": "second", "name": "shared name", "country": "NL"}
		]`

		n, err := store.SeedManufacturers(context.Background(), strings.NewReader(input))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if n != 1 {
			t.Errorf("imported = %d, want 1 (collapsed)", n)
		}

		got, err := store.ListManufacturers(context.Background(), "", 0, 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].ID != "second" {
			t.Errorf("got %+v, want only the later record", got)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		store := newTestStore(t)
		if _, err := store.SeedManufacturers(context.Background(), strings.NewReader("not json")); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestSeedMaterials(t *testing.T) {
	feed := `{"name": "PLA Galaxy Black", "material": "PLA", "brand": "Prusament", "colorName": "Galaxy Black", "diameter": 1.75}
not a json line
{"name": "PA6-CF Carbon", "material": "PA6-CF", "brand": "Polymaker", "colorName": "Black"}
{"name": "", "material": "PLA", "brand": "Ghost"}
`

	store := newTestStore(t)
	ctx := context.Background()

	n, err := store.SeedMaterials(ctx, strings.NewReader(feed))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2 (malformed and nameless lines skipped)", n)
	}

	t.Run("classifies imported entries", func(t *testing.T) {
		got, err := store.ListMaterials(ctx, "PA6-CF", 0, 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if got[0].Family != domain.FamilyPolyamide {
			t.Errorf("Family = %v, want %v", got[0].Family, domain.FamilyPolyamide)
		}
		if !got[0].Additives.Has(domain.AdditiveCarbonFiber) {
			t.Errorf("Additives = %b, want carbon fiber flag", got[0].Additives)
		}
	})

	t.Run("diameter defaults when missing", func(t *testing.T) {
		got, err := store.ListMaterials(ctx, "PA6-CF", 0, 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if got[0].DiameterMM != 1.75 {
			t.Errorf("DiameterMM = %v, want 1.75", got[0].DiameterMM)
		}
	})

	t.Run("implies a manufacturer per brand", func(t *testing.T) {
		count, err := store.CountManufacturers(ctx, "")
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 2 {
			t.Errorf("manufacturers = %d, want 2 (one per seen brand)", count)
		}
	})

	t.Run("re-import is idempotent", func(t *testing.T) {
		if _, err := store.SeedMaterials(ctx, strings.NewReader(feed)); err != nil {
			t.Fatalf("reseed: %v", err)
		}
		count, err := store.CountMaterials(ctx, "")
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 2 {
			t.Errorf("materials = %d, want 2 (slug ids stable)", count)
		}
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Prusament PLA Galaxy Black", "prusament-pla-galaxy-black"},
		{"  eSUN  ", "esun"},
		{"PLA+ (Pro)", "pla-pro"},
		{"1.75", "1.75"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := slugify(tt.input); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
