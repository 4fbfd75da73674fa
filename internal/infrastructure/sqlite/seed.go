package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spoolscan/backend/internal/domain"
)

// manufacturerSeed is one record of the manufacturer seed JSON array
type manufacturerSeed struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Website string   `json:"website"`
	Aliases []string `json:"aliases"`
}

// filamentFeedEntry is one line of the newline-delimited filament feed
type filamentFeedEntry struct {
	Name           string   `json:"name"`
	Material       string   `json:"material"`
	Brand          string   `json:"brand"`
	FilamentPage   string   `json:"filamentPage"`
	ColorName      string   `json:"colorName"`
	ColorHex       string   `json:"colorHex"`
	IsColorBlended bool     `json:"isColorBlended"`
	Diameter       float64  `json:"diameter"`
	Provenance     string   `json:"provenance"`
	FactoryInfo    string   `json:"factoryInfo"`
	MoreDetails    []string `json:"moreDetails"`
}

// SeedManufacturers imports a JSON array of manufacturer records. Records
// without an id or name are skipped. Duplicate keys merge last-write-wins,
// both by id and by lowercased display name, so two legitimately distinct
// manufacturers sharing a name will silently collapse into one. Known
// correctness gap carried over from the upstream seed format.
func (s *Store) SeedManufacturers(ctx context.Context, r io.Reader) (int, error) {
	if err := s.EnsureReady(ctx); err != nil {
		return 0, err
	}

	var seeds []manufacturerSeed
	if err := json.NewDecoder(r).Decode(&seeds); err != nil {
		return 0, fmt.Errorf("decode manufacturer seeds: %w", err)
	}

	merged := make(map[string]manufacturerSeed, len(seeds))
	byName := make(map[string]string, len(seeds))
	var order []string

	for _, seed := range seeds {
		if strings.TrimSpace(seed.ID) == "" || strings.TrimSpace(seed.Name) == "" {
			continue
		}

		nameKey := strings.ToLower(strings.TrimSpace(seed.Name))
		if previousID, ok := byName[nameKey]; ok && previousID != seed.ID {
			delete(merged, previousID)
		}

		if _, ok := merged[seed.ID]; !ok {
			order = append(order, seed.ID)
		}
		merged[seed.ID] = seed
		byName[nameKey] = seed.ID
	}

	saved := 0
	for _, id := range order {
		seed, ok := merged[id]
		if !ok {
			continue
		}
		err := s.SaveManufacturer(ctx, &domain.Manufacturer{
			ID:      seed.ID,
			Name:    seed.Name,
			Country: seed.Country,
			Website: seed.Website,
			Aliases: seed.Aliases,
		})
		if err != nil {
			return saved, err
		}
		saved++
	}

	log.Printf("[STORE] seeded %d manufacturers", saved)
	return saved, nil
}

// SeedMaterials imports a newline-delimited JSON feed of filament entries.
// Each entry becomes a material classified by family/additive/opacity/
// finish, plus an implied manufacturer derived from the brand. Malformed
// lines are skipped, not fatal.
func (s *Store) SeedMaterials(ctx context.Context, r io.Reader) (int, error) {
	if err := s.EnsureReady(ctx); err != nil {
		return 0, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	saved := 0
	skipped := 0
	seenBrands := make(map[string]bool)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry filamentFeedEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			skipped++
			continue
		}
		if strings.TrimSpace(entry.Name) == "" {
			skipped++
			continue
		}

		material := materialFromFeedEntry(entry)
		if err := s.SaveMaterial(ctx, material); err != nil {
			return saved, err
		}
		saved++

		brandKey := strings.ToLower(strings.TrimSpace(entry.Brand))
		if brandKey != "" && !seenBrands[brandKey] {
			seenBrands[brandKey] = true
			err := s.SaveManufacturer(ctx, &domain.Manufacturer{
				ID:   slugify(entry.Brand),
				Name: strings.TrimSpace(entry.Brand),
			})
			if err != nil {
				return saved, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return saved, fmt.Errorf("read filament feed: %w", err)
	}

	log.Printf("[STORE] seeded %d materials (%d lines skipped)", saved, skipped)
	return saved, nil
}

// materialFromFeedEntry maps a feed entry to a material via the domain
// classifiers. A deterministic slug id keeps re-imports idempotent.
func materialFromFeedEntry(entry filamentFeedEntry) *domain.Material {
	details := strings.Join(entry.MoreDetails, " ")

	diameter := entry.Diameter
	if diameter <= 0 {
		diameter = 1.75
	}

	notes := strings.Join(entry.MoreDetails, "; ")
	if entry.FactoryInfo != "" {
		if notes != "" {
			notes += "; "
		}
		notes += entry.FactoryInfo
	}

	return &domain.Material{
		ID:           slugify(entry.Brand + " " + entry.Name + " " + entry.ColorName + " " + fmt.Sprintf("%.2f", diameter)),
		Name:         strings.TrimSpace(entry.Name),
		Family:       domain.ClassifyFamily(entry.Material + " " + entry.Name),
		Additives:    domain.ClassifyAdditives(entry.Material, entry.Name, details),
		Color:        strings.TrimSpace(entry.ColorName),
		Opacity:      domain.ClassifyOpacity(entry.ColorName, entry.Name, details),
		Finish:       domain.ClassifyFinish(entry.Name, entry.ColorName, details),
		Manufacturer: strings.TrimSpace(entry.Brand),
		DiameterMM:   diameter,
		Notes:        notes,
	}
}

// slugify lowercases and collapses a string into a stable dash-separated id
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == '.':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
