package sqlite

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/spoolscan/backend/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// likePattern wraps a query for a coarse substring pre-filter. SQLite's
// LIKE is case-insensitive for ASCII, which matches the search contract.
func likePattern(query string) string {
	return "%" + strings.TrimSpace(query) + "%"
}

// ListManufacturers returns one ordered page of manufacturers, optionally
// filtered by a substring over name and aliases
func (s *Store) ListManufacturers(ctx context.Context, query string, offset, limit int) ([]domain.Manufacturer, error) {
	if err := s.EnsureReady(ctx); err != nil {
		return nil, err
	}

	sqlQuery := `SELECT id, name, country, website, aliases FROM manufacturers`
	args := []any{}
	if strings.TrimSpace(query) != "" {
		sqlQuery += ` WHERE name LIKE ? OR aliases LIKE ?`
		pattern := likePattern(query)
		args = append(args, pattern, pattern)
	}
	sqlQuery += ` ORDER BY name, id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var manufacturers []domain.Manufacturer
	for rows.Next() {
		var m domain.Manufacturer
		var aliases string
		if err := rows.Scan(&m.ID, &m.Name, &m.Country, &m.Website, &aliases); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(aliases), &m.Aliases); err != nil {
			m.Aliases = nil
		}
		manufacturers = append(manufacturers, m)
	}
	return manufacturers, rows.Err()
}

// ListMaterials returns one page of materials ordered by manufacturer then
// name. The optional query is a coarse substring pre-filter over name,
// manufacturer and notes; exact scoring happens in the matcher.
func (s *Store) ListMaterials(ctx context.Context, query string, offset, limit int) ([]domain.Material, error) {
	if err := s.EnsureReady(ctx); err != nil {
		return nil, err
	}

	sqlQuery := `SELECT id, name, family, additive_flags, color, opacity, finish,
		manufacturer, diameter_mm, density_g_cm3, glass_transition_c, notes
		FROM materials`
	args := []any{}
	if strings.TrimSpace(query) != "" {
		sqlQuery += ` WHERE name LIKE ? OR manufacturer LIKE ? OR notes LIKE ?`
		pattern := likePattern(query)
		args = append(args, pattern, pattern, pattern)
	}
	sqlQuery += ` ORDER BY manufacturer, name, id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []domain.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, *m)
	}
	return materials, rows.Err()
}

// ListCarriers returns one page of carriers ordered by manufacturer then
// spool type
func (s *Store) ListCarriers(ctx context.Context, query string, offset, limit int) ([]domain.Carrier, error) {
	if err := s.EnsureReady(ctx); err != nil {
		return nil, err
	}

	sqlQuery := `SELECT id, spool_type, empty_weight_grams, manufacturer,
		spool_radius_mm, spool_hub_radius_mm, spool_height_mm, high_temp
		FROM carriers`
	args := []any{}
	if strings.TrimSpace(query) != "" {
		sqlQuery += ` WHERE spool_type LIKE ? OR manufacturer LIKE ?`
		pattern := likePattern(query)
		args = append(args, pattern, pattern)
	}
	sqlQuery += ` ORDER BY manufacturer, spool_type, id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carriers []domain.Carrier
	for rows.Next() {
		c, err := scanCarrier(rows)
		if err != nil {
			return nil, err
		}
		carriers = append(carriers, *c)
	}
	return carriers, rows.Err()
}

// ListSpools returns one page of mappings ordered by recency, each
// hydrated with its material and carrier
func (s *Store) ListSpools(ctx context.Context, offset, limit int) ([]domain.SpoolMapping, error) {
	if err := s.EnsureReady(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, barcode, barcode_kind, material_id, carrier_id, manufacturer, last_updated_at
		 FROM spools ORDER BY last_updated_at DESC, id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var page []*domain.SpoolMapping
	for rows.Next() {
		mapping, err := scanSpool(rows)
		if err != nil {
			return nil, err
		}
		page = append(page, mapping)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.hydrateSpools(ctx, page); err != nil {
		return nil, err
	}

	spools := make([]domain.SpoolMapping, len(page))
	for i, mapping := range page {
		spools[i] = *mapping
	}
	return spools, nil
}

// CountManufacturers counts manufacturers matching the optional query
func (s *Store) CountManufacturers(ctx context.Context, query string) (int, error) {
	if strings.TrimSpace(query) != "" {
		pattern := likePattern(query)
		return s.countRows(ctx, `SELECT COUNT(*) FROM manufacturers WHERE name LIKE ? OR aliases LIKE ?`, pattern, pattern)
	}
	return s.countRows(ctx, `SELECT COUNT(*) FROM manufacturers`)
}

// CountMaterials counts materials matching the optional query
func (s *Store) CountMaterials(ctx context.Context, query string) (int, error) {
	if strings.TrimSpace(query) != "" {
		pattern := likePattern(query)
		return s.countRows(ctx, `SELECT COUNT(*) FROM materials WHERE name LIKE ? OR manufacturer LIKE ? OR notes LIKE ?`, pattern, pattern, pattern)
	}
	return s.countRows(ctx, `SELECT COUNT(*) FROM materials`)
}

// CountCarriers counts carriers matching the optional query
func (s *Store) CountCarriers(ctx context.Context, query string) (int, error) {
	if strings.TrimSpace(query) != "" {
		pattern := likePattern(query)
		return s.countRows(ctx, `SELECT COUNT(*) FROM carriers WHERE spool_type LIKE ? OR manufacturer LIKE ?`, pattern, pattern)
	}
	return s.countRows(ctx, `SELECT COUNT(*) FROM carriers`)
}

// CountSpools counts stored mappings
func (s *Store) CountSpools(ctx context.Context) (int, error) {
	return s.countRows(ctx, `SELECT COUNT(*) FROM spools`)
}

func (s *Store) countRows(ctx context.Context, query string, args ...any) (int, error) {
	if err := s.EnsureReady(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// hydrateSpools resolves material/carrier references for one page of
// mappings with batched lookups. Dangling references resolve to a stub
// value keyed by the missing id, never to nil.
func (s *Store) hydrateSpools(ctx context.Context, page []*domain.SpoolMapping) error {
	if len(page) == 0 {
		return nil
	}

	materialIDs := make([]string, 0, len(page))
	carrierIDs := make([]string, 0, len(page))
	for _, mapping := range page {
		if mapping.MaterialID != "" {
			materialIDs = append(materialIDs, mapping.MaterialID)
		}
		if mapping.CarrierID != "" {
			carrierIDs = append(carrierIDs, mapping.CarrierID)
		}
	}

	materials, err := s.materialsByID(ctx, materialIDs)
	if err != nil {
		return err
	}
	carriers, err := s.carriersByID(ctx, carrierIDs)
	if err != nil {
		return err
	}

	for _, mapping := range page {
		if material, ok := materials[mapping.MaterialID]; ok {
			mapping.Material = material
		} else {
			mapping.Material = &domain.Material{ID: mapping.MaterialID}
		}

		if carrier, ok := carriers[mapping.CarrierID]; ok {
			mapping.Carrier = carrier
		} else {
			mapping.Carrier = &domain.Carrier{ID: mapping.CarrierID}
		}
	}
	return nil
}

func (s *Store) materialsByID(ctx context.Context, ids []string) (map[string]*domain.Material, error) {
	result := make(map[string]*domain.Material, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, family, additive_flags, color, opacity, finish,
		 manufacturer, diameter_mm, density_g_cm3, glass_transition_c, notes
		 FROM materials WHERE id IN (`+placeholders(len(ids))+`)`,
		toAnySlice(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		result[m.ID] = m
	}
	return result, rows.Err()
}

func (s *Store) carriersByID(ctx context.Context, ids []string) (map[string]*domain.Carrier, error) {
	result := make(map[string]*domain.Carrier, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, spool_type, empty_weight_grams, manufacturer,
		 spool_radius_mm, spool_hub_radius_mm, spool_height_mm, high_temp
		 FROM carriers WHERE id IN (`+placeholders(len(ids))+`)`,
		toAnySlice(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCarrier(rows)
		if err != nil {
			return nil, err
		}
		result[c.ID] = c
	}
	return result, rows.Err()
}

func scanMaterial(row rowScanner) (*domain.Material, error) {
	var m domain.Material
	var family, opacity, finish string
	var additives uint32
	if err := row.Scan(&m.ID, &m.Name, &family, &additives, &m.Color,
		&opacity, &finish, &m.Manufacturer, &m.DiameterMM,
		&m.DensityGCM3, &m.GlassTransitionC, &m.Notes); err != nil {
		return nil, err
	}
	m.Family = domain.MaterialFamily(family)
	m.Additives = domain.Additive(additives)
	m.Opacity = domain.Opacity(opacity)
	m.Finish = domain.Finish(finish)
	return &m, nil
}

func scanCarrier(row rowScanner) (*domain.Carrier, error) {
	var c domain.Carrier
	if err := row.Scan(&c.ID, &c.SpoolType, &c.EmptyWeightGrams, &c.Manufacturer,
		&c.SpoolRadiusMM, &c.SpoolHubRadiusMM, &c.SpoolHeightMM, &c.HighTemp); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanSpool(row rowScanner) (*domain.SpoolMapping, error) {
	var m domain.SpoolMapping
	var kind string
	if err := row.Scan(&m.ID, &m.Barcode, &kind, &m.MaterialID, &m.CarrierID,
		&m.Manufacturer, &m.LastUpdatedAt); err != nil {
		return nil, err
	}
	m.BarcodeKind = domain.BarcodeKind(kind)
	return &m, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toAnySlice(values []string) []any {
	result := make([]any, len(values))
	for i, v := range values {
		result[i] = v
	}
	return result
}
