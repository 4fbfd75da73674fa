// Package sqlite implements the catalog store on an embedded SQLite
// database. Reads are offset-paged over stable sort keys; mapping rows
// hydrate their material/carrier references per page, falling back to a
// stub value when a reference is dangling.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/spoolscan/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS manufacturers (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	country  TEXT NOT NULL DEFAULT '',
	website  TEXT NOT NULL DEFAULT '',
	aliases  TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS materials (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	family             TEXT NOT NULL DEFAULT 'unknown',
	additive_flags     INTEGER NOT NULL DEFAULT 0,
	color              TEXT NOT NULL DEFAULT '',
	opacity            TEXT NOT NULL DEFAULT 'unknown',
	finish             TEXT NOT NULL DEFAULT 'unknown',
	manufacturer       TEXT NOT NULL DEFAULT '',
	diameter_mm        REAL NOT NULL,
	density_g_cm3      REAL NOT NULL DEFAULT 0,
	glass_transition_c INTEGER NOT NULL DEFAULT 0,
	notes              TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_materials_order ON materials(manufacturer, name);

CREATE TABLE IF NOT EXISTS carriers (
	id                  TEXT PRIMARY KEY,
	spool_type          TEXT NOT NULL,
	empty_weight_grams  INTEGER NOT NULL DEFAULT 0,
	manufacturer        TEXT NOT NULL DEFAULT '',
	spool_radius_mm     REAL NOT NULL DEFAULT 0,
	spool_hub_radius_mm REAL NOT NULL DEFAULT 0,
	spool_height_mm     REAL NOT NULL DEFAULT 0,
	high_temp           INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS spools (
	id              TEXT PRIMARY KEY,
	barcode         TEXT NOT NULL,
	barcode_kind    TEXT NOT NULL,
	material_id     TEXT NOT NULL,
	carrier_id      TEXT NOT NULL DEFAULT '',
	manufacturer    TEXT NOT NULL DEFAULT '',
	last_updated_at TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_spools_barcode ON spools(barcode);
CREATE INDEX IF NOT EXISTS idx_spools_recency ON spools(last_updated_at DESC, id);
`

// Store is the embedded catalog store. Safe for concurrent use; schema
// initialization is the only cross-row synchronization point.
type Store struct {
	db    *sql.DB
	clock domain.Clock

	initMu      sync.Mutex
	initialized bool
}

// Open opens (or creates) the database file at path. Timestamps on writes
// come from clock, never from wall-clock sampling inside store methods.
// Use ":memory:" for an ephemeral store.
func Open(path string, clock domain.Clock) (*Store, error) {
	if clock == nil {
		clock = time.Now
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return &Store{db: db, clock: clock}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureReady creates the schema exactly once. Concurrent first callers
// block on the mutex until one completes; later callers observe the guard
// flag and return immediately.
func (s *Store) EnsureReady(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.initialized {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	s.initialized = true
	return nil
}

// SaveManufacturer upserts a manufacturer by id, replacing the full row
func (s *Store) SaveManufacturer(ctx context.Context, m *domain.Manufacturer) error {
	if err := s.EnsureReady(ctx); err != nil {
		return err
	}

	aliases, err := json.Marshal(m.Aliases)
	if err != nil {
		return fmt.Errorf("encode aliases: %w", err)
	}
	if m.Aliases == nil {
		aliases = []byte("[]")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO manufacturers (id, name, country, website, aliases)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Country, m.Website, string(aliases))
	return err
}

// SaveMaterial upserts a material by id, replacing the full row
func (s *Store) SaveMaterial(ctx context.Context, m *domain.Material) error {
	if err := s.EnsureReady(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO materials
		 (id, name, family, additive_flags, color, opacity, finish,
		  manufacturer, diameter_mm, density_g_cm3, glass_transition_c, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, string(m.Family), uint32(m.Additives), m.Color,
		string(m.Opacity), string(m.Finish), m.Manufacturer, m.DiameterMM,
		m.DensityGCM3, m.GlassTransitionC, m.Notes)
	return err
}

// SaveCarrier upserts a carrier by id, replacing the full row
func (s *Store) SaveCarrier(ctx context.Context, c *domain.Carrier) error {
	if err := s.EnsureReady(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO carriers
		 (id, spool_type, empty_weight_grams, manufacturer,
		  spool_radius_mm, spool_hub_radius_mm, spool_height_mm, high_temp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.SpoolType, c.EmptyWeightGrams, c.Manufacturer,
		c.SpoolRadiusMM, c.SpoolHubRadiusMM, c.SpoolHeightMM, c.HighTemp)
	return err
}

// SaveSpool upserts a mapping. Embedded material and carrier records are
// written first so a crash mid-save can orphan a material or carrier row
// but never leave a mapping referencing a missing one. The barcode column
// carries a unique index, so re-saving a barcode under a new surface id
// replaces the previous mapping. LastUpdatedAt always refreshes from the
// injected clock.
func (s *Store) SaveSpool(ctx context.Context, m *domain.SpoolMapping) error {
	if err := s.EnsureReady(ctx); err != nil {
		return err
	}

	if m.Material != nil {
		if err := s.SaveMaterial(ctx, m.Material); err != nil {
			return err
		}
		m.MaterialID = m.Material.ID
	}
	if m.Carrier != nil {
		if err := s.SaveCarrier(ctx, m.Carrier); err != nil {
			return err
		}
		m.CarrierID = m.Carrier.ID
	}

	m.LastUpdatedAt = s.clock().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO spools
		 (id, barcode, barcode_kind, material_id, carrier_id, manufacturer, last_updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Barcode, string(m.BarcodeKind), m.MaterialID, m.CarrierID,
		m.Manufacturer, m.LastUpdatedAt)
	return err
}

// DeleteSpool removes a mapping by surface id. Deletion is always an
// explicit operation; nothing in the store deletes mappings implicitly.
func (s *Store) DeleteSpool(ctx context.Context, id string) error {
	if err := s.EnsureReady(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM spools WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrMappingNotFound
	}
	return nil
}

// FindSpoolByBarcode looks a mapping up by its natural key and hydrates
// its references
func (s *Store) FindSpoolByBarcode(ctx context.Context, digits string) (*domain.SpoolMapping, error) {
	if err := s.EnsureReady(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, barcode, barcode_kind, material_id, carrier_id, manufacturer, last_updated_at
		 FROM spools WHERE barcode = ?`, digits)

	mapping, err := scanSpool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMappingNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.hydrateSpools(ctx, []*domain.SpoolMapping{mapping}); err != nil {
		return nil, err
	}
	return mapping, nil
}
