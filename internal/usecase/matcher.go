package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/spoolscan/backend/internal/domain"
)

// Scoring weights for candidate materials
const (
	scoreBrandOverlap = 3 // manufacturer and extracted brand contain one another
	scoreNameOverlap  = 2 // material name and product name contain one another
	scoreNotesMention = 1 // material notes mention the product name
)

// Default thresholds. Empirically chosen; kept configurable rather than
// reinterpreted.
const (
	defaultEarlyExitScore    = 4
	defaultCandidatePageSize = 200
)

// MatcherConfig holds configuration for the catalog matcher
type MatcherConfig struct {
	// EarlyExitScore stops the candidate scan once the running best
	// reaches this value, bounding work against a large catalog
	EarlyExitScore int
	// MinScore is the score a candidate must exceed to be accepted
	MinScore int
	// CandidatePageSize is the page size used when streaming candidates
	CandidatePageSize  int
	EnableDebugLogging bool
}

// CatalogMatcher scores candidate stored materials against extracted
// product fields
type CatalogMatcher struct {
	store          domain.CatalogStore
	earlyExitScore int
	minScore       int
	pageSize       int
	debug          bool
}

// NewCatalogMatcher creates a matcher with the given configuration
func NewCatalogMatcher(store domain.CatalogStore, config MatcherConfig) *CatalogMatcher {
	earlyExit := config.EarlyExitScore
	if earlyExit <= 0 {
		earlyExit = defaultEarlyExitScore
	}

	pageSize := config.CandidatePageSize
	if pageSize <= 0 {
		pageSize = defaultCandidatePageSize
	}

	return &CatalogMatcher{
		store:          store,
		earlyExitScore: earlyExit,
		minScore:       config.MinScore,
		pageSize:       pageSize,
		debug:          config.EnableDebugLogging,
	}
}

// FindBestMatch streams candidate materials pre-filtered by brand (or
// product name when no brand was extracted) and returns the best-scoring
// candidate. Returns ErrNoCatalogMatch when nothing scores above the
// minimum.
func (m *CatalogMatcher) FindBestMatch(ctx context.Context, info *domain.ExtractedInfo) (*domain.Material, error) {
	query := info.Brand
	if query == "" {
		query = info.ProductName
	}
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrNoCatalogMatch
	}

	var best *domain.Material
	bestScore := 0

	cursor := m.store.StreamMaterials(query, m.pageSize)
scan:
	for {
		candidates, done, err := cursor.Next(ctx)
		if err != nil {
			return nil, err
		}

		for i := range candidates {
			score := scoreMatch(&candidates[i], info)
			if m.debug {
				log.Printf("[MATCH] candidate %q/%q score %d", candidates[i].Manufacturer, candidates[i].Name, score)
			}
			if score > bestScore {
				bestScore = score
				best = &candidates[i]
			}
			if bestScore >= m.earlyExitScore {
				break scan
			}
		}

		if done {
			break
		}
	}

	if bestScore <= m.minScore || best == nil {
		return nil, domain.ErrNoCatalogMatch
	}

	if m.debug {
		log.Printf("[MATCH] best %q/%q score %d", best.Manufacturer, best.Name, bestScore)
	}
	return best, nil
}

// scoreMatch accumulates the fixed overlap heuristic for one candidate.
// More textual overlap never lowers the score.
func scoreMatch(material *domain.Material, info *domain.ExtractedInfo) int {
	score := 0

	if info.Brand != "" && material.Manufacturer != "" &&
		containsEitherFold(material.Manufacturer, info.Brand) {
		score += scoreBrandOverlap
	}

	if info.ProductName != "" && material.Name != "" &&
		containsEitherFold(material.Name, info.ProductName) {
		score += scoreNameOverlap
	}

	if info.ProductName != "" && material.Notes != "" &&
		containsFold(material.Notes, info.ProductName) {
		score += scoreNotesMention
	}

	return score
}

// containsEitherFold reports a case-insensitive substring containment in
// either direction
func containsEitherFold(a, b string) bool {
	return containsFold(a, b) || containsFold(b, a)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
