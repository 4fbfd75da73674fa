package provider

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Shared extraction helpers for the two supported page shapes. Both
// providers render product data as table rows; everything here is
// deliberately defensive because the pages drift.

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	letterRegex     = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex      = regexp.MustCompile(`[0-9]`)

	scriptBlockRegex = regexp.MustCompile(`(?is)<(?:script|style|noscript)\b[^>]*>.*?</(?:script|style|noscript)>`)
	tagRegex         = regexp.MustCompile(`<[^>]*>`)
)

// Candidate-line length bounds for the free-text fallback scan
const (
	candidateMinLen = 8
	candidateMaxLen = 140
)

// accessDeniedSentinel marks block pages that must never win the
// free-text scan
const accessDeniedSentinel = "access denied"

// parseDocument parses HTML into a goquery document. The parser recovers
// from malformed markup, so a nil return means genuinely unusable input.
func parseDocument(rawHTML string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}
	return doc
}

// extractTableFields builds a key/value map from table-like row/cell
// structures. Keys are stored lowercased for case-insensitive lookup;
// the first occurrence of a key wins and later duplicates are ignored.
func extractTableFields(doc *goquery.Document) map[string]string {
	fields := make(map[string]string)

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		key := cleanText(cells.Eq(0).Text())
		value := cleanText(cells.Eq(1).Text())
		if key == "" || value == "" {
			return
		}

		lower := strings.ToLower(key)
		if _, exists := fields[lower]; !exists {
			fields[lower] = value
		}
	})

	return fields
}

// findField returns the first non-empty value among the candidate labels
func findField(fields map[string]string, labels ...string) string {
	for _, label := range labels {
		if value := fields[strings.ToLower(label)]; value != "" {
			return value
		}
	}
	return ""
}

// cleanText strips residual markup artifacts from extracted text: entity
// escapes are decoded and whitespace runs collapse to single spaces
func cleanText(s string) string {
	decoded := html.UnescapeString(s)
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(decoded, " "))
}

// bestCandidateLine is the last-resort product name heuristic: strip the
// page to visible text, keep plausible lines, score each one, and take
// the first line with the highest positive score. Tags become line
// breaks so that minified markup without source newlines still yields
// one line per element instead of one merged blob.
func bestCandidateLine(rawHTML, digits string) string {
	withoutBlocks := scriptBlockRegex.ReplaceAllString(rawHTML, "\n")
	text := tagRegex.ReplaceAllString(withoutBlocks, "\n")

	bestScore := 0
	bestLine := ""

	for _, raw := range strings.Split(text, "\n") {
		line := cleanText(raw)
		if len(line) < candidateMinLen || len(line) > candidateMaxLen {
			continue
		}
		if strings.Contains(strings.ToLower(line), accessDeniedSentinel) {
			continue
		}

		// Strictly-greater keeps the first max on ties
		if score := scoreCandidateLine(line, digits); score > bestScore {
			bestScore = score
			bestLine = line
		}
	}

	return bestLine
}

// scoreCandidateLine weights a text line by how much it looks like a
// filament product title. Lines that merely echo the barcode back are
// penalized.
func scoreCandidateLine(line, digits string) int {
	lower := strings.ToLower(line)
	score := 0

	if strings.Contains(lower, "mm") {
		score += 2
	}
	if strings.Contains(lower, "kg") || strings.Contains(lower, " g") {
		score += 2
	}
	if strings.Contains(lower, "pla") || strings.Contains(lower, "petg") ||
		strings.Contains(lower, "abs") || strings.Contains(lower, "filament") {
		score += 3
	}
	if digits != "" && strings.Contains(lower, strings.ToLower(digits)) {
		score -= 2
	}
	if letterRegex.MatchString(line) && digitRegex.MatchString(line) {
		score++
	}

	return score
}

// deriveBrand falls back to the first whitespace-delimited token of the
// product name when no brand field was found
func deriveBrand(productName string) string {
	tokens := strings.Fields(productName)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
