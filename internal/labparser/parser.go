// Package labparser turns free-form lab report text into structured rows.
//
// Parsing is line oriented and keeps no state between lines, so Parse is safe
// to call from many goroutines at once.
package labparser

import (
	"strings"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

const nameTrimset = " -:\t"

// Parse converts report text into rows. Lines that cannot be reduced to a test
// name plus a value are returned as unparsed lines. Both lists keep input order.
func Parse(text string) domain.ParseResult {
	res := domain.ParseResult{
		Rows:     make([]domain.ParsedRow, 0),
		Unparsed: make([]string, 0),
	}
	for _, raw := range splitLines(text) {
		line := NormalizeLine(raw)
		if line == "" || IsNoise(line) {
			continue
		}
		row, ok := ParseLine(line)
		if !ok {
			res.Unparsed = append(res.Unparsed, line)
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

// ParseLine builds a row from one normalized line.
func ParseLine(line string) (domain.ParsedRow, bool) {
	rng, _ := ResolveRange(line)
	ext, ok := ExtractValue(line)
	if !ok {
		return domain.ParsedRow{}, false
	}

	name := testName(line, ext)
	if name == "" {
		return domain.ParsedRow{}, false
	}

	row := domain.ParsedRow{
		TestName:       name,
		Value:          ext.Value,
		Unit:           ext.Unit,
		ReferenceRange: rng.Display,
		Flag:           ComputeFlag(ext.Value, rng),
	}
	row.Confidence = Confidence(row)
	return row, true
}

// testName is the label left of the quantity, or left of the first colon when
// the value is categorical.
func testName(line string, ext Extraction) string {
	if ext.QuantityAt >= 0 {
		return strings.Trim(line[:ext.QuantityAt], nameTrimset)
	}
	if i := strings.Index(line, ":"); i >= 0 {
		return strings.TrimSpace(line[:i])
	}
	return ""
}
