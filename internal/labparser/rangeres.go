package labparser

import (
	"regexp"
	"strconv"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

const (
	numPattern  = `\d+(?:\.\d+)?`
	dashPattern = `[-–]`
)

// BoundKind tells which side(s) of a Range are set.
type BoundKind uint8

const (
	BoundNone BoundKind = iota
	BoundInterval
	BoundUpper
	BoundLower
)

// Range is a resolved reference range. For BoundInterval both Low and High are
// set, for BoundUpper only High, for BoundLower only Low.
type Range struct {
	Display string
	Kind    BoundKind
	Low     float64
	High    float64
	// Source names the matcher that produced the range.
	Source string
}

type rangeMatcher struct {
	name    string
	pattern *regexp.Regexp
	build   func(a float64, b float64) Range
}

// rangeMatchers are tried in order; the first match wins.
var rangeMatchers = []rangeMatcher{
	{
		name:    "labeled",
		pattern: regexp.MustCompile(`(?i)reference\s*(?:range|interval)[:\s]+(` + numPattern + `)\s*` + dashPattern + `\s*(` + numPattern + `)`),
		build:   intervalRange,
	},
	{
		name:    "interval",
		pattern: regexp.MustCompile(`\b(` + numPattern + `)\s*` + dashPattern + `\s*(` + numPattern + `)\b`),
		build:   intervalRange,
	},
	{
		name:    "upper",
		pattern: regexp.MustCompile(`(?:≤|<=)\s*(` + numPattern + `)\b`),
		build: func(u, _ float64) Range {
			return Range{Display: "≤ " + domain.FormatNumber(u), Kind: BoundUpper, High: u}
		},
	},
	{
		name:    "lower",
		pattern: regexp.MustCompile(`(?:≥|>=)\s*(` + numPattern + `)\b`),
		build: func(l, _ float64) Range {
			return Range{Display: "≥ " + domain.FormatNumber(l), Kind: BoundLower, Low: l}
		},
	},
}

func intervalRange(low, high float64) Range {
	return Range{
		Display: domain.FormatNumber(low) + "-" + domain.FormatNumber(high),
		Kind:    BoundInterval,
		Low:     low,
		High:    high,
	}
}

// ResolveRange finds the highest-priority reference range expression in a
// normalized line. low <= high is not checked.
func ResolveRange(line string) (Range, bool) {
	for _, m := range rangeMatchers {
		groups := m.pattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		a, err := strconv.ParseFloat(groups[1], 64)
		if err != nil {
			continue
		}
		var b float64
		if len(groups) > 2 {
			if b, err = strconv.ParseFloat(groups[2], 64); err != nil {
				continue
			}
		}
		r := m.build(a, b)
		r.Source = m.name
		return r, true
	}
	return Range{}, false
}
