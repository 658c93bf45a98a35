package labparser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

var (
	numberRe = regexp.MustCompile(numPattern)

	categoryRe = regexp.MustCompile(`(?i)\b(positive|negative|reactive|non[- ]reactive)\b`)

	// Tokens that open a reference range label are never units.
	refLabelRe = regexp.MustCompile(`(?i)^ref(?:erence)?\b`)
)

// unitMatchers are tried in order against the text right after a quantity.
// Each is anchored at the start; the last one accepts any word-like token.
var unitMatchers = []*regexp.Regexp{
	regexp.MustCompile(`^%`),
	regexp.MustCompile(`^mg/dL`),
	regexp.MustCompile(`^g/dL`),
	regexp.MustCompile(`^mmol/L`),
	regexp.MustCompile(`^ng/mL`),
	regexp.MustCompile(`^pg/mL`),
	regexp.MustCompile(`^IU/L`),
	regexp.MustCompile(`^U/L`),
	regexp.MustCompile(`^10\^\d+/[a-zA-ZμµuL]+`),
	regexp.MustCompile(`^10\^\d+/?L`),
	regexp.MustCompile(`^[\p{L}%](?:[\p{L}\p{N}_/^%]|\.\d)*`),
}

// Extraction is the value found on a line.
type Extraction struct {
	Value domain.Value
	Unit  string
	// QuantityAt is the byte offset of the numeric token, or -1 for a
	// categorical value.
	QuantityAt int
}

// ExtractValue finds the first standalone quantity and its adjoining unit. When
// the line has no quantity it falls back to a categorical result token.
func ExtractValue(line string) (Extraction, bool) {
	if start, end, ok := findQuantity(line); ok {
		f, err := strconv.ParseFloat(line[start:end], 64)
		if err == nil {
			return Extraction{
				Value:      domain.NumberValue(f),
				Unit:       matchUnit(line[end:]),
				QuantityAt: start,
			}, true
		}
	}
	if m := categoryRe.FindString(line); m != "" {
		return Extraction{Value: domain.TextValue(capitalize(m)), QuantityAt: -1}, true
	}
	return Extraction{QuantityAt: -1}, false
}

// findQuantity returns the bounds of the first number that stands on its own,
// skipping digits that belong to identifiers such as "COVID-19", "B12" or the
// exponent in "10^9".
func findQuantity(line string) (start, end int, ok bool) {
	for _, loc := range numberRe.FindAllStringIndex(line, -1) {
		if standsAlone(line, loc[0], loc[1]) {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}

func standsAlone(line string, start, end int) bool {
	if start > 0 {
		prev, size := utf8.DecodeLastRuneInString(line[:start])
		switch {
		case unicode.IsLetter(prev), unicode.IsDigit(prev), prev == '_', prev == '.', prev == '^':
			return false
		case prev == '-' || prev == '–':
			if start-size > 0 {
				before, _ := utf8.DecodeLastRuneInString(line[:start-size])
				if unicode.IsLetter(before) || unicode.IsDigit(before) {
					return false
				}
			}
		}
	}
	if end < len(line) && line[end] == '-' && end+1 < len(line) {
		next, _ := utf8.DecodeRuneInString(line[end+1:])
		if unicode.IsLetter(next) {
			return false
		}
	}
	return true
}

func matchUnit(rest string) string {
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" || refLabelRe.MatchString(rest) {
		return ""
	}
	for _, re := range unitMatchers {
		m := re.FindString(rest)
		if m == "" || !atWordEnd(rest, len(m)) {
			continue
		}
		return m
	}
	return ""
}

func atWordEnd(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
