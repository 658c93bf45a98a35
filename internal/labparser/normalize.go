package labparser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	bracketRe  = regexp.MustCompile(`\[[^\]]*\]`)
	footnoteRe = regexp.MustCompile(`\*+`)
	spaceRe    = regexp.MustCompile(`[\s\p{Zs}]+`)

	// Header and footer lines that never carry results.
	noiseRe = regexp.MustCompile(`(?i)^(?:page\s*\d+|confidential|laboratory report|patient:|dob:|collected:|reported:)`)
)

// NormalizeLine strips bracketed annotations and footnote marks from a raw
// line and collapses whitespace. Blank input yields "".
func NormalizeLine(line string) string {
	line = norm.NFC.String(line)
	line = bracketRe.ReplaceAllString(line, " ")
	line = footnoteRe.ReplaceAllString(line, "")
	line = strings.TrimSpace(line)
	return spaceRe.ReplaceAllString(line, " ")
}

// IsNoise reports whether a normalized line is report boilerplate such as a
// page marker or patient header.
func IsNoise(line string) bool {
	return noiseRe.MatchString(line)
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n", "\v", "\n")

func splitLines(text string) []string {
	return strings.Split(lineBreaks.Replace(text), "\n")
}
