package labparser

import "github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"

const scoredFields = 5

// Confidence is the fraction of name, value, unit, range and flag that are
// populated on the row.
func Confidence(row domain.ParsedRow) float64 {
	present := 0
	for _, set := range []bool{
		row.TestName != "",
		!row.Value.IsZero(),
		row.Unit != "",
		row.ReferenceRange != "",
		row.Flag != "",
	} {
		if set {
			present++
		}
	}
	return min(1.0, float64(present)/scoredFields)
}
