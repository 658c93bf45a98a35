package interpret

import (
	"fmt"
	"strings"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

const (
	maxFallbackFlags   = 8
	maxFallbackPerTest = 10

	genericSummary     = "Your results have been summarized for discussion with your clinician."
	fallbackDisclaimer = "Educational information only. Not a diagnosis or treatment recommendation. Always consult a qualified clinician."
)

var fallbackNextSteps = []string{
	ClinicianVisitStep,
	"Ask which results are most important for your situation and why.",
	"Discuss any symptoms, medications, and recent changes in your lifestyle.",
	"Clarify the recommended follow-up tests or monitoring intervals.",
	"Request guidance on nutrition, exercise, or other supportive habits.",
}

// Fallback builds a deterministic Interpretation from rows alone. It is total:
// every input, including nil, yields a schema-valid result.
func Fallback(rows []domain.ParsedRow) domain.Interpretation {
	flags := make([]domain.FlagItem, 0, maxFallbackFlags)
	var highs, lows, abnormals int
	for _, r := range rows {
		switch r.Flag {
		case domain.FlagHigh:
			highs++
		case domain.FlagLow:
			lows++
		case domain.FlagAbnormal:
			abnormals++
		}
		if !r.Flag.IsAbnormal() || len(flags) == maxFallbackFlags {
			continue
		}
		sev, _ := domain.SeverityForFlag(r.Flag)
		flags = append(flags, domain.FlagItem{
			TestName: r.TestName,
			Severity: sev,
			Note:     fmt.Sprintf("Marked as %s by the lab parser.", r.Flag),
		})
	}

	perTestRows := rows
	if len(perTestRows) > maxFallbackPerTest {
		perTestRows = perTestRows[:maxFallbackPerTest]
	}
	perTest := make([]domain.PerTestItem, 0, len(perTestRows))
	for _, r := range perTestRows {
		perTest = append(perTest, domain.PerTestItem{
			TestName:    r.TestName,
			Explanation: explain(r),
		})
	}

	nextSteps := make([]string, len(fallbackNextSteps))
	copy(nextSteps, fallbackNextSteps)

	return domain.Interpretation{
		Summary:    summarize(len(rows), highs, lows, abnormals),
		PerTest:    perTest,
		Flags:      flags,
		NextSteps:  nextSteps,
		Disclaimer: fallbackDisclaimer,
	}
}

// summarize reports the row count and flag counts. Without any flagged row
// the summary is the generic sentence alone.
func summarize(total, highs, lows, abnormals int) string {
	if highs+lows+abnormals == 0 {
		return genericSummary
	}
	parts := []string{fmt.Sprintf("Parsed %d tests.", total)}
	if highs > 0 {
		parts = append(parts, fmt.Sprintf("%d above reference range.", highs))
	}
	if lows > 0 {
		parts = append(parts, fmt.Sprintf("%d below reference range.", lows))
	}
	if abnormals > 0 {
		parts = append(parts, fmt.Sprintf("%d marked as abnormal.", abnormals))
	}
	return strings.Join(parts, " ")
}

func explain(r domain.ParsedRow) string {
	var b strings.Builder
	b.WriteString("Reported value: ")
	b.WriteString(r.Value.String())
	if r.Unit != "" {
		b.WriteString(" " + r.Unit)
	}
	if r.ReferenceRange != "" {
		b.WriteString(" (ref: " + r.ReferenceRange + ")")
	}
	b.WriteString(".")
	if r.Flag != "" {
		b.WriteString(" Marked " + string(r.Flag) + " relative to reference.")
	}
	b.WriteString(" This information is educational and not a diagnosis.")
	return b.String()
}
