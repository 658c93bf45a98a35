package labparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/labparser"
)

func TestNormalizeLine(t *testing.T) {
	tests := map[string]string{
		"  Hemoglobin   13.2  g/dL ":  "Hemoglobin 13.2 g/dL",
		"Glucose [fasting] 100 mg/dL": "Glucose 100 mg/dL",
		"ALT*** 40 U/L":               "ALT 40 U/L",
		"\tSodium 140\tmmol/L":        "Sodium 140 mmol/L",
		"   ":                         "",
		"[only a note]":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, labparser.NormalizeLine(in), in)
	}
}

func TestIsNoise(t *testing.T) {
	for _, line := range []string{
		"Page 2",
		"page3 of 4",
		"CONFIDENTIAL",
		"Laboratory Report - City Lab",
		"Patient: John Smith",
		"DOB: 1980-01-01",
		"Collected: 2024-03-01 08:00",
		"Reported: 2024-03-02",
	} {
		assert.True(t, labparser.IsNoise(line), line)
	}

	for _, line := range []string{
		"Hemoglobin 13.2 g/dL",
		"Report page 2",
		"Total patients: 3",
	} {
		assert.False(t, labparser.IsNoise(line), line)
	}
}
