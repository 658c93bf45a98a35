package interpret_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/interpret"
)

func promptRows(t *testing.T, prompt string) []map[string]interface{} {
	t.Helper()
	idx := strings.Index(prompt, "ROWS:\n")
	require.GreaterOrEqual(t, idx, 0)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(prompt[idx+len("ROWS:\n"):]), &rows))
	return rows
}

func TestBuildPrompt_Fields(t *testing.T) {
	rows := []domain.ParsedRow{
		{TestName: "Hemoglobin", Value: domain.NumberValue(13.2), Unit: "g/dL", ReferenceRange: "12.0-15.5", Flag: domain.FlagNormal, Confidence: 1},
		{TestName: "COVID-19 PCR", Value: domain.TextValue("Positive"), Flag: domain.FlagAbnormal, Confidence: 0.6},
	}

	prompt := interpret.BuildPrompt(rows)

	assert.Contains(t, prompt, interpret.ClinicianVisitStep)
	got := promptRows(t, prompt)
	require.Len(t, got, 2)
	assert.Equal(t, map[string]interface{}{
		"test_name":       "Hemoglobin",
		"value":           13.2,
		"unit":            "g/dL",
		"reference_range": "12.0-15.5",
		"flag":            "normal",
	}, got[0])
	assert.Equal(t, map[string]interface{}{
		"test_name":       "COVID-19 PCR",
		"value":           "Positive",
		"unit":            nil,
		"reference_range": nil,
		"flag":            "abnormal",
	}, got[1])
}

func TestBuildPrompt_KeepsRangeSymbols(t *testing.T) {
	prompt := interpret.BuildPrompt([]domain.ParsedRow{
		{TestName: "LDL", Value: domain.NumberValue(210), ReferenceRange: "≤ 200.0"},
	})

	assert.Contains(t, prompt, `"reference_range":"≤ 200.0"`)
}

func TestBuildPrompt_Truncates(t *testing.T) {
	rows := make([]domain.ParsedRow, 31)
	for i := range rows {
		rows[i] = domain.ParsedRow{TestName: "X", Value: domain.NumberValue(1)}
	}

	assert.Len(t, promptRows(t, interpret.BuildPrompt(rows)), interpret.MaxPromptRows)
}

func TestBuildPrompt_Empty(t *testing.T) {
	assert.Empty(t, promptRows(t, interpret.BuildPrompt(nil)))
}

func TestRepairPrompt(t *testing.T) {
	prompt := interpret.BuildPrompt(nil)
	repair := interpret.RepairPrompt(prompt)

	assert.True(t, strings.HasPrefix(repair, prompt))
	assert.True(t, strings.HasSuffix(repair, "Return the same content as strict valid JSON only. Do not include any prose or code fences."))
}
