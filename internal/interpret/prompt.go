package interpret

import (
	"bytes"
	"encoding/json"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// MaxPromptRows bounds how many rows are sent to the generation service.
const MaxPromptRows = 30

// ClinicianVisitStep is always the first next step of an Interpretation.
const ClinicianVisitStep = "Please schedule a visit with your doctor to review these results and your overall health."

// SystemPrompt is sent as the system instruction on every generation call.
const SystemPrompt = "You are a careful clinical educator. You explain lab results in clear, plain English. " +
	"You must not diagnose or prescribe. Output strictly and only valid JSON; no prose."

const instructions = "Given the following parsed lab rows, produce a JSON object with keys: " +
	"summary (<=120 words), per_test (array of {test_name, explanation}), " +
	"flags (array of {test_name, severity, note}) where severity is one of low, high or moderate, " +
	"next_steps (array of 4-6 strings), disclaimer (short). " +
	"The first item of next_steps must be: \"" + ClinicianVisitStep + "\" " +
	"Keep total length around 200-300 words. Educational only. No diagnosis or treatment. " +
	"Return JSON only with double quotes."

const repairInstruction = "Return the same content as strict valid JSON only. Do not include any prose or code fences."

// promptRow is the trimmed row shape sent to the model. Absent fields are
// encoded as null.
type promptRow struct {
	TestName       string       `json:"test_name"`
	Value          domain.Value `json:"value"`
	Unit           *string      `json:"unit"`
	ReferenceRange *string      `json:"reference_range"`
	Flag           *string      `json:"flag"`
}

// BuildPrompt renders the user prompt for the first MaxPromptRows rows.
func BuildPrompt(rows []domain.ParsedRow) string {
	if len(rows) > MaxPromptRows {
		rows = rows[:MaxPromptRows]
	}
	trimmed := make([]promptRow, 0, len(rows))
	for _, r := range rows {
		trimmed = append(trimmed, promptRow{
			TestName:       r.TestName,
			Value:          r.Value,
			Unit:           optional(r.Unit),
			ReferenceRange: optional(r.ReferenceRange),
			Flag:           optional(string(r.Flag)),
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a slice of plain structs cannot fail.
	_ = enc.Encode(trimmed)

	return instructions + "\n\nROWS:\n" + string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// RepairPrompt appends the strict-JSON instruction to a prompt.
func RepairPrompt(prompt string) string {
	return prompt + "\n\n" + repairInstruction
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
