package interpret_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/interpret"
)

func TestValidate_Valid(t *testing.T) {
	out, err := interpret.Validate(validPayload)

	require.NoError(t, err)
	assert.Len(t, out.PerTest, 1)
	require.Len(t, out.Flags, 1)
	assert.Equal(t, domain.SeverityHigh, out.Flags[0].Severity)
	assert.Equal(t, []string{interpret.ClinicianVisitStep, "Ask about lipid follow-up."}, out.NextSteps)
}

func TestValidate_PrependsClinicianStep(t *testing.T) {
	raw := `{"summary":"s","per_test":[],"flags":[],"next_steps":["Drink water."],"disclaimer":"d"}`

	out, err := interpret.Validate(raw)

	require.NoError(t, err)
	assert.Equal(t, []string{interpret.ClinicianVisitStep, "Drink water."}, out.NextSteps)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"prose", "Here are your results", interpret.ErrMalformedResponse},
		{"code fence", "```json\n{}\n```", interpret.ErrMalformedResponse},
		{"empty", "", interpret.ErrMalformedResponse},
		{"missing fields", `{"summary":"s"}`, interpret.ErrSchemaViolation},
		{"wrong type", `{"summary":42,"per_test":[],"flags":[],"next_steps":["x"],"disclaimer":"d"}`, interpret.ErrSchemaViolation},
		{"bad severity", `{"summary":"s","per_test":[],"flags":[{"test_name":"A","severity":"critical","note":"n"}],"next_steps":["x"],"disclaimer":"d"}`, interpret.ErrSchemaViolation},
		{"empty next steps", `{"summary":"s","per_test":[],"flags":[],"next_steps":[],"disclaimer":"d"}`, interpret.ErrSchemaViolation},
		{"blank per-test name", `{"summary":"s","per_test":[{"test_name":"","explanation":"e"}],"flags":[],"next_steps":["x"],"disclaimer":"d"}`, interpret.ErrSchemaViolation},
		{"null disclaimer", `{"summary":"s","per_test":[],"flags":[],"next_steps":["x"],"disclaimer":null}`, interpret.ErrSchemaViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interpret.Validate(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
