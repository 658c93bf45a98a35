package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value domain.Value
		want  string
	}{
		{"number", domain.NumberValue(13.5), `13.5`},
		{"integer number", domain.NumberValue(12), `12`},
		{"text", domain.TextValue("Positive"), `"Positive"`},
		{"zero", domain.Value{}, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var row domain.ParsedRow
	require.NoError(t, json.Unmarshal([]byte(`{"test_name":"Hemoglobin","value":13.5,"confidence":1}`), &row))
	f, ok := row.Value.Float()
	assert.True(t, ok)
	assert.Equal(t, 13.5, f)

	require.NoError(t, json.Unmarshal([]byte(`{"test_name":"HIV","value":"Negative","confidence":0.6}`), &row))
	s, ok := row.Value.Text()
	assert.True(t, ok)
	assert.Equal(t, "Negative", s)
	_, ok = row.Value.Float()
	assert.False(t, ok)

	require.NoError(t, json.Unmarshal([]byte(`{"test_name":"X","value":null}`), &row))
	assert.True(t, row.Value.IsZero())
}

func TestValue_UnmarshalJSON_RejectsOtherTypes(t *testing.T) {
	var v domain.Value
	err := json.Unmarshal([]byte(`{"a":1}`), &v)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`true`), &v)
	assert.Error(t, err)
}

func TestParsedRow_OmitsEmptyOptionalFields(t *testing.T) {
	row := domain.ParsedRow{TestName: "Glucose", Value: domain.NumberValue(90), Confidence: 0.6}

	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"test_name":"Glucose","value":90,"confidence":0.6}`, string(b))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12.0", domain.FormatNumber(12))
	assert.Equal(t, "15.5", domain.FormatNumber(15.5))
	assert.Equal(t, "-0.25", domain.FormatNumber(-0.25))
	assert.Equal(t, "0.0", domain.FormatNumber(0))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "4.0", domain.NumberValue(4).String())
	assert.Equal(t, "Reactive", domain.TextValue("Reactive").String())
	assert.Equal(t, "", domain.Value{}.String())
}

func TestSeverityForFlag(t *testing.T) {
	tests := []struct {
		flag domain.Flag
		want domain.Severity
		ok   bool
	}{
		{domain.FlagHigh, domain.SeverityHigh, true},
		{domain.FlagLow, domain.SeverityLow, true},
		{domain.FlagAbnormal, domain.SeverityModerate, true},
		{domain.FlagNormal, "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := domain.SeverityForFlag(tt.flag)
		assert.Equal(t, tt.want, got, "flag %q", tt.flag)
		assert.Equal(t, tt.ok, ok, "flag %q", tt.flag)
	}
}

func TestFlag_IsAbnormal(t *testing.T) {
	assert.True(t, domain.FlagHigh.IsAbnormal())
	assert.True(t, domain.FlagAbnormal.IsAbnormal())
	assert.False(t, domain.FlagNormal.IsAbnormal())
	assert.False(t, domain.Flag("").IsAbnormal())
}

func TestExportFormat_ContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", domain.ExportFormatCSV.ContentType())
	assert.Contains(t, domain.ExportFormatXLSX.ContentType(), "spreadsheetml")
}
