package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/extract"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/interpret"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/service"
)

const rowsJSON = `[
	{"test_name":"Hemoglobin","value":13.2,"unit":"g/dL","reference_range":"12.0-15.5","flag":"normal","confidence":1},
	{"test_name":"HIV 1/2 Antibody","value":"Negative","flag":"normal","confidence":0.6}
]`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadRows_Stdin(t *testing.T) {
	for _, args := range [][]string{nil, {"-"}} {
		rows, err := readRows(strings.NewReader(rowsJSON), args)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Hemoglobin", rows[0].TestName)
		text, ok := rows[1].Value.Text()
		assert.True(t, ok)
		assert.Equal(t, "Negative", text)
	}
}

func TestReadRows_File(t *testing.T) {
	path := writeTemp(t, "rows.json", rowsJSON)

	rows, err := readRows(strings.NewReader("ignored"), []string{path})

	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReadRows_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"not json", `Hemoglobin 13.2`, nil},
		{"object instead of array", `{"rows":[]}`, nil},
		{"missing value", `[{"test_name":"Glucose","confidence":0.2}]`, domain.ErrInvalidInput},
		{"missing name", `[{"value":5.1,"confidence":0.2}]`, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := readRows(strings.NewReader(tt.input), nil)

			require.Error(t, err)
			assert.Nil(t, rows)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestReadRows_MissingFile(t *testing.T) {
	_, err := readRows(strings.NewReader(""), []string{filepath.Join(t.TempDir(), "absent.json")})

	assert.Error(t, err)
}

func newTestService(t *testing.T) service.ReportService {
	t.Helper()
	extractor, err := extract.New(nil, zerolog.Nop())
	require.NoError(t, err)
	return service.NewReportService(extractor, interpret.NewOrchestrator(nil), nil, &config.UploadConfig{MaxFileSizeMB: 1}, zerolog.Nop())
}

func TestParseInput_StdinAndFile(t *testing.T) {
	const report = "Hemoglobin 13.2 g/dL 12.0-15.5\nComment: sample slightly hemolyzed\n"
	svc := newTestService(t)

	fromStdin, err := parseInput(context.Background(), svc, strings.NewReader(report), nil)
	require.NoError(t, err)

	fromFile, err := parseInput(context.Background(), svc, strings.NewReader(""), []string{writeTemp(t, "report.txt", report)})
	require.NoError(t, err)

	assert.Equal(t, fromStdin, fromFile)
	require.Len(t, fromFile.Rows, 1)
	assert.Equal(t, domain.FlagNormal, fromFile.Rows[0].Flag)
	assert.Equal(t, []string{"Comment: sample slightly hemolyzed"}, fromFile.Unparsed)
}

func TestParseInput_RejectsUnsupportedFile(t *testing.T) {
	_, err := parseInput(context.Background(), newTestService(t), strings.NewReader(""), []string{writeTemp(t, "scan.png", "\x89PNG\r\n\x1a\n")})

	assert.True(t, errors.Is(err, domain.ErrUnsupportedFileType), "got %v", err)
}
