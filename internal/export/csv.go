// Package export writes parse results as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by both formats.
var columns = []string{
	"Test Name",
	"Value",
	"Unit",
	"Reference Range",
	"Flag",
	"Confidence",
}

// Writer wraps csv.Writer for exporting parsed rows as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts parsed rows to CSV records and writes them.
func (w *Writer) WriteRows(rows []domain.ParsedRow) error {
	for i := range rows {
		if err := w.csv.Write(rowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// UnparsedHeading labels the trailing section of a CSV export.
const UnparsedHeading = "Unparsed Line"

// WriteUnparsed appends the unparsed lines after a blank separator record.
// Records are padded to the column count so the file stays rectangular.
// Nothing is written when lines is empty.
func (w *Writer) WriteUnparsed(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if err := w.csv.Write(padRecord("")); err != nil {
		return err
	}
	if err := w.csv.Write(padRecord(UnparsedHeading)); err != nil {
		return err
	}
	for _, line := range lines {
		if err := w.csv.Write(padRecord(line)); err != nil {
			return err
		}
	}
	return nil
}

func padRecord(first string) []string {
	record := make([]string, len(columns))
	record[0] = first
	return record
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a BOM, the header, every row of result and then the
// unparsed lines section.
func WriteCSV(out io.Writer, result domain.ParseResult) error {
	if _, err := out.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteRows(result.Rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	if err := w.WriteUnparsed(result.Unparsed); err != nil {
		return fmt.Errorf("writing unparsed lines: %w", err)
	}
	w.Flush()
	return w.Error()
}

func rowToRecord(r *domain.ParsedRow) []string {
	return []string{
		r.TestName,
		r.Value.String(),
		r.Unit,
		r.ReferenceRange,
		string(r.Flag),
		formatConfidence(r.Confidence),
	}
}

func formatConfidence(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseFormat resolves a format query value. Empty means CSV.
func ParseFormat(s string) (domain.ExportFormat, error) {
	switch domain.ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", domain.ExportFormatCSV:
		return domain.ExportFormatCSV, nil
	case domain.ExportFormatXLSX:
		return domain.ExportFormatXLSX, nil
	default:
		return "", domain.ErrUnsupportedFormat
	}
}

// Write writes result in the given format.
func Write(out io.Writer, format domain.ExportFormat, result domain.ParseResult) error {
	switch format {
	case domain.ExportFormatCSV:
		return WriteCSV(out, result)
	case domain.ExportFormatXLSX:
		return WriteXLSX(out, result)
	default:
		return domain.ErrUnsupportedFormat
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a download name of the form {name}_{YYYY-MM-DD}.{ext}.
// An empty or fully stripped name becomes "lab_results".
func BuildFilename(name string, format domain.ExportFormat, now time.Time) string {
	sanitized := SanitizeFilename(strings.TrimSuffix(name, filenameExt(name)))
	if sanitized == "" {
		sanitized = "lab_results"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), format)
}

func filenameExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[i:]
	}
	return ""
}
