package domain

// Flag is the qualitative abnormality indicator derived from a value and its reference range.
type Flag string

const (
	FlagLow      Flag = "low"
	FlagHigh     Flag = "high"
	FlagNormal   Flag = "normal"
	FlagAbnormal Flag = "abnormal"
)

// IsAbnormal reports whether the flag marks a result outside its expected range.
func (f Flag) IsAbnormal() bool {
	return f == FlagLow || f == FlagHigh || f == FlagAbnormal
}

// Severity grades an entry in Interpretation.Flags.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
)

// SeverityForFlag maps a row flag to the severity reported in an interpretation.
// Normal rows have no severity.
func SeverityForFlag(f Flag) (Severity, bool) {
	switch f {
	case FlagHigh:
		return SeverityHigh, true
	case FlagLow:
		return SeverityLow, true
	case FlagAbnormal:
		return SeverityModerate, true
	default:
		return "", false
	}
}

// Engine names the generation path that produced an interpretation.
const EngineNone = "none"

// ExportFormat is the file format for exported parse results.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ContentType returns the MIME type served for the export format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// AllowedContentTypes lists the upload types the document extractor accepts.
var AllowedContentTypes = map[string]bool{
	"application/pdf": true,
	"text/plain":      true,
}

// AllowedExtensions maps accepted upload file extensions to their content type.
var AllowedExtensions = map[string]string{
	"pdf": "application/pdf",
	"txt": "text/plain",
}
