package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/export"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/service"
)

// multipartOverhead is the allowance for form boundaries and headers on top
// of the upload limit.
const multipartOverhead = 1 << 20

// ParseHandler handles report parsing endpoints.
type ParseHandler struct {
	reportService service.ReportService
	maxBodyBytes  int64
}

// NewParseHandler creates a new ParseHandler. maxUploadBytes bounds uploaded
// files; request bodies get a small allowance on top.
func NewParseHandler(reportService service.ReportService, maxUploadBytes int64) *ParseHandler {
	return &ParseHandler{reportService: reportService, maxBodyBytes: maxUploadBytes + multipartOverhead}
}

// Parse handles POST /api/v1/parse
// @Summary Parse a lab report
// @Description Parse report text sent as JSON {"text": "..."} or an uploaded PDF/text file into structured rows
// @Tags parse
// @Accept json,mpfd
// @Produce json
// @Param body body ParseRequest false "Report text"
// @Param file formData file false "Report document (PDF or text)"
// @Success 200 {object} Response{data=domain.ParseResult} "Parsed rows and unparsed lines"
// @Failure 400 {object} ErrorResponseBody "Invalid body or unreadable document"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Router /parse [post]
func (h *ParseHandler) Parse(c *gin.Context) {
	result, _, ok := h.parse(c)
	if !ok {
		return
	}
	RespondOK(c, result)
}

// Export handles POST /api/v1/parse/export
// @Summary Parse a lab report and download the rows
// @Description Same inputs as /parse; responds with a CSV or XLSX file
// @Tags parse
// @Accept json,mpfd
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file "Exported rows"
// @Failure 400 {object} ErrorResponseBody "Invalid body or unsupported format"
// @Router /parse/export [post]
func (h *ParseHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	result, name, ok := h.parse(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.Export(c.Request.Context(), result, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(name, format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// parse reads either a multipart upload or a JSON text body and runs the
// parser. It returns the uploaded file name when there was one. On failure
// the error response is already written.
func (h *ParseHandler) parse(c *gin.Context) (*domain.ParseResult, string, bool) {
	if c.Request.ContentLength > h.maxBodyBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return nil, "", false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	switch contentType := c.ContentType(); {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		header, err := c.FormFile("file")
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				HandleError(c, domain.ErrFileTooLarge)
				return nil, "", false
			}
			RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
			return nil, "", false
		}
		file, err := header.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FILE", "uploaded file could not be opened")
			return nil, "", false
		}
		defer func() { _ = file.Close() }()

		result, err := h.reportService.ParseDocument(c.Request.Context(), service.DocumentInput{
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
		if err != nil {
			HandleError(c, err)
			return nil, "", false
		}
		return result, header.Filename, true

	case contentType == "application/json":
		var req ParseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				HandleError(c, domain.ErrFileTooLarge)
				return nil, "", false
			}
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body")
			return nil, "", false
		}
		if req.Text == nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must include 'text'")
			return nil, "", false
		}

		result, err := h.reportService.ParseText(c.Request.Context(), *req.Text)
		if err != nil {
			HandleError(c, err)
			return nil, "", false
		}
		return result, "", true

	default:
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_MEDIA_TYPE", `send a PDF or text file, or JSON {"text": "..."}`)
		return nil, "", false
	}
}
