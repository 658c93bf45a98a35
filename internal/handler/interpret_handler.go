package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/service"
)

// InterpretHandler handles the interpretation endpoint.
type InterpretHandler struct {
	reportService service.ReportService
}

// NewInterpretHandler creates a new InterpretHandler.
func NewInterpretHandler(reportService service.ReportService) *InterpretHandler {
	return &InterpretHandler{reportService: reportService}
}

// Interpret handles POST /api/v1/interpret
// @Summary Explain parsed lab rows
// @Description Returns a plain-language interpretation. Falls back to a deterministic explanation when the generation service is unavailable; meta.ok tells which path was used.
// @Tags interpret
// @Accept json
// @Produce json
// @Param body body InterpretRequest true "Parsed rows"
// @Success 200 {object} Response{data=service.InterpretOutput} "Interpretation and call metadata"
// @Failure 400 {object} ErrorResponseBody "Empty or invalid rows"
// @Router /interpret [post]
func (h *InterpretHandler) Interpret(c *gin.Context) {
	var req InterpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "rows must be an array of parsed rows")
		return
	}
	for i := range req.Rows {
		if req.Rows[i].Value.IsZero() {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("rows[%d].value is required", i))
			return
		}
	}

	out, err := h.reportService.Interpret(c.Request.Context(), req.Rows)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}
