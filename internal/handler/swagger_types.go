package handler

import (
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// Request and response bodies of the public API. The annotated handler
// comments refer to these names.

// --- Request Types ---

// ParseRequest is the JSON body of POST /parse and POST /parse/export.
type ParseRequest struct {
	Text *string `json:"text" example:"Hemoglobin 13.2 g/dL 12.0-15.5"`
}

// InterpretRequest is the JSON body of POST /interpret.
type InterpretRequest struct {
	Rows []domain.ParsedRow `json:"rows" binding:"dive"`
}

// --- Response Types ---

// Response is the success envelope with a typed data field.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
}

// ErrorResponseBody is the error envelope.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Engine string `json:"engine,omitempty" example:"openai"`
}
