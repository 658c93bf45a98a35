package interpret

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

var (
	// ErrMalformedResponse means the generated text was not a JSON object.
	ErrMalformedResponse = errors.New("generated response is not valid JSON")
	// ErrSchemaViolation means the JSON did not satisfy the Interpretation schema.
	ErrSchemaViolation = errors.New("generated response does not match interpretation schema")
)

var validate = validator.New()

// Validate decodes raw generated text into an Interpretation and checks it
// against the schema. A valid payload whose first next step is not
// ClinicianVisitStep gets it prepended.
func Validate(raw string) (domain.Interpretation, error) {
	var out domain.Interpretation
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.Interpretation{}, fmt.Errorf("%w: field %s: %v", ErrSchemaViolation, typeErr.Field, err)
		}
		return domain.Interpretation{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := validate.Struct(out); err != nil {
		return domain.Interpretation{}, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if out.NextSteps[0] != ClinicianVisitStep {
		out.NextSteps = append([]string{ClinicianVisitStep}, out.NextSteps...)
	}
	return out, nil
}
