package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	valueNone valueKind = iota
	valueNumber
	valueText
)

// Value is a lab result value: either a decimal number or a categorical string
// such as "Positive". It encodes to JSON as a number or a string respectively.
type Value struct {
	kind valueKind
	num  float64
	text string
}

// NumberValue returns a numeric Value.
func NumberValue(f float64) Value {
	return Value{kind: valueNumber, num: f}
}

// TextValue returns a categorical Value.
func TextValue(s string) Value {
	return Value{kind: valueText, text: s}
}

// IsZero reports whether no value was set.
func (v Value) IsZero() bool { return v.kind == valueNone }

// Float returns the numeric value and whether it is numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == valueNumber
}

// Text returns the categorical value and whether it is categorical.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == valueText
}

func (v Value) String() string {
	switch v.kind {
	case valueNumber:
		return FormatNumber(v.num)
	case valueText:
		return v.text
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case valueNumber:
		return json.Marshal(v.num)
	case valueText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("value must be a number or a string: %w", err)
	}
	*v = NumberValue(f)
	return nil
}

// FormatNumber renders a decimal with at least one fractional digit, so 12
// becomes "12.0" and 15.5 stays "15.5".
func FormatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// ParsedRow is one observation extracted from one line of report text.
type ParsedRow struct {
	TestName       string  `json:"test_name" binding:"required"`
	Value          Value   `json:"value"`
	Unit           string  `json:"unit,omitempty"`
	ReferenceRange string  `json:"reference_range,omitempty"`
	Flag           Flag    `json:"flag,omitempty" binding:"omitempty,oneof=low high normal abnormal"`
	Confidence     float64 `json:"confidence" binding:"gte=0,lte=1"`
}

// ParseResult is the output of parsing one report: rows in input order and the
// normalized lines that could not be reduced to a row.
type ParseResult struct {
	Rows     []ParsedRow `json:"rows"`
	Unparsed []string    `json:"unparsed_lines"`
}

// PerTestItem explains a single test result.
type PerTestItem struct {
	TestName    string `json:"test_name" validate:"required"`
	Explanation string `json:"explanation" validate:"required"`
}

// FlagItem calls out a result that deserves attention.
type FlagItem struct {
	TestName string   `json:"test_name" validate:"required"`
	Severity Severity `json:"severity" validate:"required,oneof=low high moderate"`
	Note     string   `json:"note" validate:"required"`
}

// Interpretation is the plain-language explanation of a set of rows. Every
// generation path must produce all five fields.
type Interpretation struct {
	Summary    string        `json:"summary" validate:"required"`
	PerTest    []PerTestItem `json:"per_test" validate:"required,dive"`
	Flags      []FlagItem    `json:"flags" validate:"required,dive"`
	NextSteps  []string      `json:"next_steps" validate:"required,min=1,dive,required"`
	Disclaimer string        `json:"disclaimer" validate:"required"`
}

// CallMetadata describes how an Interpretation was produced.
type CallMetadata struct {
	Engine     string `json:"engine"`
	Attempts   int    `json:"attempts"`
	OK         bool   `json:"ok"`
	DurationMS int64  `json:"duration_ms"`
}
