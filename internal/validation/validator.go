// Package validation checks raw form submissions against an embedded JSON Schema.
package validation

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

//go:embed assessment.schema.json
var assessmentSchema []byte

// FieldIssue is a single schema violation.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

// AssessmentValidator validates lead form payloads.
type AssessmentValidator struct {
	schema *gojsonschema.Schema
}

// NewAssessmentValidator compiles the embedded schema.
func NewAssessmentValidator() (*AssessmentValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(assessmentSchema))
	if err != nil {
		return nil, fmt.Errorf("compile assessment schema: %w", err)
	}
	return &AssessmentValidator{schema: schema}, nil
}

// Validate returns nil for a conforming payload, otherwise a VALIDATION_FAILED
// domain error whose details list every issue ordered by field.
func (v *AssessmentValidator) Validate(raw []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]FieldIssue, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		issues = append(issues, FieldIssue{
			Field:   issueField(re),
			Message: re.Description(),
			Rule:    re.Type(),
		})
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })

	return apperrors.NewValidationError("submission failed validation", map[string]any{"issues": issues})
}

// issueField names the offending property; gojsonschema reports missing
// required properties against the parent object.
func issueField(re gojsonschema.ResultError) string {
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			return prop
		}
	}
	if re.Type() == "additional_property_not_allowed" {
		if prop, ok := re.Details()["property"].(string); ok {
			return prop
		}
	}
	return re.Field()
}
