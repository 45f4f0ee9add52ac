package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports malformed or out-of-range input. It aborts a run
// before any computation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a named field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// QualityWarning records a suspect input sample that was handled with a
// conservative substitution rather than aborting the run.
type QualityWarning struct {
	Index   int    `json:"index"` // position in the weather series
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w QualityWarning) String() string {
	return fmt.Sprintf("record %d: %s: %s", w.Index, w.Field, w.Message)
}

var validate = validator.New()

// ValidateStruct runs the struct's validate tags and converts failures into
// a single ValidationError naming the first offending field.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{
			Field:  strings.ToLower(fe.Field()),
			Reason: fmt.Sprintf("failed constraint %q (value %v)", fe.Tag(), fe.Value()),
		}
	}
	return &ValidationError{Reason: err.Error()}
}

// Validate checks the orientation and coordinate bounds.
func (s SiteConfig) Validate() error {
	return ValidateStruct(s)
}

// Validate checks scaling, health, degradation, and financial bounds. Health
// outside [0,1] is rejected here, never clamped.
func (p SystemParams) Validate() error {
	return ValidateStruct(p)
}

// Validate checks the module datasheet fields the engine depends on.
func (m ModuleSpec) Validate() error {
	if err := ValidateStruct(m); err != nil {
		return err
	}
	if m.RefIrradiance <= 0 {
		return NewValidationError("ref_irradiance", "must be positive, got %v", m.RefIrradiance)
	}
	return nil
}

// Validate checks the inverter datasheet, including that the efficiency
// curve is strictly increasing in DC power with efficiencies in (0,1].
func (inv InverterSpec) Validate() error {
	if err := ValidateStruct(inv); err != nil {
		return err
	}
	for i, pt := range inv.Efficiency {
		if pt.Eta <= 0 || pt.Eta > 1 {
			return NewValidationError("efficiency", "knot %d: efficiency %v outside (0,1]", i, pt.Eta)
		}
		if i > 0 && pt.DCW <= inv.Efficiency[i-1].DCW {
			return NewValidationError("efficiency", "knot %d: DC power %v not increasing", i, pt.DCW)
		}
	}
	return nil
}
