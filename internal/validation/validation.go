package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dterira/Quorable/internal/apperr"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Table is a static per-entity rule set: field name to validator tag, and
// "field.rule" to the user-facing message raised on violation.
type Table struct {
	Rules    map[string]string
	Messages map[string]string
}

// Field checks a single value against the table's rule for name. A field
// without a rule passes. Violations surface as apperr.Validation carrying
// the table's message for the first failed rule.
func (t Table) Field(name string, value any) error {
	rule, ok := t.Rules[name]
	if !ok {
		return nil
	}

	err := validate.Var(value, rule)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation(t.message(name, verrs[0].Tag()))
	}
	return apperr.Validation(t.message(name, ""))
}

// Fail raises the table's message for an explicit field.rule pair. Used for
// conditions the tag language cannot express per-value, like required_with.
func (t Table) Fail(field, rule string) *apperr.Error {
	return apperr.Validation(t.message(field, rule))
}

func (t Table) message(field, rule string) string {
	if msg, ok := t.Messages[field+"."+rule]; ok {
		return msg
	}
	return fmt.Sprintf("The %s field is invalid.", strings.ReplaceAll(field, "_", " "))
}
