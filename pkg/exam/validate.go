package exam

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/seatplan/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON field names instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(recordStructValidation, Record{})
	return v
}

// recordStructValidation rejects schedules that end before they start.
func recordStructValidation(sl validator.StructLevel) {
	r := sl.Current().Interface().(Record)
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		sl.ReportError(r.End, "end", "End", "after_start", "")
	}
}

// Validate checks r for malformed values: negative counts, an unknown status
// or an end time before the start time. A zero student count is valid; the
// composer treats it as nothing to render.
func (r Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInternal, err, "validate exam")
	}

	fe := verrs[0]
	code := errors.ErrCodeInvalidExam
	if fe.Field() == "student_count" {
		code = errors.ErrCodeInvalidStudentCount
	}
	return errors.New(code, "%s", describeFieldError(fe))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param() + ", got " + fmt.Sprint(fe.Value())
	case "oneof":
		return fe.Field() + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "after_start":
		return "end must not be before start"
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}
