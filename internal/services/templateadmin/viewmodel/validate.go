package viewmodel

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/louisbranch/templatedesk/internal/platform/errors"
)

const tagRowParity = "rowparity"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(dependencyRowParity, DependencyResolutionRequest{})
	return v
}

func dependencyRowParity(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(DependencyResolutionRequest)
	if !ok {
		return
	}
	if len(req.SchemaLocations) != len(req.Dependencies) {
		sl.ReportError(req.Dependencies, "Dependencies", "Dependencies", tagRowParity, "")
	}
}

// check runs the struct rules and translates the first failure into a domain
// error code.
func check(target any) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(apperrors.CodeInvalidRequest, "validate request", err)
	}
	first := fieldErrs[0]
	switch {
	case first.Field() == "ObjectID" && first.Tag() == "required":
		return apperrors.New(apperrors.CodeObjectIDRequired, "object id is required")
	case first.Tag() == tagRowParity:
		return apperrors.New(apperrors.CodeDependencyRowsMismatch, "schema locations and dependencies must have one entry per row")
	default:
		return apperrors.Wrap(apperrors.CodeInvalidRequest, fmt.Sprintf("field %s failed %s", first.Field(), first.Tag()), err)
	}
}
