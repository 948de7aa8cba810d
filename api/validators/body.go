package validators

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSONBody decodes the request body into dst and runs struct
// validation, mapping any failure to an InvalidInput error.
func DecodeJSONBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "request body is not valid JSON")
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if stdErrors.As(err, &fieldErrs) {
			return pkgerrors.New(pkgerrors.CodeInvalidInput, "request body failed validation").
				WithDetails(formatValidationErrors(fieldErrs))
		}
		return pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "request body failed validation")
	}
	return nil
}

func formatValidationErrors(fieldErrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
