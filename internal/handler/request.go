package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the process-wide request validator, shared read-only
// across handlers.
var validate = validator.New()

// errMalformedBody marks bodies that are not valid JSON at all.
var errMalformedBody = errors.New("invalid request body")

// decodeValid decodes the JSON body into v and validates it against its
// struct tags. A request that fails here never reaches the service layer.
func decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errMalformedBody
	}

	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf("invalid %s: %s", strings.ToLower(first.Field()), tagMessage(first.Tag()))
		}
		return errors.New("validation failed")
	}

	return nil
}

// tagMessage maps validation tags to user-safe descriptions. Raw
// validator output is never sent to clients.
func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
