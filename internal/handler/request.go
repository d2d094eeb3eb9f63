package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/qna-service/internal/apperror"
)

// validate is shared by all handlers; validator.Validate is safe for
// concurrent use and caches struct metadata.
var validate = validator.New()

// decodeValid decodes the JSON request body into dst and checks its
// `validate` struct tags. Decoding and validation both happen here, before
// any business logic runs — handlers work with typed, validated values
// only.
func decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "invalid JSON body")
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperror.ValidationFailed(fe.Field(), "invalid value for field "+fe.Field())
		}
		return apperror.ValidationFailed("body", "invalid request payload")
	}

	return nil
}

// pathID parses the {id} route parameter as an integer.
func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.ParseError("id", raw)
	}
	return id, nil
}
