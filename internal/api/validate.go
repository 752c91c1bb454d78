package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/quizdesk/quizdesk/internal/apperr"
)

// validate enforces request payload constraints before any I/O happens.
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkPayload validates a request payload, returning a VALIDATION_ERROR
// naming the offending fields.
func checkPayload(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Transform(err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	return apperr.New("invalid input: "+strings.Join(fields, ", "), apperr.Options{
		Type:        apperr.ValidationError,
		Severity:    apperr.SeverityMedium,
		Original:    err,
		Recoverable: apperr.Bool(true),
	})
}
