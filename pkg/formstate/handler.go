package formstate

import (
	"log/slog"

	"github.com/goliatone/go-regform/pkg/model"
)

// LogSubmission returns a handler that writes the accepted record to logger.
func LogSubmission(logger *slog.Logger) SubmitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(values model.FormValues) {
		attrs := []any{
			"firstName", values.FirstName,
			"lastName", values.LastName,
			"gender", string(values.Gender),
			"email", values.Email,
		}
		if values.Age != nil {
			attrs = append(attrs, "age", *values.Age)
		} else {
			attrs = append(attrs, "age", nil)
		}
		logger.Info("registration submitted", attrs...)
	}
}
