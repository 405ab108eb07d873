package user

import (
	"regexp"
	"time"

	pkgerrors "user-crud-service/pkg/errors"
)

// Field names as they appear in request payloads and serialized users.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldBirthDate = "birth_date"
)

// DateLayout is the ISO calendar date format used for birth dates in every direction.
const DateLayout = "2006-01-02"

type fieldRule struct {
	field   string
	pattern *regexp.Regexp
}

// fieldRules are checked in this order; fields without a rule are not checked.
var fieldRules = []fieldRule{
	{
		field:   FieldEmail,
		pattern: regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+$`),
	},
	{
		// Month length and leap years are left to ParseBirthDate.
		field:   FieldBirthDate,
		pattern: regexp.MustCompile(`^(19|20)\d{2}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`),
	},
}

// ValidateFields checks every recognized field present in payload against its
// pattern and returns a *errors.ValidationError for the first mismatch.
func ValidateFields(payload map[string]string) error {
	for _, rule := range fieldRules {
		value, ok := payload[rule.field]
		if !ok {
			continue
		}
		if !rule.pattern.MatchString(value) {
			return pkgerrors.NewValidationError(rule.field, value)
		}
	}
	return nil
}

// ParseBirthDate parses an ISO calendar date. Dates that do not exist, such as
// 2021-02-30, are rejected with a *errors.MalformedRequestError.
func ParseBirthDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, pkgerrors.NewMalformedRequestError(FieldBirthDate,
			"'"+value+"' is not a valid calendar date (expected YYYY-MM-DD)")
	}
	return t, nil
}

// FormatBirthDate renders a birth date in DateLayout.
func FormatBirthDate(t time.Time) string {
	return t.Format(DateLayout)
}
