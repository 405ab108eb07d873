package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "user-crud-service/pkg/errors"
)

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name        string
		payload     map[string]string
		expectError bool
		field       string
	}{
		{
			name: "valid full payload",
			payload: map[string]string{
				"name":       "João Silva",
				"email":      "joao@email.com",
				"birth_date": "1987-06-01",
			},
		},
		{
			name:    "empty payload",
			payload: map[string]string{},
		},
		{
			name:    "unrecognized fields pass through",
			payload: map[string]string{"nickname": "@@@", "name": ""},
		},
		{
			name:    "email with plus and subdomain",
			payload: map[string]string{"email": "first.last+tag@mail.example.co.uk"},
		},
		{
			name:        "email without at sign",
			payload:     map[string]string{"email": "invalid_email"},
			expectError: true,
			field:       "email",
		},
		{
			name:        "email without domain suffix",
			payload:     map[string]string{"email": "joao@email"},
			expectError: true,
			field:       "email",
		},
		{
			name:        "email with trailing newline",
			payload:     map[string]string{"email": "joao@email.com\n"},
			expectError: true,
			field:       "email",
		},
		{
			name:        "birth date year 1500",
			payload:     map[string]string{"birth_date": "1500-06-01"},
			expectError: true,
			field:       "birth_date",
		},
		{
			name:        "birth date month 13",
			payload:     map[string]string{"birth_date": "1987-13-01"},
			expectError: true,
			field:       "birth_date",
		},
		{
			name:        "birth date wrong separator",
			payload:     map[string]string{"birth_date": "1987/06/01"},
			expectError: true,
			field:       "birth_date",
		},
		{
			name:    "calendar invalid date passes the pattern",
			payload: map[string]string{"birth_date": "2021-02-30"},
		},
		{
			name: "email is checked before birth date",
			payload: map[string]string{
				"email":      "bad",
				"birth_date": "bad",
			},
			expectError: true,
			field:       "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFields(tt.payload)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *pkgerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.payload[tt.field], verr.Value)
			assert.Contains(t, verr.Error(), tt.field)
		})
	}
}

func TestParseBirthDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseBirthDate("1987-06-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(1987, time.June, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("leap day", func(t *testing.T) {
		_, err := ParseBirthDate("2000-02-29")
		assert.NoError(t, err)
	})

	for _, value := range []string{"2021-02-30", "2023-02-29", "1987-04-31", "01-06-1987", ""} {
		t.Run("invalid "+value, func(t *testing.T) {
			_, err := ParseBirthDate(value)
			require.Error(t, err)

			var merr *pkgerrors.MalformedRequestError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, FieldBirthDate, merr.Field)
		})
	}
}

func TestFormatBirthDate(t *testing.T) {
	assert.Equal(t, "1987-06-01", FormatBirthDate(time.Date(1987, time.June, 1, 0, 0, 0, 0, time.UTC)))
}
