package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		form    RegisterForm
		field   string
		message string
	}{
		{"missing username", RegisterForm{Password: "learnbydoing", ConfirmPassword: "learnbydoing"}, "username", "Username is a required field"},
		{"short username", RegisterForm{Username: "crio", Password: "learnbydoing", ConfirmPassword: "learnbydoing"}, "username", "Username must be at least 6 characters"},
		{"missing password", RegisterForm{Username: "crio.user"}, "password", "Password is a required field"},
		{"short password", RegisterForm{Username: "crio.user", Password: "learn", ConfirmPassword: "learn"}, "password", "Password must be at least 6 characters"},
		{"mismatch", RegisterForm{Username: "crio.user", Password: "learnbydoing", ConfirmPassword: "learnbyreading"}, "confirmPassword", "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.form)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestValidateRegistrationAcceptsValidForm(t *testing.T) {
	err := ValidateRegistration(RegisterForm{Username: "crio.user", Password: "learnbydoing", ConfirmPassword: "learnbydoing"})
	assert.NoError(t, err)
}

func TestValidateLoginOnlyRequiresFields(t *testing.T) {
	assert.NoError(t, ValidateLogin(LoginForm{Username: "a", Password: "b"}))

	err := ValidateLogin(LoginForm{Username: "crio.user"})
	require.Error(t, err)
	assert.Equal(t, "Password is a required field", err.Error())
}
