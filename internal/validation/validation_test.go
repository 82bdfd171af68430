package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Level           string `json:"level" validate:"omitempty,oneof=easy medium difficult"`
}

func TestStructValid(t *testing.T) {
	err := Struct(&signup{Name: "Jonas", Email: "jonas@example.com", Password: "pass1234", PasswordConfirm: "pass1234"})
	assert.NoError(t, err)
}

func TestStructCollectsFieldMessages(t *testing.T) {
	err := Struct(&signup{Email: "nope", Password: "short", PasswordConfirm: "other", Level: "extreme"})
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "name is required", verrs["name"])
	assert.Equal(t, "email must be a valid email address", verrs["email"])
	assert.Equal(t, "password must be at least 8 characters long", verrs["password"])
	assert.Equal(t, "passwordConfirm must match Password", verrs["passwordConfirm"])
	assert.Equal(t, "level must be one of: easy, medium, difficult", verrs["level"])
}

func TestErrorsMessageIsStable(t *testing.T) {
	e := Errors{"b": "second", "a": "first"}
	assert.Equal(t, "first; second", e.Error())
}
