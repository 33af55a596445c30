package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("Obra", "name"))
	assert.Error(t, ValidateRequired("", "name"))
	assert.Error(t, ValidateRequired("   ", "name"))
}

func TestValidateMinLength(t *testing.T) {
	assert.NoError(t, ValidateMinLength("hola", 3, "name"))

	err := ValidateMinLength("ab", 3, "name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3")
}

func TestValidateMaxLength(t *testing.T) {
	assert.NoError(t, ValidateMaxLength("hola", 10, "name"))

	err := ValidateMaxLength("demasiado largo", 5, "name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 5")
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("a@x.com"))
	assert.Error(t, ValidateEmail("sin-arroba"))
	assert.Error(t, ValidateEmail("@x.com"))
	assert.Error(t, ValidateEmail("a@"))
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID("9a2f1c3e-7b54-4d2a-9c1f-8e6b2a0d4f13", "project_id"))
	assert.Error(t, ValidateUUID("not-a-uuid", "project_id"))
}

func TestUserValidation(t *testing.T) {
	v := UserValidation{}
	assert.NoError(t, v.ValidateUserName("Ana"))
	assert.Error(t, v.ValidateUserName("A"))
	assert.NoError(t, v.ValidatePassword("supersecreta"))
	assert.Error(t, v.ValidatePassword("corta"))
}
