package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator_ValidateLogin(t *testing.T) {
	v := NewPasswordValidator()

	assert.NoError(t, v.ValidateLogin("nurse.asha"))
	assert.NoError(t, v.ValidateLogin("user_42"))

	assert.Error(t, v.ValidateLogin("ab"), "too short")
	assert.Error(t, v.ValidateLogin("a-very-long-login-that-exceeds-the-limit"), "too long")
	assert.Error(t, v.ValidateLogin("bad login"), "spaces not allowed")
	assert.Error(t, v.ValidateLogin("bad@login"), "symbols not allowed")
}

func TestPasswordValidator_ValidatePassword(t *testing.T) {
	v := NewPasswordValidator()

	assert.NoError(t, v.ValidatePassword("Password123"))

	assert.Error(t, v.ValidatePassword("Pw1"), "too short")
	assert.Error(t, v.ValidatePassword("password123"), "missing uppercase")
	assert.Error(t, v.ValidatePassword("PASSWORD123"), "missing lowercase")
	assert.Error(t, v.ValidatePassword("PasswordOnly"), "missing digit")
}

func TestPasswordValidator_ValidateRegister(t *testing.T) {
	v := NewPasswordValidator()

	assert.NoError(t, v.ValidateRegister("nurse.asha", "Password123"))
	assert.Error(t, v.ValidateRegister("ab", "Password123"))
	assert.Error(t, v.ValidateRegister("nurse.asha", "weak"))
}
