package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPhone(t *testing.T) {
	valid := []string{"0912345678", "+84912345678", "0312 345 678", "086-123-4567"}
	for _, p := range valid {
		assert.True(t, IsValidPhone(p), p)
	}

	invalid := []string{"", "12345", "0112345678", "091234567", "+1 555 123 4567", "09123456789"}
	for _, p := range invalid {
		assert.False(t, IsValidPhone(p), p)
	}
}

func TestCanonicalPhone(t *testing.T) {
	assert.Equal(t, "0912345678", CanonicalPhone("+84 912 345 678"))
	assert.Equal(t, "0912345678", CanonicalPhone("0912.345.678"))
}

type phoneRequest struct {
	Phone string `binding:"required,vnphone"`
}

func TestRegisterBindingTag(t *testing.T) {
	require.NoError(t, Register())

	assert.NoError(t, binding.Validator.ValidateStruct(&phoneRequest{Phone: "0987654321"}))
	assert.Error(t, binding.Validator.ValidateStruct(&phoneRequest{Phone: "12"}))
}
