package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	t.Run("AllFormsMatch", func(t *testing.T) {
		forms := []string{
			"+40 712-345-678",
			"0712345678",
			"40712345678",
			"712345678",
			"+40712345678",
		}
		for _, f := range forms {
			assert.Equal(t, "712345678", NormalizePhone(f), "input=%q", f)
		}
	})

	t.Run("InternationalPrefix", func(t *testing.T) {
		assert.Equal(t, "712345678", NormalizePhone("0040712345678"))
		assert.Equal(t, "44123456789", NormalizePhone("0044123456789"))
	})

	t.Run("Idempotent", func(t *testing.T) {
		inputs := []string{
			"+40 712 345 678",
			"0040712345678",
			"0044123456789",
			"+49 151 12345678",
			"0712345678",
		}
		for _, in := range inputs {
			once := NormalizePhone(in)
			assert.Equal(t, once, NormalizePhone(once), "input=%q", in)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", NormalizePhone(""))
		assert.Equal(t, "", NormalizePhone("  +() - "))
	})

	t.Run("ForeignNumberKeepsDigits", func(t *testing.T) {
		assert.Equal(t, "4915112345678", NormalizePhone("+49 151 12345678"))
	})
}
