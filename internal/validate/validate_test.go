package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_RequiredRejectsEmpty(t *testing.T) {
	result := Validate("", Rules{Required: true})

	assert.False(t, result.Valid)
	assert.Equal(t, "This field is required", result.Message)
}

func TestValidate_RequiredRejectsWhitespaceOnly(t *testing.T) {
	result := Validate("   ", Rules{Required: true})

	assert.False(t, result.Valid)
}

func TestValidate_EmptyOptionalFieldPasses(t *testing.T) {
	result := Validate("", Rules{Email: true, MinLength: 5})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Message)
}

func TestValidate_EmailAcceptsValidAddress(t *testing.T) {
	result := Validate("a@b.co", Rules{Required: true, Email: true})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Message)
}

func TestValidate_EmailRejectsMissingDomain(t *testing.T) {
	result := Validate("a@b", Rules{Required: true, Email: true})

	assert.False(t, result.Valid)
	assert.Equal(t, "Please enter a valid email address", result.Message)
}

func TestValidate_MinLength(t *testing.T) {
	result := Validate("ab", Rules{MinLength: 3})
	assert.False(t, result.Valid)
	assert.Equal(t, "Must be at least 3 characters", result.Message)

	result = Validate("abc", Rules{MinLength: 3})
	assert.True(t, result.Valid)
}

func TestValidate_NameRejectsDigits(t *testing.T) {
	result := Validate("John D03", Rules{Required: true, Name: true})

	assert.False(t, result.Valid)
	assert.Equal(t, "Please enter a valid name", result.Message)
}

func TestValidate_NameAcceptsLettersAndSpaces(t *testing.T) {
	result := Validate("Jane Doe", Rules{Required: true, Name: true})

	assert.True(t, result.Valid)
}

func TestValidate_NumericAcceptsCarrierIdentifier(t *testing.T) {
	result := Validate("1234567890", Rules{Required: true, Numeric: true})

	assert.True(t, result.Valid)
}

func TestValidate_NumericRejectsMixedInput(t *testing.T) {
	result := Validate("12345abc", Rules{Required: true, Numeric: true})

	assert.False(t, result.Valid)
	assert.Equal(t, "Numbers only", result.Message)
}

func TestValidate_FirstFailingRuleWins(t *testing.T) {
	// Required outranks the email shape check for an empty value.
	result := Validate("", Rules{Required: true, Email: true})
	assert.Equal(t, "This field is required", result.Message)

	// Email shape outranks min length.
	result = Validate("x@", Rules{Email: true, MinLength: 10})
	assert.Equal(t, "Please enter a valid email address", result.Message)
}
