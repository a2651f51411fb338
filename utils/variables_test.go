package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"outreachly/models"
)

func testContact() *models.Contact {
	return &models.Contact{
		Email:     "jane@acme.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Company:   "Acme",
		Phone:     "+1 555 0100",
	}
}

func TestReplaceVariables_Substitution(t *testing.T) {
	out := ReplaceVariables("Hi {{firstName}}, how is {{company}}?", testContact())
	assert.Equal(t, "Hi Jane, how is Acme?", out)
}

// Whitespace inside the delimiters is tolerated.
func TestReplaceVariables_WhitespaceInsideDelimiters(t *testing.T) {
	out := ReplaceVariables("Hi {{ firstName }} from {{  company  }}", testContact())
	assert.Equal(t, "Hi Jane from Acme", out)
}

func TestReplaceVariables_FullName(t *testing.T) {
	out := ReplaceVariables("Dear {{fullName}}", testContact())
	assert.Equal(t, "Dear Jane Doe", out)

	contact := &models.Contact{FirstName: "Jane"}
	assert.Equal(t, "Dear Jane", ReplaceVariables("Dear {{fullName}}", contact))
}

// Placeholder names are case-sensitive; {{firstname}} is unrecognized
// and left verbatim, like any unknown placeholder.
func TestReplaceVariables_UnknownLeftVerbatim(t *testing.T) {
	out := ReplaceVariables("Hi {{firstname}}, re {{dealStage}}", testContact())
	assert.Equal(t, "Hi {{firstname}}, re {{dealStage}}", out)
}

// Known placeholders with no contact value render as empty strings.
func TestReplaceVariables_AbsentFieldIsEmpty(t *testing.T) {
	contact := &models.Contact{Email: "x@y.com"}
	out := ReplaceVariables("Hi {{firstName}}!", contact)
	assert.Equal(t, "Hi !", out)
}

func TestReplaceVariables_EmptyTemplate(t *testing.T) {
	assert.Equal(t, "", ReplaceVariables("", testContact()))
}

func TestExtractVariables(t *testing.T) {
	names := ExtractVariables("{{firstName}} at {{company}}, again {{firstName}}")
	assert.Equal(t, []string{"firstName", "company"}, names)

	assert.Empty(t, ExtractVariables("no placeholders here"))
}

func TestValidateVariables(t *testing.T) {
	valid, missing := ValidateVariables("Hi {{firstName}} from {{company}}", testContact())
	assert.True(t, valid)
	assert.Empty(t, missing)

	contact := &models.Contact{FirstName: "Jane"}
	valid, missing = ValidateVariables("Hi {{firstName}} from {{company}} re {{dealStage}}", contact)
	assert.False(t, valid)
	assert.Equal(t, []string{"company", "dealStage"}, missing)
}
