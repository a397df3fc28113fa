package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Title  string  `json:"title" validate:"required,max=10"`
	Email  string  `json:"email" validate:"required,email"`
	Budget float64 `json:"budget" validate:"required,gt=0"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Title:  "ok",
		Email:  "user@example.com",
		Budget: 10,
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors, "title")
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "budget")
	assert.NotContains(t, vErr.Errors, "Title")
}

func TestValidate_Messages(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Title:  "way too long for this field",
		Email:  "not-an-email",
		Budget: -1,
	})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors["title"], "at most 10")
}
