package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sportsevents/eventdesk/internal/domain/model"
	apperrors "github.com/sportsevents/eventdesk/internal/errors"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		field   string
		message string
	}{
		{"missing email", model.LoginRequest{Password: "x"}, "email", "email is required"},
		{"bad email", model.LoginRequest{Email: "nope", Password: "x"}, "email", "email must be a valid email address"},
		{"short password", model.RegisterRequest{FullName: "A", Email: "a@b.co", Password: "short"}, "password", "password must be at least 8 characters"},
		{"zero capacity", model.EventDraft{Title: "T", Location: "L", Date: validDraft().Date}, "maxParticipants", "maxParticipants must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInput(tt.input)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	assert.NoError(t, validateInput(model.LoginRequest{Email: "a@b.co", Password: "x"}))
}

func TestValidateInput_NonStructIsInternal(t *testing.T) {
	err := validateInput(42)
	assert.True(t, apperrors.IsInternal(err))
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "", lowerFirst(""))
	assert.Equal(t, "maxParticipants", lowerFirst("MaxParticipants"))
}
