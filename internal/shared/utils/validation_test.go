package utils

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/shared/errors"
)

type planInput struct {
	Name  string `json:"name" validate:"required,notblank,max=100"`
	Limit *int   `json:"nutrition_plan_limit" validate:"omitempty,gte=0"`
}

func TestValidateStruct(t *testing.T) {
	negative := -1

	tests := []struct {
		name    string
		input   planInput
		wantErr string
	}{
		{"valid", planInput{Name: "Basic"}, ""},
		{"missing name", planInput{}, "name is required"},
		{"blank name", planInput{Name: "   "}, "name must not be blank"},
		{"negative limit", planInput{Name: "Basic", Limit: &negative}, "nutrition_plan_limit must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
			assert.Contains(t, appErr.Details, tt.wantErr)
		})
	}
}

func TestBindingError(t *testing.T) {
	appErr := errors.GetAppError(BindingError(stderrors.New("unexpected EOF")))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "Invalid request body", appErr.Message)

	appErr = errors.GetAppError(BindingError(validate.Struct(planInput{})))
	require.NotNil(t, appErr)
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.Contains(t, appErr.Details, "name is required")
}
