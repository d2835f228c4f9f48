package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		typ  ErrorType
		code int
	}{
		{"not found", NewNotFoundError("x"), ErrorTypeNotFound, http.StatusNotFound},
		{"duplicate name", NewDuplicateNameError("x"), ErrorTypeDuplicateName, http.StatusBadRequest},
		{"plan inactive", NewPlanInactiveError("x"), ErrorTypePlanInactive, http.StatusBadRequest},
		{"invalid transition", NewInvalidTransitionError("x"), ErrorTypeInvalidTransition, http.StatusConflict},
		{"forbidden", NewForbiddenError("x"), ErrorTypeForbidden, http.StatusForbidden},
		{"entitlement required", NewEntitlementRequiredError("x"), ErrorTypeEntitlementRequired, http.StatusForbidden},
		{"quota exceeded", NewQuotaExceededError("x"), ErrorTypeQuotaExceeded, http.StatusForbidden},
		{"rate limited", NewRateLimitedError("x"), ErrorTypeRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.err.Type)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "not_found: plan not found", NewNotFoundError("plan not found").Error())
	assert.Equal(t, "conflict: busy (row changed)", NewConflictError("busy", "row changed").Error())
}

func TestAppError_WithCode(t *testing.T) {
	orig := NewInvalidTransitionError("not pending")
	downgraded := orig.WithCode(http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, downgraded.Code)
	assert.Equal(t, http.StatusConflict, orig.Code)
	assert.Equal(t, orig.Type, downgraded.Type)
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("approve: %w", NewQuotaExceededError("limit 3 reached"))

	appErr := GetAppError(wrapped)
	assert.NotNil(t, appErr)
	assert.True(t, IsType(wrapped, ErrorTypeQuotaExceeded))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'Basic' for key 'name'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: plans.name")))
	assert.True(t, IsDuplicateError(fmt.Errorf("ERROR: duplicate key value violates unique constraint")))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}
