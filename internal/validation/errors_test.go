package validation

import (
	"fmt"
	"testing"

	apperrors "worklog/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Messages(t *testing.T) {
	ve := NewValidationError()
	assert.False(t, ve.HasErrors())
	assert.NoError(t, ve.ErrOrNil())
	assert.Equal(t, "validation error", ve.Error())

	ve.AddRequiredError("task_label")
	assert.Equal(t, "validation error for field 'task_label': task_label is required", ve.Error())
	assert.Equal(t, "task_label is required", ve.GetUserFriendlyMessage())

	ve.AddInvalidLengthError("project_label", "x", 0, 255)
	ve.AddInvalidValueError("duration_minutes", 0, "must be at least 1 minute")
	assert.Contains(t, ve.Error(), "multiple validation errors")
	assert.Equal(t, "Multiple validation errors occurred:\n- task_label is required\n- project_label must be at most 255 characters long\n- duration_minutes has invalid value: must be at least 1 minute", ve.GetUserFriendlyMessage())
	assert.Len(t, ve.GetFieldErrors("task_label"), 1)
}

func TestValidationError_AppError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("activity_date")
	ve.AddInvalidRangeError("time_range", nil, "end time must be after start time")

	appErr := ve.AppError()

	assert.True(t, apperrors.IsErrorType(appErr, apperrors.ErrorTypeValidation))
	fields, ok := appErr.GetContext("fields")
	require.True(t, ok)
	assert.Equal(t, []string{"activity_date", "time_range"}, fields)
	assert.ErrorIs(t, appErr, ve)
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("id")

	assert.True(t, IsValidationError(ve))
	assert.True(t, IsValidationError(fmt.Errorf("record: %w", ve)))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
}
