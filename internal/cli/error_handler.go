package cli

import (
	stderrors "errors"
	"fmt"

	"worklog/internal/config"
	"worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct {
	logger *logging.Logger
}

// NewErrorHandler creates a new error handler. A nil logger discards.
func NewErrorHandler(logger *logging.Logger) *ErrorHandler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ErrorHandler{logger: logger}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	eh.log(operation, err)
	return &handledError{message: fmt.Sprintf("failed to %s: %s", operation, eh.message(err)), cause: err}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	eh.log("", err)
	return &handledError{message: eh.message(err), cause: err}
}

// handledError carries the user facing message while keeping the cause
// reachable for errors.As and exit code mapping.
type handledError struct {
	message string
	cause   error
}

func (e *handledError) Error() string { return e.message }

func (e *handledError) Unwrap() error { return e.cause }

func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	var configErr *config.ConfigError
	if stderrors.As(err, &configErr) {
		return "invalid configuration: " + configErr.Error()
	}

	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}

	return err.Error()
}

// log records errors worth a trace: database and timeout failures, and
// anything that is not one of ours.
func (eh *ErrorHandler) log(operation string, err error) {
	if validation.IsValidationError(err) {
		return
	}
	if appErr, ok := errors.AsAppError(err); ok {
		if errors.ShouldLogError(err) {
			eh.logger.Error("command failed", logging.FieldOperation, operation, logging.FieldError, appErr)
		}
		return
	}
	eh.logger.Debug("command failed", logging.FieldOperation, operation, logging.FieldError, err.Error())
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation) || errors.IsErrorType(err, errors.ErrorTypeInvalidInput)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// ExitCode maps an error to the process exit status: 2 for bad input,
// 1 for everything else.
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err):
		return 2
	default:
		return 1
	}
}
