// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Business logic errors
	CodeInvalidDateRange        ErrorCode = "INVALID_DATE_RANGE"
	CodeNoMealPlansFound        ErrorCode = "NO_MEAL_PLANS_FOUND"
	CodeRecipeResolutionFailed  ErrorCode = "RECIPE_RESOLUTION_FAILED"
	CodePersistenceFailure      ErrorCode = "PERSISTENCE_FAILURE"
	CodeRecipeNotFound          ErrorCode = "RECIPE_NOT_FOUND"
	CodeMealPlanNotFound        ErrorCode = "MEAL_PLAN_NOT_FOUND"
	CodeShoppingListNotFound    ErrorCode = "SHOPPING_LIST_NOT_FOUND"
	CodeMealSlotAlreadyPlanned  ErrorCode = "MEAL_SLOT_ALREADY_PLANNED"
	CodeShoppingItemNotFound    ErrorCode = "SHOPPING_ITEM_NOT_FOUND"
)

// AppError represents an application error with structured information
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeInvalidDateRange:
		return http.StatusBadRequest
	case CodeNotFound, CodeRecipeNotFound, CodeMealPlanNotFound,
		CodeShoppingListNotFound, CodeShoppingItemNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeMealSlotAlreadyPlanned:
		return http.StatusConflict
	case CodeNoMealPlansFound:
		return http.StatusUnprocessableEntity
	case CodeRecipeResolutionFailed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: getStackTrace(),
	}
}

// Predefined error constructors for common scenarios

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", strings.Title(resource))
	}
	return NewAppError(CodeNotFound, message, "")
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(CodeConflict, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// Business domain specific errors

// NewInvalidDateRangeError creates an error for a start date after the end date
func NewInvalidDateRangeError(start, end string) *AppError {
	return NewAppError(
		CodeInvalidDateRange,
		"Invalid date range",
		"Start date must be before or equal to end date",
	).WithMetadata("start_date", start).WithMetadata("end_date", end)
}

// NewNoMealPlansFoundError creates an error for a range with nothing to aggregate
func NewNoMealPlansFoundError(start, end string) *AppError {
	return NewAppError(
		CodeNoMealPlansFound,
		"No meal plans found",
		fmt.Sprintf("No meal plans found between %s and %s", start, end),
	).WithMetadata("start_date", start).WithMetadata("end_date", end)
}

// NewRecipeResolutionError creates an error for a meal plan referencing a missing recipe
func NewRecipeResolutionError(recipeID string, cause error) *AppError {
	return NewAppError(
		CodeRecipeResolutionFailed,
		"Recipe resolution failed",
		fmt.Sprintf("Referenced recipe %s could not be resolved", recipeID),
	).WithMetadata("recipe_id", recipeID).WithCause(cause)
}

// NewPersistenceFailureError creates an error for a rejected shopping list write
func NewPersistenceFailureError(operation string, cause error) *AppError {
	return NewAppError(
		CodePersistenceFailure,
		"Persistence failure",
		fmt.Sprintf("Storage layer rejected %s", operation),
	).WithCause(cause)
}

// NewRecipeNotFoundError creates a recipe not found error
func NewRecipeNotFoundError(recipeID string) *AppError {
	return NewAppError(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe with ID %s does not exist", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

// NewMealPlanNotFoundError creates a meal plan not found error
func NewMealPlanNotFoundError(mealPlanID string) *AppError {
	return NewAppError(
		CodeMealPlanNotFound,
		"Meal plan not found",
		fmt.Sprintf("Meal plan with ID %s does not exist", mealPlanID),
	).WithMetadata("meal_plan_id", mealPlanID)
}

// NewShoppingListNotFoundError creates a shopping list not found error
func NewShoppingListNotFoundError(listID string) *AppError {
	return NewAppError(
		CodeShoppingListNotFound,
		"Shopping list not found",
		fmt.Sprintf("Shopping list with ID %s does not exist", listID),
	).WithMetadata("shopping_list_id", listID)
}

// NewShoppingItemNotFoundError creates a shopping list item not found error
func NewShoppingItemNotFoundError(itemID string) *AppError {
	return NewAppError(
		CodeShoppingItemNotFound,
		"Shopping list item not found",
		fmt.Sprintf("Shopping list item with ID %s does not exist", itemID),
	).WithMetadata("item_id", itemID)
}

// NewMealSlotAlreadyPlannedError creates an error for a duplicate (date, meal type) slot
func NewMealSlotAlreadyPlannedError(date, mealType string) *AppError {
	return NewAppError(
		CodeMealSlotAlreadyPlanned,
		"Meal slot already planned",
		fmt.Sprintf("A meal plan already exists for %s %s", date, mealType),
	).WithMetadata("date", date).WithMetadata("meal_type", mealType)
}

// Utility functions

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// getStackTrace captures the current stack trace
func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "pkg/errors") {
			builder.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return builder.String()
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
			Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
		},
	}
}
