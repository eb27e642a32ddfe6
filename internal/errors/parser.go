package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ErrorInfo struct {
	Code    string
	Message string
	Status  int
}

// ParseError turns storage and unexpected errors into a code and a user
// facing message without leaking driver details. context names the
// operation, e.g. "create product".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong.", Status: http.StatusInternalServerError}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context), Status: http.StatusNotFound}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return parseDuplicateKeyError(err.Error())
	}

	lower := strings.ToLower(err.Error())

	// postgres: "duplicate key value violates unique constraint"
	// sqlite:   "UNIQUE constraint failed: users.email"
	if strings.Contains(lower, "duplicate key") || strings.Contains(lower, "unique constraint") {
		return parseDuplicateKeyError(lower)
	}

	if strings.Contains(lower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record is referenced by other data.",
			Status:  http.StatusConflict,
		}
	}

	// postgres: "violates not-null constraint", sqlite: "NOT NULL constraint failed"
	if strings.Contains(lower, "not-null constraint") || strings.Contains(lower, "not null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing.", Status: http.StatusBadRequest}
	}

	if strings.Contains(lower, "database is locked") || strings.Contains(lower, "connection refused") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The store is busy, please try again.",
			Status:  http.StatusServiceUnavailable,
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(context), Status: http.StatusInternalServerError}
}

func parseDuplicateKeyError(lower string) ErrorInfo {
	switch {
	case strings.Contains(lower, "email"):
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "You've already signed up with that email, log in instead!",
			Status:  http.StatusConflict,
		}
	case strings.Contains(lower, "title"):
		return ErrorInfo{Code: PostTitleExists, Message: "A post with that title already exists.", Status: http.StatusConflict}
	case strings.Contains(lower, "idx_purchases_open_cart") || strings.Contains(lower, "purchases.user_id"):
		return ErrorInfo{Code: ResourceConflict, Message: "Your cart was updated by another request, please retry.", Status: http.StatusConflict}
	default:
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists.", Status: http.StatusConflict}
	}
}

func notFoundMessage(context string) string {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "product"):
		return "Product not found."
	case strings.Contains(lower, "user"):
		return "User not found."
	case strings.Contains(lower, "comment"):
		return "Comment not found."
	case strings.Contains(lower, "post"):
		return "Post not found."
	case strings.Contains(lower, "purchase"):
		return "Purchase not found."
	}
	return "The requested record was not found."
}

func defaultMessage(context string) string {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "create"):
		return "Could not save, please try again later."
	case strings.Contains(lower, "update") || strings.Contains(lower, "edit"):
		return "Could not update, please try again later."
	case strings.Contains(lower, "delete"):
		return "Could not delete, please try again later."
	}
	return "Something went wrong, please try again later."
}

// ParseAndRespond writes the parsed error with its status
func ParseAndRespond(c interface{ JSON(int, interface{}) }, err error, context string) {
	info := ParseError(err, context)
	c.JSON(info.Status, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}
