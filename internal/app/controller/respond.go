package controller

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	apperrors "github.com/deviceshop/deviceshop-backend/internal/errors"
	"github.com/deviceshop/deviceshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Field errors are reported under the json names clients send.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

var errorCodes = []struct {
	err  error
	code string
}{
	{service.ErrEmailAlreadyExists, apperrors.AuthEmailAlreadyExists},
	{service.ErrEmailNotRegistered, apperrors.AuthEmailNotRegistered},
	{service.ErrInvalidCredentials, apperrors.AuthInvalidCredentials},
	{service.ErrInvalidToken, apperrors.AuthTokenInvalid},
	{service.ErrProductNotFound, apperrors.ProductNotFound},
	{service.ErrNothingToRemove, apperrors.CartNothingRemoved},
	{service.ErrEmptyCart, apperrors.CartEmpty},
	{service.ErrPurchaseNotFound, apperrors.PurchaseNotFound},
	{service.ErrPostNotFound, apperrors.PostNotFound},
	{service.ErrCommentNotFound, apperrors.CommentNotFound},
	{service.ErrInvalidThread, apperrors.CommentInvalidReply},
	{service.ErrEmptyComment, apperrors.ValidationRequired},
}

func codeFor(err error, fallback string) string {
	for _, entry := range errorCodes {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return fallback
}

// respondError maps a service error to its status. context names the
// operation for storage errors, e.g. "create product".
func respondError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apperrors.NotFound(c, codeFor(err, apperrors.ResourceNotFound), err.Error())
	case errors.Is(err, service.ErrValidation):
		apperrors.BadRequest(c, codeFor(err, apperrors.ValidationInvalidInput), err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		apperrors.RespondWithError(c, http.StatusUnauthorized, codeFor(err, apperrors.AuthUnauthorized), err.Error())
	default:
		log.Error("Request failed", err, map[string]interface{}{
			"operation": context,
		})
		apperrors.ParseAndRespond(c, err, context)
	}
}

// respondBindError answers a failed ShouldBind. Validator failures carry
// one entry per field; malformed bodies get message alone.
func respondBindError(c *gin.Context, err error, message string) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, message)
		return
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "This field is required."
		default:
			fields[fe.Field()] = "This field is invalid."
		}
	}
	apperrors.RespondWithValidationError(c, message, fields)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

func parseIDQuery(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

func requireUserID(c *gin.Context, message string) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, message)
		return 0, false
	}
	return userID, true
}
