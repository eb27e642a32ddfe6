package service

import (
	"errors"
)

// Error kinds. Every service error wraps exactly one of them so the HTTP
// layer can pick a status with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }
func (e *serviceError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &serviceError{kind: kind, msg: msg}
}

var (
	ErrUserNotFound       = newError(ErrNotFound, "User not found.")
	ErrEmailAlreadyExists = newError(ErrValidation, "You've already signed up with that email, log in instead!")
	ErrEmailNotRegistered = newError(ErrUnauthorized, "That email does not exist, please try again.")
	ErrInvalidCredentials = newError(ErrUnauthorized, "Password incorrect, please try again.")
	ErrInvalidToken       = newError(ErrUnauthorized, "Your session is invalid, please log in again.")
	ErrInvalidInput       = newError(ErrValidation, "Invalid input")

	ErrProductNotFound  = newError(ErrNotFound, "Product not found.")
	ErrNothingToRemove  = newError(ErrNotFound, "This product is not in your cart.")
	ErrEmptyCart        = newError(ErrValidation, "Your cart is empty.")
	ErrPurchaseNotFound = newError(ErrNotFound, "Purchase not found.")

	ErrPostNotFound    = newError(ErrNotFound, "Post not found.")
	ErrCommentNotFound = newError(ErrNotFound, "The comment you are replying to does not exist.")
	ErrInvalidThread   = newError(ErrValidation, "You can only reply to comments of the same post.")
	ErrEmptyComment    = newError(ErrValidation, "Comment text must not be empty.")
)
