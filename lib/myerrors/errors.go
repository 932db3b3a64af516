package myerrors

import (
	"errors"
	"fmt"
	"log"
	"net/http"
)

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
}

type httpError struct {
	httpCode int
	err      error
}

func (e httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

func (e httpError) Unwrap() error {
	return e.err
}

func newError(httpCode int, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		err:      err,
	}
}

func NewInvalidInputError(err error) *httpError {
	log.Printf("Returning 400: %s", err.Error())
	return newError(http.StatusBadRequest, err)
}

func NewInvalidInputErrorf(format string, args ...interface{}) *httpError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewNotFoundError(err error) *httpError {
	return newError(http.StatusNotFound, err)
}

func NewNotFoundErrorf(format string, args ...interface{}) *httpError {
	return NewNotFoundError(fmt.Errorf(format, args...))
}

func NewAuthenticationError(err error) *httpError {
	return newError(http.StatusUnauthorized, err)
}

// NewSecurityViolationError is returned when a user touches data owned by another account
func NewSecurityViolationError(err error) *httpError {
	return newError(http.StatusForbidden, err)
}

// NewConflictError is returned when an application is locked by another user
func NewConflictError(err error) *httpError {
	return newError(http.StatusConflict, err)
}

// NewIllegalStateError is returned when an entity is not in the state the operation requires
func NewIllegalStateError(err error) *httpError {
	return newError(http.StatusPreconditionFailed, err)
}

// NewCompletedByAnotherUserError is returned when the cart items to pay for are gone
func NewCompletedByAnotherUserError(err error) *httpError {
	return newError(http.StatusGone, err)
}

func NewInternalError(err error) *httpError {
	return newError(http.StatusInternalServerError, err)
}

func NewNotImplementedError(err error) *httpError {
	return newError(http.StatusNotImplemented, err)
}

// NewExternalServiceError is returned when a remote platform could not be reached or refused the call
func NewExternalServiceError(err error) *httpError {
	return newError(http.StatusBadGateway, err)
}

func NewUnavailableError(err error) *httpError {
	return newError(http.StatusServiceUnavailable, err)
}

func GetHTTPStatus(err error) int {
	if err != nil {
		var myError httpErrorCoder
		if errors.As(err, &myError) {
			return myError.GetHTTPErrorCode()
		}
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusNotFound
}

func IsConflict(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusConflict
}

func IsSecurityViolation(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusForbidden
}

func IsIllegalState(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusPreconditionFailed
}

func IsCompletedByAnotherUser(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusGone
}

func IsExternalServiceError(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusBadGateway
}
