package myerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	myErr := fmt.Errorf("my error")

	testCases := []struct {
		name       string
		in         error
		httpStatus int
		errorText  string
	}{
		{
			name:       "No http error",
			in:         myErr,
			httpStatus: 500,
			errorText:  "my error",
		},
		{
			name:       "Invalid input error",
			in:         NewInvalidInputError(myErr),
			httpStatus: 400,
			errorText:  "status: 400, err: my error",
		},
		{
			name:       "Invalid input errorf",
			in:         NewInvalidInputErrorf("%s: %d", myErr.Error(), 123),
			httpStatus: 400,
			errorText:  "status: 400, err: my error: 123",
		},
		{
			name:       "Authentication error",
			in:         NewAuthenticationError(myErr),
			httpStatus: 401,
			errorText:  "status: 401, err: my error",
		},
		{
			name:       "Security violation error",
			in:         NewSecurityViolationError(myErr),
			httpStatus: 403,
			errorText:  "status: 403, err: my error",
		},
		{
			name:       "Not found error",
			in:         NewNotFoundError(myErr),
			httpStatus: 404,
			errorText:  "status: 404, err: my error",
		},
		{
			name:       "Conflict error",
			in:         NewConflictError(myErr),
			httpStatus: 409,
			errorText:  "status: 409, err: my error",
		},
		{
			name:       "Completed by another user error",
			in:         NewCompletedByAnotherUserError(myErr),
			httpStatus: 410,
			errorText:  "status: 410, err: my error",
		},
		{
			name:       "Illegal state error",
			in:         NewIllegalStateError(myErr),
			httpStatus: 412,
			errorText:  "status: 412, err: my error",
		},
		{
			name:       "Internal error",
			in:         NewInternalError(myErr),
			httpStatus: 500,
			errorText:  "status: 500, err: my error",
		},
		{
			name:       "Not implemented error",
			in:         NewNotImplementedError(myErr),
			httpStatus: 501,
			errorText:  "status: 501, err: my error",
		},
		{
			name:       "External service error",
			in:         NewExternalServiceError(myErr),
			httpStatus: 502,
			errorText:  "status: 502, err: my error",
		},
		{
			name:       "Not available error",
			in:         NewUnavailableError(myErr),
			httpStatus: 503,
			errorText:  "status: 503, err: my error",
		},
		{
			name:       "Wrapped not found error",
			in:         fmt.Errorf("lookup failed: %w", NewNotFoundError(myErr)),
			httpStatus: 404,
			errorText:  "lookup failed: status: 404, err: my error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpStatus := GetHTTPStatus(tc.in)
			if httpStatus != tc.httpStatus {
				t.Errorf("HttpStatus: got %v, want %v", httpStatus, tc.httpStatus)
			}
			if tc.errorText != tc.in.Error() {
				t.Errorf("%s: ErrorText: got %v, want %v", tc.name, tc.in.Error(), tc.errorText)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	cause := errors.New("cause")

	assert.True(t, IsNotFound(NewNotFoundError(cause)))
	assert.True(t, IsConflict(NewConflictError(cause)))
	assert.True(t, IsSecurityViolation(NewSecurityViolationError(cause)))
	assert.True(t, IsIllegalState(NewIllegalStateError(cause)))
	assert.True(t, IsCompletedByAnotherUser(NewCompletedByAnotherUserError(cause)))
	assert.True(t, IsExternalServiceError(NewExternalServiceError(cause)))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsConflict(cause))
	assert.True(t, errors.Is(NewInternalError(cause), cause))
}
