package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, "bad", ErrBadRequest)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "bad", err.Message)
	assert.Equal(t, ErrBadRequest.Error(), err.Error())

	notFound := NotFound("missing")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.ErrorIs(t, notFound, ErrNotFound)

	conflict := Conflict("exists")
	assert.Equal(t, http.StatusConflict, conflict.Status)
	assert.ErrorIs(t, conflict, ErrAlreadyExists)

	badReq := BadRequest("bad request")
	assert.Equal(t, http.StatusBadRequest, badReq.Status)
	assert.ErrorIs(t, badReq, ErrInvalidInput)

	unauth := Unauthorized("unauthorized")
	assert.Equal(t, http.StatusUnauthorized, unauth.Status)
	assert.ErrorIs(t, unauth, ErrUnauthorized)

	forbidden := Forbidden("forbidden")
	assert.Equal(t, http.StatusForbidden, forbidden.Status)
	assert.ErrorIs(t, forbidden, ErrForbidden)

	consistency := Consistency("profile provisioning failed")
	assert.Equal(t, http.StatusInternalServerError, consistency.Status)
	assert.ErrorIs(t, consistency, ErrConsistency)

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "db down", internal.Error())

	custom := NewError("custom", ErrForbidden)
	assert.ErrorIs(t, custom, ErrForbidden)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrTokenExpired, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrPhoneNumberTaken, http.StatusConflict},
		{ErrDuplicateDocument, http.StatusConflict},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrInvalidPhoneNumber, http.StatusBadRequest},
		{ErrInvalidKRAPin, http.StatusBadRequest},
		{ErrNotVendor, http.StatusBadRequest},
		{ErrUnreadableImage, http.StatusBadRequest},
		{ErrInsufficientTokens, http.StatusPaymentRequired},
		{ErrConsistency, http.StatusInternalServerError},
		{stderrors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusFor(tc.err), tc.err.Error())
	}

	// an AppError carries its own status through wrapping
	assert.Equal(t, http.StatusForbidden, StatusFor(Forbidden("no admin self-registration")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(Consistency("provisioning failed")))
}
