package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

func respondWith(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, &body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"missing resource", apperrors.ErrSlotNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"duplicate exception", apperrors.ErrDuplicateException, http.StatusConflict, dto.ErrorCodeDuplicateException},
		{"destination window violation", apperrors.ErrDestinationUnavailable, http.StatusUnprocessableEntity, dto.ErrorCodeDestinationUnavailable},
		{"destination slot gone", apperrors.ErrDestinationSlotGone, http.StatusConflict, dto.ErrorCodeDestinationGone},
		{"exception already decided", apperrors.ErrExceptionNotPending, http.StatusConflict, dto.ErrorCodeExceptionNotPending},
		{"attendance already submitted", apperrors.ErrAlreadySubmitted, http.StatusConflict, dto.ErrorCodeAlreadySubmitted},
		{"occupancy conflict", apperrors.NewConflictError("occurrence is full"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"validation failure", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respondWith(t, tt.err)

			assert.Equal(t, tt.status, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.False(t, body.Success)
		})
	}

	t.Run("unknown errors hide their message", func(t *testing.T) {
		status, body := respondWith(t, assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, status)
		require.NotNil(t, body.Error)
		assert.Equal(t, dto.ErrorCodeInternalServer, body.Error.Code)
		assert.NotContains(t, body.Error.Message, assert.AnError.Error())
	})
}
