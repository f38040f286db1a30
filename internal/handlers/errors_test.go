package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expected       ErrorResponse
	}{
		{
			name:           "client error without detail",
			err:            echo.NewHTTPError(http.StatusBadRequest, "Insufficient balance"),
			expectedStatus: http.StatusBadRequest,
			expected:       ErrorResponse{Error: "Insufficient balance"},
		},
		{
			name:           "internal error carries detail",
			err:            internalError(errors.New("connection refused")),
			expectedStatus: http.StatusInternalServerError,
			expected:       ErrorResponse{Error: "internal server error", Detail: "connection refused"},
		},
		{
			name:           "plain error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expected:       ErrorResponse{Error: "Internal Server Error", Detail: "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			c, rec := newJSONContext(e, http.MethodGet, "/", nil)

			NewHTTPErrorHandler(zap.NewNop())(tt.err, c)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var got ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}
