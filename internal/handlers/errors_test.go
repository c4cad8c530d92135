package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ridemedia-backend/internal/apperrors"
)

func TestRespondErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{apperrors.Validation("email"), http.StatusBadRequest},
		{fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, "archived"), http.StatusBadRequest},
		{apperrors.ErrInvalidPath, http.StatusBadRequest},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("media x: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{apperrors.ErrSizeExceeded, http.StatusRequestEntityTooLarge},
		{apperrors.ErrUpload, http.StatusUnprocessableEntity},
		{fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestRespondErrorListsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondError(c, apperrors.Validation("name", "city"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing or invalid fields","fields":["name","city"]}`, w.Body.String())
}
