package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ValidationError("v"), http.StatusBadRequest},
		{PermissionError("p"), http.StatusForbidden},
		{ReferentialIntegrityError("r"), http.StatusConflict},
		{ConfigurationError("c"), http.StatusUnprocessableEntity},
		{LockedStateError("l"), http.StatusLocked},
		{NotFoundError("n"), http.StatusNotFound},
		{CopyError("copy"), http.StatusInternalServerError},
		{ErrPermissionDenied, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFoundError("n")), http.StatusNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("ctx: %w", LockedStateError("locked"))
	assert.True(t, IsKind(err, KindLockedState))
	assert.False(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}

func TestFail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Fail(c, ReferentialIntegrityError("in use"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"code":409,"message":"in use"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Fail(c, errors.New("database is down"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database is down")
}
