package middleware

import (
	"net/http"
	"net/http/httptest"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	chain := append(handlers, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.String(http.StatusOK, string(claims.Role))
	})
	r.GET("/protected", chain...)
	return r
}

func tokenFor(t *testing.T, role model.UserRole) string {
	t.Helper()
	user := &model.User{Email: "u@example.edu", Role: role}
	user.ID = 5
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, tokenFor(t, model.Instructor))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "instructor", w.Body.String())

	w = get(r, tokenFor(t, model.UserRole("guest")))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	user := &model.User{Role: model.Admin}
	token, err := util.GenerateJWT(user, "another-secret", time.Hour)
	require.NoError(t, err)

	w := get(newRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(RoleMiddleware(model.Instructor, model.TeachingAssistant))

	tests := []struct {
		role model.UserRole
		want int
	}{
		{model.Instructor, http.StatusOK},
		{model.TeachingAssistant, http.StatusOK},
		{model.Admin, http.StatusOK},
		{model.SuperAdmin, http.StatusOK},
		{model.Student, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			w := get(r, tokenFor(t, tt.role))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
