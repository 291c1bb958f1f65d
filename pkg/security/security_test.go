package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_Allow(t *testing.T) {
	rl := NewRateLimit(2, time.Hour)

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))

	// 不同 IP 独立计数
	assert.True(t, rl.allow("10.0.0.2"))
}

func TestRateLimit_Update(t *testing.T) {
	rl := NewRateLimit(1, time.Hour)
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))

	rl.Update(5, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	assert.True(t, rl.allow("10.0.0.1"))
}

func TestRateLimit_Cleanup(t *testing.T) {
	rl := NewRateLimit(1, time.Hour)
	rl.allow("10.0.0.1")
	rl.store["10.0.0.1"].lastSeen = time.Now().Add(-4 * time.Hour)

	rl.cleanup()
	assert.Empty(t, rl.store)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://allowed.example"}), Secure())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://allowed.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://allowed.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
