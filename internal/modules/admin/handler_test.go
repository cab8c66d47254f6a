package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Routes registered the way cmd/api mounts them, so path regressions
// surface here.
func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	v1 := r.Group("/api/v1")
	adminGroup := v1.Group("/admin")
	NewHandler(svc).RegisterAuthRoutes(adminGroup)
	return r
}

func TestLoginRoute_MountedUnderAPIV1(t *testing.T) {
	svc, m := newTestService()
	m.users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/auth/login",
		strings.NewReader(`{"email":"ghost@coworkspace.in","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestLoginRoute_NotMountedAtRoot(t *testing.T) {
	svc, _ := newTestService()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/auth/login",
		strings.NewReader(`{}`))
	newTestRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
