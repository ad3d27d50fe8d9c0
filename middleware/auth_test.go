package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"limo-backend/config"
	"limo-backend/models"
	"limo-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *services.AdminService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	admins := services.NewAdminService(db)
	r := gin.New()
	return r, admins
}

func TestGenerateAndParseToken(t *testing.T) {
	r, _ := setupAuthTest(t)

	r.GET("/me", Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":   c.GetUint(CtxUserID),
			"email": c.GetString(CtxUserEmail),
		})
	})

	token, err := GenerateToken(42, "jane@x.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":42`)
	assert.Contains(t, w.Body.String(), "jane@x.com")
}

func TestAuthenticateRejectsMissingOrBadToken(t *testing.T) {
	r, _ := setupAuthTest(t)
	r.GET("/me", Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	// no header
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRequireAdminGate(t *testing.T) {
	r, admins := setupAuthTest(t)

	var mutations int
	r.POST("/admin-op", Authenticate(), RequireAdmin(admins), func(c *gin.Context) {
		mutations++
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	_, err := admins.Create(models.Admin{Email: "boss@x.com"})
	require.NoError(t, err)

	adminToken, err := GenerateToken(1, "boss@x.com", "user")
	require.NoError(t, err)
	userToken, err := GenerateToken(2, "pleb@x.com", "user")
	require.NoError(t, err)

	// admin record present -> allowed
	req := httptest.NewRequest(http.MethodPost, "/admin-op", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mutations)

	// no admin record, role claim "user" -> forbidden, handler never runs
	req = httptest.NewRequest(http.MethodPost, "/admin-op", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Equal(t, 1, mutations, "no mutation may happen for a non-admin")
}

func TestRequireAdminClaimsPath(t *testing.T) {
	r, admins := setupAuthTest(t)
	r.POST("/admin-op", Authenticate(), RequireAdmin(admins), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	// no admin record, but the token carries the admin role claim
	token, err := GenerateToken(3, "legacy@x.com", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin-op", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
