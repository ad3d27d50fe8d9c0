package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"limo-backend/config"
	"limo-backend/controllers"
	"limo-backend/middleware"
	"limo-backend/models"
	"limo-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type captureSender struct {
	mu   sync.Mutex
	sent []services.Message
}

func (s *captureSender) Send(msg services.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *captureSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	sender   *captureSender
	notifier *services.Notifier
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	// seed an admin record + matching account
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Admin{Email: "admin@luxride.local"}).Error)
	require.NoError(t, db.Create(&models.User{
		Email:    "admin@luxride.local",
		Password: string(hash),
		Role:     "admin",
	}).Error)

	sender := &captureSender{}
	notifier := services.NewNotifier(db, sender)
	notifier.Start()
	t.Cleanup(notifier.Stop)

	bookingSvc := services.NewBookingService(db, notifier)
	adminSvc := services.NewAdminService(db)
	userSvc := services.NewUserService(db)

	router := SetupRouter(
		controllers.NewAuthController(userSvc, adminSvc),
		controllers.NewBookingController(bookingSvc, adminSvc),
		controllers.NewVehicleController(services.NewVehicleService(db)),
		controllers.NewBlogController(services.NewBlogService(db)),
		controllers.NewAdminController(adminSvc, userSvc),
		controllers.NewUploadController(services.NewStorageService(t.TempDir())),
		controllers.NewSettingsController(db),
		adminSvc,
		middleware.NewRateLimiter(nil, 1000, time.Minute),
	)

	return &testServer{router: router, db: db, sender: sender, notifier: notifier}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func (ts *testServer) signin(t *testing.T, email, password string) string {
	t.Helper()
	w, resp := ts.do(t, http.MethodPost, "/api/auth/signin", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "signin failed: %s", w.Body.String())
	data := resp["data"].(map[string]any)
	return data["token"].(string)
}

func (ts *testServer) signupUser(t *testing.T, email string) string {
	t.Helper()
	w, resp := ts.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":      email,
		"password":   "hunter2hunter2",
		"first_name": "Jane",
		"last_name":  "Roe",
	})
	require.Equal(t, http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())
	data := resp["data"].(map[string]any)
	return data["token"].(string)
}

func TestBookingSubmissionScenario(t *testing.T) {
	ts := setupServer(t)

	w, resp := ts.do(t, http.MethodPost, "/api/bookings", "", gin.H{
		"customer_name":  "John Doe",
		"customer_email": "john@x.com",
		"customer_phone": "+1",
		"vehicle_type":   "luxury-sedan",
		"passengers":     2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]any)
	assert.Equal(t, "pending", data["status"])
	assert.NotZero(t, data["id"])

	// admin alert + customer confirmation
	require.Eventually(t, func() bool { return ts.sender.count() == 2 },
		time.Second, 10*time.Millisecond)
}

func TestBookingStatusUpdateScenario(t *testing.T) {
	ts := setupServer(t)

	_, resp := ts.do(t, http.MethodPost, "/api/bookings", "", gin.H{
		"customer_name":  "John Doe",
		"customer_email": "john@x.com",
		"customer_phone": "+1",
		"vehicle_type":   "luxury-sedan",
		"passengers":     2,
	})
	id := uint(resp["data"].(map[string]any)["id"].(float64))

	adminToken := ts.signin(t, "admin@luxride.local", "admin123")

	w, resp := ts.do(t, http.MethodPatch, fmt.Sprintf("/api/bookings/%d/status", id), adminToken, gin.H{
		"status": "confirmed",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", resp["data"].(map[string]any)["status"])

	// the status email carries old and new status
	require.Eventually(t, func() bool { return ts.sender.count() == 3 },
		time.Second, 10*time.Millisecond)
	ts.sender.mu.Lock()
	last := ts.sender.sent[len(ts.sender.sent)-1]
	ts.sender.mu.Unlock()
	assert.Equal(t, "pending", last.Params["old_status"])
	assert.Equal(t, "confirmed", last.Params["booking_status"])
	assert.Equal(t, "john@x.com", last.Envelope.To)
}

func TestUpdateMissingBookingReturnsFailureEnvelope(t *testing.T) {
	ts := setupServer(t)
	adminToken := ts.signin(t, "admin@luxride.local", "admin123")

	w, resp := ts.do(t, http.MethodPatch, "/api/bookings/9999/status", adminToken, gin.H{
		"status": "confirmed",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])

	var count int64
	ts.db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestVehicleCreateRequiresAdmin(t *testing.T) {
	ts := setupServer(t)
	userToken := ts.signupUser(t, "jane@x.com")

	w, resp := ts.do(t, http.MethodPost, "/api/vehicles", userToken, gin.H{
		"name": "Rogue Car", "type": "luxury-sedan",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, false, resp["success"])

	var count int64
	ts.db.Model(&models.Vehicle{}).Count(&count)
	assert.Zero(t, count, "no vehicle row may be created by a non-admin")

	// unauthenticated callers are rejected too
	w, _ = ts.do(t, http.MethodPost, "/api/vehicles", "", gin.H{"name": "X", "type": "y"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingListRequiresAdmin(t *testing.T) {
	ts := setupServer(t)
	userToken := ts.signupUser(t, "jane@x.com")

	w, _ := ts.do(t, http.MethodGet, "/api/bookings", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := ts.signin(t, "admin@luxride.local", "admin123")
	w, resp := ts.do(t, http.MethodGet, "/api/bookings", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
}

func TestOwnerCanReadOwnBookingOnly(t *testing.T) {
	ts := setupServer(t)

	_, resp := ts.do(t, http.MethodPost, "/api/bookings", "", gin.H{
		"customer_name":  "Jane Roe",
		"customer_email": "jane@x.com",
		"customer_phone": "+1",
		"vehicle_type":   "luxury-suv",
		"passengers":     4,
	})
	id := uint(resp["data"].(map[string]any)["id"].(float64))

	ownerToken := ts.signupUser(t, "jane@x.com")
	strangerToken := ts.signupUser(t, "nosy@x.com")

	w, _ := ts.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/%d", id), ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/%d", id), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitBookingValidation(t *testing.T) {
	ts := setupServer(t)

	w, resp := ts.do(t, http.MethodPost, "/api/bookings", "", gin.H{
		"customer_name": "No Email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestStaticBlogPostRejectsMutationOverHTTP(t *testing.T) {
	ts := setupServer(t)

	now := time.Now()
	post := models.BlogPost{Slug: "seed", Title: "Seed", PublishedAt: &now, IsStatic: true}
	require.NoError(t, ts.db.Create(&post).Error)

	adminToken := ts.signin(t, "admin@luxride.local", "admin123")

	w, resp := ts.do(t, http.MethodPatch, fmt.Sprintf("/api/blogs/%d", post.ID), adminToken, gin.H{
		"title": "Hacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, false, resp["success"])

	w, _ = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/blogs/%d", post.ID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupServer(t)
	w, _ := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
