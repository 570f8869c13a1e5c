package app_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nekogravitycat/hotel-booking-backend/internal/app"
	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/logging"
	"github.com/nekogravitycat/hotel-booking-backend/internal/store/memory"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/hotel-booking-backend/internal/user/http"
)

const (
	testSecret    = "test-secret"
	adminEmail    = "admin@admin.com"
	adminPassword = "admin12345"
)

// Bookings made in tests are checked against this day.
var testToday = time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)

var (
	testRouter *gin.Engine
	jwtManager *auth.JWTManager
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// resetApp starts every test from an empty store holding only the admin.
func resetApp(t *testing.T) {
	t.Helper()

	store := memory.New()
	container, err := app.NewContainer(app.Config{
		Repositories: app.Repositories{
			Users:    store.Users(),
			Hotels:   store.Hotels(),
			Rooms:    store.Rooms(),
			Bookings: store.Bookings(),
		},
		JWTSecret:  testSecret,
		JWTTTL:     30 * time.Minute,
		BcryptCost: bcrypt.MinCost,
		Logger:     logging.Discard(),
		Clock:      func() time.Time { return testToday },
	})
	require.NoError(t, err)

	_, err = container.UserService.EnsureAdmin(t.Context(), user.SignUpRequest{
		Name: "Admin", Email: adminEmail, Password: adminPassword,
	})
	require.NoError(t, err)

	testRouter = container.Router
	jwtManager = container.JWTManager
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func login(t *testing.T, email, password string) string {
	t.Helper()
	w := executeRequest(http.MethodPost, "/api/v1/users/login",
		userHttp.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[userHttp.TokenResponse](t, w).Token
}

func signUp(t *testing.T, name, email string) string {
	t.Helper()
	w := executeRequest(http.MethodPost, "/api/v1/users/sign-up",
		userHttp.SignUpRequest{Name: name, Email: email, Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[userHttp.TokenResponse](t, w).Token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	return decode[struct {
		Code int `json:"code"`
	}](t, w).Code
}
