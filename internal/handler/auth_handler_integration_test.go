package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emirpasha/vidshare/internal/handler"
	"github.com/emirpasha/vidshare/internal/middleware"
	"github.com/emirpasha/vidshare/internal/repository"
	"github.com/emirpasha/vidshare/internal/service"
	"github.com/emirpasha/vidshare/internal/testutil"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSessionSecret = "test-secret-key"

// AuthHandlerIntegrationTestSuite defines test suite
type AuthHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

// SetupSuite runs before all tests
func (s *AuthHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	videoRepo := repository.NewVideoRepository(s.testDB.DB)
	engagementRepo := repository.NewEngagementRepository(s.testDB.DB)

	authService := service.NewAuthService(userRepo, testSessionSecret, time.Hour, "development")
	videoService := service.NewVideoService(videoRepo, engagementRepo)

	authHandler := handler.NewAuthHandler(authService, videoService, time.Hour)

	s.router = gin.New()
	s.router.POST("/register", authHandler.Register)
	s.router.POST("/login", authHandler.Login)
	s.router.GET("/logout", authHandler.Logout)

	session := s.router.Group("/")
	session.Use(middleware.SessionAuth(testSessionSecret))
	session.GET("/profile", authHandler.Profile)
}

// TearDownSuite runs after all tests
func (s *AuthHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

// SetupTest runs before each test
func (s *AuthHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthHandlerIntegrationTestSuite) postJSON(path string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerIntegrationTestSuite) register(username, password, role string) *httptest.ResponseRecorder {
	return s.postJSON("/register", gin.H{
		"username": username,
		"password": password,
		"role":     role,
	})
}

func (s *AuthHandlerIntegrationTestSuite) login(username, password string) *httptest.ResponseRecorder {
	return s.postJSON("/login", gin.H{
		"username": username,
		"password": password,
	})
}

func (s *AuthHandlerIntegrationTestSuite) TestRegister_Success() {
	w := s.register("alice", "CreatorPass123", "creator")

	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), true, resp["success"])

	user := resp["user"].(map[string]interface{})
	assert.Equal(s.T(), "alice", user["username"])
	assert.Equal(s.T(), "creator", user["role"])
	assert.NotEmpty(s.T(), user["id"])
}

func (s *AuthHandlerIntegrationTestSuite) TestRegister_DuplicateUsername() {
	w := s.register("alice", "CreatorPass123", "creator")
	require.Equal(s.T(), http.StatusCreated, w.Code)

	// Same username, even with a different role, must be rejected
	w = s.register("alice", "OtherPass456", "consumer")
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	var resp map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), false, resp["success"])
	assert.Equal(s.T(), "Username already exists!", resp["message"])
}

func (s *AuthHandlerIntegrationTestSuite) TestRegister_InvalidRole() {
	w := s.register("mallory", "SomePass123", "admin")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestRegister_MissingFields() {
	w := s.register("", "", "creator")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestLogin_SetsSessionCookie() {
	require.Equal(s.T(), http.StatusCreated, s.register("bob", "ConsumerPass123", "consumer").Code)

	w := s.login("bob", "ConsumerPass123")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(s.T(), sessionCookie, "Login should set the session cookie")
	assert.NotEmpty(s.T(), sessionCookie.Value)
	assert.True(s.T(), sessionCookie.HttpOnly)
}

func (s *AuthHandlerIntegrationTestSuite) TestLogin_FailureIsUniform() {
	require.Equal(s.T(), http.StatusCreated, s.register("bob", "ConsumerPass123", "consumer").Code)

	// Wrong password for a known user and an unknown user must look the same
	wrongPass := s.login("bob", "WrongPass999")
	unknownUser := s.login("nobody", "ConsumerPass123")

	assert.Equal(s.T(), http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(s.T(), http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(s.T(), wrongPass.Body.String(), unknownUser.Body.String())
}

func (s *AuthHandlerIntegrationTestSuite) TestLogout_ClearsCookie() {
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(s.T(), sessionCookie)
	assert.Empty(s.T(), sessionCookie.Value)
	assert.Less(s.T(), sessionCookie.MaxAge, 0, "Cookie should be expired")
}

func (s *AuthHandlerIntegrationTestSuite) TestProfile_RequiresSession() {
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), false, resp["success"])
	assert.Equal(s.T(), "Please login first!", resp["message"])
}

func (s *AuthHandlerIntegrationTestSuite) TestProfile_WithSessionCookie() {
	require.Equal(s.T(), http.StatusCreated, s.register("alice", "CreatorPass123", "creator").Code)
	loginResp := s.login("alice", "CreatorPass123")
	require.Equal(s.T(), http.StatusOK, loginResp.Code)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	for _, cookie := range loginResp.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	user := resp["user"].(map[string]interface{})
	assert.Equal(s.T(), "alice", user["username"])
}

func TestAuthHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerIntegrationTestSuite))
}
