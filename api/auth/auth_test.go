package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jon4hz/prodkeep/database"
	"github.com/jon4hz/prodkeep/database/mock"
)

type AuthTestSuite struct {
	suite.Suite
	db       *mock.MockDB
	provider *Provider
	router   *gin.Engine
}

func (s *AuthTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.db = mock.NewMockDB()
	s.provider = New(s.db)

	s.router = gin.New()
	s.router.POST("/token", s.provider.Login)

	protected := s.router.Group("/")
	protected.Use(s.provider.RequireAuth())
	protected.GET("/whoami", func(c *gin.Context) {
		user := c.MustGet(UserContextKey).(*database.User)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})

	staff := protected.Group("/")
	staff.Use(s.provider.RequireStaff())
	staff.GET("/staff-only", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func (s *AuthTestSuite) createUser(email string) *database.User {
	user, err := s.db.CreateUser(s.T().Context(), email, "Test", "testpass123")
	require.NoError(s.T(), err)
	return user
}

func (s *AuthTestSuite) request(method, path, authHeader string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthTestSuite) TestLoginSuccess() {
	s.createUser("test@example.com")

	w := s.request("POST", "/token", "", gin.H{"email": "test@example.com", "password": "testpass123"})
	require.Equal(s.T(), http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(s.T(), resp.Token)

	// the token authenticates follow-up requests
	w = s.request("GET", "/whoami", "Bearer "+resp.Token, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "test@example.com")
}

func (s *AuthTestSuite) TestLoginIsIdempotent() {
	s.createUser("test@example.com")

	creds := gin.H{"email": "test@example.com", "password": "testpass123"}
	w1 := s.request("POST", "/token", "", creds)
	w2 := s.request("POST", "/token", "", creds)

	require.Equal(s.T(), http.StatusOK, w1.Code)
	require.Equal(s.T(), http.StatusOK, w2.Code)
	assert.Equal(s.T(), w1.Body.String(), w2.Body.String())
}

func (s *AuthTestSuite) TestLoginWrongPassword() {
	s.createUser("test@example.com")

	w := s.request("POST", "/token", "", gin.H{"email": "test@example.com", "password": "wrongpass"})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthTestSuite) TestLoginUnknownEmail() {
	w := s.request("POST", "/token", "", gin.H{"email": "missing@example.com", "password": "testpass123"})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthTestSuite) TestLoginInactiveUser() {
	user := s.createUser("test@example.com")
	user.IsActive = false
	require.NoError(s.T(), s.db.UpdateUser(s.T().Context(), user))

	w := s.request("POST", "/token", "", gin.H{"email": "test@example.com", "password": "testpass123"})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthTestSuite) TestLoginInvalidBody() {
	req := httptest.NewRequest("POST", "/token", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *AuthTestSuite) TestRequireAuthMissingHeader() {
	w := s.request("GET", "/whoami", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthTestSuite) TestRequireAuthMalformedHeader() {
	w := s.request("GET", "/whoami", "Bearer", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.request("GET", "/whoami", "Basic dXNlcjpwYXNz", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthTestSuite) TestRequireAuthUnknownKey() {
	w := s.request("GET", "/whoami", "Bearer no-such-key", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthTestSuite) TestRequireAuthTokenScheme() {
	user := s.createUser("test@example.com")
	s.db.SetToken(user.ID, "secret-key")

	w := s.request("GET", "/whoami", "Token secret-key", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *AuthTestSuite) TestRequireStaff() {
	user := s.createUser("user@example.com")
	s.db.SetToken(user.ID, "user-key")

	staff, err := s.db.CreateSuperuser(s.T().Context(), "admin@example.com", "adminpass123")
	require.NoError(s.T(), err)
	s.db.SetToken(staff.ID, "staff-key")

	w := s.request("GET", "/staff-only", "Bearer user-key", nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request("GET", "/staff-only", "Bearer staff-key", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"bearer scheme", "Bearer abc123", "abc123", true},
		{"token scheme", "Token abc123", "abc123", true},
		{"case insensitive scheme", "bearer abc123", "abc123", true},
		{"missing key", "Bearer", "", false},
		{"empty header", "", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"too many parts", "Bearer abc 123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tokenFromHeader(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
