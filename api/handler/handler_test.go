package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jon4hz/prodkeep/api/auth"
	"github.com/jon4hz/prodkeep/config"
	"github.com/jon4hz/prodkeep/database"
	"github.com/jon4hz/prodkeep/database/mock"
)

// HandlerTestSuite wires the handlers into a router the same way the
// server does, backed by the mock database.
type HandlerTestSuite struct {
	suite.Suite
	db     *mock.MockDB
	router *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.db = mock.NewMockDB()
	cfg := &config.Config{MinPasswordLength: 8}

	h := New(s.db, cfg)
	provider := auth.New(s.db)

	s.router = gin.New()
	api := s.router.Group("/api")
	api.POST("/users", h.CreateUser)
	api.POST("/users/token", provider.Login)

	protected := api.Group("/")
	protected.Use(provider.RequireAuth())
	protected.GET("/users/me", h.Me)
	protected.PATCH("/users/me", h.UpdateMe)
	protected.GET("/products", h.ListProducts)
	protected.POST("/products", h.CreateProduct)
	protected.GET("/products/:id", h.GetProduct)
	protected.PUT("/products/:id", h.UpdateProduct)
	protected.PATCH("/products/:id", h.PatchProduct)
	protected.DELETE("/products/:id", h.DeleteProduct)

	staff := protected.Group("/")
	staff.Use(provider.RequireStaff())
	staff.GET("/users", h.ListUsers)
}

// createUser provisions a user with a registered token key and returns both.
func (s *HandlerTestSuite) createUser(email string) (*database.User, string) {
	user, err := s.db.CreateUser(s.T().Context(), email, "Test Name", "testpass123")
	require.NoError(s.T(), err)
	key := "key-" + email
	s.db.SetToken(user.ID, key)
	return user, key
}

func (s *HandlerTestSuite) createProduct(userID uint, name string) *database.Product {
	product := &database.Product{
		Name:        name,
		Link:        "www.amazon.com/product1",
		Description: "This is a brand new product",
		UserID:      userID,
	}
	require.NoError(s.T(), s.db.CreateProduct(s.T().Context(), product))
	return product
}

func (s *HandlerTestSuite) request(method, path, tokenKey string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tokenKey != "" {
		req.Header.Set("Authorization", "Bearer "+tokenKey)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), v))
}
