package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type TokenTestSuite struct {
	suite.Suite
	client *Client
	ctx    context.Context
	user   *User
}

func (s *TokenTestSuite) SetupTest() {
	client, err := New(filepath.Join(s.T().TempDir(), "test.db"))
	require.NoError(s.T(), err)
	s.client = client
	s.ctx = context.Background()

	s.user, err = client.CreateUser(s.ctx, "test@example.com", "Test", "testpass123")
	require.NoError(s.T(), err)
}

func (s *TokenTestSuite) TearDownTest() {
	require.NoError(s.T(), s.client.Close())
}

func (s *TokenTestSuite) TestGetOrCreateToken() {
	token, err := s.client.GetOrCreateToken(s.ctx, s.user.ID)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), token.Key)
	assert.Equal(s.T(), s.user.ID, token.UserID)

	// a second login returns the same token
	again, err := s.client.GetOrCreateToken(s.ctx, s.user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), token.Key, again.Key)
	assert.Equal(s.T(), token.ID, again.ID)
}

func (s *TokenTestSuite) TestTokenKeysAreUnique() {
	other, err := s.client.CreateUser(s.ctx, "other@example.com", "Other", "testpass123")
	require.NoError(s.T(), err)

	t1, err := s.client.GetOrCreateToken(s.ctx, s.user.ID)
	require.NoError(s.T(), err)
	t2, err := s.client.GetOrCreateToken(s.ctx, other.ID)
	require.NoError(s.T(), err)

	assert.NotEqual(s.T(), t1.Key, t2.Key)
}

func (s *TokenTestSuite) TestGetUserByTokenKey() {
	token, err := s.client.GetOrCreateToken(s.ctx, s.user.ID)
	require.NoError(s.T(), err)

	user, err := s.client.GetUserByTokenKey(s.ctx, token.Key)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.user.ID, user.ID)
	assert.Equal(s.T(), s.user.Email, user.Email)
}

func (s *TokenTestSuite) TestGetUserByTokenKeyUnknown() {
	_, err := s.client.GetUserByTokenKey(s.ctx, "no-such-key")
	assert.True(s.T(), errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *TokenTestSuite) TestGetUserByTokenKeyInactiveUser() {
	token, err := s.client.GetOrCreateToken(s.ctx, s.user.ID)
	require.NoError(s.T(), err)

	s.user.IsActive = false
	require.NoError(s.T(), s.client.UpdateUser(s.ctx, s.user))

	_, err = s.client.GetUserByTokenKey(s.ctx, token.Key)
	assert.True(s.T(), errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTokenTestSuite(t *testing.T) {
	suite.Run(t, new(TokenTestSuite))
}
