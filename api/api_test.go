package api

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jon4hz/prodkeep/config"
	"github.com/jon4hz/prodkeep/database/mock"
)

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, mock.NewMockDB(), false)
	assert.Error(t, err)
}

func TestNewGinMode(t *testing.T) {
	cfg := &config.Config{
		Listen:            "127.0.0.1:0",
		GinMode:           gin.ReleaseMode,
		MinPasswordLength: 8,
	}

	_, err := New(cfg, mock.NewMockDB(), false)
	require.NoError(t, err)
	assert.Equal(t, gin.ReleaseMode, gin.Mode())

	// debug logging forces debug mode regardless of the config
	_, err = New(cfg, mock.NewMockDB(), true)
	require.NoError(t, err)
	assert.Equal(t, gin.DebugMode, gin.Mode())
}
