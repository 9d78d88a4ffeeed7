package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jon4hz/prodkeep/api/auth"
	"github.com/jon4hz/prodkeep/config"
	"github.com/jon4hz/prodkeep/database"
)

type Handler struct {
	db     database.DB
	config *config.Config
}

func New(db database.DB, cfg *config.Config) *Handler {
	return &Handler{
		db:     db,
		config: cfg,
	}
}

// currentUser returns the user resolved by the auth middleware.
func currentUser(c *gin.Context) *database.User {
	return c.MustGet(auth.UserContextKey).(*database.User)
}

func parseUintParam(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
