package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/jon4hz/prodkeep/api/models"
	"github.com/jon4hz/prodkeep/database"
)

// CreateUser handles account creation.
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	if msg, ok := h.validPassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	user, err := h.db.CreateUser(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrEmailTaken) || errors.Is(err, database.ErrEmailRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, models.ToUser(user))
}

// Me returns the profile of the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, models.ToUser(currentUser(c)))
}

// UpdateMe applies a partial profile update to the authenticated user.
func (h *Handler) UpdateMe(c *gin.Context) {
	var req models.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := currentUser(c)
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		if msg, ok := h.validPassword(*req.Password); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		if err := user.SetPassword(*req.Password); err != nil {
			log.Error("failed to hash password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
	}

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, models.ToUser(user))
}

// ListUsers returns all user accounts. Staff only.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, lo.Map(users, func(u database.User, _ int) models.User {
		return models.ToUser(&u)
	}))
}

func (h *Handler) validPassword(password string) (string, bool) {
	if !h.config.ValidPassword(password) {
		return "password is too short", false
	}
	return "", true
}
