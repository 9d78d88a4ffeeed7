package database

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthToken is an opaque bearer credential bound to a single user.
// A user has at most one token; logging in again returns the existing one.
type AuthToken struct {
	gorm.Model
	Key    string `gorm:"uniqueIndex;not null"`
	UserID uint   `gorm:"uniqueIndex;not null"`
	User   User   `gorm:"constraint:OnDelete:CASCADE;"`
}

func newTokenKey() string {
	// Two UUIDs stripped of dashes give a 64 char opaque key.
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func (c *Client) GetOrCreateToken(ctx context.Context, userID uint) (*AuthToken, error) {
	var token AuthToken
	err := c.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("failed to get token", "error", err)
		return nil, err
	}

	token = AuthToken{
		Key:    newTokenKey(),
		UserID: userID,
	}
	if err := c.db.WithContext(ctx).Create(&token).Error; err != nil {
		log.Error("failed to create token", "error", err)
		return nil, err
	}
	return &token, nil
}

// GetUserByTokenKey resolves the owner of a token key. Unknown keys and
// inactive accounts both resolve to gorm.ErrRecordNotFound.
func (c *Client) GetUserByTokenKey(ctx context.Context, key string) (*User, error) {
	var token AuthToken
	if err := c.db.WithContext(ctx).Preload("User").Where("key = ?", key).First(&token).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get token by key", "error", err)
		}
		return nil, err
	}
	if !token.User.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return &token.User, nil
}
