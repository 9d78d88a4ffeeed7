package database

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var _ DB = (*Client)(nil) // Ensure Client implements DB

// DB defines the storage operations used by the API layer.
type DB interface {
	// User management
	CreateUser(ctx context.Context, email, name, password string) (*User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, user *User) error

	// Token management
	GetOrCreateToken(ctx context.Context, userID uint) (*AuthToken, error)
	GetUserByTokenKey(ctx context.Context, key string) (*User, error)

	// Product management
	CreateProduct(ctx context.Context, product *Product) error
	GetProductsByOwner(ctx context.Context, userID uint) ([]Product, error)
	GetProductByIDAndOwner(ctx context.Context, id, userID uint) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProductByIDAndOwner(ctx context.Context, id, userID uint) error

	Close() error
}

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&AuthToken{},
		&Product{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
