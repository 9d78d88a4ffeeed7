package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Product represents a product owned by a single user.
// The owner reference is set by the server from the authenticated
// request and is never taken from client input.
type Product struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Link        string
	Description string
	UserID      uint `gorm:"not null;index"`
	User        User `gorm:"constraint:OnDelete:CASCADE;"`
}

func (c *Client) CreateProduct(ctx context.Context, product *Product) error {
	if err := c.db.WithContext(ctx).Create(product).Error; err != nil {
		log.Error("failed to create product", "error", err)
		return err
	}
	return nil
}

// GetProductsByOwner returns all products of a user, newest first.
func (c *Client) GetProductsByOwner(ctx context.Context, userID uint) ([]Product, error) {
	var products []Product
	if err := c.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&products).Error; err != nil {
		log.Error("failed to get products", "error", err)
		return nil, err
	}
	return products, nil
}

// GetProductByIDAndOwner returns the product only if it belongs to the
// given user. A product owned by someone else is indistinguishable from
// a missing one.
func (c *Client) GetProductByIDAndOwner(ctx context.Context, id, userID uint) (*Product, error) {
	var product Product
	if err := c.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&product).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get product", "error", err)
		}
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, product *Product) error {
	if err := c.db.WithContext(ctx).Save(product).Error; err != nil {
		log.Error("failed to update product", "error", err)
		return err
	}
	return nil
}

func (c *Client) DeleteProductByIDAndOwner(ctx context.Context, id, userID uint) error {
	res := c.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Product{})
	if res.Error != nil {
		log.Error("failed to delete product", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
