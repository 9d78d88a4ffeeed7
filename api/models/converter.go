package models

import (
	"github.com/samber/lo"

	"github.com/jon4hz/prodkeep/database"
)

// ToUser converts a database.User to its wire representation.
func ToUser(u *database.User) User {
	return User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// ToProduct converts a database.Product to its wire representation.
func ToProduct(p database.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Link:        p.Link,
		Description: p.Description,
	}
}

// ToProducts converts a slice of database.Product to wire products.
func ToProducts(products []database.Product) []Product {
	return lo.Map(products, func(p database.Product, _ int) Product {
		return ToProduct(p)
	})
}
