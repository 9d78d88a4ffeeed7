package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jon4hz/prodkeep/api/models"
	"github.com/jon4hz/prodkeep/database"
)

// ListProducts returns the products of the authenticated user, newest first.
func (h *Handler) ListProducts(c *gin.Context) {
	user := currentUser(c)

	products, err := h.db.GetProductsByOwner(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	c.JSON(http.StatusOK, models.ToProducts(products))
}

// CreateProduct creates a product owned by the authenticated user.
// The owner is always taken from the request context, never from the body.
func (h *Handler) CreateProduct(c *gin.Context) {
	user := currentUser(c)

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	product := database.Product{
		Name:        req.Name,
		Link:        req.Link,
		Description: req.Description,
		UserID:      user.ID,
	}
	if err := h.db.CreateProduct(c.Request.Context(), &product); err != nil {
		log.Error("failed to create product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, models.ToProduct(product))
}

// GetProduct returns a single product of the authenticated user.
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := h.productFromParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.ToProduct(*product))
}

// UpdateProduct applies a full update to a product. The name is
// required, but fields omitted from the payload keep their values.
func (h *Handler) UpdateProduct(c *gin.Context) {
	product, ok := h.productFromParam(c)
	if !ok {
		return
	}

	var req models.PatchProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	product.Name = *req.Name
	if req.Link != nil {
		product.Link = *req.Link
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	if err := h.db.UpdateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, models.ToProduct(*product))
}

// PatchProduct applies only the fields present in the payload. The
// owner stays unchanged no matter what the payload contains.
func (h *Handler) PatchProduct(c *gin.Context) {
	product, ok := h.productFromParam(c)
	if !ok {
		return
	}

	var req models.PatchProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
			return
		}
		product.Name = *req.Name
	}
	if req.Link != nil {
		product.Link = *req.Link
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	if err := h.db.UpdateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, models.ToProduct(*product))
}

// DeleteProduct deletes a product of the authenticated user.
func (h *Handler) DeleteProduct(c *gin.Context) {
	user := currentUser(c)

	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	if err := h.db.DeleteProductByIDAndOwner(c.Request.Context(), id, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	c.Status(http.StatusNoContent)
}

// productFromParam resolves the :id route param to a product owned by
// the authenticated user. It writes the error response itself, so
// callers only continue on ok.
func (h *Handler) productFromParam(c *gin.Context) (*database.Product, bool) {
	user := currentUser(c)

	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return nil, false
	}

	product, err := h.db.GetProductByIDAndOwner(c.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get product"})
		return nil, false
	}
	return product, true
}
