package products

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/auth"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/user"
)

// FileRemover cleans up stored image files when their product goes
// away. Implemented by uploads.DiskStore.
type FileRemover interface {
	Remove(rel string) error
}

type Handler struct {
	repo  *Repo
	cache *ListingCache
	files FileRemover
	log   *slog.Logger
}

func NewHandler(repo *Repo, cache *ListingCache, files FileRemover, log *slog.Logger) *Handler {
	return &Handler{repo: repo, cache: cache, files: files, log: log}
}

// Public: list active products, optional ?category= and ?brand= slugs.
func (h *Handler) ListPublic(c *gin.Context) {
	f := ListFilter{
		CategorySlug: c.Query("category"),
		BrandSlug:    c.Query("brand"),
	}

	if h.cache != nil {
		if items, err := h.cache.Get(c.Request.Context(), f); err == nil {
			c.JSON(http.StatusOK, gin.H{"items": items})
			return
		}
		// miss or cache trouble: fall through to the database
	}

	items, err := h.repo.ListPublic(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	if h.cache != nil {
		_ = h.cache.Set(c.Request.Context(), f, items)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Public: product details with images.
func (h *Handler) GetPublic(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	p, err := h.repo.GetPublic(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type CreateProductReq struct {
	CategoryID  int64  `json:"category_id" binding:"required"`
	BrandID     int64  `json:"brand_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceMinor  int64  `json:"price_minor" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}

// Producer (or admin): create a product owned by the caller.
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Currency == "" {
		req.Currency = "GHS"
	}

	userID, _ := auth.Identity(c)
	p, err := h.repo.Create(c.Request.Context(), CreateProductInput{
		ProducerID:  userID,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Name:        req.Name,
		Description: req.Description,
		PriceMinor:  req.PriceMinor,
		Currency:    req.Currency,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create product"})
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusCreated, p)
}

type UpdateProductReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceMinor  *int64  `json:"price_minor" binding:"omitempty,gt=0"`
	CategoryID  *int64  `json:"category_id"`
	BrandID     *int64  `json:"brand_id"`
	IsActive    *bool   `json:"is_active"`
}

// Producer updates own products; admin updates any.
func (h *Handler) Update(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, role := auth.Identity(c)
	var owner *int64
	if role != user.RoleAdmin {
		owner = &userID
	}

	p, err := h.repo.Update(c.Request.Context(), id, owner, UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceMinor:  req.PriceMinor,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		IsActive:    req.IsActive,
	})
	if err == ErrNotOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update product"})
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, p)
}

// Producer deletes own products; admin deletes any. The row goes
// first, then the image files: a failed delete never orphans rows,
// and leftover files are only disk noise.
func (h *Handler) Delete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	userID, role := auth.Identity(c)
	var owner *int64
	if role != user.RoleAdmin {
		owner = &userID
	}

	imgs, err := h.repo.Delete(c.Request.Context(), id, owner)
	switch {
	case err == ErrNotOwner:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	case err == ErrProductNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	if h.files != nil {
		for _, im := range imgs {
			if rmErr := h.files.Remove(im.FilePath); rmErr != nil {
				h.log.Warn("remove product image file", "path", im.FilePath, "err", rmErr)
			}
		}
	}
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
