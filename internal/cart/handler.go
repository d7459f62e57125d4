package cart

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/auth"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/cart"
)

type Handler struct {
	repo *Repo
	log  *slog.Logger
}

func NewHandler(repo *Repo, log *slog.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) GetMyCart(c *gin.Context) {
	userID, _ := auth.Identity(c)

	crt, err := h.repo.Summary(c.Request.Context(), userID)
	if errors.Is(err, cart.ErrBadPrice) {
		h.log.Error("cart integrity failure", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, crt)
}

type AddItemReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Qty       int   `json:"qty" binding:"required,gte=1"`
}

func (h *Handler) AddItem(c *gin.Context) {
	userID, _ := auth.Identity(c)

	var req AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.repo.AddItem(c.Request.Context(), userID, req.ProductID, req.Qty); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to add item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type UpdateQtyReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Qty       int   `json:"qty" binding:"required,gte=1"`
}

func (h *Handler) UpdateQty(c *gin.Context) {
	userID, _ := auth.Identity(c)

	var req UpdateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.repo.UpdateQty(c.Request.Context(), userID, req.ProductID, req.Qty)
	if errors.Is(err, ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update qty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type RemoveItemReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func (h *Handler) RemoveItem(c *gin.Context) {
	userID, _ := auth.Identity(c)

	var req RemoveItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.repo.RemoveItem(c.Request.Context(), userID, req.ProductID)
	if errors.Is(err, ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to remove item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
