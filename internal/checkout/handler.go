package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/auth"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/payment"
)

type Handler struct {
	svc       *Service
	repo      *Repo
	publicKey string
	log       *slog.Logger
}

func NewHandler(svc *Service, repo *Repo, publicKey string, log *slog.Logger) *Handler {
	return &Handler{svc: svc, repo: repo, publicKey: publicKey, log: log}
}

// Initiate starts checkout for the authenticated customer and returns
// the hosted payment page URL.
func (h *Handler) Initiate(c *gin.Context) {
	userID, _ := auth.Identity(c)

	res, err := h.svc.Initiate(c.Request.Context(), userID)
	switch {
	case errors.Is(err, ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, ErrCartUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "some cart items are no longer available"})
	case errors.Is(err, payment.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable, please try again"})
	case err != nil:
		h.log.Error("checkout initiate failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
	default:
		c.JSON(http.StatusOK, res)
	}
}

// Callback is the gateway redirect target. The reference query param is
// only a lookup key; payment truth comes from the verify call.
func (h *Handler) Callback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
		return
	}

	o, err := h.svc.Confirm(c.Request.Context(), reference)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown reference"})
	case errors.Is(err, ErrCancelled):
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	case errors.Is(err, ErrVerifyDeclined), errors.Is(err, ErrAmountMismatch):
		c.JSON(http.StatusPaymentRequired, gin.H{"status": "failed", "error": "payment was not completed"})
	case errors.Is(err, payment.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable, please reload to retry"})
	case err != nil:
		h.log.Error("checkout confirm failed", "reference", reference, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "paid", "order_id": o.ID, "reference": o.Reference})
	}
}

// Config exposes what the client-side widget may see. The secret key
// never leaves the server.
func (h *Handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"public_key": h.publicKey})
}

// MyOrders lists the authenticated customer's orders.
func (h *Handler) MyOrders(c *gin.Context) {
	userID, _ := auth.Identity(c)

	orders, err := h.repo.ListOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": orders})
}
