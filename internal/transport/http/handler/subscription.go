package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naemfares/weathermail/internal/domain"
)

type subscriptionUsecaser interface {
	Unsubscribe(ctx context.Context, email string) error
	Resubscribe(ctx context.Context, email string) error
}

type SubscriptionHandler struct {
	subs   subscriptionUsecaser
	logger *slog.Logger
}

func NewSubscriptionHandler(subs subscriptionUsecaser, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subs:   subs,
		logger: logger.With("component", "subscription_handler"),
	}
}

// POST /unsubscribe
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	h.toggle(c, h.subs.Unsubscribe, "Successfully unsubscribed")
}

// POST /resubscribe
func (h *SubscriptionHandler) Resubscribe(c *gin.Context) {
	h.toggle(c, h.subs.Resubscribe, "Successfully resubscribed")
}

func (h *SubscriptionHandler) toggle(c *gin.Context, op func(context.Context, string) error, detail string) {
	email := c.GetString("email")

	if err := op(c.Request.Context(), email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.Error("toggle subscription", "email", email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": detail})
}
