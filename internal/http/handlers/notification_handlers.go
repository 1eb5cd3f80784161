package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// NotificationHandlers serves the per-user notification feed
type NotificationHandlers struct {
	notifRepo domain.NotificationRepository
}

// NewNotificationHandlers creates new notification handlers
func NewNotificationHandlers(notifRepo domain.NotificationRepository) *NotificationHandlers {
	return &NotificationHandlers{notifRepo: notifRepo}
}

// NotifyRequest represents an admin-pushed notification
type NotifyRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// List handles GET /notifications (requires authentication). Only the
// caller's own feed is visible.
func (h *NotificationHandlers) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User ID not found in context"})
		return
	}

	notifications, err := h.notifRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "OK",
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkRead handles PUT /notifications/:id/read. The repository predicate
// scopes the update to the caller, so one user cannot mark another's.
func (h *NotificationHandlers) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User ID not found in context"})
		return
	}

	if err := h.notifRepo.MarkRead(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}

// Notify handles POST /admin/notifications
func (h *NotificationHandlers) Notify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	n := &domain.Notification{
		UserID:  req.UserID,
		Type:    req.Type,
		Message: req.Message,
	}
	if err := h.notifRepo.Create(c.Request.Context(), n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Notification created",
		"notification": n,
	})
}
