package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
)

// NotificationHandler serves the caller's own notification feed. The user is
// always taken from the authenticated identity, never from the request.
type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	filters := h.parseNotificationFilters(c)

	notifications, total, err := h.notificationService.GetByUser(c.Request.Context(), identity.Subject, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
	})
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), identity.Subject)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")

	if err := h.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), identity.Subject); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id := c.Param("id")

	if err := h.notificationService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// ===== HELPER METHODS =====

func (h *NotificationHandler) parseNotificationFilters(c *gin.Context) repositories.NotificationFilters {
	page := 1
	size := 20

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	filters := repositories.NotificationFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}

	if unreadStr := c.Query("unread_only"); unreadStr != "" {
		if unread, err := strconv.ParseBool(unreadStr); err == nil {
			filters.UnreadOnly = unread
		}
	}

	return filters
}
