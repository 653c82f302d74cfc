package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/pkg/notify"
)

// NotificationHandler hands queued notifications to the page
type NotificationHandler struct {
	inbox *notify.Inbox
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(inbox *notify.Inbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// GetNotifications handles GET /api/notifications. Delivered notifications
// are removed unless ?peek=true.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	var list []notify.Notification
	if c.Query("peek") == "true" {
		list = h.inbox.Peek()
	} else {
		list = h.inbox.Drain()
	}
	if list == nil {
		list = []notify.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}
