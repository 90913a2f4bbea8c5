package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
		return
	}

	rows, total, err := notifier().ListForUser(userID,
		parsePositive(c.Query("limit"), 20),
		parsePositive(c.Query("offset"), 0),
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": rows,
		"total":         total,
	})
}

// GetUnreadNotificationCount returns the badge counter.
func GetUnreadNotificationCount(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
		return
	}

	count, err := notifier().UnreadCount(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "unread": count})
}

// MarkNotificationRead flips one notification. Idempotent.
func MarkNotificationRead(c *gin.Context) {
	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid notification id"})
		return
	}

	userID, _ := getCurrentUserID(c)

	if err := notifier().MarkRead(notificationID, userID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}

// MarkAllNotificationsRead clears the caller's unread set.
func MarkAllNotificationsRead(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	if err := notifier().MarkAllRead(userID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All notifications marked as read"})
}
