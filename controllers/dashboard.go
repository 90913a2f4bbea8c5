package controllers

import (
	"net/http"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"github.com/gin-gonic/gin"
)

type statusCountRow struct {
	Status models.DocumentStatus `gorm:"column:status" json:"status"`
	Count  int64                 `gorm:"column:count" json:"count"`
}

// GetDashboardStats returns the read-only projections the frontend dashboard
// renders: per-status document totals, the caller's unread counters and the
// retention windows.
func GetDashboardStats(c *gin.Context) {
	userID, _ := getCurrentUserID(c)
	unitID, _ := getCurrentUnitID(c)

	var byStatus []statusCountRow
	if err := getDB().Raw(
		"SELECT status, COUNT(*) AS count FROM documents GROUP BY status",
	).Scan(&byStatus).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	var unreadMovements int64
	if err := getDB().Model(&models.Movement{}).
		Where("to_unit_id = ? AND is_read = 0", unitID).
		Count(&unreadMovements).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	unreadNotifications, err := notifier().UnreadCount(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	now := time.Now()
	expiringWeek, err := retentionService().ExpiringThisWeek(now)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	expiringMonth, err := retentionService().ExpiringNextMonth(now)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	pending, err := approvalService().PendingForApprover(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"documents_by_status": byStatus,
		"unread_movements": unreadMovements,
		"unread_notifications": unreadNotifications,
		"expiring_this_week": len(expiringWeek),
		"expiring_next_month": len(expiringMonth),
		"pending_my_decision": len(pending),
	})
}
