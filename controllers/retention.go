package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type MarkRetentionRequest struct {
	DocumentID    int     `json:"document_id" binding:"required"`
	ScheduledDate string  `json:"scheduled_destruction_date" binding:"required"` // YYYY-MM-DD
	Reason        string  `json:"reason" binding:"required"`
	LegalBasis    *string `json:"legal_basis"`
}

// MarkForRetention opens a destruction record for an archived document.
func MarkForRetention(c *gin.Context) {
	var req MarkRetentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	scheduled, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "scheduled_destruction_date must be YYYY-MM-DD"})
		return
	}

	userID, _ := getCurrentUserID(c)

	retention, err := retentionService().MarkForRetention(req.DocumentID, scheduled, req.Reason, req.LegalBasis, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "retention": retention})
}

// ApproveDestruction confirms a pending destruction record.
func ApproveDestruction(c *gin.Context) {
	retentionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid retention id"})
		return
	}

	userID, _ := getCurrentUserID(c)

	retention, err := retentionService().ApproveDestruction(retentionID, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "retention": retention})
}

// RejectDestruction closes the record without destruction (legal hold).
func RejectDestruction(c *gin.Context) {
	retentionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid retention id"})
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)

	retention, err := retentionService().RejectDestruction(retentionID, userID, req.Reason)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "retention": retention})
}

// ExecuteDestruction runs the terminal destruction step.
func ExecuteDestruction(c *gin.Context) {
	retentionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid retention id"})
		return
	}

	userID, _ := getCurrentUserID(c)

	retention, err := retentionService().ExecuteDestruction(retentionID, userID, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "retention": retention})
}

// GetExpiringThisWeek and GetExpiringNextMonth back the retention dashboard.
func GetExpiringThisWeek(c *gin.Context) {
	rows, err := retentionService().ExpiringThisWeek(time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "retentions": rows})
}

func GetExpiringNextMonth(c *gin.Context) {
	rows, err := retentionService().ExpiringNextMonth(time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "retentions": rows})
}
