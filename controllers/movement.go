package controllers

import (
	"net/http"
	"strconv"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"
	"github.com/anicetocarvalho-source/gestaodocumental-sub004/services"

	"github.com/gin-gonic/gin"
)

type RecordMovementRequest struct {
	DocumentID   int     `json:"document_id" binding:"required"`
	ActionType   string  `json:"action_type" binding:"required"`
	FromUnitID   int     `json:"from_unit_id" binding:"required"`
	ToUnitID     int     `json:"to_unit_id" binding:"required"`
	ToUserID     *int    `json:"to_user_id"`
	DispatchText *string `json:"dispatch_text"`
	Notes        *string `json:"notes"`
}

// RecordMovement appends one routing-slip entry. from_unit_id is the caller's
// expected location; a 409 means someone moved the document first.
func RecordMovement(c *gin.Context) {
	var req RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)

	movement, err := movementService().RecordMovement(services.MovementInput{
		DocumentID:   req.DocumentID,
		ActionType:   models.ActionType(req.ActionType),
		FromUnitID:   req.FromUnitID,
		ToUnitID:     req.ToUnitID,
		ToUserID:     req.ToUserID,
		DispatchText: req.DispatchText,
		Notes:        req.Notes,
		ActorID:      userID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "movement": movement})
}

// GetMovementHistory returns a document's full ledger in order.
func GetMovementHistory(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document id"})
		return
	}

	rows, err := movementService().History(documentID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	currentUnit, err := movementService().CurrentUnit(documentID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"movements":    rows,
		"current_unit": currentUnit,
	})
}

// GetInbox lists movements addressed to the caller's unit.
func GetInbox(c *gin.Context) {
	unitID, _ := getCurrentUnitID(c)
	unreadOnly := c.Query("unread") == "1"

	rows, total, err := movementService().Inbox(unitID,
		unreadOnly,
		parsePositive(c.Query("limit"), 20),
		parsePositive(c.Query("offset"), 0),
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"movements": rows,
		"total":     total,
	})
}

// MarkMovementRead flips the read flag for the recipient. Idempotent.
func MarkMovementRead(c *gin.Context) {
	movementID, err := strconv.Atoi(c.Param("movement_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid movement id"})
		return
	}

	userID, _ := getCurrentUserID(c)
	unitID, _ := getCurrentUnitID(c)

	if err := movementService().MarkRead(movementID, userID, unitID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Movement marked as read"})
}
