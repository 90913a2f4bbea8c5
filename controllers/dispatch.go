package controllers

import (
	"net/http"
	"strconv"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"github.com/gin-gonic/gin"
)

type OpenDispatchRequest struct {
	DocumentID  int    `json:"document_id" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	ApproverIDs []int  `json:"approver_ids" binding:"required"`
}

// OpenDispatch creates a dispatch with its approver set.
func OpenDispatch(c *gin.Context) {
	var req OpenDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)

	dispatch, err := approvalService().OpenDispatch(req.DocumentID, userID, req.Subject, req.ApproverIDs)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "dispatch": dispatch})
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
	Comments string `json:"comments"`
}

// RecordDecision casts the caller's decision on a dispatch. Decisions are
// write-once: a 409 means this approver already decided.
func RecordDecision(c *gin.Context) {
	dispatchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid dispatch id"})
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)

	row, err := approvalService().RecordDecision(dispatchID, userID, models.ApprovalStatus(req.Decision), req.Comments)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	aggregate, _, err := approvalService().DispatchStatus(dispatchID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"approval":        row,
		"dispatch_status": aggregate,
	})
}

// GetDispatch returns one dispatch with its rows and the derived aggregate.
// The aggregate is computed from the rows on every call, never read from a
// stored column.
func GetDispatch(c *gin.Context) {
	dispatchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid dispatch id"})
		return
	}

	dispatch, aggregate, err := approvalService().Get(dispatchID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"dispatch":        dispatch,
		"dispatch_status": aggregate,
	})
}

// GetPendingDispatches lists dispatches waiting on the caller.
func GetPendingDispatches(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	rows, err := approvalService().PendingForApprover(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "dispatches": rows})
}
