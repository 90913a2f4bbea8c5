package controllers

import (
	"net/http"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"github.com/gin-gonic/gin"
)

// GetSLARules lists the active SLA rules.
func GetSLARules(c *gin.Context) {
	rules, err := slaService().GetRules()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rules": rules})
}

type UpsertSLARuleRequest struct {
	ProcessType       string  `json:"process_type" binding:"required"`
	Priority          string  `json:"priority" binding:"required"`
	DurationHours     int     `json:"duration_hours" binding:"required"`
	WarningThreshold  float64 `json:"warning_threshold" binding:"required"`
	CriticalThreshold float64 `json:"critical_threshold" binding:"required"`
}

// UpsertSLARule creates or replaces the rule for (process_type, priority).
func UpsertSLARule(c *gin.Context) {
	var req UpsertSLARuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	rule, err := slaService().UpsertRule(models.SLARule{
		ProcessType:       models.ProcessType(req.ProcessType),
		Priority:          models.DocumentPriority(req.Priority),
		DurationHours:     req.DurationHours,
		WarningThreshold:  req.WarningThreshold,
		CriticalThreshold: req.CriticalThreshold,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rule": rule})
}

// RunSLAScan triggers one scan pass. Normally called by cmd/scan on its
// interval; exposed here so operators can force a pass.
func RunSLAScan(c *gin.Context) {
	findings, err := slaService().Scan(time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"findings": findings,
		"count":    len(findings),
	})
}
