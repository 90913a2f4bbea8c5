package controllers

import (
	"errors"
	"net/http"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/config"
	"github.com/anicetocarvalho-source/gestaodocumental-sub004/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

/* ==========================
   Helpers
   ========================== */

func getDB() *gorm.DB { return config.DB }

func notifier() *services.NotificationService {
	return services.NewNotificationService(getDB())
}

func documentService() *services.DocumentService {
	return services.NewDocumentService(getDB(), notifier())
}

func movementService() *services.MovementService {
	return services.NewMovementService(getDB(), notifier())
}

func approvalService() *services.ApprovalService {
	return services.NewApprovalService(getDB(), notifier())
}

func slaService() *services.SLAService {
	return services.NewSLAService(getDB(), notifier())
}

func retentionService() *services.RetentionService {
	return services.NewRetentionService(getDB(), notifier())
}

func getCurrentUserID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			return int(t), true
		case uint:
			return int(t), true
		}
	}
	return 0, false
}

func getCurrentUnitID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("unitID"); ok {
		if t, ok := v.(int); ok {
			return t, true
		}
	}
	return 0, false
}

// respondDomainError maps the typed domain errors onto HTTP statuses:
// rule violations are 422, concurrency losers are 409, missing rows 404.
func respondDomainError(c *gin.Context, err error) {
	var (
		invalidTransition *services.InvalidTransitionError
		staleRoute        *services.StaleRouteError
		commentRequired   *services.CommentRequiredError
		notArchived       *services.NotArchivedError
		alreadyDecided    *services.AlreadyDecidedError
		notElapsed        *services.RetentionNotElapsedError
		notApproved       *services.NotApprovedError
		unauthorized      *services.UnauthorizedError
	)

	switch {
	case errors.As(err, &invalidTransition),
		errors.As(err, &commentRequired),
		errors.As(err, &notArchived),
		errors.As(err, &notElapsed),
		errors.As(err, &notApproved):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
	case errors.As(err, &staleRoute), errors.As(err, &alreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Record not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
