package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"
	"github.com/anicetocarvalho-source/gestaodocumental-sub004/services"

	"github.com/gin-gonic/gin"
)

type CreateDocumentRequest struct {
	Subject          string  `json:"subject" binding:"required"`
	Priority         string  `json:"priority" binding:"required"`
	ClassificationID int     `json:"classification_id" binding:"required"`
	Confidentiality  string  `json:"confidentiality" binding:"required"`
	Notes            *string `json:"notes"`
}

// CreateDocument registers a new document in the caller's unit.
func CreateDocument(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)
	unitID, _ := getCurrentUnitID(c)

	doc, err := documentService().CreateDocument(services.CreateDocumentInput{
		Subject:          req.Subject,
		Priority:         models.DocumentPriority(req.Priority),
		ClassificationID: req.ClassificationID,
		Confidentiality:  models.Confidentiality(req.Confidentiality),
		UnitID:           unitID,
		ActorID:          userID,
		Notes:            req.Notes,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "document": doc})
}

// GetDocument returns one document with its classification and unit.
func GetDocument(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document id"})
		return
	}

	doc, err := documentService().Get(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "document": doc})
}

// GetDocuments lists documents with optional status/priority/unit filters.
func GetDocuments(c *gin.Context) {
	filter := services.DocumentFilter{
		Status:   models.DocumentStatus(c.Query("status")),
		Priority: models.DocumentPriority(c.Query("priority")),
		Limit:    parsePositive(c.Query("limit"), 20),
		Offset:   parsePositive(c.Query("offset"), 0),
	}
	if v := c.Query("unit_id"); v != "" {
		if unitID, err := strconv.Atoi(v); err == nil {
			filter.UnitID = unitID
		}
	}

	docs, total, err := documentService().List(filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"documents": docs,
		"total":     total,
	})
}

type transitionRequest struct {
	ToUnitID     int     `json:"to_unit_id"`
	ToUserID     *int    `json:"to_user_id"`
	DispatchText *string `json:"dispatch_text"`
	Notes        *string `json:"notes"`
}

type transitionFunc func(documentID, actorID int, req transitionRequest) (*models.Document, error)

func handleTransition(c *gin.Context, fn transitionFunc) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document id"})
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)
	doc, err := fn(id, userID, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "document": doc})
}

func ValidateDocument(c *gin.Context) {
	handleTransition(c, func(id, actor int, req transitionRequest) (*models.Document, error) {
		return documentService().Validate(id, actor, req.Notes)
	})
}

func StartDocumentProgress(c *gin.Context) {
	handleTransition(c, func(id, actor int, req transitionRequest) (*models.Document, error) {
		return documentService().StartProgress(id, actor, req.Notes)
	})
}

func SendDocumentToSignature(c *gin.Context) {
	handleTransition(c, func(id, actor int, req transitionRequest) (*models.Document, error) {
		return documentService().SendToSignature(id, actor, req.ToUserID, req.Notes)
	})
}

func SignDocument(c *gin.Context) {
	handleTransition(c, func(id, actor int, req transitionRequest) (*models.Document, error) {
		return documentService().Sign(id, actor, req.Notes)
	})
}

func DispatchDocument(c *gin.Context) {
	handleTransition(c, func(id, actor int, req transitionRequest) (*models.Document, error) {
		return documentService().DispatchDoc(id, req.ToUnitID, actor, req.DispatchText)
	})
}

func ArchiveDocument(c *gin.Context) {
	handleTransition(c, func(id, actor int, req transitionRequest) (*models.Document, error) {
		return documentService().Archive(id, actor, req.Notes)
	})
}

func ReactivateDocument(c *gin.Context) {
	handleTransition(c, func(id, actor int, req transitionRequest) (*models.Document, error) {
		return documentService().Reactivate(id, actor, req.Notes)
	})
}

// EscalateDocument raises the document priority.
func EscalateDocument(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document id"})
		return
	}

	var req struct {
		Priority string  `json:"priority" binding:"required"`
		Reason   *string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)
	doc, err := documentService().Escalate(id, models.DocumentPriority(req.Priority), userID, req.Reason)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "document": doc})
}

// GetDocumentDeadline projects the SLA state of one document.
func GetDocumentDeadline(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document id"})
		return
	}

	eval, err := slaService().EvaluateDocument(id, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "sla": eval})
}

func parsePositive(q string, def int) int {
	if q == "" {
		return def
	}
	n, err := strconv.Atoi(q)
	if err != nil || n < 0 {
		return def
	}
	return n
}
