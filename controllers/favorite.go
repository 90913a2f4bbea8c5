package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddFavorite pins a document for the caller. Adding twice is a no-op.
func AddFavorite(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document id"})
		return
	}

	userID, _ := getCurrentUserID(c)

	var existing models.FavoriteEntry
	err = getDB().Where("user_id = ? AND document_id = ?", userID, documentID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "favorite": existing})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondDomainError(c, err)
		return
	}

	favorite := models.FavoriteEntry{
		UserID:     userID,
		DocumentID: documentID,
		CreatedAt:  time.Now(),
	}
	if err := getDB().Create(&favorite).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "favorite": favorite})
}

// RemoveFavorite unpins a document. Idempotent.
func RemoveFavorite(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document id"})
		return
	}

	userID, _ := getCurrentUserID(c)

	if err := getDB().Where("user_id = ? AND document_id = ?", userID, documentID).
		Delete(&models.FavoriteEntry{}).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Favorite removed"})
}

// GetFavorites lists the caller's pinned documents.
func GetFavorites(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var rows []models.FavoriteEntry
	if err := getDB().Preload("Document").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "favorites": rows})
}
