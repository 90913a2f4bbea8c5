package models

import "time"

// FavoriteEntry is a user's pinned document. Kept server-side so favorites
// survive across devices instead of living in browser storage.
type FavoriteEntry struct {
	FavoriteID int       `gorm:"primaryKey;column:favorite_id" json:"favorite_id"`
	UserID     int       `gorm:"column:user_id;uniqueIndex:uq_user_document" json:"user_id"`
	DocumentID int       `gorm:"column:document_id;uniqueIndex:uq_user_document" json:"document_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
}

func (FavoriteEntry) TableName() string {
	return "favorite_entries"
}
