package models

import "time"

type RetentionStatus string

const (
	RetentionPending   RetentionStatus = "pending"
	RetentionApproved  RetentionStatus = "approved"
	RetentionRejected  RetentionStatus = "rejected"
	RetentionDestroyed RetentionStatus = "destroyed"
)

func (s RetentionStatus) Valid() bool {
	switch s {
	case RetentionPending, RetentionApproved, RetentionRejected, RetentionDestroyed:
		return true
	}
	return false
}

// Terminal reports whether no further retention transition may leave s.
func (s RetentionStatus) Terminal() bool {
	return s == RetentionRejected || s == RetentionDestroyed
}

// DocumentRetention is the 1:1 destruction record for an archived document.
// Status only ever moves pending -> approved -> destroyed, with rejected as
// a terminal exit from pending or approved (legal hold).
type DocumentRetention struct {
	RetentionID               int             `gorm:"primaryKey;column:retention_id" json:"retention_id"`
	DocumentID                int             `gorm:"column:document_id;unique" json:"document_id"`
	Status                    RetentionStatus `gorm:"column:status" json:"status"`
	ScheduledDestructionDate  time.Time       `gorm:"column:scheduled_destruction_date" json:"scheduled_destruction_date"`
	Reason                    string          `gorm:"column:reason" json:"reason"`
	LegalBasis                *string         `gorm:"column:legal_basis" json:"legal_basis,omitempty"`
	MarkedBy                  int             `gorm:"column:marked_by" json:"marked_by"`
	MarkedAt                  time.Time       `gorm:"column:marked_at" json:"marked_at"`
	ApprovedBy                *int            `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt                *time.Time      `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedBy                *int            `gorm:"column:rejected_by" json:"rejected_by,omitempty"`
	RejectedAt                *time.Time      `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	RejectionReason           *string         `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	DestroyedBy               *int            `gorm:"column:destroyed_by" json:"destroyed_by,omitempty"`
	DestroyedAt               *time.Time      `gorm:"column:destroyed_at" json:"destroyed_at,omitempty"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
}

func (DocumentRetention) TableName() string {
	return "document_retentions"
}
