package models

import (
	"time"
)

// DocumentStatus values mirror documents.status. A document only ever moves
// along the edges in statusTransitions; everything else is rejected.
type DocumentStatus string

const (
	StatusReceived         DocumentStatus = "received"
	StatusValidating       DocumentStatus = "validating"
	StatusInProgress       DocumentStatus = "in_progress"
	StatusPendingSignature DocumentStatus = "pending_signature"
	StatusSigned           DocumentStatus = "signed"
	StatusDispatched       DocumentStatus = "dispatched"
	StatusArchived         DocumentStatus = "archived"
)

type DocumentPriority string

const (
	PriorityNormal DocumentPriority = "normal"
	PriorityHigh   DocumentPriority = "high"
	PriorityUrgent DocumentPriority = "urgent"
)

type Confidentiality string

const (
	ConfidentialityPublic     Confidentiality = "public"
	ConfidentialityInternal   Confidentiality = "internal"
	ConfidentialityRestricted Confidentiality = "restricted"
	ConfidentialitySecret     Confidentiality = "secret"
)

// statusTransitions is the full adjacency table of the document lifecycle.
// archived is terminal except for reactivation back to in_progress.
var statusTransitions = map[DocumentStatus][]DocumentStatus{
	StatusReceived:         {StatusValidating},
	StatusValidating:       {StatusInProgress},
	StatusInProgress:       {StatusPendingSignature},
	StatusPendingSignature: {StatusSigned},
	StatusSigned:           {StatusDispatched},
	StatusDispatched:       {StatusArchived},
	StatusArchived:         {StatusInProgress},
}

// CanTransition reports whether moving from s to next is a legal lifecycle step.
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transitions returns the statuses reachable from s in one step.
func (s DocumentStatus) Transitions() []DocumentStatus {
	return statusTransitions[s]
}

func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusValidating, StatusInProgress,
		StatusPendingSignature, StatusSigned, StatusDispatched, StatusArchived:
		return true
	}
	return false
}

func (p DocumentPriority) Valid() bool {
	switch p {
	case PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// EscalatesTo reports whether a priority bump from p to next is allowed.
// Priority only moves upward; de-escalation is not supported.
func (p DocumentPriority) EscalatesTo(next DocumentPriority) bool {
	rank := map[DocumentPriority]int{PriorityNormal: 0, PriorityHigh: 1, PriorityUrgent: 2}
	return next.Valid() && rank[next] > rank[p]
}

func (c Confidentiality) Valid() bool {
	switch c {
	case ConfidentialityPublic, ConfidentialityInternal,
		ConfidentialityRestricted, ConfidentialitySecret:
		return true
	}
	return false
}

type Document struct {
	DocumentID       int              `gorm:"primaryKey;column:document_id" json:"document_id"`
	EntryNumber      string           `gorm:"column:entry_number;unique" json:"entry_number"`
	Subject          string           `gorm:"column:subject" json:"subject"`
	Status           DocumentStatus   `gorm:"column:status" json:"status"`
	Priority         DocumentPriority `gorm:"column:priority" json:"priority"`
	ClassificationID int              `gorm:"column:classification_id" json:"classification_id"`
	Confidentiality  Confidentiality  `gorm:"column:confidentiality" json:"confidentiality"`
	CurrentUnitID    int              `gorm:"column:current_unit_id" json:"current_unit_id"`
	LastAlertLevel   AlertLevel       `gorm:"column:last_alert_level" json:"last_alert_level"`
	CreatedBy        int              `gorm:"column:created_by" json:"created_by"`
	CreateAt         time.Time        `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time       `gorm:"column:update_at" json:"update_at"`

	// Relations
	Classification DocumentClassification `gorm:"foreignKey:ClassificationID" json:"classification,omitempty"`
	CurrentUnit    Unit                   `gorm:"foreignKey:CurrentUnitID" json:"current_unit,omitempty"`
	Creator        User                   `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

type DocumentClassification struct {
	ClassificationID int        `gorm:"primaryKey;column:classification_id" json:"classification_id"`
	Code             string     `gorm:"column:code" json:"code"`
	ClassName        string     `gorm:"column:class_name" json:"class_name"`
	RetentionYears   int        `gorm:"column:retention_years" json:"retention_years"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Document) TableName() string {
	return "documents"
}

func (DocumentClassification) TableName() string {
	return "document_classifications"
}
