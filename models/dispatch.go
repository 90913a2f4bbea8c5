package models

import "time"

type ApprovalStatus string

const (
	ApprovalPendente  ApprovalStatus = "pendente"
	ApprovalAprovado  ApprovalStatus = "aprovado"
	ApprovalRejeitado ApprovalStatus = "rejeitado"
	ApprovalDevolvido ApprovalStatus = "devolvido"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPendente, ApprovalAprovado, ApprovalRejeitado, ApprovalDevolvido:
		return true
	}
	return false
}

// Decided reports whether the approver already cast a terminal decision.
func (s ApprovalStatus) Decided() bool {
	return s != ApprovalPendente
}

type Dispatch struct {
	DispatchID     int        `gorm:"primaryKey;column:dispatch_id" json:"dispatch_id"`
	DocumentID     int        `gorm:"column:document_id" json:"document_id"`
	RequestedBy    int        `gorm:"column:requested_by" json:"requested_by"`
	Subject        string     `gorm:"column:subject" json:"subject"`
	LastAlertLevel AlertLevel `gorm:"column:last_alert_level" json:"last_alert_level"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`

	// Relations
	Document  Document           `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	Requester User               `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
	Approvals []DispatchApproval `gorm:"foreignKey:DispatchID" json:"approvals,omitempty"`
}

// DispatchApproval holds one approver's decision on a dispatch. The pair
// (dispatch_id, approver_id) is unique and the row is written exactly once:
// the decision update requires status = pendente.
type DispatchApproval struct {
	ApprovalID int            `gorm:"primaryKey;column:approval_id" json:"approval_id"`
	DispatchID int            `gorm:"column:dispatch_id;uniqueIndex:uq_dispatch_approver" json:"dispatch_id"`
	ApproverID int            `gorm:"column:approver_id;uniqueIndex:uq_dispatch_approver" json:"approver_id"`
	Status     ApprovalStatus `gorm:"column:status" json:"status"`
	Comments   *string        `gorm:"column:comments" json:"comments,omitempty"`
	DecidedAt  *time.Time     `gorm:"column:decided_at" json:"decided_at,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at" json:"created_at"`

	// Relations
	Approver User `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}

// TableName overrides
func (Dispatch) TableName() string {
	return "dispatches"
}

func (DispatchApproval) TableName() string {
	return "dispatch_approvals"
}
