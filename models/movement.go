package models

import "time"

// ActionType values keep the Portuguese names used on the routing slips.
type ActionType string

const (
	ActionDespacho       ActionType = "despacho"
	ActionEncaminhamento ActionType = "encaminhamento"
	ActionRecebimento    ActionType = "recebimento"
	ActionDevolucao      ActionType = "devolucao"
	ActionArquivamento   ActionType = "arquivamento"
	ActionReativacao     ActionType = "reativacao"
	ActionInformacao     ActionType = "informacao"
	ActionParecer        ActionType = "parecer"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionDespacho, ActionEncaminhamento, ActionRecebimento, ActionDevolucao,
		ActionArquivamento, ActionReativacao, ActionInformacao, ActionParecer:
		return true
	}
	return false
}

// Relocates reports whether the action must move the document to a different
// unit. informacao and parecer annotate the file where it sits.
func (a ActionType) Relocates() bool {
	switch a {
	case ActionEncaminhamento, ActionDespacho:
		return true
	}
	return false
}

// Movement is one row of the routing ledger. Rows are append-only: the
// services never update or delete them, corrections append a devolucao.
type Movement struct {
	MovementID   int        `gorm:"primaryKey;column:movement_id" json:"movement_id"`
	DocumentID   int        `gorm:"column:document_id" json:"document_id"`
	ActionType   ActionType `gorm:"column:action_type" json:"action_type"`
	FromUnitID   int        `gorm:"column:from_unit_id" json:"from_unit_id"`
	ToUnitID     int        `gorm:"column:to_unit_id" json:"to_unit_id"`
	ToUserID     *int       `gorm:"column:to_user_id" json:"to_user_id,omitempty"`
	DispatchText *string    `gorm:"column:dispatch_text" json:"dispatch_text,omitempty"`
	Notes        *string    `gorm:"column:notes" json:"notes,omitempty"`
	IsRead       bool       `gorm:"column:is_read" json:"is_read"`
	CreatedBy    int        `gorm:"column:created_by" json:"created_by"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	FromUnit Unit     `gorm:"foreignKey:FromUnitID" json:"from_unit,omitempty"`
	ToUnit   Unit     `gorm:"foreignKey:ToUnitID" json:"to_unit,omitempty"`
}

func (Movement) TableName() string {
	return "movements"
}
