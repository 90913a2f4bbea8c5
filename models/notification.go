package models

import "time"

type Notification struct {
	NotificationID    uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID            uint       `gorm:"column:user_id" json:"user_id"`
	EventType         string     `gorm:"column:event_type" json:"event_type"`
	Title             string     `gorm:"column:title" json:"title"`
	Message           string     `gorm:"column:message" json:"message"`
	Type              string     `gorm:"column:type" json:"type"` // info|success|warning|error
	RelatedDocumentID *uint      `gorm:"column:related_document_id" json:"related_document_id,omitempty"`
	RelatedDispatchID *uint      `gorm:"column:related_dispatch_id" json:"related_dispatch_id,omitempty"`
	IsRead            bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt          time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationTemplate holds the title/body templates rendered per event.
// Placeholders use {{key}} substitution.
type NotificationTemplate struct {
	TemplateID    uint       `gorm:"primaryKey;column:template_id" json:"template_id"`
	EventKey      string     `gorm:"column:event_key" json:"event_key"`
	SendTo        string     `gorm:"column:send_to" json:"send_to"`
	TitleTemplate string     `gorm:"column:title_template" json:"title_template"`
	BodyTemplate  string     `gorm:"column:body_template" json:"body_template"`
	IsActive      bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt      time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (NotificationTemplate) TableName() string { return "notification_templates" }
