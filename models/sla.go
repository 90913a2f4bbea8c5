package models

import "time"

type ProcessType string

const (
	ProcessDocumento ProcessType = "documento"
	ProcessDespacho  ProcessType = "despacho"
)

func (p ProcessType) Valid() bool {
	return p == ProcessDocumento || p == ProcessDespacho
}

// AlertLevel is the escalation ladder of an SLA instance. Ordering matters:
// Severity is used to decide whether a scan finding is an escalation over the
// last level already notified.
type AlertLevel string

const (
	AlertNone     AlertLevel = "none"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
	AlertBreached AlertLevel = "breached"
)

func (l AlertLevel) Severity() int {
	switch l {
	case AlertWarning:
		return 1
	case AlertCritical:
		return 2
	case AlertBreached:
		return 3
	}
	return 0
}

// SLARule is the time budget for one (process_type, priority) pair.
// WarningThreshold and CriticalThreshold are fractions of the elapsed budget
// (0.75 = warn at 75% of duration_hours).
type SLARule struct {
	RuleID            int              `gorm:"primaryKey;column:rule_id" json:"rule_id"`
	ProcessType       ProcessType      `gorm:"column:process_type;uniqueIndex:uq_process_priority" json:"process_type"`
	Priority          DocumentPriority `gorm:"column:priority;uniqueIndex:uq_process_priority" json:"priority"`
	DurationHours     int              `gorm:"column:duration_hours" json:"duration_hours"`
	WarningThreshold  float64          `gorm:"column:warning_threshold" json:"warning_threshold"`
	CriticalThreshold float64          `gorm:"column:critical_threshold" json:"critical_threshold"`
	CreateAt          *time.Time       `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time       `gorm:"column:update_at" json:"update_at"`
	DeleteAt          *time.Time       `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (SLARule) TableName() string {
	return "sla_rules"
}
