package services

import (
	"fmt"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"gorm.io/gorm"
)

type SLAService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewSLAService(db *gorm.DB, notifier *NotificationService) *SLAService {
	return &SLAService{db: db, notifier: notifier}
}

// SLAEvaluation is the derived deadline state of one instance at one point in
// time. Nothing here mutates the instance.
type SLAEvaluation struct {
	Deadline     time.Time         `json:"deadline"`
	ElapsedRatio float64           `json:"elapsed_ratio"`
	Level        models.AlertLevel `json:"level"`
}

// Evaluate computes the deadline and alert level for an instance created at
// createdAt under the given rule, as of now.
func Evaluate(rule models.SLARule, createdAt, now time.Time) SLAEvaluation {
	duration := time.Duration(rule.DurationHours) * time.Hour
	deadline := createdAt.Add(duration)
	ratio := float64(now.Sub(createdAt)) / float64(duration)

	level := models.AlertNone
	switch {
	case now.After(deadline):
		level = models.AlertBreached
	case ratio >= rule.CriticalThreshold:
		level = models.AlertCritical
	case ratio >= rule.WarningThreshold:
		level = models.AlertWarning
	}

	return SLAEvaluation{Deadline: deadline, ElapsedRatio: ratio, Level: level}
}

// AlertFinding is one instance whose alert level rose during a scan.
type AlertFinding struct {
	ProcessType models.ProcessType `json:"process_type"`
	InstanceID  int                `json:"instance_id"`
	Level       models.AlertLevel  `json:"level"`
	Deadline    time.Time          `json:"deadline"`
}

func (s *SLAService) rulesByKey() (map[string]models.SLARule, error) {
	var rules []models.SLARule
	if err := s.db.Where("delete_at IS NULL").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to load SLA rules: %w", err)
	}
	byKey := make(map[string]models.SLARule, len(rules))
	for _, rule := range rules {
		byKey[string(rule.ProcessType)+"/"+string(rule.Priority)] = rule
	}
	return byKey, nil
}

// Scan evaluates every open document and every pendente dispatch against its
// rule and returns the instances whose level rose above the last level
// already notified. The new level is persisted with a compare-and-swap so a
// rescan at the same level emits nothing; level regressions are ignored.
//
// The service has no clock loop. cmd/scan or the admin endpoint drives it.
func (s *SLAService) Scan(now time.Time) ([]AlertFinding, error) {
	rules, err := s.rulesByKey()
	if err != nil {
		return nil, err
	}

	var findings []AlertFinding

	var docs []models.Document
	if err := s.db.Where("status <> ?", models.StatusArchived).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to load open documents: %w", err)
	}
	for _, doc := range docs {
		rule, ok := rules[string(models.ProcessDocumento)+"/"+string(doc.Priority)]
		if !ok {
			continue
		}
		eval := Evaluate(rule, doc.CreateAt, now)
		if eval.Level.Severity() <= doc.LastAlertLevel.Severity() {
			continue
		}

		res := s.db.Exec(
			"UPDATE documents SET last_alert_level = ? WHERE document_id = ? AND last_alert_level = ?",
			eval.Level, doc.DocumentID, doc.LastAlertLevel,
		)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to persist alert level for document %d: %w", doc.DocumentID, res.Error)
		}
		if res.RowsAffected == 0 {
			// A concurrent scan already recorded this escalation.
			continue
		}

		findings = append(findings, AlertFinding{
			ProcessType: models.ProcessDocumento,
			InstanceID:  doc.DocumentID,
			Level:       eval.Level,
			Deadline:    eval.Deadline,
		})

		docID := doc.DocumentID
		s.notifier.Notify(Event{
			EventType:  "sla." + string(eval.Level),
			UserID:     doc.CreatedBy,
			ActorID:    0,
			DocumentID: &docID,
			Severity:   severityForLevel(eval.Level),
			Email:      eval.Level == models.AlertCritical || eval.Level == models.AlertBreached,
			Data: map[string]string{
				"entry_number": doc.EntryNumber,
				"deadline":     eval.Deadline.Format(time.RFC3339),
			},
		})
	}

	var dispatches []models.Dispatch
	if err := s.db.Preload("Approvals").Preload("Document").Find(&dispatches).Error; err != nil {
		return nil, fmt.Errorf("failed to load dispatches: %w", err)
	}
	for _, dispatch := range dispatches {
		if AggregateDecisions(dispatch.Approvals) != models.ApprovalPendente {
			continue
		}
		rule, ok := rules[string(models.ProcessDespacho)+"/"+string(dispatch.Document.Priority)]
		if !ok {
			continue
		}
		eval := Evaluate(rule, dispatch.CreatedAt, now)
		if eval.Level.Severity() <= dispatch.LastAlertLevel.Severity() {
			continue
		}

		res := s.db.Exec(
			"UPDATE dispatches SET last_alert_level = ? WHERE dispatch_id = ? AND last_alert_level = ?",
			eval.Level, dispatch.DispatchID, dispatch.LastAlertLevel,
		)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to persist alert level for dispatch %d: %w", dispatch.DispatchID, res.Error)
		}
		if res.RowsAffected == 0 {
			continue
		}

		findings = append(findings, AlertFinding{
			ProcessType: models.ProcessDespacho,
			InstanceID:  dispatch.DispatchID,
			Level:       eval.Level,
			Deadline:    eval.Deadline,
		})

		dispatchID := dispatch.DispatchID
		s.notifier.Notify(Event{
			EventType:  "sla." + string(eval.Level),
			UserID:     dispatch.RequestedBy,
			ActorID:    0,
			DispatchID: &dispatchID,
			Severity:   severityForLevel(eval.Level),
			Email:      eval.Level == models.AlertCritical || eval.Level == models.AlertBreached,
			Data: map[string]string{
				"subject":  dispatch.Subject,
				"deadline": eval.Deadline.Format(time.RFC3339),
			},
		})
	}

	return findings, nil
}

func severityForLevel(level models.AlertLevel) string {
	switch level {
	case models.AlertWarning:
		return "warning"
	case models.AlertCritical, models.AlertBreached:
		return "error"
	}
	return "info"
}

// EvaluateDocument projects the current deadline state of one document.
func (s *SLAService) EvaluateDocument(documentID int, now time.Time) (*SLAEvaluation, error) {
	var doc models.Document
	if err := s.db.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		return nil, err
	}

	var rule models.SLARule
	err := s.db.Where("process_type = ? AND priority = ? AND delete_at IS NULL",
		models.ProcessDocumento, doc.Priority).First(&rule).Error
	if err != nil {
		return nil, fmt.Errorf("no SLA rule for (%s, %s): %w", models.ProcessDocumento, doc.Priority, err)
	}

	eval := Evaluate(rule, doc.CreateAt, now)
	return &eval, nil
}

// GetRules lists the active rules.
func (s *SLAService) GetRules() ([]models.SLARule, error) {
	var rules []models.SLARule
	if err := s.db.Where("delete_at IS NULL").Order("process_type, priority").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to load SLA rules: %w", err)
	}
	return rules, nil
}

// UpsertRule creates or updates the rule for (process_type, priority).
func (s *SLAService) UpsertRule(rule models.SLARule) (*models.SLARule, error) {
	if !rule.ProcessType.Valid() {
		return nil, fmt.Errorf("invalid process type '%s'", rule.ProcessType)
	}
	if !rule.Priority.Valid() {
		return nil, fmt.Errorf("invalid priority '%s'", rule.Priority)
	}
	if rule.DurationHours <= 0 {
		return nil, fmt.Errorf("duration_hours must be positive")
	}
	if rule.WarningThreshold <= 0 || rule.CriticalThreshold <= rule.WarningThreshold || rule.CriticalThreshold > 1 {
		return nil, fmt.Errorf("thresholds must satisfy 0 < warning < critical <= 1")
	}

	now := time.Now()
	var existing models.SLARule
	err := s.db.Where("process_type = ? AND priority = ? AND delete_at IS NULL",
		rule.ProcessType, rule.Priority).First(&existing).Error
	if err == nil {
		existing.DurationHours = rule.DurationHours
		existing.WarningThreshold = rule.WarningThreshold
		existing.CriticalThreshold = rule.CriticalThreshold
		existing.UpdateAt = &now
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update SLA rule: %w", err)
		}
		return &existing, nil
	}

	rule.CreateAt = &now
	if err := s.db.Create(&rule).Error; err != nil {
		return nil, fmt.Errorf("failed to create SLA rule: %w", err)
	}
	return &rule, nil
}
