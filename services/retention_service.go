package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"gorm.io/gorm"
)

type RetentionService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewRetentionService(db *gorm.DB, notifier *NotificationService) *RetentionService {
	return &RetentionService{db: db, notifier: notifier}
}

// MarkForRetention opens the destruction record for an archived document.
// One retention row per document; the document must be archived.
func (s *RetentionService) MarkForRetention(documentID int, scheduledDate time.Time, reason string, legalBasis *string, actorID int) (*models.DocumentRetention, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("retention reason is required")
	}

	var doc models.Document
	if err := s.db.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document %d not found", documentID)
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if doc.Status != models.StatusArchived {
		return nil, &NotArchivedError{DocumentID: documentID, Status: doc.Status}
	}

	var existing models.DocumentRetention
	err := s.db.Where("document_id = ?", documentID).First(&existing).Error
	if err == nil {
		return nil, &AlreadyDecidedError{EntityID: existing.RetentionID, Status: string(existing.Status)}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing retention: %w", err)
	}

	now := time.Now()
	retention := models.DocumentRetention{
		DocumentID:               documentID,
		Status:                   models.RetentionPending,
		ScheduledDestructionDate: scheduledDate,
		Reason:                   reason,
		LegalBasis:               legalBasis,
		MarkedBy:                 actorID,
		MarkedAt:                 now,
	}
	if err := s.db.Create(&retention).Error; err != nil {
		return nil, fmt.Errorf("failed to create retention record: %w", err)
	}

	docID := documentID
	s.notifier.Notify(Event{
		EventType:  "retention.marked",
		UserID:     doc.CreatedBy,
		ActorID:    actorID,
		DocumentID: &docID,
		Data: map[string]string{
			"entry_number":   doc.EntryNumber,
			"scheduled_date": scheduledDate.Format("2006-01-02"),
		},
	})

	return &retention, nil
}

// ApproveDestruction moves the record from pending to approved. The prior
// status is part of the UPDATE predicate, so of two concurrent approvals
// exactly one wins and the other gets AlreadyDecidedError. The scheduled
// destruction date is frozen from this point on.
func (s *RetentionService) ApproveDestruction(retentionID, approverID int) (*models.DocumentRetention, error) {
	now := time.Now()
	res := s.db.Exec(
		"UPDATE document_retentions SET status = ?, approved_by = ?, approved_at = ? WHERE retention_id = ? AND status = ?",
		models.RetentionApproved, approverID, now, retentionID, models.RetentionPending,
	)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to approve destruction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.decidedOrMissing(retentionID)
	}

	retention, err := s.get(retentionID)
	if err != nil {
		return nil, err
	}

	docID := retention.DocumentID
	s.notifier.Notify(Event{
		EventType:  "retention.approved",
		UserID:     retention.MarkedBy,
		ActorID:    approverID,
		DocumentID: &docID,
		Email:      true,
		Data: map[string]string{
			"scheduled_date": retention.ScheduledDestructionDate.Format("2006-01-02"),
		},
	})

	return retention, nil
}

// RejectDestruction is the terminal exit: valid from pending, and from
// approved for a legal hold. No transition ever leaves rejected.
func (s *RetentionService) RejectDestruction(retentionID, actorID int, reason string) (*models.DocumentRetention, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("rejection reason is required")
	}

	now := time.Now()
	res := s.db.Exec(
		"UPDATE document_retentions SET status = ?, rejected_by = ?, rejected_at = ?, rejection_reason = ? WHERE retention_id = ? AND status IN (?, ?)",
		models.RetentionRejected, actorID, now, reason,
		retentionID, models.RetentionPending, models.RetentionApproved,
	)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to reject destruction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.decidedOrMissing(retentionID)
	}

	return s.get(retentionID)
}

// ExecuteDestruction is terminal and irreversible. It requires prior approval
// and an elapsed retention period; both checks fail with a typed error so the
// scheduler can distinguish an early call from a missing approval.
func (s *RetentionService) ExecuteDestruction(retentionID, executorID int, now time.Time) (*models.DocumentRetention, error) {
	retention, err := s.get(retentionID)
	if err != nil {
		return nil, err
	}

	if retention.Status != models.RetentionApproved {
		return nil, &NotApprovedError{RetentionID: retentionID, Status: retention.Status}
	}
	if now.Before(retention.ScheduledDestructionDate) {
		return nil, &RetentionNotElapsedError{
			RetentionID:   retentionID,
			ScheduledDate: retention.ScheduledDestructionDate,
			Now:           now,
		}
	}

	res := s.db.Exec(
		"UPDATE document_retentions SET status = ?, destroyed_by = ?, destroyed_at = ? WHERE retention_id = ? AND status = ?",
		models.RetentionDestroyed, executorID, now, retentionID, models.RetentionApproved,
	)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to execute destruction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.decidedOrMissing(retentionID)
	}

	retention, err = s.get(retentionID)
	if err != nil {
		return nil, err
	}

	docID := retention.DocumentID
	s.notifier.Notify(Event{
		EventType:  "retention.destroyed",
		UserID:     retention.MarkedBy,
		ActorID:    executorID,
		DocumentID: &docID,
		Severity:   "warning",
		Data: map[string]string{
			"destroyed_at": now.Format("2006-01-02"),
		},
	})

	return retention, nil
}

func (s *RetentionService) get(retentionID int) (*models.DocumentRetention, error) {
	var retention models.DocumentRetention
	if err := s.db.Where("retention_id = ?", retentionID).First(&retention).Error; err != nil {
		return nil, err
	}
	return &retention, nil
}

func (s *RetentionService) decidedOrMissing(retentionID int) error {
	var retention models.DocumentRetention
	err := s.db.Where("retention_id = ?", retentionID).First(&retention).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("retention %d not found", retentionID)
	}
	if err != nil {
		return fmt.Errorf("failed to load retention %d: %w", retentionID, err)
	}
	return &AlreadyDecidedError{EntityID: retentionID, Status: string(retention.Status)}
}

// ExpiringBetween lists retention records whose scheduled destruction falls
// inside the window. Destroyed and rejected rows never appear regardless of
// their dates.
func (s *RetentionService) ExpiringBetween(from, to time.Time) ([]models.DocumentRetention, error) {
	var rows []models.DocumentRetention
	err := s.db.Preload("Document").
		Where("scheduled_destruction_date BETWEEN ? AND ? AND status IN (?, ?)",
			from, to, models.RetentionPending, models.RetentionApproved).
		Order("scheduled_destruction_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load expiring retentions: %w", err)
	}
	return rows, nil
}

// ExpiringThisWeek and ExpiringNextMonth are the dashboard windows.
func (s *RetentionService) ExpiringThisWeek(now time.Time) ([]models.DocumentRetention, error) {
	return s.ExpiringBetween(now, now.AddDate(0, 0, 7))
}

func (s *RetentionService) ExpiringNextMonth(now time.Time) ([]models.DocumentRetention, error) {
	return s.ExpiringBetween(now, now.AddDate(0, 1, 0))
}
