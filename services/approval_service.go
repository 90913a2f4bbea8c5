package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"gorm.io/gorm"
)

type ApprovalService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewApprovalService(db *gorm.DB, notifier *NotificationService) *ApprovalService {
	return &ApprovalService{db: db, notifier: notifier}
}

// AggregateDecisions derives the dispatch status from its approver rows.
// Pure function, recomputed on every read; the aggregate is never stored so
// it cannot drift from the rows.
//
// Precedence: any rejeitado wins, then any devolvido, then all-aprovado; an
// empty or partially decided set stays pendente.
func AggregateDecisions(rows []models.DispatchApproval) models.ApprovalStatus {
	if len(rows) == 0 {
		return models.ApprovalPendente
	}

	allApproved := true
	hasDevolvido := false
	for _, row := range rows {
		switch row.Status {
		case models.ApprovalRejeitado:
			return models.ApprovalRejeitado
		case models.ApprovalDevolvido:
			hasDevolvido = true
			allApproved = false
		case models.ApprovalAprovado:
			// counts toward allApproved
		default:
			allApproved = false
		}
	}

	if hasDevolvido {
		return models.ApprovalDevolvido
	}
	if allApproved {
		return models.ApprovalAprovado
	}
	return models.ApprovalPendente
}

// OpenDispatch creates a dispatch and one pendente approval row per approver,
// then notifies every approver.
func (s *ApprovalService) OpenDispatch(documentID, requesterID int, subject string, approverIDs []int) (*models.Dispatch, error) {
	if len(approverIDs) == 0 {
		return nil, fmt.Errorf("dispatch requires at least one approver")
	}
	seen := make(map[int]bool, len(approverIDs))
	for _, id := range approverIDs {
		if seen[id] {
			return nil, fmt.Errorf("duplicate approver %d", id)
		}
		seen[id] = true
	}

	now := time.Now()
	dispatch := models.Dispatch{
		DocumentID:     documentID,
		RequestedBy:    requesterID,
		Subject:        subject,
		LastAlertLevel: models.AlertNone,
		CreatedAt:      now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dispatch).Error; err != nil {
			return fmt.Errorf("failed to create dispatch: %w", err)
		}
		for _, approverID := range approverIDs {
			row := models.DispatchApproval{
				DispatchID: dispatch.DispatchID,
				ApproverID: approverID,
				Status:     models.ApprovalPendente,
				CreatedAt:  now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create approval row for approver %d: %w", approverID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dispatchID := dispatch.DispatchID
	docID := documentID
	for _, approverID := range approverIDs {
		s.notifier.Notify(Event{
			EventType:  "dispatch.approval_requested",
			UserID:     approverID,
			ActorID:    requesterID,
			DocumentID: &docID,
			DispatchID: &dispatchID,
			Data: map[string]string{
				"subject": subject,
			},
		})
	}

	return &dispatch, nil
}

// RecordDecision casts one approver's terminal decision. Decisions other than
// aprovado must carry comments. A row that is no longer pendente fails with
// AlreadyDecidedError: decisions are write-once, concurrent attempts lose.
func (s *ApprovalService) RecordDecision(dispatchID, approverID int, decision models.ApprovalStatus, comments string) (*models.DispatchApproval, error) {
	if !decision.Valid() || decision == models.ApprovalPendente {
		return nil, fmt.Errorf("invalid decision '%s'", decision)
	}
	trimmed := strings.TrimSpace(comments)
	if decision != models.ApprovalAprovado && trimmed == "" {
		return nil, &CommentRequiredError{DispatchID: dispatchID, Decision: decision}
	}

	now := time.Now()
	var commentsPtr *string
	if trimmed != "" {
		commentsPtr = &trimmed
	}

	res := s.db.Exec(
		"UPDATE dispatch_approvals SET status = ?, comments = ?, decided_at = ? WHERE dispatch_id = ? AND approver_id = ? AND status = ?",
		decision, commentsPtr, now, dispatchID, approverID, models.ApprovalPendente,
	)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to record decision: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var row models.DispatchApproval
		err := s.db.Where("dispatch_id = ? AND approver_id = ?", dispatchID, approverID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("approver %d is not assigned to dispatch %d", approverID, dispatchID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load approval row: %w", err)
		}
		return nil, &AlreadyDecidedError{EntityID: row.ApprovalID, Status: string(row.Status)}
	}

	var row models.DispatchApproval
	if err := s.db.Where("dispatch_id = ? AND approver_id = ?", dispatchID, approverID).First(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to reload approval row: %w", err)
	}

	var dispatch models.Dispatch
	if err := s.db.Where("dispatch_id = ?", dispatchID).First(&dispatch).Error; err == nil {
		docID := dispatch.DocumentID
		dID := dispatchID
		severity := "info"
		if decision == models.ApprovalRejeitado {
			severity = "error"
		}
		s.notifier.Notify(Event{
			EventType:  "dispatch.decision_recorded",
			UserID:     dispatch.RequestedBy,
			ActorID:    approverID,
			DocumentID: &docID,
			DispatchID: &dID,
			Severity:   severity,
			Data: map[string]string{
				"subject":  dispatch.Subject,
				"decision": string(decision),
			},
		})
	}

	return &row, nil
}

// DispatchStatus loads the approval rows and derives the aggregate.
func (s *ApprovalService) DispatchStatus(dispatchID int) (models.ApprovalStatus, []models.DispatchApproval, error) {
	var rows []models.DispatchApproval
	err := s.db.Where("dispatch_id = ?", dispatchID).
		Order("approval_id ASC").
		Find(&rows).Error
	if err != nil {
		return "", nil, fmt.Errorf("failed to load approvals for dispatch %d: %w", dispatchID, err)
	}
	return AggregateDecisions(rows), rows, nil
}

// Get loads a dispatch with its approval rows and the derived aggregate.
func (s *ApprovalService) Get(dispatchID int) (*models.Dispatch, models.ApprovalStatus, error) {
	var dispatch models.Dispatch
	err := s.db.Preload("Approvals").Preload("Document").
		Where("dispatch_id = ?", dispatchID).
		First(&dispatch).Error
	if err != nil {
		return nil, "", err
	}
	return &dispatch, AggregateDecisions(dispatch.Approvals), nil
}

// PendingForApprover lists dispatches still waiting on the given approver.
func (s *ApprovalService) PendingForApprover(approverID int) ([]models.Dispatch, error) {
	var rows []models.Dispatch
	err := s.db.
		Joins("JOIN dispatch_approvals da ON da.dispatch_id = dispatches.dispatch_id").
		Where("da.approver_id = ? AND da.status = ?", approverID, models.ApprovalPendente).
		Order("dispatches.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending dispatches: %w", err)
	}
	return rows, nil
}
