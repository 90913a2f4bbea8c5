package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewDocumentService(db *gorm.DB, notifier *NotificationService) *DocumentService {
	return &DocumentService{db: db, notifier: notifier}
}

type CreateDocumentInput struct {
	Subject          string
	Priority         models.DocumentPriority
	ClassificationID int
	Confidentiality  models.Confidentiality
	UnitID           int
	ActorID          int
	Notes            *string
}

// newEntryNumber builds the immutable protocol number assigned at entry.
// The uuid suffix keeps it globally unique without a counter table.
func newEntryNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return fmt.Sprintf("ENT-%d-%s", now.Year(), suffix)
}

// CreateDocument registers a new document in received status and writes the
// opening recebimento ledger row in the same transaction.
func (s *DocumentService) CreateDocument(in CreateDocumentInput) (*models.Document, error) {
	if !in.Priority.Valid() {
		return nil, fmt.Errorf("invalid priority '%s'", in.Priority)
	}
	if !in.Confidentiality.Valid() {
		return nil, fmt.Errorf("invalid confidentiality '%s'", in.Confidentiality)
	}

	now := time.Now()
	doc := models.Document{
		EntryNumber:      newEntryNumber(now),
		Subject:          in.Subject,
		Status:           models.StatusReceived,
		Priority:         in.Priority,
		ClassificationID: in.ClassificationID,
		Confidentiality:  in.Confidentiality,
		CurrentUnitID:    in.UnitID,
		LastAlertLevel:   models.AlertNone,
		CreatedBy:        in.ActorID,
		CreateAt:         now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}
		movement := models.Movement{
			DocumentID: doc.DocumentID,
			ActionType: models.ActionRecebimento,
			FromUnitID: in.UnitID,
			ToUnitID:   in.UnitID,
			Notes:      in.Notes,
			CreatedBy:  in.ActorID,
			CreatedAt:  now,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to append entry movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// TransitionInput describes the ledger entry written together with a status
// change. ToUnitID zero means the document stays in its current unit.
type TransitionInput struct {
	DocumentID   int
	NextStatus   models.DocumentStatus
	ActionType   models.ActionType
	ToUnitID     int
	ToUserID     *int
	DispatchText *string
	Notes        *string
	ActorID      int
}

// Transition moves a document along the lifecycle state machine. The status
// change, the optional relocation and the ledger append commit as one unit of
// work; the status predicate in the UPDATE makes concurrent transitions
// first-writer-wins. A notification event fires after commit.
func (s *DocumentService) Transition(in TransitionInput) (*models.Document, error) {
	if !in.NextStatus.Valid() {
		return nil, fmt.Errorf("invalid status '%s'", in.NextStatus)
	}
	if !in.ActionType.Valid() {
		return nil, fmt.Errorf("invalid action type '%s'", in.ActionType)
	}

	var doc models.Document
	if err := s.db.Where("document_id = ?", in.DocumentID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document %d not found", in.DocumentID)
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	oldStatus := doc.Status
	if !oldStatus.CanTransition(in.NextStatus) {
		return nil, &InvalidTransitionError{DocumentID: in.DocumentID, From: oldStatus, To: in.NextStatus}
	}

	fromUnit := doc.CurrentUnitID
	toUnit := in.ToUnitID
	if toUnit == 0 {
		toUnit = fromUnit
	}
	if in.ActionType.Relocates() && toUnit == fromUnit {
		return nil, fmt.Errorf("%s requires a destination unit different from the origin", in.ActionType)
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			"UPDATE documents SET status = ?, current_unit_id = ?, update_at = ? WHERE document_id = ? AND status = ? AND current_unit_id = ?",
			in.NextStatus, toUnit, now, in.DocumentID, oldStatus, fromUnit,
		)
		if res.Error != nil {
			return fmt.Errorf("failed to update document %d: %w", in.DocumentID, res.Error)
		}
		if res.RowsAffected == 0 {
			var current models.Document
			if err := tx.Where("document_id = ?", in.DocumentID).First(&current).Error; err != nil {
				return fmt.Errorf("document %d not found: %w", in.DocumentID, err)
			}
			if current.Status != oldStatus {
				return &InvalidTransitionError{DocumentID: in.DocumentID, From: current.Status, To: in.NextStatus}
			}
			return &StaleRouteError{DocumentID: in.DocumentID, ExpectedUnit: fromUnit, CurrentUnit: current.CurrentUnitID}
		}

		movement := models.Movement{
			DocumentID:   in.DocumentID,
			ActionType:   in.ActionType,
			FromUnitID:   fromUnit,
			ToUnitID:     toUnit,
			ToUserID:     in.ToUserID,
			DispatchText: in.DispatchText,
			Notes:        in.Notes,
			CreatedBy:    in.ActorID,
			CreatedAt:    now,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to append transition movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.Status = in.NextStatus
	doc.CurrentUnitID = toUnit
	doc.UpdateAt = &now

	docID := doc.DocumentID
	s.notifier.Notify(Event{
		EventType:  "document.status_changed",
		UserID:     doc.CreatedBy,
		ActorID:    in.ActorID,
		DocumentID: &docID,
		Data: map[string]string{
			"entry_number": doc.EntryNumber,
			"old_status":   string(oldStatus),
			"new_status":   string(in.NextStatus),
		},
	})

	return &doc, nil
}

// Lifecycle wrappers. Non-routing steps record an informacao annotation so
// the ledger still carries one row per transition.

func (s *DocumentService) Validate(documentID, actorID int, notes *string) (*models.Document, error) {
	return s.Transition(TransitionInput{
		DocumentID: documentID,
		NextStatus: models.StatusValidating,
		ActionType: models.ActionInformacao,
		Notes:      notes,
		ActorID:    actorID,
	})
}

func (s *DocumentService) StartProgress(documentID, actorID int, notes *string) (*models.Document, error) {
	return s.Transition(TransitionInput{
		DocumentID: documentID,
		NextStatus: models.StatusInProgress,
		ActionType: models.ActionInformacao,
		Notes:      notes,
		ActorID:    actorID,
	})
}

func (s *DocumentService) SendToSignature(documentID, actorID int, toUserID *int, notes *string) (*models.Document, error) {
	return s.Transition(TransitionInput{
		DocumentID: documentID,
		NextStatus: models.StatusPendingSignature,
		ActionType: models.ActionInformacao,
		ToUserID:   toUserID,
		Notes:      notes,
		ActorID:    actorID,
	})
}

func (s *DocumentService) Sign(documentID, actorID int, notes *string) (*models.Document, error) {
	return s.Transition(TransitionInput{
		DocumentID: documentID,
		NextStatus: models.StatusSigned,
		ActionType: models.ActionParecer,
		Notes:      notes,
		ActorID:    actorID,
	})
}

// DispatchDoc sends a signed document to another unit.
func (s *DocumentService) DispatchDoc(documentID, toUnitID, actorID int, dispatchText *string) (*models.Document, error) {
	return s.Transition(TransitionInput{
		DocumentID:   documentID,
		NextStatus:   models.StatusDispatched,
		ActionType:   models.ActionDespacho,
		ToUnitID:     toUnitID,
		DispatchText: dispatchText,
		ActorID:      actorID,
	})
}

func (s *DocumentService) Archive(documentID, actorID int, notes *string) (*models.Document, error) {
	return s.Transition(TransitionInput{
		DocumentID: documentID,
		NextStatus: models.StatusArchived,
		ActionType: models.ActionArquivamento,
		Notes:      notes,
		ActorID:    actorID,
	})
}

// Reactivate brings an archived document back to in_progress and voids any
// still-undecided retention row so the document cannot be destroyed under a
// schedule that predates its reactivation.
func (s *DocumentService) Reactivate(documentID, actorID int, notes *string) (*models.Document, error) {
	doc, err := s.Transition(TransitionInput{
		DocumentID: documentID,
		NextStatus: models.StatusInProgress,
		ActionType: models.ActionReativacao,
		Notes:      notes,
		ActorID:    actorID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := s.db.Exec(
		"UPDATE document_retentions SET status = ?, rejected_by = ?, rejected_at = ?, rejection_reason = ? WHERE document_id = ? AND status IN (?, ?)",
		models.RetentionRejected, actorID, now, "document reactivated",
		documentID, models.RetentionPending, models.RetentionApproved,
	)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to void retention for document %d: %w", documentID, res.Error)
	}
	return doc, nil
}

// Escalate raises the document priority. Priority never goes down; every
// escalation leaves an informacao row on the ledger.
func (s *DocumentService) Escalate(documentID int, next models.DocumentPriority, actorID int, reason *string) (*models.Document, error) {
	var doc models.Document
	if err := s.db.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document %d not found", documentID)
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	if !doc.Priority.EscalatesTo(next) {
		return nil, fmt.Errorf("document %d: cannot escalate priority from %s to %s", documentID, doc.Priority, next)
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			"UPDATE documents SET priority = ?, update_at = ? WHERE document_id = ? AND priority = ?",
			next, now, documentID, doc.Priority,
		)
		if res.Error != nil {
			return fmt.Errorf("failed to escalate document %d: %w", documentID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("document %d: priority changed concurrently, re-fetch and retry", documentID)
		}

		note := fmt.Sprintf("priority escalated from %s to %s", doc.Priority, next)
		if reason != nil && strings.TrimSpace(*reason) != "" {
			note += ": " + *reason
		}
		movement := models.Movement{
			DocumentID: documentID,
			ActionType: models.ActionInformacao,
			FromUnitID: doc.CurrentUnitID,
			ToUnitID:   doc.CurrentUnitID,
			Notes:      &note,
			CreatedBy:  actorID,
			CreatedAt:  now,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to append escalation movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.Priority = next
	doc.UpdateAt = &now
	return &doc, nil
}

// Get loads one document with its classification and current unit.
func (s *DocumentService) Get(documentID int) (*models.Document, error) {
	var doc models.Document
	err := s.db.Preload("Classification").Preload("CurrentUnit").
		Where("document_id = ?", documentID).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

type DocumentFilter struct {
	Status   models.DocumentStatus
	Priority models.DocumentPriority
	UnitID   int
	Limit    int
	Offset   int
}

// List returns documents matching the filter, newest first.
func (s *DocumentService) List(filter DocumentFilter) ([]models.Document, int64, error) {
	query := s.db.Model(&models.Document{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.UnitID != 0 {
		query = query.Where("current_unit_id = ?", filter.UnitID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	var rows []models.Document
	err := query.Order("create_at DESC, document_id DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	return rows, total, nil
}
