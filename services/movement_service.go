package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"

	"gorm.io/gorm"
)

type MovementService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewMovementService(db *gorm.DB, notifier *NotificationService) *MovementService {
	return &MovementService{db: db, notifier: notifier}
}

// MovementInput carries one routing-slip entry. FromUnitID is the caller's
// view of where the document currently sits; if another actor moved it first
// the write fails with StaleRouteError and nothing is appended.
type MovementInput struct {
	DocumentID   int
	ActionType   models.ActionType
	FromUnitID   int
	ToUnitID     int
	ToUserID     *int
	DispatchText *string
	Notes        *string
	ActorID      int
}

func (in *MovementInput) validate() error {
	if !in.ActionType.Valid() {
		return fmt.Errorf("invalid action type '%s'", in.ActionType)
	}
	if in.ActionType.Relocates() && in.ToUnitID == in.FromUnitID {
		return fmt.Errorf("%s requires a destination unit different from the origin", in.ActionType)
	}
	return nil
}

// RecordMovement appends one ledger row and relocates the document.
//
// The from-unit check and the relocation are a single compare-and-swap
// UPDATE; losers of a concurrent race see zero affected rows and get a
// StaleRouteError without any ledger write. update_at always changes, so the
// statement reports one affected row even when the unit stays put
// (informacao/parecer annotations).
func (s *MovementService) RecordMovement(in MovementInput) (*models.Movement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var toUnit models.Unit
	if err := s.db.Where("unit_id = ? AND is_active = 1 AND delete_at IS NULL", in.ToUnitID).
		First(&toUnit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("destination unit %d not found", in.ToUnitID)
		}
		return nil, fmt.Errorf("failed to load destination unit: %w", err)
	}

	now := time.Now()
	movement := models.Movement{
		DocumentID:   in.DocumentID,
		ActionType:   in.ActionType,
		FromUnitID:   in.FromUnitID,
		ToUnitID:     in.ToUnitID,
		ToUserID:     in.ToUserID,
		DispatchText: in.DispatchText,
		Notes:        in.Notes,
		CreatedBy:    in.ActorID,
		CreatedAt:    now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			"UPDATE documents SET current_unit_id = ?, update_at = ? WHERE document_id = ? AND current_unit_id = ?",
			in.ToUnitID, now, in.DocumentID, in.FromUnitID,
		)
		if res.Error != nil {
			return fmt.Errorf("failed to relocate document %d: %w", in.DocumentID, res.Error)
		}
		if res.RowsAffected == 0 {
			var doc models.Document
			if err := tx.Where("document_id = ?", in.DocumentID).First(&doc).Error; err != nil {
				return fmt.Errorf("document %d not found: %w", in.DocumentID, err)
			}
			return &StaleRouteError{
				DocumentID:   in.DocumentID,
				ExpectedUnit: in.FromUnitID,
				CurrentUnit:  doc.CurrentUnitID,
			}
		}

		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to append movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.ToUserID != nil {
		docID := in.DocumentID
		s.notifier.Notify(Event{
			EventType:  "movement.received",
			UserID:     *in.ToUserID,
			ActorID:    in.ActorID,
			DocumentID: &docID,
			Data: map[string]string{
				"document_id": fmt.Sprintf("%d", in.DocumentID),
				"action_type": string(in.ActionType),
			},
		})
	}

	return &movement, nil
}

// CurrentUnit derives the document's location from the ledger: the to_unit_id
// of the maximum-ordered movement (created_at, then insertion sequence).
func (s *MovementService) CurrentUnit(documentID int) (int, error) {
	var last models.Movement
	err := s.db.Where("document_id = ?", documentID).
		Order("created_at DESC, movement_id DESC").
		First(&last).Error
	if err == nil {
		return last.ToUnitID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to read movement ledger: %w", err)
	}

	// No movements yet: the document sits where it was created.
	var doc models.Document
	if err := s.db.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		return 0, fmt.Errorf("document %d not found: %w", documentID, err)
	}
	return doc.CurrentUnitID, nil
}

// History returns the full ledger for a document in ledger order.
func (s *MovementService) History(documentID int) ([]models.Movement, error) {
	var rows []models.Movement
	err := s.db.Where("document_id = ?", documentID).
		Order("created_at ASC, movement_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load movement history: %w", err)
	}
	return rows, nil
}

// MarkRead flags a movement as read by its recipient. Idempotent; scoped to
// the addressed user, or to members of the destination unit when the movement
// was addressed to the unit as a whole. Never writes new ledger rows.
func (s *MovementService) MarkRead(movementID, userID, unitID int) error {
	res := s.db.Exec(
		"UPDATE movements SET is_read = 1 WHERE movement_id = ? AND (to_user_id = ? OR (to_user_id IS NULL AND to_unit_id = ?))",
		movementID, userID, unitID,
	)
	if res.Error != nil {
		return fmt.Errorf("failed to mark movement read: %w", res.Error)
	}
	return nil
}

// Inbox lists movements addressed to a unit, optionally unread only, newest
// first, paginated.
func (s *MovementService) Inbox(unitID int, unreadOnly bool, limit, offset int) ([]models.Movement, int64, error) {
	query := s.db.Model(&models.Movement{}).Where("to_unit_id = ?", unitID)
	if unreadOnly {
		query = query.Where("is_read = 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inbox: %w", err)
	}

	var rows []models.Movement
	err := query.Order("created_at DESC, movement_id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load inbox: %w", err)
	}
	return rows, total, nil
}
