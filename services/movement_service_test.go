package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"
)

func TestRecordMovementStaleRouteLeavesLedgerUntouched(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `units` WHERE unit_id = \\? AND is_active = 1 AND delete_at IS NULL"),
			anyArgs: true,
			columns: []string{"unit_id", "unit_name", "is_active"},
			rows: [][]driver.Value{
				{int64(2), "Protocolo Geral", true},
			},
		},
		{
			// CAS relocation: zero affected rows means another actor moved
			// the document first. No movement INSERT may follow.
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE documents SET current_unit_id = \?, update_at = \? WHERE document_id = \? AND current_unit_id = \?`),
			anyArgs: true,
			result:  scriptedResult{rowsAffected: 0},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `documents` WHERE document_id = \\?"),
			anyArgs: true,
			columns: []string{"document_id", "status", "current_unit_id"},
			rows: [][]driver.Value{
				{int64(10), "in_progress", int64(99)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewMovementService(db, NewNotificationService(db))

	_, err := svc.RecordMovement(MovementInput{
		DocumentID: 10,
		ActionType: models.ActionEncaminhamento,
		FromUnitID: 1,
		ToUnitID:   2,
		ActorID:    4,
	})

	var stale *StaleRouteError
	if !errors.As(err, &stale) {
		t.Fatalf("got %v, want StaleRouteError", err)
	}
	if stale.ExpectedUnit != 1 || stale.CurrentUnit != 99 {
		t.Fatalf("error carries units (%d, %d), want (1, 99)", stale.ExpectedUnit, stale.CurrentUnit)
	}

	// All scripted steps consumed and nothing extra issued: the ledger saw
	// no INSERT.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordMovementRejectsSameUnitForwarding(t *testing.T) {
	svc := NewMovementService(nil, nil)

	for _, action := range []models.ActionType{models.ActionEncaminhamento, models.ActionDespacho} {
		_, err := svc.RecordMovement(MovementInput{
			DocumentID: 10,
			ActionType: action,
			FromUnitID: 1,
			ToUnitID:   1,
			ActorID:    4,
		})
		if err == nil {
			t.Fatalf("expected %s to a same unit to be rejected", action)
		}
	}
}

func TestRecordMovementRejectsUnknownAction(t *testing.T) {
	svc := NewMovementService(nil, nil)

	_, err := svc.RecordMovement(MovementInput{
		DocumentID: 10,
		ActionType: models.ActionType("transferencia"),
		FromUnitID: 1,
		ToUnitID:   2,
		ActorID:    4,
	})
	if err == nil {
		t.Fatal("expected unknown action type to be rejected")
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	markReadPattern := regexp.MustCompile(`UPDATE movements SET is_read = 1 WHERE movement_id = \? AND \(to_user_id = \? OR \(to_user_id IS NULL AND to_unit_id = \?\)\)`)

	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: markReadPattern,
			args:    []driver.Value{int64(4), int64(8), int64(2)},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: markReadPattern,
			args:    []driver.Value{int64(4), int64(8), int64(2)},
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewMovementService(db, NewNotificationService(db))

	if err := svc.MarkRead(4, 8, 2); err != nil {
		t.Fatalf("first MarkRead returned error: %v", err)
	}
	// Second call flips nothing and still succeeds.
	if err := svc.MarkRead(4, 8, 2); err != nil {
		t.Fatalf("second MarkRead returned error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
