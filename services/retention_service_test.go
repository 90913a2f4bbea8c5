package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"
)

var retentionSelectPattern = regexp.MustCompile("SELECT \\* FROM `document_retentions` WHERE retention_id = \\?")

func retentionColumns() []string {
	return []string{"retention_id", "document_id", "status", "scheduled_destruction_date", "marked_by"}
}

func TestExecuteDestructionFailsBeforeScheduledDate(t *testing.T) {
	scheduled := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: retentionSelectPattern,
			anyArgs: true,
			columns: retentionColumns(),
			rows: [][]driver.Value{
				{int64(5), int64(10), "approved", scheduled, int64(2)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRetentionService(db, NewNotificationService(db))

	_, err := svc.ExecuteDestruction(5, 9, now)
	var notElapsed *RetentionNotElapsedError
	if !errors.As(err, &notElapsed) {
		t.Fatalf("got %v, want RetentionNotElapsedError", err)
	}
	if !notElapsed.ScheduledDate.Equal(scheduled) {
		t.Fatalf("error carries scheduled date %s, want %s", notElapsed.ScheduledDate, scheduled)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExecuteDestructionRequiresApproval(t *testing.T) {
	scheduled := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	for _, status := range []string{"pending", "rejected", "destroyed"} {
		steps := []*queryStep{
			{
				kind:    kindQuery,
				pattern: retentionSelectPattern,
				anyArgs: true,
				columns: retentionColumns(),
				rows: [][]driver.Value{
					{int64(5), int64(10), status, scheduled, int64(2)},
				},
			},
		}

		db, state, cleanup := newScriptedGormDB(t, steps)

		svc := NewRetentionService(db, NewNotificationService(db))

		_, err := svc.ExecuteDestruction(5, 9, now)
		var notApproved *NotApprovedError
		if !errors.As(err, &notApproved) {
			t.Fatalf("status %s: got %v, want NotApprovedError", status, err)
		}
		if notApproved.Status != models.RetentionStatus(status) {
			t.Fatalf("error carries status %s, want %s", notApproved.Status, status)
		}

		if err := state.verifyComplete(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
		cleanup()
	}
}

func TestExecuteDestructionAfterScheduledDateSucceeds(t *testing.T) {
	scheduled := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: retentionSelectPattern,
			anyArgs: true,
			columns: retentionColumns(),
			rows: [][]driver.Value{
				{int64(5), int64(10), "approved", scheduled, int64(2)},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE document_retentions SET status = \?, destroyed_by = \?, destroyed_at = \? WHERE retention_id = \? AND status = \?`),
			anyArgs: true,
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: retentionSelectPattern,
			anyArgs: true,
			columns: retentionColumns(),
			rows: [][]driver.Value{
				{int64(5), int64(10), "destroyed", scheduled, int64(2)},
			},
		},
		{
			// Dispatcher looks up the template, finds none, falls back.
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `notification_templates`"),
			anyArgs: true,
			columns: []string{"template_id"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notifications`"),
			anyArgs: true,
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRetentionService(db, NewNotificationService(db))

	retention, err := svc.ExecuteDestruction(5, 9, now)
	if err != nil {
		t.Fatalf("ExecuteDestruction returned error: %v", err)
	}
	if retention.Status != models.RetentionDestroyed {
		t.Fatalf("status = %s, want destroyed", retention.Status)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkForRetentionRequiresArchivedDocument(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `documents` WHERE document_id = \\?"),
			anyArgs: true,
			columns: []string{"document_id", "entry_number", "status", "created_by"},
			rows: [][]driver.Value{
				{int64(10), "ENT-2025-AB12CD34EF", "in_progress", int64(4)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRetentionService(db, NewNotificationService(db))

	_, err := svc.MarkForRetention(10, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "classification expired", nil, 4)
	var notArchived *NotArchivedError
	if !errors.As(err, &notArchived) {
		t.Fatalf("got %v, want NotArchivedError", err)
	}
	if notArchived.Status != models.StatusInProgress {
		t.Fatalf("error carries status %s, want in_progress", notArchived.Status)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
