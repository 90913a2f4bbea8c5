package services

import (
	"fmt"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"
)

// Domain rule failures. All of them are recoverable by the caller: each one
// carries the entity id and enough state to correct the request and retry.
// Persistence failures are wrapped with %w instead and surface separately.

type InvalidTransitionError struct {
	DocumentID int
	From       models.DocumentStatus
	To         models.DocumentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("document %d: invalid transition from %s to %s", e.DocumentID, e.From, e.To)
}

// StaleRouteError signals that another actor already moved the document: the
// caller's expected from-unit no longer matches the current unit.
type StaleRouteError struct {
	DocumentID   int
	ExpectedUnit int
	CurrentUnit  int
}

func (e *StaleRouteError) Error() string {
	return fmt.Sprintf("document %d: stale route, expected unit %d but document is at unit %d",
		e.DocumentID, e.ExpectedUnit, e.CurrentUnit)
}

type CommentRequiredError struct {
	DispatchID int
	Decision   models.ApprovalStatus
}

func (e *CommentRequiredError) Error() string {
	return fmt.Sprintf("dispatch %d: decision %s requires comments", e.DispatchID, e.Decision)
}

type NotArchivedError struct {
	DocumentID int
	Status     models.DocumentStatus
}

func (e *NotArchivedError) Error() string {
	return fmt.Sprintf("document %d: retention requires archived status, current status is %s",
		e.DocumentID, e.Status)
}

type AlreadyDecidedError struct {
	EntityID int
	Status   string
}

func (e *AlreadyDecidedError) Error() string {
	return fmt.Sprintf("entity %d: already decided (status %s)", e.EntityID, e.Status)
}

type RetentionNotElapsedError struct {
	RetentionID   int
	ScheduledDate time.Time
	Now           time.Time
}

func (e *RetentionNotElapsedError) Error() string {
	return fmt.Sprintf("retention %d: scheduled destruction date %s not reached at %s",
		e.RetentionID, e.ScheduledDate.Format("2006-01-02"), e.Now.Format("2006-01-02"))
}

type NotApprovedError struct {
	RetentionID int
	Status      models.RetentionStatus
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("retention %d: destruction requires approved status, current status is %s",
		e.RetentionID, e.Status)
}

type UnauthorizedError struct {
	UserID int
	Module string
	Action string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("user %d: not allowed to %s on %s", e.UserID, e.Action, e.Module)
}
