package models

import "testing"

func TestStatusTransitionsFollowLifecycleOrder(t *testing.T) {
	legal := []struct {
		from DocumentStatus
		to   DocumentStatus
	}{
		{StatusReceived, StatusValidating},
		{StatusValidating, StatusInProgress},
		{StatusInProgress, StatusPendingSignature},
		{StatusPendingSignature, StatusSigned},
		{StatusSigned, StatusDispatched},
		{StatusDispatched, StatusArchived},
		{StatusArchived, StatusInProgress}, // reactivation
	}

	for _, tc := range legal {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}
}

func TestStatusTransitionsRejectSkipsAndReversals(t *testing.T) {
	illegal := []struct {
		from DocumentStatus
		to   DocumentStatus
	}{
		{StatusReceived, StatusInProgress},       // skipping validation
		{StatusReceived, StatusArchived},         // skipping everything
		{StatusValidating, StatusReceived},       // reversal
		{StatusSigned, StatusPendingSignature},   // reversal
		{StatusArchived, StatusArchived},         // self loop
		{StatusArchived, StatusDispatched},       // archived only reactivates
		{StatusDispatched, StatusInProgress},     // only archived reactivates
		{StatusInProgress, StatusSigned},         // skipping signature request
		{StatusReceived, DocumentStatus("bogus")},
	}

	for _, tc := range illegal {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestArchivedOnlyReachableFromDispatched(t *testing.T) {
	sources := []DocumentStatus{
		StatusReceived, StatusValidating, StatusInProgress,
		StatusPendingSignature, StatusSigned, StatusArchived,
	}
	for _, from := range sources {
		if from.CanTransition(StatusArchived) {
			t.Errorf("expected %s -> archived to be rejected", from)
		}
	}
	if !StatusDispatched.CanTransition(StatusArchived) {
		t.Error("expected dispatched -> archived to be allowed")
	}
}

func TestPriorityEscalatesOnlyUpward(t *testing.T) {
	if !PriorityNormal.EscalatesTo(PriorityHigh) {
		t.Error("expected normal -> high to be allowed")
	}
	if !PriorityNormal.EscalatesTo(PriorityUrgent) {
		t.Error("expected normal -> urgent to be allowed")
	}
	if !PriorityHigh.EscalatesTo(PriorityUrgent) {
		t.Error("expected high -> urgent to be allowed")
	}

	if PriorityUrgent.EscalatesTo(PriorityHigh) {
		t.Error("expected urgent -> high to be rejected")
	}
	if PriorityHigh.EscalatesTo(PriorityHigh) {
		t.Error("expected high -> high to be rejected")
	}
	if PriorityNormal.EscalatesTo(DocumentPriority("extreme")) {
		t.Error("expected escalation to unknown priority to be rejected")
	}
}

func TestActionTypeRelocationRules(t *testing.T) {
	relocating := []ActionType{ActionEncaminhamento, ActionDespacho}
	for _, action := range relocating {
		if !action.Relocates() {
			t.Errorf("expected %s to relocate", action)
		}
	}

	annotating := []ActionType{
		ActionInformacao, ActionParecer, ActionRecebimento,
		ActionDevolucao, ActionArquivamento, ActionReativacao,
	}
	for _, action := range annotating {
		if action.Relocates() {
			t.Errorf("expected %s to not force relocation", action)
		}
	}
}
