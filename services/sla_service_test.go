package services

import (
	"testing"
	"time"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/models"
)

func TestEvaluateAlertLevels(t *testing.T) {
	rule := models.SLARule{
		ProcessType:       models.ProcessDocumento,
		Priority:          models.PriorityNormal,
		DurationHours:     48,
		WarningThreshold:  0.75,
		CriticalThreshold: 0.90,
	}
	createdAt := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		elapsed time.Duration
		want    models.AlertLevel
	}{
		{0, models.AlertNone},
		{20 * time.Hour, models.AlertNone},
		{35 * time.Hour, models.AlertNone},     // 72.9%
		{36 * time.Hour, models.AlertWarning},  // exactly 75%
		{38 * time.Hour, models.AlertWarning},  // 79.2%
		{43 * time.Hour, models.AlertWarning},  // 89.6%
		{44 * time.Hour, models.AlertCritical}, // 91.7%
		{48 * time.Hour, models.AlertCritical}, // at the deadline, not yet breached
		{49 * time.Hour, models.AlertBreached},
		{100 * time.Hour, models.AlertBreached},
	}

	for _, tc := range cases {
		got := Evaluate(rule, createdAt, createdAt.Add(tc.elapsed))
		if got.Level != tc.want {
			t.Errorf("at +%s: level = %s, want %s (ratio %.3f)", tc.elapsed, got.Level, tc.want, got.ElapsedRatio)
		}
	}
}

func TestEvaluateDeadlineAndRatio(t *testing.T) {
	rule := models.SLARule{DurationHours: 24, WarningThreshold: 0.5, CriticalThreshold: 0.8}
	createdAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	eval := Evaluate(rule, createdAt, createdAt.Add(12*time.Hour))

	wantDeadline := createdAt.Add(24 * time.Hour)
	if !eval.Deadline.Equal(wantDeadline) {
		t.Fatalf("deadline = %s, want %s", eval.Deadline, wantDeadline)
	}
	if eval.ElapsedRatio < 0.499 || eval.ElapsedRatio > 0.501 {
		t.Fatalf("elapsed ratio = %f, want 0.5", eval.ElapsedRatio)
	}
	if eval.Level != models.AlertWarning {
		t.Fatalf("level = %s, want warning", eval.Level)
	}
}

func TestAlertLevelSeverityOrdering(t *testing.T) {
	ladder := []models.AlertLevel{
		models.AlertNone, models.AlertWarning, models.AlertCritical, models.AlertBreached,
	}
	for i := 1; i < len(ladder); i++ {
		if ladder[i].Severity() <= ladder[i-1].Severity() {
			t.Errorf("expected %s to outrank %s", ladder[i], ladder[i-1])
		}
	}
}
