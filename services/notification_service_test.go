package services

import "testing"

func TestApplyTemplatePlaceholders(t *testing.T) {
	data := map[string]string{
		"entry_number": "ENT-2025-AB12CD34EF",
		"new_status":   "archived",
	}

	got := applyTemplatePlaceholders("Documento {{entry_number}} agora está {{new_status}}", data)
	want := "Documento ENT-2025-AB12CD34EF agora está archived"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestApplyTemplatePlaceholdersLeavesUnknownKeys(t *testing.T) {
	got := applyTemplatePlaceholders("Prazo: {{deadline}}", map[string]string{"other": "x"})
	if got != "Prazo: {{deadline}}" {
		t.Fatalf("got %q, want placeholder untouched", got)
	}
}
