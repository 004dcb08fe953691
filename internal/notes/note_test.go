package notes

import (
	"errors"
	"testing"

	"vaultwidget/internal/apperr"
)

func TestNewNote_Validation(t *testing.T) {
	valid := Note{Title: "T", FileName: "t.md", VaultLabel: "Vault"}
	if _, err := NewNote(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, n := range []Note{
		{Title: " ", FileName: "t.md", VaultLabel: "Vault"},
		{Title: "T", FileName: "", VaultLabel: "Vault"},
		{Title: "T", FileName: "t.md", VaultLabel: "\t"},
	} {
		_, err := NewNote(n)
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %+v, got %v", n, err)
		}
	}
}
