package icons

import "testing"

func TestSetEnabled(t *testing.T) {
	originalEnabled := enabled
	originalFolder := FOLDER_ICON
	originalUser := USER
	originalSelected := SELECTED
	originalError := ERROR
	originalExpand := ARROW_EXPAND
	originalCollapse := ARROW_COLLAPSE
	defer func() {
		enabled = originalEnabled
		FOLDER_ICON = originalFolder
		USER = originalUser
		SELECTED = originalSelected
		ERROR = originalError
		ARROW_EXPAND = originalExpand
		ARROW_COLLAPSE = originalCollapse
	}()

	SetEnabled(true)
	if !IsEnabled() {
		t.Error("IsEnabled() should be true after SetEnabled(true)")
	}

	SetEnabled(false)
	if IsEnabled() {
		t.Error("IsEnabled() should be false after SetEnabled(false)")
	}

	if FOLDER_ICON != "" {
		t.Error("FOLDER_ICON should be empty when disabled")
	}
	if USER != "" {
		t.Error("USER should be empty when disabled")
	}

	// Fallbacks keep the tree readable without a Nerd Font
	if SELECTED != "✓" {
		t.Errorf("SELECTED should be '✓' when disabled, got %q", SELECTED)
	}
	if ERROR != "✗" {
		t.Errorf("ERROR should be '✗' when disabled, got %q", ERROR)
	}
	if ARROW_EXPAND != "+" || ARROW_COLLAPSE != "-" {
		t.Errorf("arrows should fall back to +/-, got %q/%q", ARROW_EXPAND, ARROW_COLLAPSE)
	}
}

func TestPatchForNerdFontsV2(t *testing.T) {
	origFolder := FOLDER_ICON
	origCollection := COLLECTION_ICON
	origDocument := DOCUMENT
	origTrash := TRASH_ICON
	origStar := STAR
	defer func() {
		FOLDER_ICON = origFolder
		COLLECTION_ICON = origCollection
		DOCUMENT = origDocument
		TRASH_ICON = origTrash
		STAR = origStar
	}()

	PatchForNerdFontsV2()

	if FOLDER_ICON != "\uf07b" {
		t.Errorf("FOLDER_ICON should be patched for v2, got %q", FOLDER_ICON)
	}
	if COLLECTION_ICON != "\uf07c" {
		t.Errorf("COLLECTION_ICON should be patched for v2, got %q", COLLECTION_ICON)
	}
	if DOCUMENT != "\uf0f6" {
		t.Errorf("DOCUMENT should be patched for v2, got %q", DOCUMENT)
	}
}

func TestForNode(t *testing.T) {
	tests := []struct {
		class    string
		expected *string
	}{
		{"bwi-vault", &VAULT_ICON},
		{"bwi-user", &USER},
		{"bwi-business", &BUSINESS},
		{"bwi-folder", &FOLDER_ICON},
		{"bwi-collection", &COLLECTION_ICON},
		{"bwi-star", &STAR},
		{"bwi-trash", &TRASH_ICON},
		{"bwi-globe", &LOGIN},
		{"", &DOCUMENT},
		{"unknown", &DOCUMENT},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			if got := ForNode(tt.class); got != *tt.expected {
				t.Errorf("ForNode(%q) = %q, expected %q", tt.class, got, *tt.expected)
			}
		})
	}
}
