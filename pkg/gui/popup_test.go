package gui

import (
	"errors"
	"testing"
)

func testPopupItems(ran *[]string) []PopupItem {
	action := func(name string) func() error {
		return func() error {
			*ran = append(*ran, name)
			return nil
		}
	}
	return []PopupItem{
		{Label: "Global", IsHeader: true},
		{Key: "x", Label: "Show all items", Action: action("reset")},
		{Key: "r", Label: "Reload vault", Action: action("reload"), Disabled: "Still loading"},
		{Label: "Folders", IsHeader: true},
		{Key: "z", Label: "Collapse / Expand", Action: action("collapse")},
		{Key: "j/k", Label: "Scroll content"},
	}
}

func TestPopupSkipsHeaders(t *testing.T) {
	var ran []string
	p := NewPopup("Keyboard Shortcuts", testPopupItems(&ran), nil, "helpModal")

	if p.SelectedIdx != 1 {
		t.Fatalf("first selectable item should be selected, got %d", p.SelectedIdx)
	}

	p.MoveUp()
	if p.SelectedIdx != 1 {
		t.Errorf("MoveUp past the first header should stay, got %d", p.SelectedIdx)
	}

	p.MoveDown()
	p.MoveDown()
	if p.SelectedIdx != 4 {
		t.Errorf("MoveDown should skip the header, got %d", p.SelectedIdx)
	}

	p.MoveDown()
	p.MoveDown()
	if p.SelectedIdx != 5 {
		t.Errorf("MoveDown at the end should stay, got %d", p.SelectedIdx)
	}

	if got := p.SelectableCount(); got != 4 {
		t.Errorf("SelectableCount() = %d, expected 4", got)
	}
}

func TestPopupExecute(t *testing.T) {
	var ran []string
	p := NewPopup("Keyboard Shortcuts", testPopupItems(&ran), nil, "helpModal")

	if err := p.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	// Disabled item
	p.MoveDown()
	if err := p.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	// Item without an action
	p.SelectedIdx = 5
	if err := p.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(ran) != 1 || ran[0] != "reset" {
		t.Errorf("ran = %v, expected only reset", ran)
	}
}

func TestPopupExecuteReturnsError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPopup("t", []PopupItem{{Key: "q", Label: "Quit", Action: func() error { return boom }}}, nil, "helpModal")
	if err := p.Execute(); !errors.Is(err, boom) {
		t.Errorf("Execute() = %v, expected %v", err, boom)
	}
}

func TestPopupEmpty(t *testing.T) {
	p := NewPopup("t", nil, nil, "helpModal")
	if item := p.GetSelectedItem(); item != nil {
		t.Errorf("GetSelectedItem() on empty popup = %+v, expected nil", item)
	}
	if err := p.Execute(); err != nil {
		t.Errorf("Execute() on empty popup error: %v", err)
	}
}
