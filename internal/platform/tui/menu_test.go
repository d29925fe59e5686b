package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func menuSend(m MenuModel, keys ...string) MenuModel {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(MenuModel)
	}
	return m
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, "dodge", testRuntime(), nil)

	if m.Choice() != ChoiceNone {
		t.Fatalf("initial Choice() = %v", m.Choice())
	}

	tests := []struct {
		keys     []string
		expected MenuChoice
	}{
		{[]string{"enter"}, ChoicePlay},
		{[]string{"down", "down", "enter"}, ChoiceScores},
		{[]string{"down", "down", "down", "down", "enter"}, ChoiceQuit},
		{[]string{"up", "enter"}, ChoicePlay},
		{[]string{"tab"}, ChoiceScores},
		{[]string{"q"}, ChoiceQuit},
	}

	for _, tt := range tests {
		got := menuSend(NewMenuModel(nil, "dodge", testRuntime(), nil), tt.keys...)
		if got.Choice() != tt.expected {
			t.Errorf("keys %v: Choice() = %v, expected %v", tt.keys, got.Choice(), tt.expected)
		}
	}
}

func TestMenuDifficulty(t *testing.T) {
	m := NewMenuModel(nil, "dodge", testRuntime(), nil)
	if m.Difficulty() != "normal" {
		t.Fatalf("default Difficulty() = %q, expected normal", m.Difficulty())
	}

	// Left/right only change difficulty on its own row
	m = menuSend(m, "right")
	if m.Difficulty() != "normal" {
		t.Errorf("right on Play changed difficulty to %q", m.Difficulty())
	}

	m = menuSend(m, "down", "right")
	if m.Difficulty() != "easy" {
		t.Errorf("Difficulty() = %q, expected easy", m.Difficulty())
	}
	m = menuSend(m, "enter", "enter")
	if m.Difficulty() != "fixed" {
		t.Errorf("Difficulty() = %q, expected fixed", m.Difficulty())
	}
	m = menuSend(m, "right")
	if m.Difficulty() != "normal" {
		t.Errorf("Difficulty() did not wrap: %q", m.Difficulty())
	}
	m = menuSend(m, "left")
	if m.Difficulty() != "fixed" {
		t.Errorf("Difficulty() did not wrap backwards: %q", m.Difficulty())
	}
	if m.Choice() != ChoiceNone {
		t.Errorf("cycling difficulty picked %v", m.Choice())
	}
	if m.Config().Difficulty != "fixed" {
		t.Errorf("Config().Difficulty = %q", m.Config().Difficulty)
	}

	rt := testRuntime()
	rt.Difficulty = "hard"
	if d := NewMenuModel(nil, "dodge", rt, nil).Difficulty(); d != "hard" {
		t.Errorf("menu from runtime hard = %q", d)
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("dodge", "alice", 120)
	store.SaveScore("dodge", "bob", 300)

	m := NewMenuModel(store, "dodge", testRuntime(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := next.(MenuModel).View()

	for _, want := range []string{"D O D G E", "alice", "Best: 120", "Top: 300", "Play", "High Scores", "Difficulty: < normal >"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
