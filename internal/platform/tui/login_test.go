package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappyep/internal/auth"
	"github.com/vovakirdan/flappyep/internal/config"
	"github.com/vovakirdan/flappyep/internal/core"
	"github.com/vovakirdan/flappyep/internal/games/flappy"
)

// fakeAuth accepts one email/password pair.
type fakeAuth struct {
	email, password string
	registered      []string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (string, error) {
	switch {
	case email != f.email:
		return "", auth.ErrUnknownEmail
	case password != f.password:
		return "", auth.ErrWrongPassword
	}
	return email, nil
}

func (f *fakeAuth) Register(_ context.Context, email, password string) error {
	if len(password) < auth.MinPasswordLen {
		return auth.ErrWeakPassword
	}
	f.registered = append(f.registered, email)
	return nil
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(runeKey(r))
	}
	return m
}

// submit presses key and feeds the background result back into the model.
func submit(m tea.Model, key tea.KeyMsg) tea.Model {
	m, cmd := m.Update(key)
	if cmd != nil {
		m, _ = m.Update(cmd())
	}
	return m
}

func TestLoginSuccess(t *testing.T) {
	a := &fakeAuth{email: "a@example.com", password: "secret1"}
	var m tea.Model = NewLoginModel(a, "")

	m = typeText(m, "a@example.com")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // to password
	m = typeText(m, "secret1")
	m = submit(m, tea.KeyMsg{Type: tea.KeyEnter})

	player, ok := m.(LoginModel).LoggedIn()
	if !ok || player != "a@example.com" {
		t.Errorf("LoggedIn() = %q, %v, expected a@example.com", player, ok)
	}
}

func TestLoginErrors(t *testing.T) {
	tests := []struct {
		name     string
		password string
		email    string
		expected string
	}{
		{"wrong password", "nope", "a@example.com", "Incorrect password."},
		{"unknown email", "secret1", "b@example.com", "No user found with this email."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &fakeAuth{email: "a@example.com", password: "secret1"}
			var m tea.Model = NewLoginModel(a, tc.email)
			m = typeText(m, tc.password)
			m = submit(m, tea.KeyMsg{Type: tea.KeyEnter})

			lm := m.(LoginModel)
			if _, ok := lm.LoggedIn(); ok {
				t.Fatal("login should have failed")
			}
			if !strings.Contains(lm.View(), tc.expected) {
				t.Errorf("view missing %q", tc.expected)
			}
			if lm.inputs[fieldPassword].Value() != "" {
				t.Error("password field should be cleared after a failed login")
			}
		})
	}
}

func TestLoginRegister(t *testing.T) {
	a := &fakeAuth{}
	var m tea.Model = NewLoginModel(a, "new@example.com")
	m = typeText(m, "secret1")
	m = submit(m, tea.KeyMsg{Type: tea.KeyCtrlN})

	if len(a.registered) != 1 || a.registered[0] != "new@example.com" {
		t.Errorf("registered = %v, expected [new@example.com]", a.registered)
	}
	if !strings.Contains(m.View(), "Account created") {
		t.Error("view should confirm the new account")
	}

	m = typeText(m, "123")
	m = submit(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if !strings.Contains(m.View(), "at least 6 characters") {
		t.Error("view should explain the weak password")
	}
}

func TestLoginEscQuits(t *testing.T) {
	m, cmd := NewLoginModel(&fakeAuth{}, "").Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.(LoginModel).IsQuitting() || cmd == nil {
		t.Error("esc should quit the login form")
	}
}

func TestSessionLoginStartsGame(t *testing.T) {
	a := &fakeAuth{email: "a@example.com", password: "secret1"}
	var started []string
	factory := func(player string, cols, rows int) GameModel {
		started = append(started, player)
		g := NewGameModel(GameOptions{
			Config:        config.DefaultConfig(),
			Runtime:       core.RuntimeConfig{Cols: cols, Rows: rows, TickRate: 60, Seed: 1},
			Player:        player,
			ScreenshotDir: t.TempDir(),
		})
		return g
	}

	var m tea.Model = NewSessionModel(a, "a@example.com", nil, factory, 80, 24)
	m = typeText(m, "secret1")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())

	sm := m.(SessionModel)
	defer sm.Stop()
	if sm.Player() != "a@example.com" || len(started) != 1 {
		t.Fatalf("player %q, games started %v", sm.Player(), started)
	}
	if !sm.game.loop.Running() {
		t.Error("game loop should run after login")
	}

	m, _ = m.Update(runeKey('q'))
	if m.(SessionModel).game.loop.Running() {
		t.Error("quitting should stop the game loop")
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	factory := func(player string, cols, rows int) GameModel {
		return NewGameModel(GameOptions{
			Config:        config.DefaultConfig(),
			Runtime:       core.RuntimeConfig{Cols: cols, Rows: rows, TickRate: 60, Seed: 1},
			Player:        player,
			ScreenshotDir: t.TempDir(),
		})
	}

	sm := NewAuthenticatedSession("a@example.com", nil, factory, 80, 24)
	defer sm.Stop()

	var m tea.Model = sm
	m, _ = m.Update(FrameMsg(flappy.Snapshot{Mode: flappy.ModeDead, Tick: 1}))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).scores == nil {
		t.Fatal("tab on the dead screen should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("session view should show the scoreboard")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).scores != nil {
		t.Error("esc should return to the game")
	}
}
