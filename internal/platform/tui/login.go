package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappyep/internal/auth"
)

// Authenticator checks credentials and creates accounts.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) error
}

type loginResultMsg struct {
	player string
	err    error
}

type registerResultMsg struct{ err error }

const (
	fieldEmail = iota
	fieldPassword
)

var (
	loginTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00f5c4")).
			MarginBottom(1)
	loginBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7b61ff")).
			Padding(1, 3)
	loginErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff3cac"))
	loginInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166"))
	loginHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// LoginModel is the email/password gate shown before the game.
type LoginModel struct {
	auth     Authenticator
	inputs   []textinput.Model
	focus    int
	message  string
	isError  bool
	busy     bool
	player   string
	quitting bool
	width    int
	height   int
}

// NewLoginModel creates the login form. email pre-fills the first field.
func NewLoginModel(a Authenticator, email string) LoginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "you@example.com"
	emailInput.Prompt = "Email    "
	emailInput.CharLimit = 254
	emailInput.SetValue(email)

	passInput := textinput.New()
	passInput.Placeholder = "password"
	passInput.Prompt = "Password "
	passInput.EchoMode = textinput.EchoPassword
	passInput.EchoCharacter = '•'
	passInput.CharLimit = 72 // bcrypt input limit

	m := LoginModel{auth: a, inputs: []textinput.Model{emailInput, passInput}}
	if email != "" {
		m.focus = fieldPassword
	}
	m.applyFocus()
	return m
}

func (m *LoginModel) applyFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// Init starts the cursor blink.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login form.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab", "down", "shift+tab", "up":
			m.focus = 1 - m.focus
			m.applyFocus()
			return m, nil
		case "enter":
			if m.focus == fieldEmail {
				m.focus = fieldPassword
				m.applyFocus()
				return m, nil
			}
			return m.submit(false)
		case "ctrl+n":
			return m.submit(true)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.setMessage(auth.Message(msg.err), true)
			m.inputs[fieldPassword].SetValue("")
			return m, nil
		}
		m.player = msg.player
		return m, nil

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			m.setMessage(auth.Message(msg.err), true)
			return m, nil
		}
		m.setMessage("Account created. Verify your email, then log in.", false)
		m.inputs[fieldPassword].SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) setMessage(text string, isError bool) {
	m.message, m.isError = text, isError
}

// submit runs login or registration in the background.
func (m LoginModel) submit(register bool) (tea.Model, tea.Cmd) {
	if m.busy || m.auth == nil {
		return m, nil
	}
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	m.busy = true
	m.setMessage("", false)

	a := m.auth
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if register {
			return registerResultMsg{err: a.Register(ctx, email, password)}
		}
		player, err := a.Login(ctx, email, password)
		return loginResultMsg{player: player, err: err}
	}
}

// View renders the login form.
func (m LoginModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(loginTitleStyle.Render("F L A P P Y"))
	b.WriteString("\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(loginInfoStyle.Render("Checking..."))
	case m.message != "" && m.isError:
		b.WriteString(loginErrorStyle.Render(m.message))
	case m.message != "":
		b.WriteString(loginInfoStyle.Render(m.message))
	}
	b.WriteString("\n")
	b.WriteString(loginHelpStyle.Render("enter log in · ctrl+n register · tab switch · esc quit"))

	box := loginBoxStyle.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// LoggedIn returns the authenticated player once login succeeded.
func (m LoginModel) LoggedIn() (string, bool) {
	return m.player, m.player != ""
}

// IsQuitting returns true if the user left the form.
func (m LoginModel) IsQuitting() bool {
	return m.quitting
}
