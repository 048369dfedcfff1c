package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// GameFactory builds the game screen for an authenticated player.
type GameFactory func(player string, cols, rows int) GameModel

// SessionModel manages the full flow: login -> game <-> scoreboard.
// Logging out is quitting; the game loop is stopped before the program ends.
type SessionModel struct {
	login    LoginModel
	loggedIn bool
	player   string
	newGame  GameFactory
	game     *GameModel
	scores   *ScoreboardModel
	source   RunSource
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a session that starts at the login form.
func NewSessionModel(a Authenticator, email string, source RunSource, newGame GameFactory, cols, rows int) SessionModel {
	return SessionModel{
		login:   NewLoginModel(a, email),
		newGame: newGame,
		source:  source,
		width:   cols,
		height:  rows,
	}
}

// NewAuthenticatedSession creates a session for a player who already
// passed the gate, such as an SSH user authenticated by password.
func NewAuthenticatedSession(player string, source RunSource, newGame GameFactory, cols, rows int) SessionModel {
	m := SessionModel{
		loggedIn: true,
		player:   player,
		newGame:  newGame,
		source:   source,
		width:    cols,
		height:   rows,
	}
	g := newGame(player, cols, rows)
	m.game = &g
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.game != nil {
		return m.game.Init()
	}
	return m.login.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
		if m.scores != nil {
			sb, _ := m.scores.Update(msg)
			s := sb.(ScoreboardModel)
			m.scores = &s
		}
	}

	if !m.loggedIn {
		return m.updateLogin(msg)
	}

	// Frames and background results always belong to the game, even while
	// the scoreboard is on screen.
	switch msg.(type) {
	case FrameMsg, frameClosedMsg, runSavedMsg, tea.WindowSizeMsg:
		return m.updateGame(msg)
	}
	if m.scores != nil {
		return m.updateScores(msg)
	}
	return m.updateGame(msg)
}

func (m SessionModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	lm, cmd := m.login.Update(msg)
	m.login = lm.(LoginModel)

	if m.login.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if player, ok := m.login.LoggedIn(); ok {
		m.loggedIn, m.player = true, player
		g := m.newGame(player, m.width, m.height)
		m.game = &g
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	gm, cmd := m.game.Update(msg)
	g := gm.(GameModel)
	m.game = &g

	if g.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if g.WantsScores() && m.scores == nil {
		g = g.ScoresShown()
		m.game = &g
		sb := NewScoreboardModel(m.source, m.player, m.width, m.height)
		m.scores = &sb
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	sm, cmd := m.scores.Update(msg)
	s := sm.(ScoreboardModel)
	m.scores = &s

	if s.IsQuitting() {
		m.Stop()
		m.quitting = true
		return m, tea.Quit
	}
	if s.IsGoingBack() {
		m.scores = nil
		return m, nil
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case !m.loggedIn:
		return m.login.View()
	case m.scores != nil:
		return m.scores.View()
	default:
		return m.game.View()
	}
}

// Stop halts the game loop if one is running.
func (m SessionModel) Stop() {
	if m.game != nil {
		m.game.Stop()
	}
}

// Player returns the authenticated player, if any.
func (m SessionModel) Player() string {
	return m.player
}

// RunSession runs the login-gated game in the local terminal.
func RunSession(model SessionModel) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(SessionModel); ok {
		m.Stop()
	}
	return err
}
