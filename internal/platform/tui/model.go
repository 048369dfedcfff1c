package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappyep/internal/config"
	"github.com/vovakirdan/flappyep/internal/core"
	"github.com/vovakirdan/flappyep/internal/games/flappy"
)

// RunRecorder stores finished runs for the scoreboard.
type RunRecorder interface {
	SaveRun(ctx context.Context, player string, score int, won bool) (int64, error)
}

// Muter is a sound output that can be switched off at runtime.
type Muter interface {
	SetMuted(muted bool)
	Muted() bool
}

// godCode typed during play toggles invincibility.
const godCode = "god"

// GameOptions wires a game screen to its collaborators. Zero values are
// valid: no best store, no run history, no sound.
type GameOptions struct {
	Config        config.GameConfig
	Runtime       core.RuntimeConfig
	Player        string
	Best          flappy.BestScoreStore
	Runs          RunRecorder
	Hooks         []flappy.Hooks
	Muter         Muter
	Logger        *log.Logger
	ScreenshotDir string
}

// runSavedMsg reports the outcome of a background run save.
type runSavedMsg struct{ err error }

// GameModel is the Bubble Tea model for one authenticated game session.
// The simulation runs on its own loop goroutine; the model only forwards
// input and draws the latest snapshot it was handed.
type GameModel struct {
	opts     GameOptions
	ctx      context.Context
	cancel   context.CancelFunc
	loop     *flappy.Loop
	keeper   *flappy.BestKeeper
	frames   *frameQueue
	renderer *flappy.Renderer
	screen   *core.Screen
	keys     *KeyMapper
	logger   *log.Logger

	snap       flappy.Snapshot
	typed      string
	runSaved   bool
	quitting   bool
	showScores bool
}

// NewGameModel creates a game screen. The loop starts in Init.
func NewGameModel(opts GameOptions) GameModel {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate > 0 {
		opts.Config.Display.TickRate = opts.Runtime.TickRate
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = config.ExpandPath(config.DefaultPath("screenshots"))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("player", opts.Player)

	ctx, cancel := context.WithCancel(context.Background())
	keeper := flappy.NewBestKeeper(opts.Best, logger)
	frames := newFrameQueue(ctx)

	w, h := flappy.PlayfieldSize(opts.Runtime.Cols, opts.Runtime.Rows, opts.Config.Display)
	driver := flappy.NewDriver(opts.Config, w, h, opts.Runtime.Seed,
		flappy.WithBest(keeper.Load(ctx), keeper),
		flappy.WithHooks(opts.Hooks...),
		flappy.WithLogger(logger),
	)
	loop := flappy.NewLoop(driver, frames.push,
		flappy.WithTickRate(opts.Config.Display.TickRate),
		flappy.WithFixedTimestep(opts.Config.Display.FixedTimestep),
		flappy.WithLoopLogger(logger),
	)

	return GameModel{
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		loop:     loop,
		keeper:   keeper,
		frames:   frames,
		renderer: flappy.NewRenderer(opts.Config.Display, opts.Runtime.Seed),
		screen:   core.NewScreen(opts.Runtime.Cols, opts.Runtime.Rows),
		keys:     NewKeyMapper(),
		logger:   logger,
	}
}

// Init starts the simulation on the attract screen.
func (m GameModel) Init() tea.Cmd {
	m.loop.Start(m.ctx, flappy.ModeIdle)
	m.logger.Debug("game session started")
	return m.frames.waitForFrame()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.trackCode(msg)
		return m.handleAction(m.keys.MapKey(msg))

	case tea.MouseMsg:
		return m.handleAction(m.keys.MapMouse(msg))

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.loop.Driver().Resize(flappy.PlayfieldSize(msg.Width, msg.Height, m.opts.Config.Display))
		return m, nil

	case FrameMsg:
		return m.handleFrame(flappy.Snapshot(msg))

	case runSavedMsg:
		if msg.err != nil {
			m.logger.Warn("could not save run", "err", msg.err)
		}
		return m, nil
	}

	return m, nil
}

func (m GameModel) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		m.Stop()
		m.quitting = true
		return m, tea.Quit
	case core.ActionActivate:
		m.loop.Activate()
	case core.ActionRestart:
		if m.snap.Mode.Terminal() {
			m.loop.Reset(flappy.ModePlaying)
		}
	case core.ActionMenu:
		if m.snap.Mode.Terminal() {
			m.loop.Reset(flappy.ModeIdle)
		}
	case core.ActionSnapshot:
		m.saveScreenshot()
	case core.ActionMute:
		if m.opts.Muter != nil {
			muted := !m.opts.Muter.Muted()
			m.opts.Muter.SetMuted(muted)
			m.logger.Debug("sound toggled", "muted", muted)
		}
	case core.ActionScores:
		if m.snap.Mode != flappy.ModePlaying && m.snap.Mode != flappy.ModeDying {
			m.showScores = true
		}
	}
	return m, nil
}

// trackCode remembers the last typed letters and toggles invincibility when
// they spell the god code.
func (m *GameModel) trackCode(msg tea.KeyMsg) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		m.typed = ""
		return
	}
	m.typed += string(msg.Runes)
	if len(m.typed) > len(godCode) {
		m.typed = m.typed[len(m.typed)-len(godCode):]
	}
	if m.typed == godCode {
		m.typed = ""
		m.loop.Driver().SetInvincible(!m.snap.Invincible)
	}
}

func (m GameModel) handleFrame(s flappy.Snapshot) (tea.Model, tea.Cmd) {
	m.snap = s
	m.renderer.Observe(s)

	cmds := []tea.Cmd{m.frames.waitForFrame()}
	if !s.Mode.Terminal() {
		m.runSaved = false
	} else if !m.runSaved {
		m.runSaved = true
		m.logger.Info("run finished", "mode", s.Mode, "score", s.Score, "best", s.Best)
		cmds = append(cmds, m.saveRun(s))
	}
	return m, tea.Batch(cmds...)
}

// saveRun records a finished run in the background.
func (m GameModel) saveRun(s flappy.Snapshot) tea.Cmd {
	runs, player := m.opts.Runs, m.opts.Player
	if runs == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := runs.SaveRun(ctx, player, s.Score, s.Mode == flappy.ModeWon)
		return runSavedMsg{err: err}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.renderer.Draw(m.screen, m.snap)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("flappy_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Stop halts the loop and flushes the best score. Safe to call twice.
func (m GameModel) Stop() {
	m.loop.Stop()
	m.keeper.Close()
	m.cancel()
}

// View renders the latest snapshot.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.renderer.Draw(m.screen, m.snap)
	return RenderScreen(m.screen)
}

// Snapshot returns the last frame the model received.
func (m GameModel) Snapshot() flappy.Snapshot {
	return m.snap
}

// IsQuitting returns true if the user asked to leave.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// WantsScores reports that the scoreboard was requested.
func (m GameModel) WantsScores() bool {
	return m.showScores
}

// ScoresShown clears the scoreboard request.
func (m GameModel) ScoresShown() GameModel {
	m.showScores = false
	return m
}
