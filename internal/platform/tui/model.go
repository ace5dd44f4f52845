package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/input"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// RunSaver persists finished runs. *storage.Store implements it.
type RunSaver interface {
	SaveRun(run storage.Run) (string, error)
}

// Options configures the game screen. Zero values are usable.
type Options struct {
	Interval      time.Duration
	Width, Height int
	Store         RunSaver       // nil disables the run journal
	Pilot         registry.Pilot // nil for human play
	Logger        *log.Logger
	ScreenshotDir string
}

// Model is the Bubble Tea model for a snake session.
// It only reads engine snapshots; every change goes through the controller.
type Model struct {
	engine  *snake.Engine
	ctrl    *input.Controller
	journal *replay.Journal
	store   RunSaver
	pilot   registry.Pilot
	logger  *log.Logger

	screen *core.Screen
	keys   KeyMap
	help   help.Model

	interval      time.Duration
	screenshotDir string

	gen      int  // Current tick chain
	ticking  bool // A tick from chain gen is in flight
	quitting bool
	flash    string
	lastRun  string // ID of the last saved run
}

// NewModel creates a game screen for the given engine.
func NewModel(e *snake.Engine, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = core.DefaultConfig().TickInterval
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := core.DefaultConfig()
		opts.Width, opts.Height = def.ScreenW, def.ScreenH
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = config.AppPath("screenshots")
	}

	var pilotID string
	if opts.Pilot != nil {
		pilotID = opts.Pilot.ID()
		opts.Pilot.Reset(e.Seed())
	}

	h := help.New()
	h.Width = opts.Width

	return Model{
		engine:        e,
		ctrl:          input.NewController(e),
		journal:       replay.NewJournal(e, pilotID),
		store:         opts.Store,
		pilot:         opts.Pilot,
		logger:        opts.Logger,
		screen:        core.NewScreen(opts.Width, opts.Height-1),
		keys:          DefaultKeyMap(),
		help:          h,
		interval:      opts.Interval,
		screenshotDir: opts.ScreenshotDir,
		ticking:       e.Status() == snake.StatusRunning,
	}
}

// Init starts the tick chain.
func (m Model) Init() tea.Cmd {
	if !m.ticking {
		return nil
	}
	return tickCmd(m.interval, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.finishRun(replay.EndQuit)
		m.quitting = true
		return m, tea.Quit

	case core.ActionRestart:
		m.finishRun(replay.EndRestart)
		m.ctrl.Handle(a)
		m.journal.Begin()
		if m.pilot != nil {
			m.pilot.Reset(m.engine.Seed())
		}
		m.flash = ""
		m.logger.Debug("restart", "seed", m.engine.Seed())
		return m, m.rearm()

	default:
		m.journal.Record(a)
		m.ctrl.Handle(a)
		return m, m.reconcile()
	}
}

// reconcile keeps exactly one tick chain alive while the game is running
// and none otherwise.
func (m *Model) reconcile() tea.Cmd {
	if m.engine.Status() != snake.StatusRunning {
		if m.ticking {
			m.gen++ // Drop the in-flight tick
			m.ticking = false
		}
		return nil
	}
	if m.ticking {
		return nil
	}
	return m.rearm()
}

// rearm starts a fresh tick chain, invalidating any in-flight tick.
func (m *Model) rearm() tea.Cmd {
	m.gen++
	m.ticking = true
	return tickCmd(m.interval, m.gen)
}

// handleTick processes one simulation tick.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || !m.ticking {
		return m, nil
	}

	if m.pilot != nil && m.engine.Status() == snake.StatusRunning {
		if d, ok := m.pilot.Next(m.engine.Snapshot()); ok {
			a := input.ActionFor(d)
			m.journal.Record(a)
			m.ctrl.Handle(a)
		}
	}

	outcome := m.engine.Step()
	switch {
	case outcome == snake.OutcomeIdle:
		m.ticking = false
		return m, nil
	case outcome.Terminal():
		m.ticking = false
		m.logger.Info("game over", "reason", outcome, "score", m.engine.Snapshot().Score)
		m.finishRun("")
		return m, nil
	}

	return m, tickCmd(m.interval, m.gen)
}

// finishRun saves the current run once. Saving is best effort: the game
// goes on if the journal is unavailable.
func (m *Model) finishRun(reason string) {
	run, ok := m.journal.Finish(reason)
	if !ok || m.store == nil {
		return
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Error("saving run", "err", err)
		return
	}
	m.lastRun = id
	m.logger.Info("run saved", "id", id, "score", run.Score, "reason", run.EndReason)
}

// saveScreenshot writes the current board as plain text.
func (m *Model) saveScreenshot() {
	DrawBoard(m.screen, m.engine.Snapshot(), m.hud())

	dir := m.screenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("creating screenshot dir", "err", err)
		return
	}

	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("saving screenshot", "err", err)
		return
	}
	m.flash = "saved " + filename
	m.logger.Info("screenshot saved", "path", path)
}

func (m Model) hud() HUD {
	hud := HUD{Flash: m.flash}
	if m.pilot != nil {
		hud.Pilot = m.pilot.Title()
	}
	return hud
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawBoard(m.screen, m.engine.Snapshot(), m.hud())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// LastRunID returns the ID of the most recently saved run, if any.
func (m Model) LastRunID() string {
	return m.lastRun
}

// Ticking reports whether a tick chain is active.
func (m Model) Ticking() bool {
	return m.ticking
}

// Run starts the Bubble Tea program for the engine and blocks until it exits.
func Run(e *snake.Engine, opts Options) (Model, error) {
	p := tea.NewProgram(NewModel(e, opts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Model{}, nil
	}
	return m, nil
}
