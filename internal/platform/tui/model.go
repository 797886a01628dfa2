package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// phase is where the session is between engine games.
type phase int

const (
	phasePlaying phase = iota
	phaseNaming        // Game over, asking for a name for the score table
	phaseDone          // Score saved or skipped; waiting for restart or quit
)

// hud collects engine notifications. The engine calls it from inside
// Update, so it needs no locking.
type hud struct {
	next       tetris.Tetromino
	hasNext    bool
	gameOver   bool
	finalScore int
	startedAt  time.Time
}

func (h *hud) OnGameOver(finalScore int) {
	h.gameOver = true
	h.finalScore = finalScore
}

func (h *hud) OnScoreChange(int) {}

func (h *hud) OnNextTetromino(next tetris.Tetromino) {
	h.next = next
	h.hasNext = true
}

func (h *hud) reset() {
	*h = hud{startedAt: time.Now()}
}

var (
	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Options configures a game session.
type Options struct {
	Game    config.TetrisConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables the score table
	Player  string         // Default name offered after game over
	Logger  *log.Logger
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	engine *tetris.Engine
	timer  *teaTimer
	hud    *hud
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger

	keys KeyMap
	help help.Model
	name textinput.Model

	player   string
	best     int
	own      int
	status   string
	phase    phase
	width    int
	height   int
	quitting bool
}

// NewModel creates a session with a fresh, idle engine. Init starts the game.
func NewModel(opts Options) Model {
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	timer := &teaTimer{}
	engOpts := tetris.OptionsFromConfig(opts.Game)
	engOpts.Seed = seed
	engOpts.Timer = timer
	engOpts.Logger = logger
	engine := tetris.New(engOpts)

	h := &hud{}
	engine.Subscribe(h)

	w, ht := screenSize(engine.Rows(), engine.Cols())

	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = storage.DefaultPlayer
	ti.CharLimit = 24
	ti.Width = 24

	m := Model{
		engine: engine,
		timer:  timer,
		hud:    h,
		screen: core.NewScreen(w, ht),
		store:  opts.Store,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		name:   ti,
		player: storage.NormalizeName(opts.Player),
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
	m.loadScores()
	return m
}

// Init starts the first game and its fall timer.
func (m Model) Init() tea.Cmd {
	m.hud.reset()
	m.engine.Start()
	return m.timer.cmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FallMsg:
		m.engine.Tick(msg.Token)
		return m.afterEngine()

	case tea.KeyMsg:
		if m.phase == phaseNaming {
			return m.updateName(msg)
		}
		return m.handleKey(msg)
	}

	if m.phase == phaseNaming {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input while playing or after a finished game.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keys.Restart) && m.phase == phaseDone {
		m.restart()
		return m.afterEngine()
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone, core.ActionRestart:
		return m, nil
	default:
		m.engine.Apply(action)
	}
	return m.afterEngine()
}

// afterEngine issues any fall tick the engine requested and moves to the
// name prompt once the game has ended.
func (m Model) afterEngine() (tea.Model, tea.Cmd) {
	cmd := m.timer.cmd()
	if !m.hud.gameOver || m.phase != phasePlaying {
		return m, cmd
	}

	if m.store == nil {
		m.phase = phaseDone
		m.status = fmt.Sprintf("Final score %d", m.hud.finalScore)
		return m, cmd
	}

	m.phase = phaseNaming
	m.name.SetValue(m.player)
	m.name.CursorEnd()
	return m, tea.Batch(cmd, m.name.Focus())
}

// updateName handles the game-over name prompt.
func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.saveScore(m.name.Value())
		m.name.Blur()
		m.phase = phaseDone
		return m, nil
	case tea.KeyEsc:
		m.name.Blur()
		m.phase = phaseDone
		m.status = "Score not saved"
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// saveScore writes the finished game to the score table.
func (m *Model) saveScore(name string) {
	name = storage.NormalizeName(name)
	m.player = name

	res := storage.Result{
		Name:     name,
		Score:    m.hud.finalScore,
		Lines:    m.engine.Lines(),
		Duration: time.Since(m.hud.startedAt),
	}
	if _, err := m.store.SaveResult(res); err != nil {
		m.logger.Error("cannot save score", "player", name, "error", err)
		m.status = "Could not save score"
		return
	}

	m.logger.Info("score saved", "player", name, "score", res.Score, "lines", res.Lines)
	m.status = fmt.Sprintf("Saved %d for %s", res.Score, name)
	m.loadScores()
}

// restart begins a new game after the previous one was recorded.
func (m *Model) restart() {
	m.hud.reset()
	m.phase = phasePlaying
	m.status = ""
	m.engine.Start()
}

// loadScores reads the table's best score and the player's own entry.
func (m *Model) loadScores() {
	m.best, m.own = 0, 0
	if m.store == nil {
		return
	}

	best, err := m.store.HighScore()
	if err != nil {
		m.logger.Warn("cannot read high score", "error", err)
		return
	}
	m.best = best

	entry, err := m.store.PlayerScore(m.player)
	if err != nil {
		m.logger.Warn("cannot read player score", "player", m.player, "error", err)
		return
	}
	if entry != nil {
		m.own = entry.Score
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	m.draw()
	path := filepath.Join(dir, fmt.Sprintf("tetris_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

func (m Model) draw() {
	drawGame(m.screen, m.engine.Snapshot(), panel{
		next:    m.hud.next,
		hasNext: m.hud.hasNext,
		player:  m.player,
		best:    m.best,
		own:     m.own,
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	switch m.phase {
	case phaseNaming:
		b.WriteString(promptStyle.Render(fmt.Sprintf(
			"Final score %d\n%s\n%s",
			m.hud.finalScore,
			m.name.View(),
			helpStyle.Render("enter save • esc skip"),
		)))
	case phaseDone:
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("r new game • q quit"))
	default:
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}

	out := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, out)
	}
	return out
}

// Finished reports whether the last game is over and its score handled.
func (m Model) Finished() bool {
	return m.phase == phaseDone
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
