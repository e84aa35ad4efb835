package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocksmash/internal/core"
	"github.com/vovakirdan/tui-blocksmash/internal/engine"
	"github.com/vovakirdan/tui-blocksmash/internal/persist"
	"github.com/vovakirdan/tui-blocksmash/internal/registry"
	"github.com/vovakirdan/tui-blocksmash/internal/storage"
)

// autosaveInterval is how many ticks pass between progress snapshots.
const autosaveInterval = 300 // 5 seconds at 60 ticks/second

// progressSource is implemented by games that expose an engine session
// for score metadata and save-slot snapshots.
type progressSource interface {
	Session() *engine.Session
}

// Model is the Bubble Tea model for running a game standalone.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	writer     *persist.Writer
	saveSlot   string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	tick       uint64
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game. writer
// and saveSlot are optional; when set, progress snapshots are enqueued
// periodically and on exit.
func NewModel(game registry.Game, store *storage.Store, writer *persist.Writer, saveSlot string, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		writer:     writer,
		saveSlot:   saveSlot,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveProgress()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.tick++

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	wasOver := m.gameState.GameOver
	m.gameState = result.State

	// A restart out of game over re-arms the score save.
	if wasOver && !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	// Periodic autosave while a game is live.
	if !m.gameState.GameOver && m.tick%autosaveInterval == 0 {
		m.saveProgress()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished game, best effort, and clears the
// autosave slot so a dead game is not offered for resume.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	mode, level := "", 1
	if src, ok := m.game.(progressSource); ok {
		mode = string(src.Session().Mode())
		level = src.Session().Level()
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(m.game.ID(), mode, m.gameState.Score, level)
	if m.saveSlot != "" {
		//nolint:errcheck // Best-effort cleanup
		m.store.DeleteSlot(m.saveSlot)
	}
}

// saveProgress enqueues a snapshot of the live game.
func (m *Model) saveProgress() {
	if m.writer == nil || m.saveSlot == "" || m.gameState.GameOver {
		return
	}
	src, ok := m.game.(progressSource)
	if !ok {
		return
	}
	m.writer.Enqueue(m.saveSlot, m.game.ID(), src.Session().ExportSnapshot())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".blocksmash", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, writer *persist.Writer, saveSlot string, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, writer, saveSlot, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
