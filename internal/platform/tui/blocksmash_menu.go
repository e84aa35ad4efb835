package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocksmash/internal/config"
	"github.com/vovakirdan/tui-blocksmash/internal/core"
	"github.com/vovakirdan/tui-blocksmash/internal/storage"
)

// ModeSelection holds the user's selection from the mode menu.
type ModeSelection struct {
	GameID     string
	Preset     config.DifficultyPreset
	ResumeSlot string // empty for a fresh game
}

// presetOrder cycles through with the difficulty option.
var presetOrder = []config.DifficultyPreset{
	config.DifficultyNormal,
	config.DifficultyEasy,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// ModeModel lets users choose mode, difficulty and a saved game.
type ModeModel struct {
	cursor       int
	slotCursor   int
	inSlotSelect bool
	presetIndex  int
	slots        []storage.SlotInfo
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    ModeSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewModeModel creates a new mode selection model. Saved slots come
// from storage; a nil store hides the resume option.
func NewModeModel(store *storage.Store, width, height int) ModeModel {
	var slots []storage.SlotInfo
	if store != nil {
		// Best effort; an unreadable slot table just hides resume.
		slots, _ = store.ListSlots()
	}

	return ModeModel{
		cursor:    0,
		slots:     slots,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inSlotSelect {
		return m.handleSlotSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

// optionCount is the number of top-level menu entries: classic, timed,
// difficulty, and resume when saves exist.
func (m ModeModel) optionCount() int {
	if len(m.slots) > 0 {
		return 4
	}
	return 3
}

func (m ModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < m.optionCount()-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0: // Classic
			m.choosing = false
			m.selection = ModeSelection{GameID: "blocksmash", Preset: m.preset()}
			return m, tea.Quit
		case 1: // Timed
			m.choosing = false
			m.selection = ModeSelection{GameID: "blocksmash_timed", Preset: m.preset()}
			return m, tea.Quit
		case 2: // Difficulty cycles in place
			m.presetIndex = (m.presetIndex + 1) % len(presetOrder)
		case 3: // Resume
			m.inSlotSelect = true
			m.slotCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, nil
	}

	return m, nil
}

func (m ModeModel) handleSlotSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.slotCursor > 0 {
			m.slotCursor--
		}
	case MenuActionDown:
		if m.slotCursor < len(m.slots)-1 {
			m.slotCursor++
		}
	case MenuActionSelect:
		slot := m.slots[m.slotCursor]
		m.choosing = false
		m.selection = ModeSelection{
			GameID:     slot.GameID,
			Preset:     m.preset(),
			ResumeSlot: slot.Slot,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inSlotSelect = false
	}

	return m, nil
}

func (m ModeModel) preset() config.DifficultyPreset {
	return presetOrder[m.presetIndex]
}

// View renders the mode/slot selection.
func (m ModeModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inSlotSelect {
		return m.viewSlotSelect()
	}
	return m.viewModeSelect()
}

func (m ModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B L O C K   S M A S H", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	options := []string{
		"Classic",
		"Timed",
		fmt.Sprintf("Difficulty: %s", m.preset()),
	}
	if len(m.slots) > 0 {
		options = append(options, "Resume saved game...")
	}

	for i, option := range options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, option), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m ModeModel) viewSlotSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("RESUME GAME", m.width))
	b.WriteString("\n\n")

	for i, slot := range m.slots {
		cursor := "  "
		if i == m.slotCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-8s  level %d, %d points  (%s)",
			cursor, slot.Slot, slot.Level, slot.Score, slot.UpdatedAt.Format("Jan 02 15:04"))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m ModeModel) Selected() *ModeSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ModeModel) WantsBack() bool {
	return m.back
}

// RunModeSelector runs the mode selection and returns the selection.
func RunModeSelector(store *storage.Store, cfg core.RuntimeConfig) (*ModeSelection, core.RuntimeConfig, error) {
	model := NewModeModel(store, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(ModeModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
