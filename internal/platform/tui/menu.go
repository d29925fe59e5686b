package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

// MenuChoice is what the user picked in the menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

type menuItem int

const (
	itemPlay menuItem = iota
	itemDifficulty
	itemScores
	itemQuit
)

var menuItems = []menuItem{itemPlay, itemDifficulty, itemScores, itemQuit}

// difficulties is the order the difficulty item cycles through.
var difficulties = []config.DifficultyPreset{
	config.DifficultyNormal,
	config.DifficultyEasy,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	cursor     int
	difficulty int
	width      int
	height     int
	title      string
	player     string
	best       int
	top        int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	styles     menuStyles
	choice     MenuChoice
}

type menuStyles struct {
	title    lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	stat     lipgloss.Style
	help     lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	return menuStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		item:     r.NewStyle().Padding(0, 2),
		selected: r.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		stat:     r.NewStyle().Foreground(lipgloss.Color("245")),
		help:     r.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}

// NewMenuModel creates the menu for gameID. Best scores are read from
// store when it is not nil.
func NewMenuModel(store *storage.Store, gameID string, cfg core.RuntimeConfig, sr *ScreenRenderer) MenuModel {
	if sr == nil {
		sr = NewScreenRenderer(nil)
	}

	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		title:     spaced(gameID),
		player:    cfg.Player,
		config:    cfg,
		keyMapper: DefaultKeyMapper(),
		styles:    newMenuStyles(sr.Lipgloss()),
	}

	if p := config.ParsePreset(cfg.Difficulty); p != "" {
		for i, d := range difficulties {
			if d == p {
				m.difficulty = i
			}
		}
	}

	if store != nil {
		// Missing stats show as zero
		m.best, _ = store.PlayerBest(gameID, cfg.Player)
		m.top, _ = store.HighScore(gameID)
	}

	return m
}

// spaced renders "dodge" as "D O D G E".
func spaced(s string) string {
	letters := strings.Split(strings.ToUpper(s), "")
	return strings.Join(letters, " ")
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = ChoiceQuit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if menuItems[m.cursor] == itemDifficulty {
			m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)
		}

	case MenuActionRight:
		if menuItems[m.cursor] == itemDifficulty {
			m.difficulty = (m.difficulty + 1) % len(difficulties)
		}

	case MenuActionSelect:
		switch menuItems[m.cursor] {
		case itemPlay:
			m.choice = ChoicePlay
		case itemDifficulty:
			m.difficulty = (m.difficulty + 1) % len(difficulties)
		case itemScores:
			m.choice = ChoiceScores
		case itemQuit:
			m.choice = ChoiceQuit
		}

	case MenuActionScoreboard:
		m.choice = ChoiceScores
	}

	return m, nil
}

func (m MenuModel) label(it menuItem) string {
	switch it {
	case itemPlay:
		return "Play"
	case itemDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", difficulties[m.difficulty])
	case itemScores:
		return "High Scores"
	default:
		return "Quit"
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	lines := []string{m.styles.title.Render(m.title)}

	stats := fmt.Sprintf("Top: %d", m.top)
	if m.player != "" {
		stats = fmt.Sprintf("%s  Best: %d  %s", m.player, m.best, stats)
	}
	lines = append(lines, m.styles.stat.Render(stats), "")

	for i, it := range menuItems {
		style := m.styles.item
		if i == m.cursor {
			style = m.styles.selected
		}
		lines = append(lines, style.Render(m.label(it)))
	}

	lines = append(lines, m.styles.help.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"))

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

// Choice returns what the user picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the selected preset name.
func (m MenuModel) Difficulty() string {
	return string(difficulties[m.difficulty])
}

// Config returns the runtime config with the current size and difficulty.
func (m MenuModel) Config() core.RuntimeConfig {
	cfg := m.config
	cfg.Difficulty = m.Difficulty()
	return cfg
}

// Reset clears the choice so the menu can be shown again.
func (m *MenuModel) Reset() {
	m.choice = ChoiceNone
}
