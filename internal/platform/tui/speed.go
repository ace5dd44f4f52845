package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// SpeedModel lets the player pick a speed preset before the game starts.
// The speed is fixed for the rest of the session.
type SpeedModel struct {
	presets  []config.SpeedPreset
	cursor   int
	width    int
	height   int
	keys     speedKeys
	selected config.SpeedPreset
	quitting bool
}

type speedKeys struct {
	Up, Down, Select, Quit key.Binding
}

// NewSpeedModel creates a speed picker with the cursor on the normal preset.
func NewSpeedModel(width, height int) SpeedModel {
	m := SpeedModel{
		presets: config.Presets(),
		width:   width,
		height:  height,
		keys: speedKeys{
			Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
			Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
			Select: key.NewBinding(key.WithKeys("enter", " ")),
			Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
		},
	}
	for i, p := range m.presets {
		if p == config.SpeedNormal {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m SpeedModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SpeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.selected = m.presets[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the preset list.
func (m SpeedModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("S N A K E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select speed:", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		ms, _ := config.IntervalForPreset(p)
		line := fmt.Sprintf("%s%-7s %4d ms/tick", cursor, p, ms)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or "" while still choosing.
func (m SpeedModel) Selected() config.SpeedPreset {
	return m.selected
}

// RunSpeedSelector shows the speed picker. It returns "" if the player quit.
func RunSpeedSelector(cfg core.RuntimeConfig) (config.SpeedPreset, error) {
	p := tea.NewProgram(NewSpeedModel(cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(SpeedModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
