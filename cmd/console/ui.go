package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"adventure-server/pkg/game"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config   *ConsoleConfig
	client   *http.Client
	game     *game.Game
	viewport viewport.Model
	spinner  spinner.Model
	ready    bool
	width    int
	height   int
	loading  bool
	err      error
	status   string
}

type moveResultMsg struct {
	result *moveResult
	err    error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	recapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")). // dark grey
			Italic(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	milestoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, g *game.Game) ConsoleUI {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 24)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		config:   cfg,
		client:   client,
		game:     g,
		viewport: vp,
		spinner:  sp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ConsoleUI) makeMove(choiceNumber int) tea.Cmd {
	return func() tea.Msg {
		result, err := moveGame(m.client, m.config.APIBaseURL, m.game.ID, choiceNumber)
		return moveResultMsg{result: result, err: err}
	}
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		m.ready = true
		m.viewport.SetContent(m.renderGame())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "1", "2", "3":
			if m.loading {
				break
			}
			choice := int(msg.String()[0] - '0')
			if choice > len(m.game.CurrentStep.Options) {
				break
			}
			m.loading = true
			m.err = nil
			m.status = ""
			cmds = append(cmds, m.makeMove(choice), m.spinner.Tick)

		case "c":
			if err := clipboard.WriteAll(m.game.ID); err != nil {
				m.err = fmt.Errorf("failed to copy game id: %w", err)
			} else {
				m.status = "Game ID copied to clipboard"
			}
			m.viewport.SetContent(m.renderGame())
		}

	case moveResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.game.Previously = msg.result.Previously
			m.game.CurrentStep = msg.result.CurrentStep
			m.game.NextSteps = msg.result.NextSteps
		}
		m.viewport.SetContent(m.renderGame())
		m.viewport.GotoTop()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m ConsoleUI) renderGame() string {
	width := m.width
	if width < 20 {
		width = 80
	}
	wrap := width - 4

	var b strings.Builder
	b.WriteString(titleStyle.Render("ADVENTURE SERVER") + "  " + helpStyle.Render("game "+m.game.ID) + "\n\n")

	b.WriteString(recapStyle.Render(wordwrap.String("Previously: "+m.game.Previously, wrap)) + "\n\n")

	desc := wordwrap.String(m.game.CurrentStep.Description, wrap)
	if m.game.CurrentStep.Action == game.ActionMilestone {
		b.WriteString(milestoneStyle.Render("◆ MILESTONE") + "\n")
	}
	b.WriteString(narratorStyle.Render(desc) + "\n\n")

	for i, opt := range m.game.CurrentStep.Options {
		b.WriteString(optionStyle.Render(fmt.Sprintf("  %d. %s", i+1, wordwrap.String(opt, wrap-6))) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(wordwrap.String(m.err.Error(), wrap)) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + helpStyle.Render(m.status) + "\n")
	}

	return b.String()
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}

	footer := helpStyle.Render("1-3: choose  c: copy game id  q: quit")
	if m.loading {
		footer = m.spinner.View() + " The story unfolds..."
	}

	return m.viewport.View() + "\n" + footer
}
