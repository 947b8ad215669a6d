package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/story-collection/pkg/content"
	"github.com/jwebster45206/story-collection/pkg/narrative"
	"github.com/jwebster45206/story-collection/pkg/view"
)

const (
	// Two runes per frame at 60fps.
	revealInterval = time.Second / 60
	revealStep     = 2

	meterWidth    = 30
	requestTimeout = 30 * time.Second
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	driver Driver
	lib    *content.Library
	copyFn func(string) error

	session narrative.Session
	view    view.View
	body    typewriter
	// revealGen drops ticks from a screen that is no longer shown.
	revealGen int

	viewport viewport.Model
	help     help.Model
	keys     keyMap

	ready         bool
	busy          bool
	width         int
	height        int
	status        string
	err           error
	showQuitModal bool
}

type keyMap struct {
	Choose key.Binding
	Back   key.Binding
	Skip   key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Back, k.Skip, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "choose")),
		Back:   key.NewBinding(key.WithKeys(view.BackKey, "esc"), key.WithHelp("b/esc", "menu")),
		Skip:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "skip text")),
		Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy ending"), key.WithDisabled()),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

type sessionMsg struct {
	session narrative.Session
	err     error
}

type revealTickMsg struct{ gen int }

type copiedMsg struct{ err error }

var themeColors = map[view.Theme]lipgloss.Color{
	view.ThemeMenu:      lipgloss.Color("205"), // pink
	view.ThemeAetherian: lipgloss.Color("214"), // gold
	view.ThemeChronos:   lipgloss.Color("39"),  // teal
	view.ThemeVoid:      lipgloss.Color("141"), // violet
}

var (
	panelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(3).
			PaddingRight(3)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")). // yellow
			Bold(true)

	optionKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Bold(true)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

func NewConsoleUI(driver Driver, lib *content.Library) ConsoleUI {
	vp := viewport.New(60, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		driver:   driver,
		lib:      lib,
		copyFn:   clipboard.WriteAll,
		viewport: vp,
		help:     help.New(),
		keys:     newKeyMap(),
		busy:     true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.fetchCurrent()
}

func (m ConsoleUI) fetchCurrent() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		s, err := m.driver.Current(ctx)
		return sessionMsg{s, err}
	}
}

func (m ConsoleUI) apply(a narrative.Action) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		s, err := m.driver.Apply(ctx, a)
		return sessionMsg{s, err}
	}
}

func (m ConsoleUI) revealTick() tea.Cmd {
	gen := m.revealGen
	return tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return revealTickMsg{gen: gen}
	})
}

func (m ConsoleUI) copyEnding() tea.Cmd {
	text := endingText(m.view)
	copyFn := m.copyFn
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		m.ready = true
		m.writeContent()
		return m, nil

	case sessionMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		cmd := m.show(msg.session)
		return m, cmd

	case revealTickMsg:
		if msg.gen != m.revealGen || m.body.Done() {
			return m, nil
		}
		more := m.body.Advance(revealStep)
		m.writeContent()
		if more {
			return m, m.revealTick()
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Clipboard unavailable: " + msg.err.Error()
		} else {
			m.status = "Ending copied to clipboard."
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.showQuitModal = true
		return m, nil

	case key.Matches(msg, m.keys.Skip):
		if !m.body.Done() {
			m.body.Skip()
			m.writeContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyEnding()
	}

	if m.busy {
		return m, nil
	}

	var (
		opt view.Option
		ok  bool
	)
	switch {
	case key.Matches(msg, m.keys.Back):
		opt, ok = m.view.Option(view.BackKey)
	case key.Matches(msg, m.keys.Choose):
		opt, ok = m.view.Option(msg.String())
	}
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.busy = true
	m.status = ""
	return m, m.apply(opt.Action)
}

// show switches to s and starts revealing its body text.
func (m *ConsoleUI) show(s narrative.Session) tea.Cmd {
	m.session = s
	m.view = view.Render(s, m.lib)
	m.body = newTypewriter(strings.Join(m.view.Body, "\n"))
	m.revealGen++
	m.keys.Copy.SetEnabled(m.view.IsTerminal())
	m.keys.Back.SetEnabled(s.Screen != narrative.ScreenMainMenu)
	m.resize()
	m.writeContent()
	m.viewport.GotoTop()
	return m.revealTick()
}

func (m *ConsoleUI) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.viewport.Width = max(m.width-6, 20)
	m.viewport.Height = max(m.height-m.footerHeight()-2, 5)
}

func (m ConsoleUI) footerHeight() int {
	return lipgloss.Height(m.renderFooter())
}

func (m *ConsoleUI) writeContent() {
	m.viewport.SetContent(renderPanel(m.view, m.body.Visible(), m.body.Done(), m.viewport.Width))
}

// renderPanel draws everything above the options: title, body, meter and
// result. Meter and result wait for the body reveal to finish.
func renderPanel(v view.View, body string, revealed bool, width int) string {
	accent := lipgloss.NewStyle().Foreground(themeColors[v.Theme]).Bold(true)

	var content strings.Builder
	content.WriteString(accent.Render(v.Title) + "\n")
	if v.Subtitle != "" {
		content.WriteString(subtitleStyle.Render(v.Subtitle) + "\n")
	}
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(width, 1))) + "\n\n")

	if body != "" {
		content.WriteString(wordwrap.String(body, width) + "\n")
	}
	if !revealed {
		return content.String()
	}

	if v.Meter != nil {
		content.WriteString("\n" + renderMeter(*v.Meter, accent) + "\n")
	}
	if len(v.Result) > 0 {
		content.WriteString("\n")
		for _, line := range v.Result {
			content.WriteString(resultStyle.Render(wordwrap.String(line, width)) + "\n")
		}
	}
	return content.String()
}

func renderMeter(mt view.Meter, accent lipgloss.Style) string {
	filled := int(mt.Fraction()*meterWidth + 0.5)
	bar := accent.Render(strings.Repeat("█", filled)) + separatorStyle.Render(strings.Repeat("░", meterWidth-filled))
	return mt.String() + "\n" + bar
}

// endingText is what the copy key puts on the clipboard.
func endingText(v view.View) string {
	lines := []string{v.Title}
	if v.Meter != nil {
		lines = append(lines, v.Meter.String())
	}
	lines = append(lines, v.Body...)
	lines = append(lines, v.Result...)
	return strings.Join(lines, "\n")
}

func (m ConsoleUI) renderFooter() string {
	var footer strings.Builder
	for _, o := range m.view.Options {
		if o.Key == view.BackKey {
			continue
		}
		footer.WriteString(optionKeyStyle.Render("["+o.Key+"]") + " " + o.Label + "\n")
		if o.Description != "" {
			footer.WriteString("    " + descriptionStyle.Render(o.Description) + "\n")
		}
	}
	if back, ok := m.view.Option(view.BackKey); ok {
		footer.WriteString(optionKeyStyle.Render("["+view.BackKey+"]") + " " + back.Label + "\n")
	}
	if m.view.Footer != "" {
		footer.WriteString("\n" + promptStyle.Render(m.view.Footer) + "\n")
	}

	switch {
	case m.err != nil:
		footer.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.status != "":
		footer.WriteString(statusStyle.Render(m.status) + "\n")
	}

	footer.WriteString("\n" + m.help.View(m.keys))
	return footer.String()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "enter", "y", "Y":
			return m, tea.Quit
		case "esc", "n", "N":
			m.showQuitModal = false
		}
	}
	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave the collection?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.view.Title == "" {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("\n  Failed to load game: %v\n\n  Press Ctrl+C to exit", m.err))
		}
		return "\n  Loading..."
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.renderFooter(),
	))
}
