//go:build !tinygo

package hal

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tuiFrameInterval = 50 * time.Millisecond
	// Terminals report no key release; a press is held this long and
	// extended by the terminal's own key repeat.
	tuiHold = 120 * time.Millisecond
)

type tuiKeyMap struct {
	Quit    key.Binding
	Buttons [ButtonCount]key.Binding
}

func newTUIKeyMap() tuiKeyMap {
	return tuiKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Buttons: [ButtonCount]key.Binding{
			ButtonMenu: key.NewBinding(
				key.WithKeys("m", "f1"),
				key.WithHelp("m", "menu"),
			),
			ButtonPrev: key.NewBinding(
				key.WithKeys("up", "left", "k"),
				key.WithHelp("↑/k", "rewind"),
			),
			ButtonConfirm: key.NewBinding(
				key.WithKeys("enter", " ", "o"),
				key.WithHelp("enter", "play"),
			),
			ButtonNext: key.NewBinding(
				key.WithKeys("down", "right", "j"),
				key.WithHelp("↓/j", "ff"),
			),
			ButtonCancel: key.NewBinding(
				key.WithKeys("esc", "backspace", "x"),
				key.WithHelp("esc", "record"),
			),
		},
	}
}

func (k tuiKeyMap) help() string {
	parts := make([]string, 0, ButtonCount+1)
	for _, b := range k.Buttons {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	h := k.Quit.Help()
	parts = append(parts, h.Key+": "+h.Desc)
	return strings.Join(parts, " • ")
}

type tuiFrameMsg struct{}

type tuiReleaseMsg struct {
	button int
	gen    int
}

type tuiDoneMsg struct{ err error }

type tuiModel struct {
	h     *Host
	keys  tuiKeyMap
	done  chan error
	gen   [ButtonCount]int
	frame []bool
	err   error
}

// RunTUI renders the panel display in the terminal with half-block
// characters and maps keys onto the buttons.
func RunTUI(ctx context.Context, h *Host, run func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	m := &tuiModel{h: h, keys: newTUIKeyMap(), done: done}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return m.err
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.wait())
}

func (m *tuiModel) tick() tea.Cmd {
	return tea.Tick(tuiFrameInterval, func(time.Time) tea.Msg { return tuiFrameMsg{} })
}

func (m *tuiModel) wait() tea.Cmd {
	return func() tea.Msg { return tuiDoneMsg{err: <-m.done} }
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(x, m.keys.Quit) {
			return m, tea.Quit
		}
		for i, b := range m.keys.Buttons {
			if !key.Matches(x, b) {
				continue
			}
			m.gen[i]++
			m.h.SetButton(i, true)
			rel := tuiReleaseMsg{button: i, gen: m.gen[i]}
			return m, tea.Tick(tuiHold, func(time.Time) tea.Msg { return rel })
		}
		return m, nil

	case tuiReleaseMsg:
		if m.gen[x.button] == x.gen {
			m.h.SetButton(x.button, false)
		}
		return m, nil

	case tuiFrameMsg:
		m.frame = m.h.Frame(m.frame)
		return m, m.tick()

	case tuiDoneMsg:
		m.err = x.err
		return m, tea.Quit
	}
	return m, nil
}

var (
	tuiBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	tuiPixels = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	tuiHelp   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m *tuiModel) View() string {
	screen := tuiPixels.Render(renderHalfBlocks(m.frame, HostDisplayWidth, HostDisplayHeight))
	status := "LED ○"
	if m.h.LEDOn() {
		status = "LED ●"
	}
	return tuiBorder.Render(screen) + "\n" + tuiHelp.Render(status+"  "+m.keys.help())
}

// renderHalfBlocks packs two pixel rows into each text line.
func renderHalfBlocks(px []bool, w, h int) string {
	var b strings.Builder
	at := func(x, y int) bool {
		i := y*w + x
		return y < h && i < len(px) && px[i]
	}
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top, bottom := at(x, y), at(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
