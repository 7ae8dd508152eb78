package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kungfusheep/vlist"
)

// chrome is the number of lines outside the result list: search box and
// status line.
const chrome = 2

// wheelStep is how far one mouse wheel notch scrolls.
const wheelStep = 3

type frameMsg time.Time

func frame(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = vlist.DefaultFrameInterval
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// ui is the interactive launcher. It forwards keys and mouse input to the
// engine and paints the realized handles.
type ui struct {
	l      *launcher
	view   *vlist.View
	input  textinput.Model
	query  *vlist.QueryFilter
	styles styles

	width, height int
	status        string
}

func newUI(l *launcher) *ui {
	in := textinput.New()
	in.Placeholder = "Search apps, clipboard and files"
	in.Prompt = "› "
	in.Focus()

	m := &ui{
		l:      l,
		view:   l.newView(),
		input:  in,
		query:  vlist.NewQueryFilter(nil),
		styles: defaultStyles(),
	}
	m.input.PromptStyle = m.styles.prompt

	m.view.
		OnActivated(func(it vlist.Item) { m.status = "launch " + label(it) }).
		OnRightClicked(func(it vlist.Item) { m.status = "actions for " + label(it) }).
		OnSelectionChanged(func(next, prev vlist.Item) {
			if next != nil {
				m.status = label(next)
			}
		})
	m.view.SetModel(l.model())
	return m
}

func (m *ui) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, frame(m.l.cfg.Frame))
}

func (m *ui) bodyHeight() int { return max(m.height-chrome, 0) }

func (m *ui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-4, 1)
		m.view.Resize(m.width, m.bodyHeight())
		if m.view.SelectedIndex() < 0 {
			m.view.SelectFirst()
		}
		return m, nil

	case frameMsg:
		m.view.Flush()
		return m, frame(m.l.cfg.Frame)

	case tea.MouseMsg:
		m.mouse(msg)
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.key(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.view.FilterQuery(m.query, m.input.Value())
	return m, cmd
}

// key handles navigation keys. Anything else goes to the search box.
func (m *ui) key(msg tea.KeyMsg) (tea.Cmd, bool) {
	v := m.view
	switch msg.String() {
	case "ctrl+c":
		v.Close()
		return tea.Quit, true
	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			v.FilterQuery(m.query, "")
			return nil, true
		}
		v.Close()
		return tea.Quit, true
	case "up", "ctrl+p":
		v.SelectUp()
	case "down", "ctrl+n":
		v.SelectDown()
	case "tab":
		v.SelectRight()
	case "shift+tab":
		v.SelectLeft()
	case "left":
		if m.input.Value() != "" {
			return nil, false
		}
		v.SelectLeft()
	case "right":
		if m.input.Value() != "" {
			return nil, false
		}
		v.SelectRight()
	case "pgdown":
		v.ScrollBy(m.bodyHeight())
	case "pgup":
		v.ScrollBy(-m.bodyHeight())
	case "enter":
		v.Activate()
	case "ctrl+r":
		if err := m.l.reload(); err != nil {
			m.status = err.Error()
			return nil, true
		}
		v.SetModel(m.l.model())
		m.status = "reloaded"
	default:
		return nil, false
	}
	return nil, true
}

func (m *ui) mouse(msg tea.MouseMsg) {
	v := m.view
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.ScrollBy(-wheelStep)
		return
	case tea.MouseButtonWheelDown:
		v.ScrollBy(wheelStep)
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}
	// the search box occupies the first line
	y := msg.Y - 1
	if y < 0 || y >= m.bodyHeight() {
		return
	}
	i := v.HitTest(msg.X, y+v.ScrollOffset())
	if i < 0 {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		v.SetSelected(i, vlist.ScrollRelative)
	case tea.MouseButtonRight:
		v.RightClick(i)
	}
}

func (m *ui) View() string {
	if m.width == 0 {
		return ""
	}
	body := renderBody(m.view, m.width, m.bodyHeight(), m.styles)
	return m.input.View() + "\n" + body + "\n" + m.statusLine()
}

func (m *ui) statusLine() string {
	live := 0
	for _, c := range []vlist.RecyclingClass{classApp, classClip, classFile, classHeader, vlist.ClassDivider} {
		live += m.view.Stats(c).Live()
	}
	s := fmt.Sprintf("%d results · %d/%d handles · %s",
		len(m.view.Items()), m.view.ActiveHandles(), live, m.status)
	return m.styles.status.Render(fit(s, m.width))
}
