package main

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kungfusheep/vlist"
	"github.com/mattn/go-runewidth"
)

type styles struct {
	header   lipgloss.Style
	primary  lipgloss.Style
	dim      lipgloss.Style
	selected lipgloss.Style
	rule     lipgloss.Style
	status   lipgloss.Style
	prompt   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		primary:  lipgloss.NewStyle(),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		selected: lipgloss.NewStyle().Reverse(true),
		rule:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	}
}

// segment is a styled run on one screen line.
type segment struct {
	x, w int
	text string
}

// fit truncates or pads s to exactly w terminal cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, w, "…")
	return runewidth.FillRight(s, w)
}

// renderBody draws the realized handles of the visible window into
// height lines of the given width.
func renderBody(v *vlist.View, width, height int, st styles) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := make([][]segment, height)
	scroll := v.ScrollOffset()
	_, sel := v.Selected()

	v.EachVisible(func(i int, e vlist.LayoutEntry, h vlist.Handle) {
		c, ok := h.(*cell)
		if !ok || c.hidden {
			return
		}
		r := c.rect
		lines := c.lines()
		for li := 0; li < r.H; li++ {
			y := r.Y + li - scroll
			if y < 0 || y >= height {
				continue
			}
			var text string
			switch {
			case c.rule:
				text = st.rule.Render(strings.Repeat("─", r.W))
			case li < len(lines):
				style := st.primary
				switch {
				case i == sel:
					style = st.selected
				case e.Kind == vlist.KindHeader:
					style = st.header
				case li > 0:
					style = st.dim
				}
				text = style.Render(fit(lines[li], r.W))
			case i == sel:
				text = st.selected.Render(fit("", r.W))
			default:
				continue
			}
			rows[y] = append(rows[y], segment{x: r.X, w: r.W, text: text})
		}
	})

	var b strings.Builder
	for y, segs := range rows {
		sort.Slice(segs, func(a, b int) bool { return segs[a].x < segs[b].x })
		col := 0
		for _, s := range segs {
			if s.x < col || s.x+s.w > width {
				continue
			}
			b.WriteString(strings.Repeat(" ", s.x-col))
			b.WriteString(s.text)
			col = s.x + s.w
		}
		b.WriteString(strings.Repeat(" ", width-col))
		if y < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
