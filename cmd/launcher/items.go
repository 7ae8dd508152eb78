package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kungfusheep/vlist"
)

const (
	classApp vlist.RecyclingClass = iota + 1
	classClip
	classFile
	classHeader
)

// maxClipLines caps the preview lines shown for a clipboard entry.
const maxClipLines = 3

// cell is the terminal handle: a bound content source and a placement.
// Rendering reads it back through View.EachVisible.
type cell struct {
	content   func() []string
	rule      bool
	rect      vlist.Rect
	hidden    bool
	destroyed bool
}

func (c *cell) Place(r vlist.Rect) { c.rect, c.hidden = r, false }
func (c *cell) Hide()              { c.hidden = true }
func (c *cell) Destroy()           { c.content, c.destroyed = nil, true }

func (c *cell) lines() []string {
	if c.content == nil {
		return nil
	}
	return c.content()
}

func bind(h vlist.Handle, content func() []string) {
	if c, ok := h.(*cell); ok {
		c.content = content
	}
}

func unbind(h vlist.Handle) {
	if c, ok := h.(*cell); ok {
		c.content = nil
	}
}

func newRuleCell() vlist.Handle { return &cell{rule: true} }

// appItem is an application tile in the grid section.
type appItem struct {
	name string
	exec string
}

var appMetrics = vlist.StyleMetrics{LineHeight: 1, Lines: 2}

func (a appItem) ID() vlist.Identity            { return vlist.Identity("app:" + a.name) }
func (a appItem) Class() vlist.RecyclingClass   { return classApp }
func (a appItem) Selectable() bool              { return true }
func (a appItem) UniformHeight() bool           { return true }
func (a appItem) CalculateHeight(width int) int { return vlist.DefaultHeight(appMetrics) }
func (a appItem) SearchText() string            { return a.name + " " + a.exec }
func (a appItem) Refresh(h vlist.Handle)        { bind(h, a.lines) }
func (a appItem) Recycle(h vlist.Handle)        { unbind(h) }
func (a appItem) lines() []string               { return []string{"◆ " + a.name, a.exec} }
func (a appItem) String() string                { return a.name }

func (a appItem) CreateHandle() vlist.Handle {
	c := &cell{}
	a.Refresh(c)
	return c
}

// clipItem is a clipboard history entry. Its height follows the number of
// preview lines, so it is measured per item.
type clipItem struct {
	id   vlist.Identity
	text string
	age  string
}

func (c clipItem) ID() vlist.Identity          { return c.id }
func (c clipItem) Class() vlist.RecyclingClass { return classClip }
func (c clipItem) Selectable() bool            { return true }
func (c clipItem) SearchText() string          { return c.text }
func (c clipItem) Recycle(h vlist.Handle)      { unbind(h) }
func (c clipItem) String() string              { return c.preview()[0] }

func (c clipItem) CalculateHeight(width int) int {
	return vlist.DefaultHeight(vlist.StyleMetrics{LineHeight: 1, Lines: len(c.preview()) + 1})
}

func (c clipItem) CreateHandle() vlist.Handle {
	h := &cell{}
	c.Refresh(h)
	return h
}

func (c clipItem) Refresh(h vlist.Handle) { bind(h, c.lines) }

func (c clipItem) preview() []string {
	lines := strings.Split(strings.TrimRight(c.text, "\n"), "\n")
	if len(lines) > maxClipLines {
		lines = append(lines[:maxClipLines:maxClipLines], "…")
	}
	return lines
}

func (c clipItem) lines() []string {
	return append(c.preview(), "copied "+c.age)
}

// fileItem is a one-line recent file row.
type fileItem struct {
	path string
}

func (f fileItem) ID() vlist.Identity            { return vlist.Identity("file:" + f.path) }
func (f fileItem) Class() vlist.RecyclingClass   { return classFile }
func (f fileItem) Selectable() bool              { return true }
func (f fileItem) UniformHeight() bool           { return true }
func (f fileItem) CalculateHeight(width int) int { return 1 }
func (f fileItem) SearchText() string            { return f.path }
func (f fileItem) Refresh(h vlist.Handle)        { bind(h, f.lines) }
func (f fileItem) Recycle(h vlist.Handle)        { unbind(h) }
func (f fileItem) String() string                { return f.path }

func (f fileItem) CreateHandle() vlist.Handle {
	c := &cell{}
	f.Refresh(c)
	return c
}

func (f fileItem) lines() []string {
	return []string{filepath.Base(f.path) + "  " + filepath.Dir(f.path)}
}

// headerItem titles a section and shows how many entries it holds. Header
// handles are not pooled; there are only a few.
type headerItem struct {
	title string
	count int
}

func newHeader(title string) *headerItem { return &headerItem{title: title} }

func (h *headerItem) ID() vlist.Identity            { return vlist.Identity("header:" + h.title) }
func (h *headerItem) Class() vlist.RecyclingClass   { return classHeader }
func (h *headerItem) Selectable() bool              { return false }
func (h *headerItem) UniformHeight() bool           { return true }
func (h *headerItem) CalculateHeight(width int) int { return 1 }
func (h *headerItem) SetCount(n int)                { h.count = n }
func (h *headerItem) Refresh(hd vlist.Handle)       { bind(hd, h.lines) }

func (h *headerItem) CreateHandle() vlist.Handle {
	c := &cell{}
	h.Refresh(c)
	return c
}

func (h *headerItem) lines() []string {
	return []string{fmt.Sprintf("%s (%d)", strings.ToUpper(h.title), h.count)}
}

// label is what the status line shows for an item.
func label(it vlist.Item) string {
	if s, ok := it.(fmt.Stringer); ok {
		return s.String()
	}
	return string(it.ID())
}
