package vlist

import "fmt"

// tally counts lifecycle calls made on test items.
type tally struct {
	created, refreshed, recycled int
	attached, detached, measured int
}

type testHandle struct {
	owner     Identity
	rect      Rect
	hidden    bool
	destroyed bool
}

func (h *testHandle) Place(r Rect) { h.rect = r; h.hidden = false }
func (h *testHandle) Hide()        { h.hidden = true }
func (h *testHandle) Destroy()     { h.destroyed = true }

// testRow is a non-recyclable row.
type testRow struct {
	id         Identity
	class      RecyclingClass
	height     int
	selectable bool
	uniform    bool
	text       string
	t          *tally
}

func (r testRow) ID() Identity          { return r.id }
func (r testRow) Class() RecyclingClass { return r.class }
func (r testRow) Selectable() bool      { return r.selectable }
func (r testRow) UniformHeight() bool   { return r.uniform }

func (r testRow) CalculateHeight(width int) int {
	if r.t != nil {
		r.t.measured++
	}
	return r.height
}

func (r testRow) SearchText() string {
	if r.text != "" {
		return r.text
	}
	return string(r.id)
}

func (r testRow) CreateHandle() Handle {
	if r.t != nil {
		r.t.created++
	}
	return &testHandle{owner: r.id}
}

func (r testRow) Refresh(h Handle) {
	if r.t != nil {
		r.t.refreshed++
	}
	h.(*testHandle).owner = r.id
}

func (r testRow) Attached(h Handle) {
	if r.t != nil {
		r.t.attached++
	}
}

func (r testRow) Detached(h Handle) {
	if r.t != nil {
		r.t.detached++
	}
}

// recRow is a recyclable row.
type recRow struct{ testRow }

func (r recRow) Recycle(h Handle) {
	if r.t != nil {
		r.t.recycled++
	}
	h.(*testHandle).owner = ""
}

// wideRow asks for the full content width inside grids.
type wideRow struct{ recRow }

func (r wideRow) CalculateWidth(columnWidth, available int) int { return available }

// testHeader is a section header that records its count.
type testHeader struct {
	testRow
	count int
}

func (h *testHeader) SetCount(n int) { h.count = n }

func newRow(t *tally, id string, height int) recRow {
	return recRow{testRow{id: Identity(id), class: 1, height: height, selectable: true, uniform: true, t: t}}
}

func newHeader(id string) *testHeader {
	return &testHeader{testRow: testRow{id: Identity(id), class: 2, height: 1}}
}

// makeRows returns n recyclable, selectable rows named prefix0..prefixN-1.
func makeRows(t *tally, prefix string, n, height int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = newRow(t, fmt.Sprintf("%s%d", prefix, i), height)
	}
	return items
}

// listModel builds a model with one untitled single-column section.
func listModel(items ...Item) *Model {
	m := NewModel()
	m.Section("").Add(items...)
	return m
}

// filterModel marks nodes the way the view does, for layout-only tests.
func filterModel(m *Model, pred func(Item) bool) {
	m.each(func(n *node) { n.filtered = !pred(n.item) })
}

func ids(items []Item) []Identity {
	out := make([]Identity, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}
