package vlist

// Margins surround the content area.
type Margins struct {
	Left, Top, Right, Bottom int
}

// LayoutEntry is the computed geometry for one emitted model entry.
type LayoutEntry struct {
	Rect
	Kind       Kind
	Item       Item
	Section    int // index into Model.Sections, -1 for top-level dividers
	Enumerable bool
	FullWidth  bool
}

// Layout is the output of ComputeLayout.
type Layout struct {
	Entries []LayoutEntry
	Height  int // virtual height, margins included
	Width   int // content width, margins excluded

	tallest int // tallest entry; bounds the windowing search
}

// Len returns the number of entries.
func (l *Layout) Len() int { return len(l.Entries) }

// StyleMetrics describes the vertical metrics of a row style.
type StyleMetrics struct {
	LineHeight    int
	Lines         int
	PaddingTop    int
	PaddingBottom int
	Border        int // per edge
}

// DefaultHeight returns the height a row of the given style occupies.
// Items use it instead of instantiating a throwaway presentation object
// to measure themselves.
func DefaultHeight(s StyleMetrics) int {
	lines := max(s.Lines, 1)
	lh := max(s.LineHeight, 1)
	return s.PaddingTop + lines*lh + s.PaddingBottom + 2*max(s.Border, 0)
}

type heightKey struct {
	class RecyclingClass
	width int
}

// HeightCache memoizes the height of uniform-height items per recycling
// class and width, so a list of N uniform rows costs one measurement.
type HeightCache struct {
	heights map[heightKey]int
}

// NewHeightCache creates an empty cache.
func NewHeightCache() *HeightCache {
	return &HeightCache{heights: make(map[heightKey]int)}
}

// Reset drops every cached measurement.
func (c *HeightCache) Reset() {
	clear(c.heights)
}

// Len returns the number of cached measurements.
func (c *HeightCache) Len() int { return len(c.heights) }

func (c *HeightCache) height(it Item, width int) int {
	if c == nil || !isUniform(it) {
		return max(it.CalculateHeight(width), 0)
	}
	key := heightKey{it.Class(), width}
	if h, ok := c.heights[key]; ok {
		return h
	}
	h := max(it.CalculateHeight(width), 0)
	c.heights[key] = h
	return h
}

// ComputeLayout walks the model top to bottom and produces geometry for
// every shown header, unfiltered item and surviving divider. It never
// creates handles. A nil cache disables uniform-height memoization.
func ComputeLayout(m *Model, width int, margins Margins, cache *HeightCache) Layout {
	if m == nil || width <= 0 {
		return Layout{}
	}
	contentW := width - margins.Left - margins.Right
	if contentW <= 0 {
		return Layout{}
	}

	b := layoutBuilder{
		cache:    cache,
		contentW: contentW,
		left:     margins.Left,
		y:        margins.Top,
	}

	sectionIdx := -1
	for _, blk := range m.blocks {
		if blk.divider != nil {
			b.deferDivider(blk.divider, -1)
			continue
		}
		sectionIdx++
		b.section(blk.section, sectionIdx)
	}

	if len(b.entries) == 0 {
		return Layout{Width: contentW}
	}
	return Layout{
		Entries: b.entries,
		Height:  b.y + margins.Bottom,
		Width:   contentW,
		tallest: b.tallest,
	}
}

type layoutBuilder struct {
	cache    *HeightCache
	contentW int
	left     int
	y        int

	entries []LayoutEntry
	tallest int

	// divider suppression: a divider is only placed once content has been
	// emitted before it and more content follows.
	emitted        bool
	pending        *Divider
	pendingSection int
}

func (b *layoutBuilder) emit(e LayoutEntry) {
	b.entries = append(b.entries, e)
	if e.H > b.tallest {
		b.tallest = e.H
	}
}

func (b *layoutBuilder) deferDivider(d *Divider, section int) {
	if b.pending == nil {
		b.pending = d
		b.pendingSection = section
	}
}

// flushDivider places the pending divider if content precedes it.
// Callers invoke it right before emitting content.
func (b *layoutBuilder) flushDivider() {
	d := b.pending
	b.pending = nil
	if d == nil || !b.emitted {
		return
	}
	h := b.cache.height(d, b.contentW)
	if h <= 0 {
		return
	}
	b.emit(LayoutEntry{
		Rect:      Rect{X: b.left, Y: b.y, W: b.contentW, H: h},
		Kind:      KindDivider,
		Item:      d,
		Section:   b.pendingSection,
		FullWidth: true,
	})
	b.y += h
}

func (b *layoutBuilder) section(s *Section, idx int) {
	count := s.Count()
	if c, ok := s.header.(Counter); ok {
		c.SetCount(count)
	}
	if count == 0 {
		return
	}

	b.flushDivider()
	if s.header != nil && s.title != "" {
		h := b.cache.height(s.header, b.contentW)
		b.emit(LayoutEntry{
			Rect:      Rect{X: b.left, Y: b.y, W: b.contentW, H: h},
			Kind:      KindHeader,
			Item:      s.header,
			Section:   idx,
			FullWidth: true,
		})
		b.y += h
	}

	cols := max(s.columns, 1)
	sp := s.spacing
	colW := b.contentW
	if cols > 1 {
		colW = max((b.contentW-sp*(cols-1))/cols, 1)
	}

	var (
		inRow bool
		rowY  int
		rowH  int
		x     int
		rows  int
	)
	closeRow := func() {
		if !inRow {
			return
		}
		b.y = rowY + rowH
		inRow = false
		rowH = 0
		x = 0
	}

	for _, n := range s.nodes {
		switch n.kind {
		case KindSpacer:
			closeRow()
			b.y += max(n.height, 0)

		case KindDivider:
			closeRow()
			if d, ok := n.item.(*Divider); ok {
				b.deferDivider(d, idx)
			}

		case KindRow:
			if n.filtered {
				continue
			}
			w := colW
			if sz, ok := n.item.(Sizer); ok && cols > 1 {
				w = sz.CalculateWidth(colW, b.contentW)
			}
			full := cols == 1 || w >= b.contentW
			if full {
				w = b.contentW
			}
			w = max(w, 1)

			if inRow && (full || x+w > b.contentW) {
				closeRow()
			}
			if !inRow {
				if rows > 0 {
					b.y += sp
				}
				b.flushDivider()
				rowY = b.y
				inRow = true
				rows++
			}

			h := b.cache.height(n.item, w)
			b.emit(LayoutEntry{
				Rect:       Rect{X: b.left + x, Y: rowY, W: w, H: h},
				Kind:       KindRow,
				Item:       n.item,
				Section:    idx,
				Enumerable: true,
				FullWidth:  full,
			})
			b.emitted = true
			x += w + sp
			rowH = max(rowH, h)
			if full {
				closeRow()
			}
		}
	}
	closeRow()
}
