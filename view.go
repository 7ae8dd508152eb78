package vlist

import (
	"io"
	"log/slog"
	"time"
)

// DefaultFrameInterval is how often scroll-driven re-windowing may run.
const DefaultFrameInterval = 16 * time.Millisecond

// View is the collection-view engine. It owns the layout, the visible
// window, the identity cache and the handle pool for one scrollable list.
//
// All methods run synchronously on the caller's goroutine; View is not safe
// for concurrent use. Model rebuilds, resizes and filter changes relayout
// immediately. Scrolling is coalesced to one re-window per frame interval;
// hosts call Flush from their frame tick to apply a pending scroll.
type View struct {
	model   *Model
	layout  Layout
	heights *HeightCache
	pool    *Pool
	real    *Realizer
	index   map[Identity]int // identity -> entry index, enumerable entries only

	width, height int
	margins       Margins
	policy        SelectionPolicy
	scrollPolicy  ScrollPolicy

	scroll     int
	window     Range
	pending    bool
	lastWindow time.Time
	frame      time.Duration
	now        func() time.Time

	sel      int
	selID    Identity
	selItem  Item
	selValid bool
	parked   Identity // selection kept while the layout is empty

	held   int
	queued []func()

	filter func(Item) bool

	log *slog.Logger

	onSelectionChanged func(next, prev Item)
	onActivated        func(Item)
	onRightClicked     func(Item)
	onHeightChanged    func(int)
	onModelChanged     func()
}

// New creates an empty view. Configure it with the fluent setters, then
// call Resize and SetModel.
func New() *View {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pool := NewPool()
	return &View{
		heights: NewHeightCache(),
		pool:    pool,
		real:    NewRealizer(pool, logger),
		index:   make(map[Identity]int),
		frame:   DefaultFrameInterval,
		now:     time.Now,
		sel:     -1,
		log:     logger,
	}
}

// --- Configuration ---

// Margins sets the content margins.
func (v *View) Margins(left, top, right, bottom int) *View {
	v.margins = Margins{Left: left, Top: top, Right: right, Bottom: bottom}
	if v.model != nil {
		v.relayout()
		v.keepSelection(v.sel)
		v.rewindow(false)
	}
	return v
}

// Policy sets how selection is restored after a model rebuild.
func (v *View) Policy(p SelectionPolicy) *View {
	v.policy = p
	return v
}

// Scroll sets the scroll behaviour used by keyboard navigation.
func (v *View) Scroll(p ScrollPolicy) *View {
	v.scrollPolicy = p
	return v
}

// FrameInterval sets the minimum time between scroll-driven re-windows.
// Zero disables coalescing.
func (v *View) FrameInterval(d time.Duration) *View {
	v.frame = max(d, 0)
	return v
}

// Clock replaces the time source used for scroll coalescing.
func (v *View) Clock(now func() time.Time) *View {
	v.now = now
	return v
}

// Logger sets the logger for debug diagnostics.
func (v *View) Logger(l *slog.Logger) *View {
	if l == nil {
		return v
	}
	v.log = l
	v.real.log = l
	return v
}

// PoolLimit caps hidden handles kept per recycling class.
func (v *View) PoolLimit(n int) *View {
	v.pool.Limit(n)
	return v
}

// --- Events ---

// OnSelectionChanged registers fn for selection identity changes. prev or
// next is nil when there was or will be no selection.
func (v *View) OnSelectionChanged(fn func(next, prev Item)) *View {
	v.onSelectionChanged = fn
	return v
}

// OnActivated registers fn for Activate.
func (v *View) OnActivated(fn func(Item)) *View {
	v.onActivated = fn
	return v
}

// OnRightClicked registers fn for RightClick.
func (v *View) OnRightClicked(fn func(Item)) *View {
	v.onRightClicked = fn
	return v
}

// OnVirtualHeightChanged registers fn for changes of the total content height.
func (v *View) OnVirtualHeightChanged(fn func(int)) *View {
	v.onHeightChanged = fn
	return v
}

// OnModelChanged registers fn, called after every SetModel.
func (v *View) OnModelChanged(fn func()) *View {
	v.onModelChanged = fn
	return v
}

// --- Model & geometry ---

// SetModel replaces the model wholesale. Handles whose identity survives
// are refreshed in place; the configured policy restores selection.
func (v *View) SetModel(m *Model) {
	v.hold()
	defer v.release()

	prev := v.sel
	v.model = m
	v.applyFilter()
	v.relayout()
	v.restoreSelection(v.policy, prev)
	v.rewindow(true)
	if v.onModelChanged != nil {
		v.emit(v.onModelChanged)
	}
}

// Model returns the current model.
func (v *View) Model() *Model { return v.model }

// Resize sets the viewport size. A width change relayouts; a height change
// only re-windows.
func (v *View) Resize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	v.hold()
	defer v.release()

	widthChanged := width != v.width
	v.width, v.height = width, height
	if widthChanged {
		v.relayout()
		v.keepSelection(v.sel)
	}
	v.clampScroll()
	if v.selValid {
		v.scrollIntoView(v.sel, ScrollRelative)
	}
	v.rewindow(false)
}

// Size returns the viewport size.
func (v *View) Size() (width, height int) { return v.width, v.height }

// Relayout recomputes geometry, for example after items changed their
// heights. Cached uniform heights are dropped.
func (v *View) Relayout() {
	v.hold()
	defer v.release()

	v.heights.Reset()
	v.relayout()
	v.keepSelection(v.sel)
	v.rewindow(true)
}

// Entries returns the current layout entries. The slice must not be modified.
func (v *View) Entries() []LayoutEntry { return v.layout.Entries }

// VirtualHeight returns the total content height, margins included.
func (v *View) VirtualHeight() int { return v.layout.Height }

// VisibleRange returns the current viewport window.
func (v *View) VisibleRange() Range { return v.window }

// ItemAt returns the item of the enumerable entry at index.
func (v *View) ItemAt(index int) (Item, bool) {
	if index < 0 || index >= len(v.layout.Entries) {
		return nil, false
	}
	e := v.layout.Entries[index]
	if !e.Enumerable {
		return nil, false
	}
	return e.Item, true
}

// IndexOfItem returns the entry index for id, or -1.
func (v *View) IndexOfItem(id Identity) int {
	if i, ok := v.index[id]; ok {
		return i
	}
	return -1
}

// Items returns the enumerable items in layout order.
func (v *View) Items() []Item {
	out := make([]Item, 0, len(v.index))
	for _, e := range v.layout.Entries {
		if e.Enumerable {
			out = append(out, e.Item)
		}
	}
	return out
}

// HitTest returns the entry index at content coordinates (x, y), or -1.
func (v *View) HitTest(x, y int) int {
	r := Window(v.layout, y, 1)
	for i := r.Start; i < r.End(); i++ {
		if v.layout.Entries[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// EachVisible calls fn for every entry in the window with its realized
// handle (nil when the entry has no presentation).
func (v *View) EachVisible(fn func(index int, e LayoutEntry, h Handle)) {
	for i := v.window.Start; i < v.window.End(); i++ {
		e := v.layout.Entries[i]
		h, _ := v.real.Handle(e.Item.ID())
		fn(i, e, h)
	}
}

// Realized returns the active handle for id.
func (v *View) Realized(id Identity) (Handle, bool) {
	return v.real.Handle(id)
}

// ActiveHandles returns the number of handles currently bound.
func (v *View) ActiveHandles() int { return v.real.Len() }

// Stats returns handle accounting for a recycling class.
func (v *View) Stats(class RecyclingClass) PoolStats { return v.pool.Stats(class) }

// Close evicts every handle and drains the pool.
func (v *View) Close() {
	v.real.Clear()
	v.pool.Drain()
	v.window = Range{}
}

// --- Scrolling ---

// ScrollOffset returns the current scroll position.
func (v *View) ScrollOffset() int { return v.scroll }

// MaxScroll returns the largest valid scroll offset.
func (v *View) MaxScroll() int {
	return max(v.layout.Height-v.height, 0)
}

// ScrollTo moves the viewport. The window is recomputed at most once per
// frame interval; a skipped update stays pending until Flush.
func (v *View) ScrollTo(offset int) {
	prev := v.scroll
	v.scroll = offset
	v.clampScroll()
	if v.scroll == prev && !v.pending {
		return
	}
	if v.frame > 0 && !v.lastWindow.IsZero() && v.now().Sub(v.lastWindow) < v.frame {
		v.pending = true
		return
	}
	v.rewindow(false)
}

// ScrollBy moves the viewport by delta.
func (v *View) ScrollBy(delta int) {
	v.ScrollTo(v.scroll + delta)
}

// Pending reports whether a scroll is waiting for Flush.
func (v *View) Pending() bool { return v.pending }

// Flush applies a pending scroll. It reports whether the window was updated.
func (v *View) Flush() bool {
	if !v.pending {
		return false
	}
	v.rewindow(false)
	return true
}

// --- internals ---

func (v *View) relayout() {
	prevHeight := v.layout.Height
	v.layout = ComputeLayout(v.model, v.width, v.margins, v.heights)

	clear(v.index)
	for i, e := range v.layout.Entries {
		if !e.Enumerable {
			continue
		}
		id := e.Item.ID()
		if prev, dup := v.index[id]; dup {
			v.log.Debug("duplicate identity in model", "id", id, "first", prev, "second", i)
		}
		v.index[id] = i
	}

	v.clampScroll()
	if h := v.layout.Height; h != prevHeight && v.onHeightChanged != nil {
		fn := v.onHeightChanged
		v.emit(func() { fn(h) })
	}
}

// hold defers host events until the matching release, so handlers never
// observe a layout whose selection and window are not yet reconciled.
func (v *View) hold() { v.held++ }

func (v *View) release() {
	v.held--
	if v.held > 0 {
		return
	}
	for len(v.queued) > 0 {
		fn := v.queued[0]
		v.queued = v.queued[1:]
		fn()
	}
	v.queued = nil
}

func (v *View) emit(fn func()) {
	if v.held > 0 {
		v.queued = append(v.queued, fn)
		return
	}
	fn()
}

func (v *View) rewindow(refresh bool) {
	v.window = Window(v.layout, v.scroll, v.height)
	v.real.Reconcile(v.layout.Entries, v.window, refresh)
	v.pending = false
	v.lastWindow = v.now()
}

func (v *View) clampScroll() {
	v.scroll = min(max(v.scroll, 0), v.MaxScroll())
}

// scrollIntoView adjusts the scroll offset so entry i is visible.
func (v *View) scrollIntoView(i int, p ScrollPolicy) {
	if i < 0 || i >= len(v.layout.Entries) || v.height <= 0 {
		return
	}
	e := v.layout.Entries[i]
	switch p {
	case ScrollAbsolute:
		v.scroll = e.Y
	default:
		top := e.Y
		// reveal the section header along with the section's first row
		if i > 0 {
			prev := v.layout.Entries[i-1]
			if prev.Kind == KindHeader && prev.Section == e.Section && e.Bottom()-prev.Y <= v.height {
				top = prev.Y
			}
		}
		if top < v.scroll {
			v.scroll = top
		} else if e.Bottom() > v.scroll+v.height {
			v.scroll = e.Bottom() - v.height
		}
	}
	v.clampScroll()
}

func (v *View) applyFilter() {
	if v.model == nil {
		return
	}
	pred := v.filter
	v.model.each(func(n *node) {
		n.filtered = pred != nil && !pred(n.item)
	})
}
