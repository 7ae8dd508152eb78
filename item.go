package vlist

// Identity names an item across model rebuilds. Two items with the same
// identity are treated as the same logical row: a realized handle survives
// the rebuild and is refreshed in place.
type Identity string

// RecyclingClass groups items whose handles are interchangeable.
// Classes are author-supplied; negative values are reserved for built-ins.
type RecyclingClass int

// ClassDivider is the recycling class used by built-in dividers.
const ClassDivider RecyclingClass = -1

// Rect is a placement in content coordinates (before scrolling).
type Rect struct {
	X, Y, W, H int
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Handle is a realized presentation object. While active it is bound to
// exactly one item and positioned with Place; while pooled it is hidden.
// Handles must be comparable (pointer types in practice).
type Handle interface {
	Place(r Rect)
	Hide()
	Destroy()
}

// Item is the unit the engine lays out and realizes.
type Item interface {
	ID() Identity
	Class() RecyclingClass
	Selectable() bool

	// CalculateHeight returns the height the item needs at the given width.
	// It must not create presentation objects.
	CalculateHeight(width int) int

	// CreateHandle returns a fresh handle for this item. Returning nil means
	// the item has no presentation (layout only).
	CreateHandle() Handle

	// Refresh binds h to this item's current data. Called on identity hits
	// after a rebuild and on handles taken from the pool.
	Refresh(h Handle)
}

// Recycler is implemented by items whose handles can be pooled. Recycle
// unbinds h before it is returned to the pool. Items without it have their
// handles destroyed when they leave the window.
type Recycler interface {
	Recycle(h Handle)
}

// UniformHeighter marks items whose height depends only on their class and
// the available width, so one measurement serves the whole class.
type UniformHeighter interface {
	UniformHeight() bool
}

// Attacher is notified when a handle becomes bound to the item.
type Attacher interface {
	Attached(h Handle)
}

// Detacher is notified when the item's handle leaves the window.
type Detacher interface {
	Detached(h Handle)
}

// Sizer lets grid items choose their own width. columnWidth is the width of
// one column; available is the full content width. Returning available makes
// the item occupy a full row.
type Sizer interface {
	CalculateWidth(columnWidth, available int) int
}

// Counter is implemented by section headers that show an item count.
type Counter interface {
	SetCount(n int)
}

// Searchable supplies the text matched by query filters.
type Searchable interface {
	SearchText() string
}

func isUniform(it Item) bool {
	u, ok := it.(UniformHeighter)
	return ok && u.UniformHeight()
}
