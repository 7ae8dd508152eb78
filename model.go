package vlist

import "github.com/google/uuid"

// Kind tags a model node or layout entry.
type Kind uint8

const (
	KindRow Kind = iota
	KindHeader
	KindDivider
	KindSpacer // model nodes only; spacers never produce entries
)

func (k Kind) String() string {
	switch k {
	case KindRow:
		return "row"
	case KindHeader:
		return "header"
	case KindDivider:
		return "divider"
	case KindSpacer:
		return "spacer"
	}
	return "unknown"
}

// node is one slot in a section or at the top level of a model.
type node struct {
	kind     Kind
	item     Item // nil for spacers
	height   int  // spacer height
	filtered bool
}

// Model is an ordered sequence of sections and top-level dividers.
// Callers rebuild it wholesale; the engine reconciles by identity.
//
//	m := NewModel()
//	m.Section("Applications").Header(hdr).Columns(4).Spacing(1).Add(apps...)
//	m.Divider(NewDivider(1, nil))
//	m.Section("Clipboard").Header(hdr2).Add(clips...)
type Model struct {
	blocks []block
}

// block is either a section or a top-level divider.
type block struct {
	section *Section
	divider *Divider
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// Section appends a new section and returns it for configuration.
func (m *Model) Section(title string) *Section {
	s := &Section{title: title, columns: 1}
	m.blocks = append(m.blocks, block{section: s})
	return s
}

// Divider appends a top-level divider.
func (m *Model) Divider(d *Divider) *Model {
	m.blocks = append(m.blocks, block{divider: d})
	return m
}

// Sections returns the sections in model order.
func (m *Model) Sections() []*Section {
	var out []*Section
	for _, b := range m.blocks {
		if b.section != nil {
			out = append(out, b.section)
		}
	}
	return out
}

// Len returns the number of items in the model, filtered or not.
func (m *Model) Len() int {
	n := 0
	for _, b := range m.blocks {
		if b.section != nil {
			n += b.section.Len()
		}
	}
	return n
}

// each calls fn for every row item node in the model.
func (m *Model) each(fn func(n *node)) {
	for _, b := range m.blocks {
		if b.section == nil {
			continue
		}
		for _, n := range b.section.nodes {
			if n.kind == KindRow {
				fn(n)
			}
		}
	}
}

// Section is a titled, possibly multi-column group of items.
type Section struct {
	title   string
	header  Item
	columns int
	spacing int
	nodes   []*node
}

// Title returns the section title.
func (s *Section) Title() string { return s.title }

// Header sets the item used to present the section title.
func (s *Section) Header(it Item) *Section {
	s.header = it
	return s
}

// Columns sets the column count. Values below 1 are treated as 1.
func (s *Section) Columns(n int) *Section {
	if n < 1 {
		n = 1
	}
	s.columns = n
	return s
}

// Spacing sets the gap between columns and between rows.
func (s *Section) Spacing(n int) *Section {
	if n < 0 {
		n = 0
	}
	s.spacing = n
	return s
}

// Add appends items.
func (s *Section) Add(items ...Item) *Section {
	for _, it := range items {
		s.nodes = append(s.nodes, &node{kind: KindRow, item: it})
	}
	return s
}

// AddSpacer appends vertical space.
func (s *Section) AddSpacer(height int) *Section {
	s.nodes = append(s.nodes, &node{kind: KindSpacer, height: height})
	return s
}

// AddDivider appends a divider between items of this section.
func (s *Section) AddDivider(d *Divider) *Section {
	s.nodes = append(s.nodes, &node{kind: KindDivider, item: d})
	return s
}

// Len returns the number of items, filtered or not.
func (s *Section) Len() int {
	n := 0
	for _, nd := range s.nodes {
		if nd.kind == KindRow {
			n++
		}
	}
	return n
}

// Count returns the number of unfiltered items.
func (s *Section) Count() int {
	n := 0
	for _, nd := range s.nodes {
		if nd.kind == KindRow && !nd.filtered {
			n++
		}
	}
	return n
}

// Divider is a layout-only separator. It carries a synthetic identity so
// that a presentation handle, when one is supplied, can be cached like any
// other row.
type Divider struct {
	id     Identity
	class  RecyclingClass
	height int
	create func() Handle
}

// NewDivider creates a divider of the given height in ClassDivider. create
// may be nil, in which case the divider only contributes space. Every
// divider in ClassDivider shares one pool, so their factories must build
// interchangeable handles; use NewDividerClass for a different look.
func NewDivider(height int, create func() Handle) *Divider {
	return NewDividerClass(height, ClassDivider, create)
}

// NewDividerClass creates a divider whose handles are pooled under class.
func NewDividerClass(height int, class RecyclingClass, create func() Handle) *Divider {
	return &Divider{
		id:     Identity("divider:" + uuid.NewString()),
		class:  class,
		height: height,
		create: create,
	}
}

func (d *Divider) ID() Identity                  { return d.id }
func (d *Divider) Class() RecyclingClass         { return d.class }
func (d *Divider) Selectable() bool              { return false }
func (d *Divider) CalculateHeight(width int) int { return d.height }
func (d *Divider) UniformHeight() bool           { return false }
func (d *Divider) Refresh(h Handle)              {}
func (d *Divider) Recycle(h Handle)              {}

func (d *Divider) CreateHandle() Handle {
	if d.create == nil {
		return nil
	}
	return d.create()
}
