package vlist

// SetFilter hides every item for which pred returns false. Items stay in
// the model, so their identities survive and clearing the filter restores
// them instantly. The view relayouts, selects the first entry and scrolls
// to the top.
func (v *View) SetFilter(pred func(Item) bool) {
	v.filter = pred
	v.refilter()
}

// ClearFilter removes the filter.
func (v *View) ClearFilter() {
	if v.filter == nil {
		return
	}
	v.filter = nil
	v.refilter()
}

// Filtered reports whether a filter is applied.
func (v *View) Filtered() bool { return v.filter != nil }

func (v *View) refilter() {
	v.hold()
	defer v.release()

	v.applyFilter()
	v.relayout()
	v.scroll = 0
	v.restoreSelection(SelectFirst, -1)
	v.scroll = 0
	v.rewindow(false)
}

// SearchText returns the text query filters match an item against: its
// SearchText when it is Searchable, otherwise its identity.
func SearchText(it Item) string {
	if s, ok := it.(Searchable); ok {
		return s.SearchText()
	}
	return string(it.ID())
}

// QueryFilter turns an fzf-style query into an item predicate.
//
// usage:
//
//	qf := NewQueryFilter(nil)
//	view.FilterQuery(qf, input.Value()) // on every keystroke
type QueryFilter struct {
	extract func(Item) string
	raw     string
	query   Query
}

// NewQueryFilter creates a query filter. extract returns the searchable
// text for an item; nil uses SearchText.
func NewQueryFilter(extract func(Item) string) *QueryFilter {
	if extract == nil {
		extract = SearchText
	}
	return &QueryFilter{extract: extract}
}

// Update parses a new query. It reports whether the query changed.
func (f *QueryFilter) Update(raw string) bool {
	if raw == f.raw {
		return false
	}
	f.raw = raw
	f.query = ParseQuery(raw)
	return true
}

// Match reports whether it satisfies the current query.
func (f *QueryFilter) Match(it Item) bool {
	_, ok := f.query.Score(f.extract(it))
	return ok
}

// Active reports whether the query has any terms.
func (f *QueryFilter) Active() bool { return !f.query.Empty() }

// Query returns the raw query string.
func (f *QueryFilter) Query() string { return f.raw }

// FilterQuery updates f with raw and applies or clears the filter.
// Unchanged queries are a no-op, so it is cheap to call per keystroke.
func (v *View) FilterQuery(f *QueryFilter, raw string) {
	if !f.Update(raw) {
		return
	}
	if f.Active() {
		v.SetFilter(f.Match)
		return
	}
	v.ClearFilter()
}
