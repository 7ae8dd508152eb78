package vlist

// SelectionPolicy decides how selection is restored after a rebuild.
type SelectionPolicy int

const (
	// SelectFirst selects the first selectable entry.
	SelectFirst SelectionPolicy = iota
	// KeepSelection keeps the selected identity if it survived, otherwise
	// clamps the old index into range.
	KeepSelection
	// PreserveSelection picks the selectable entry nearest the old index.
	PreserveSelection
	// SelectNone clears the selection.
	SelectNone
)

func (p SelectionPolicy) String() string {
	switch p {
	case SelectFirst:
		return "select-first"
	case KeepSelection:
		return "keep-selection"
	case PreserveSelection:
		return "preserve-selection"
	case SelectNone:
		return "select-none"
	}
	return "unknown"
}

// ScrollPolicy decides how a new selection is brought into view.
type ScrollPolicy int

const (
	// ScrollRelative nudges the viewport just enough to show the entry.
	ScrollRelative ScrollPolicy = iota
	// ScrollAbsolute pins the entry to the top of the viewport.
	ScrollAbsolute
)

func (p ScrollPolicy) String() string {
	if p == ScrollAbsolute {
		return "absolute"
	}
	return "relative"
}

// Selected returns the selected item and its entry index, or (nil, -1).
func (v *View) Selected() (Item, int) {
	if !v.selValid {
		return nil, -1
	}
	return v.selItem, v.sel
}

// SelectedIndex returns the selected entry index or -1.
func (v *View) SelectedIndex() int {
	if !v.selValid {
		return -1
	}
	return v.sel
}

// SetSelected selects the entry at index and scrolls it into view. -1
// clears the selection. It returns false if index does not name a
// selectable entry.
func (v *View) SetSelected(index int, p ScrollPolicy) bool {
	v.hold()
	defer v.release()

	v.parked = ""
	prevScroll := v.scroll
	if !v.selectIndex(index, p) {
		return false
	}
	if v.scroll != prevScroll {
		v.rewindow(false)
	}
	return true
}

// SetSelectedID resolves id to an entry and selects it.
func (v *View) SetSelectedID(id Identity, p ScrollPolicy) bool {
	i := v.IndexOfItem(id)
	if i < 0 {
		return false
	}
	return v.SetSelected(i, p)
}

// SelectFirst selects the first selectable entry. With none available the
// view is left without a selection.
func (v *View) SelectFirst() bool {
	i := v.firstSelectable()
	if i < 0 {
		v.SetSelected(-1, v.scrollPolicy)
		return false
	}
	return v.SetSelected(i, v.scrollPolicy)
}

// SelectLast selects the last selectable entry.
func (v *View) SelectLast() bool {
	for i := len(v.layout.Entries) - 1; i >= 0; i-- {
		if v.selectable(i) {
			return v.SetSelected(i, v.scrollPolicy)
		}
	}
	return false
}

// SelectDown moves to the next row, staying in the current column: the
// rightmost selectable candidate whose x does not exceed the current x.
// Rows without selectable entries (headers, dividers) are skipped.
func (v *View) SelectDown() bool {
	if !v.selValid {
		return v.SelectFirst()
	}
	entries := v.layout.Entries
	cur := entries[v.sel]

	j := v.sel + 1
	for j < len(entries) && entries[j].Y <= cur.Y {
		j++
	}
	for j < len(entries) {
		rowY := entries[j].Y
		best, first := -1, -1
		k := j
		for ; k < len(entries) && entries[k].Y == rowY; k++ {
			if !v.selectable(k) {
				continue
			}
			if first < 0 {
				first = k
			}
			if entries[k].X <= cur.X {
				best = k
			}
		}
		if best < 0 {
			best = first
		}
		if best >= 0 {
			return v.SetSelected(best, v.scrollPolicy)
		}
		j = k
	}
	return false
}

// SelectUp moves to the previous row, picking the nearest selectable
// candidate at or left of the current x.
func (v *View) SelectUp() bool {
	if !v.selValid {
		return v.SelectFirst()
	}
	entries := v.layout.Entries
	cur := entries[v.sel]

	j := v.sel - 1
	for j >= 0 && entries[j].Y >= cur.Y {
		j--
	}
	for j >= 0 {
		rowY := entries[j].Y
		best, last := -1, -1
		k := j
		for ; k >= 0 && entries[k].Y == rowY; k-- {
			if !v.selectable(k) {
				continue
			}
			last = k
			if best < 0 && entries[k].X <= cur.X {
				best = k
			}
		}
		if best < 0 {
			best = last
		}
		if best >= 0 {
			return v.SetSelected(best, v.scrollPolicy)
		}
		j = k
	}
	return false
}

// SelectLeft moves to the previous entry. Crossing into another row is only
// allowed between grid cells; a full-width neighbour blocks the move.
func (v *View) SelectLeft() bool {
	return v.selectAdjacent(-1)
}

// SelectRight moves to the next entry with the same rules as SelectLeft.
func (v *View) SelectRight() bool {
	return v.selectAdjacent(1)
}

func (v *View) selectAdjacent(dir int) bool {
	if !v.selValid {
		return false
	}
	i := v.sel + dir
	if i < 0 || i >= len(v.layout.Entries) || !v.selectable(i) {
		return false
	}
	cur, next := v.layout.Entries[v.sel], v.layout.Entries[i]
	if next.Y != cur.Y && (cur.FullWidth || next.FullWidth) {
		return false
	}
	return v.SetSelected(i, v.scrollPolicy)
}

// Activate reports the selected item to the activation handler.
func (v *View) Activate() bool {
	if !v.selValid {
		return false
	}
	if v.onActivated != nil {
		v.onActivated(v.selItem)
	}
	return true
}

// RightClick reports the item at index to the right-click handler.
func (v *View) RightClick(index int) bool {
	it, ok := v.ItemAt(index)
	if !ok {
		return false
	}
	if v.onRightClicked != nil {
		v.onRightClicked(it)
	}
	return true
}

// --- internals ---

func (v *View) selectable(i int) bool {
	if i < 0 || i >= len(v.layout.Entries) {
		return false
	}
	e := v.layout.Entries[i]
	return e.Enumerable && e.Item.Selectable()
}

func (v *View) firstSelectable() int {
	for i := range v.layout.Entries {
		if v.selectable(i) {
			return i
		}
	}
	return -1
}

// selectIndex updates selection state and scroll without re-windowing.
// selectionChanged fires only when the selected identity changes.
func (v *View) selectIndex(index int, p ScrollPolicy) bool {
	if index == -1 {
		prev := v.selItem
		wasValid := v.selValid
		v.sel, v.selItem, v.selID, v.selValid = -1, nil, "", false
		if wasValid && v.onSelectionChanged != nil {
			fn := v.onSelectionChanged
			v.emit(func() { fn(nil, prev) })
		}
		return true
	}
	if !v.selectable(index) {
		return false
	}

	it := v.layout.Entries[index].Item
	id := it.ID()
	changed := !v.selValid || id != v.selID
	prev := v.selItem

	v.sel, v.selItem, v.selID, v.selValid = index, it, id, true
	v.scrollIntoView(index, p)

	if changed && v.onSelectionChanged != nil {
		fn := v.onSelectionChanged
		v.emit(func() { fn(it, prev) })
	}
	return true
}

// keepSelection re-resolves the selected identity after a relayout that
// did not change the model, falling back like KeepSelection.
func (v *View) keepSelection(oldIndex int) {
	if !v.selValid && v.parked == "" {
		return
	}
	v.restoreSelection(KeepSelection, oldIndex)
}

// restoreSelection applies a rebuild policy. oldIndex is the selected
// index before the rebuild, -1 if there was none.
func (v *View) restoreSelection(p SelectionPolicy, oldIndex int) {
	if p != KeepSelection {
		v.parked = ""
	}
	switch p {
	case SelectFirst:
		v.selectIndex(v.firstSelectable(), ScrollRelative)

	case KeepSelection:
		// an empty layout parks the identity until entries come back
		if !v.selValid {
			if v.parked == "" || len(v.layout.Entries) == 0 {
				return
			}
			id := v.parked
			v.parked = ""
			if i, ok := v.index[id]; ok && v.selectable(i) {
				v.selectIndex(i, ScrollRelative)
			}
			return
		}
		if i, ok := v.index[v.selID]; ok && v.selectable(i) {
			v.selectIndex(i, ScrollRelative)
			return
		}
		n := len(v.layout.Entries)
		if n == 0 {
			v.parked = v.selID
			v.selectIndex(-1, ScrollRelative)
			return
		}
		i := min(max(oldIndex, 0), n-1)
		if v.selectable(i) {
			v.selectIndex(i, ScrollRelative)
			return
		}
		v.selectIndex(v.nearestSelectable(i), ScrollRelative)

	case PreserveSelection:
		if oldIndex < 0 {
			v.selectIndex(v.firstSelectable(), ScrollRelative)
			return
		}
		v.selectIndex(v.nearestSelectable(oldIndex), ScrollRelative)

	case SelectNone:
		v.selectIndex(-1, ScrollRelative)
	}
}

// nearestSelectable searches outward from origin by increasing radius.
// On a tie the lower index wins. Returns -1 when nothing is selectable.
func (v *View) nearestSelectable(origin int) int {
	n := len(v.layout.Entries)
	if n == 0 {
		return -1
	}
	origin = min(max(origin, 0), n-1)
	for r := 0; r < n; r++ {
		lo, hi := origin-r, origin+r
		if lo < 0 && hi >= n {
			break
		}
		if v.selectable(lo) {
			return lo
		}
		if v.selectable(hi) {
			return hi
		}
	}
	return -1
}
