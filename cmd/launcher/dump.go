package main

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/kungfusheep/vlist"
)

// dump prints the computed layout and the visible window. It is what the
// launcher does when stdout is not a terminal.
func dump(w io.Writer, v *vlist.View, st styles) error {
	width, height := v.Size()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("INDEX", "KIND", "SECTION", "X", "Y", "W", "H", "ID")
	for i, e := range v.Entries() {
		tbl.AddRow(i, e.Kind, e.Section, e.X, e.Y, e.W, e.H, e.Item.ID())
	}
	tbl.RightAlign(0)
	if _, err := fmt.Fprintln(w, tbl); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}

	r := v.VisibleRange()
	_, sel := v.Selected()
	fmt.Fprintf(w, "\nviewport %dx%d  virtual height %d  window [%d,%d)  selected %d  handles %d\n\n",
		width, height, v.VirtualHeight(), r.Start, r.End(), sel, v.ActiveHandles())

	if _, err := fmt.Fprintln(w, renderBody(v, width, height, st)); err != nil {
		return fmt.Errorf("failed to write window: %w", err)
	}
	return nil
}
