// Package vlist is a virtualized, recyclable collection-view engine.
//
// A Model holds sections of items, optionally titled and laid out in
// columns, separated by dividers. The View lays the whole model out without
// creating anything visual, windows the layout to the viewport and realizes
// only the entries inside it. Realized handles are cached by item identity,
// so rebuilding the model refreshes surviving rows in place, and handles of
// rows that scroll away go back to a per-class pool for reuse.
//
//	v := vlist.New().Policy(vlist.KeepSelection)
//	v.Resize(width, height)
//	v.SetModel(model)
//
//	v.SelectDown()          // keyboard navigation
//	v.ScrollBy(3)           // coalesced to one re-window per frame
//	v.Flush()               // from the host's frame tick
//	v.FilterQuery(qf, text) // fzf-style search
package vlist
