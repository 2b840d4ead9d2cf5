// Package model defines the chat timeline data types shared across the renderer.
package model

import "sort"

// ChatEntry is one parsed chat line: a playback time in seconds, the author
// name and the message text. Entries are created by the loader and never
// mutated afterwards.
type ChatEntry struct {
	Time   float64
	Author string
	Text   string
}

// Timeline is a sequence of chat entries sorted non-decreasing by Time.
// It is replaced wholesale on reload, never patched in place.
type Timeline []ChatEntry

// Sort orders the timeline by time. The sort is stable so entries sharing a
// timestamp keep their source order.
func (t Timeline) Sort() {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].Time < t[j].Time
	})
}

// ActiveRange returns the entries whose start time lies in
// [query-window, query]. The timeline must be sorted; the result is a
// subslice of t, so it stays valid only as long as t does.
func (t Timeline) ActiveRange(query, window float64) Timeline {
	lo := sort.Search(len(t), func(i int) bool {
		return t[i].Time >= query-window
	})
	hi := sort.Search(len(t), func(i int) bool {
		return t[i].Time > query
	})
	if lo >= hi {
		return nil
	}
	return t[lo:hi]
}
