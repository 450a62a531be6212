package searcher

import (
	"github.com/hupe1980/kdgo/core"
	"github.com/hupe1980/kdgo/geo"
)

// Item is a single search result candidate: a stored point together
// with its squared distance to the query.
// Value-based (no pointers) for cache locality and zero allocations.
type Item struct {
	ID       core.PointID
	Point    geo.Point
	Distance float64
}

// ResultSet is a bounded, distance-ascending ordered list of Items with
// capacity k. Insertion scans from the worst (largest-distance) entry
// backward, which is O(k) per insert — k is expected small relative to
// the number of indexed points.
type ResultSet struct {
	items []Item
	k     int
}

// NewResultSet creates a ResultSet with the given capacity bound.
func NewResultSet(k int) *ResultSet {
	return &ResultSet{
		items: make([]Item, 0, k),
		k:     k,
	}
}

// Reset clears the result set and rebinds its capacity bound without
// freeing memory where possible.
func (rs *ResultSet) Reset(k int) {
	if cap(rs.items) < k {
		rs.items = make([]Item, 0, k)
	} else {
		rs.items = rs.items[:0]
	}
	rs.k = k
}

// Len returns the number of entries currently held.
func (rs *ResultSet) Len() int {
	return len(rs.items)
}

// Full reports whether the result set holds k entries.
func (rs *ResultSet) Full() bool {
	return len(rs.items) >= rs.k
}

// Worst returns the largest distance currently held.
// The second return value is false if the set is empty.
func (rs *ResultSet) Worst() (float64, bool) {
	if len(rs.items) == 0 {
		return 0, false
	}
	return rs.items[len(rs.items)-1].Distance, true
}

// Insert adds item while keeping the list sorted ascending by distance
// and bounded at k entries. The new entry is placed immediately after
// the last existing entry with distance <= item.Distance; if the list
// then exceeds k, the worst entry is dropped. A full set rejects items
// at or beyond the current worst distance without shifting.
func (rs *ResultSet) Insert(item Item) {
	if rs.k <= 0 {
		return
	}
	if rs.Full() {
		if item.Distance >= rs.items[len(rs.items)-1].Distance {
			return
		}
		rs.items = rs.items[:len(rs.items)-1]
	}

	i := len(rs.items)
	rs.items = append(rs.items, Item{})
	for i > 0 && rs.items[i-1].Distance > item.Distance {
		rs.items[i] = rs.items[i-1]
		i--
	}
	rs.items[i] = item
}

// Items returns the entries ascending by distance. The returned slice
// aliases the set's storage and is only valid until the next Insert or
// Reset; callers that retain results must copy.
func (rs *ResultSet) Items() []Item {
	return rs.items
}
