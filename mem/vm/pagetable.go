package vm

import (
	"fmt"
	"strings"
)

const (
	// NumPages is the number of entries a page table can address.
	NumPages = 8

	// NumFrames is the number of physical frames in the simulated memory.
	NumFrames = 6

	// FrameNotResident marks a page that is valid but not loaded in memory.
	FrameNotResident = -1
)

// A PageEntry maps a page to a frame.
type PageEntry struct {
	Page  int
	Frame int
}

// Resident returns true if the page is loaded in a physical frame.
func (e PageEntry) Resident() bool {
	return e.Frame != FrameNotResident
}

// A PageTable is a single-level page table. It keeps its entries in the order
// they were inserted.
type PageTable struct {
	entries    []PageEntry
	pageIndex  map[int]int
	frameOwner map[int]int
}

// NewPageTable creates an empty PageTable.
func NewPageTable() *PageTable {
	return &PageTable{
		pageIndex:  make(map[int]int),
		frameOwner: make(map[int]int),
	}
}

// Insert maps a page to a frame. It panics if the page or the frame is out
// of range, if the page is already mapped, or if another page already owns
// the frame.
func (pt *PageTable) Insert(page, frame int) {
	pageMustBeInRange(page)
	frameMustBeInRange(frame)
	pt.pageMustNotExist(page)
	pt.frameMustBeFree(frame)

	pt.pageIndex[page] = len(pt.entries)
	pt.entries = append(pt.entries, PageEntry{Page: page, Frame: frame})

	if frame != FrameNotResident {
		pt.frameOwner[frame] = page
	}
}

// Lookup returns the frame that the page maps to. The bool return value
// indicates if the page is in the table.
func (pt *PageTable) Lookup(page uint64) (int, bool) {
	if page >= NumPages {
		return 0, false
	}

	i, found := pt.pageIndex[int(page)]
	if !found {
		return 0, false
	}

	return pt.entries[i].Frame, true
}

// FrameOwner returns the page that occupies the given frame.
func (pt *PageTable) FrameOwner(frame int) (int, bool) {
	page, found := pt.frameOwner[frame]
	return page, found
}

// Entries returns a copy of the entries in insertion order.
func (pt *PageTable) Entries() []PageEntry {
	entries := make([]PageEntry, len(pt.entries))
	copy(entries, pt.entries)

	return entries
}

// Len returns the number of mapped pages.
func (pt *PageTable) Len() int {
	return len(pt.entries)
}

// String formats the table the way users type it, e.g. {0: 2, 1: -1}.
func (pt *PageTable) String() string {
	var b strings.Builder

	b.WriteString("{")
	for i, e := range pt.entries {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%d: %d", e.Page, e.Frame)
	}
	b.WriteString("}")

	return b.String()
}

func pageMustBeInRange(page int) {
	if page < 0 || page >= NumPages {
		panic(fmt.Sprintf("page %d out of range", page))
	}
}

func frameMustBeInRange(frame int) {
	if frame == FrameNotResident {
		return
	}

	if frame < 0 || frame >= NumFrames {
		panic(fmt.Sprintf("frame %d out of range", frame))
	}
}

func (pt *PageTable) pageMustNotExist(page int) {
	if _, found := pt.pageIndex[page]; found {
		panic(fmt.Sprintf("page %d already mapped", page))
	}
}

func (pt *PageTable) frameMustBeFree(frame int) {
	if frame == FrameNotResident {
		return
	}

	if owner, found := pt.frameOwner[frame]; found {
		panic(fmt.Sprintf("frame %d already owned by page %d", frame, owner))
	}
}
