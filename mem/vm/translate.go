package vm

import "fmt"

// ReasonPageOutOfRange is reported when a page number does not fit the table.
var ReasonPageOutOfRange = fmt.Sprintf(
	"Invalid page number (exceeds %d pages)", NumPages)

// Translate splits a logical address into page number and offset and maps it
// through the page table.
func Translate(addr uint64, pageSize PageSize, pt *PageTable) Result {
	if pageSize == 0 {
		panic("page size must not be zero")
	}

	size := uint64(pageSize)
	page := addr / size
	offset := addr % size

	if page >= NumPages {
		return Error{
			LogicalAddress: addr,
			PageNumber:     page,
			Offset:         offset,
			Reason:         ReasonPageOutOfRange,
		}
	}

	frame, found := pt.Lookup(page)
	if !found {
		return PageFault{
			LogicalAddress: addr,
			PageNumber:     page,
			Offset:         offset,
			Reason:         FaultNotInTable,
		}
	}

	if frame == FrameNotResident {
		return PageFault{
			LogicalAddress: addr,
			PageNumber:     page,
			Offset:         offset,
			Reason:         FaultNotResident,
		}
	}

	return Success{
		LogicalAddress:  addr,
		PageNumber:      page,
		Offset:          offset,
		FrameNumber:     frame,
		PhysicalAddress: uint64(frame)*size + offset,
	}
}

// TranslateAll translates every address in order.
func TranslateAll(addrs []uint64, pageSize PageSize, pt *PageTable) []Result {
	results := make([]Result, len(addrs))
	for i, addr := range addrs {
		results[i] = Translate(addr, pageSize, pt)
	}

	return results
}
