package vm

// Status classifies a translation result.
type Status int

// The three outcomes of translating an address.
const (
	StatusSuccess Status = iota
	StatusPageFault
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusPageFault:
		return "PAGE FAULT"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// A Result is the outcome of translating one logical address. It is one of
// Success, PageFault, or Error.
type Result interface {
	// Address returns the logical address that was translated.
	Address() uint64

	// Status tells which variant the result is.
	Status() Status

	// Message returns a user-facing explanation. It is empty for successful
	// translations.
	Message() string

	sealed()
}

// Success is a translation that reached a physical address.
type Success struct {
	LogicalAddress  uint64
	PageNumber      uint64
	Offset          uint64
	FrameNumber     int
	PhysicalAddress uint64
}

// Address returns the logical address.
func (r Success) Address() uint64 { return r.LogicalAddress }

// Status returns StatusSuccess.
func (Success) Status() Status { return StatusSuccess }

// Message returns an empty string.
func (Success) Message() string { return "" }

func (Success) sealed() {}

// FaultReason tells why a page fault happened.
type FaultReason int

// Reasons of page faults.
const (
	// FaultNotInTable means the page has no entry in the page table.
	FaultNotInTable FaultReason = iota

	// FaultNotResident means the page is in the table but marked with frame
	// -1.
	FaultNotResident
)

func (r FaultReason) String() string {
	switch r {
	case FaultNotInTable:
		return "Page Fault - Page not in page table"
	case FaultNotResident:
		return "Page Fault - Page not loaded in memory"
	default:
		return "Page Fault"
	}
}

// PageFault is a translation of an in-range page that has no resident frame.
type PageFault struct {
	LogicalAddress uint64
	PageNumber     uint64
	Offset         uint64
	Reason         FaultReason
}

// Address returns the logical address.
func (r PageFault) Address() uint64 { return r.LogicalAddress }

// Status returns StatusPageFault.
func (PageFault) Status() Status { return StatusPageFault }

// Message describes the fault reason.
func (r PageFault) Message() string { return r.Reason.String() }

func (PageFault) sealed() {}

// Error is a translation whose page number is beyond what the page table can
// address. The page number and offset are still reported.
type Error struct {
	LogicalAddress uint64
	PageNumber     uint64
	Offset         uint64
	Reason         string
}

// Address returns the logical address.
func (r Error) Address() uint64 { return r.LogicalAddress }

// Status returns StatusError.
func (Error) Status() Status { return StatusError }

// Message returns the reason of the error.
func (r Error) Message() string { return r.Reason }

func (Error) sealed() {}
