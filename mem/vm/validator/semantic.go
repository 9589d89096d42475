package validator

import (
	"fmt"
	"math"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/mem/vm/literal"
)

// MaxAddresses is the most addresses a single run translates.
const MaxAddresses = 10

const (
	pageTableParseHint = "Invalid page table format. " +
		"Check for syntax errors (missing commas, colons, etc.)"
	addressesParseHint = "Invalid addresses format. " +
		"Check for syntax errors (missing commas, brackets, etc.)"
)

func tableErrorf(format string, args ...any) error {
	return &SemanticError{
		Field:   FieldPageTable,
		Message: fmt.Sprintf(format, args...),
	}
}

func addressErrorf(position int, format string, args ...any) error {
	return &SemanticError{
		Field:    FieldAddresses,
		Position: position,
		Message:  fmt.Sprintf(format, args...),
	}
}

// ParsePageTable checks the shape of the text, parses it, and builds a page
// table from it.
func ParsePageTable(text string) (*vm.PageTable, error) {
	if err := ValidateDictionaryFormat(text).Err(FieldPageTable); err != nil {
		return nil, err
	}

	v, err := literal.Parse(text)
	if err != nil {
		return nil, &ParseError{
			Field:   FieldPageTable,
			Message: pageTableParseHint,
			Cause:   err,
		}
	}

	return PageTableFromValue(v)
}

// ParseAddresses checks the shape of the text, parses it, and extracts the
// address list from it.
func ParseAddresses(text string) ([]uint64, error) {
	if err := ValidateListFormat(text).Err(FieldAddresses); err != nil {
		return nil, err
	}

	v, err := literal.Parse(text)
	if err != nil {
		return nil, &ParseError{
			Field:   FieldAddresses,
			Message: addressesParseHint,
			Cause:   err,
		}
	}

	return AddressesFromValue(v)
}

// PageTableFromValue builds a page table from a parsed object. Entries are
// checked in source order and the first violation is returned. A page that
// appears more than once, also when spelled differently as in 1 and "01", is
// rejected instead of letting the later entry win.
func PageTableFromValue(v literal.Value) (*vm.PageTable, error) {
	obj, ok := v.(literal.Object)
	if !ok {
		return nil, tableErrorf(
			"Page table must be a valid dictionary/object. " +
				"Example: {0: 2, 1: -1, 2: 4}")
	}

	if len(obj.Members) == 0 {
		return nil, tableErrorf(
			"Page table cannot be empty. " +
				"Please add at least one page-frame mapping")
	}

	pt := vm.NewPageTable()
	for _, m := range obj.Members {
		page, frame, err := entryFromMember(m)
		if err != nil {
			return nil, err
		}

		if err := entryMustFit(pt, page, frame); err != nil {
			return nil, err
		}

		pt.Insert(int(page), int(frame))
	}

	return pt, nil
}

func entryFromMember(m literal.Member) (page, frame int64, err error) {
	page, pageOK := literal.Number{Text: m.Key}.Int()
	frame, frameOK := integerValue(m.Value)

	if !pageOK || !frameOK {
		return 0, 0, tableErrorf(
			"Invalid page table entry: %s: %s. Both must be numbers",
			m.Key, m.Value)
	}

	return page, frame, nil
}

func integerValue(v literal.Value) (int64, bool) {
	switch v := v.(type) {
	case literal.Number:
		return v.Int()
	case literal.String:
		return literal.Number{Text: v.Text}.Int()
	default:
		return 0, false
	}
}

func entryMustFit(pt *vm.PageTable, page, frame int64) error {
	if page < 0 || page >= vm.NumPages {
		return tableErrorf("Page %d is invalid. Pages must be between 0 and %d",
			page, vm.NumPages-1)
	}

	if frame != vm.FrameNotResident && (frame < 0 || frame >= vm.NumFrames) {
		return tableErrorf("Frame %d is invalid. Frames must be between 0 "+
			"and %d, or -1 for not loaded", frame, vm.NumFrames-1)
	}

	if _, found := pt.Lookup(uint64(page)); found {
		return tableErrorf("Page %d is mapped more than once", page)
	}

	if frame == vm.FrameNotResident {
		return nil
	}

	if owner, found := pt.FrameOwner(int(frame)); found {
		return tableErrorf("Frame %d is already assigned to page %d; "+
			"page %d cannot also use it. "+
			"Each frame can only be assigned to one page at a time",
			frame, owner, page)
	}

	return nil
}

// AddressesFromValue extracts logical addresses from a parsed array. It stops
// at the first address that is not a non-negative integer.
func AddressesFromValue(v literal.Value) ([]uint64, error) {
	arr, ok := v.(literal.Array)
	if !ok {
		return nil, addressErrorf(0,
			"Logical addresses must be a valid list/array. "+
				"Example: [0, 512, 1500, 2048]")
	}

	if len(arr.Elems) == 0 {
		return nil, addressErrorf(0,
			"Address list cannot be empty. "+
				"Please enter at least one logical address")
	}

	if len(arr.Elems) > MaxAddresses {
		return nil, addressErrorf(0,
			"Too many addresses! Maximum %d allowed, you entered %d",
			MaxAddresses, len(arr.Elems))
	}

	addrs := make([]uint64, 0, len(arr.Elems))
	for i, elem := range arr.Elems {
		addr, err := addressFromElem(i+1, elem)
		if err != nil {
			return nil, err
		}

		addrs = append(addrs, addr)
	}

	return addrs, nil
}

func addressFromElem(position int, elem literal.Value) (uint64, error) {
	n, ok := elem.(literal.Number)
	if !ok {
		return 0, addressErrorf(position,
			"Address at position %d is not a number: %s", position, elem)
	}

	if n.Negative() {
		return 0, addressErrorf(position,
			"Address at position %d is negative: %s. "+
				"Addresses must be non-negative", position, n)
	}

	i, ok := n.Int()
	if !ok {
		if f := n.Float(); math.IsInf(f, 1) || f == math.Trunc(f) {
			return 0, addressErrorf(position,
				"Address at position %d is too large: %s", position, n)
		}

		return 0, addressErrorf(position,
			"Address at position %d is not an integer: %s", position, n)
	}

	return uint64(i), nil
}
