package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// PageSize is the number of bytes in a page and in a frame.
type PageSize uint64

// DefaultPageSize is the page size used when none is selected.
const DefaultPageSize PageSize = 1024

// AllowedPageSizes lists the page sizes a session can select.
var AllowedPageSizes = []PageSize{512, 1024, 2048, 4096}

// Validate returns an error if the page size is not one of the allowed sizes.
func (s PageSize) Validate() error {
	for _, allowed := range AllowedPageSizes {
		if s == allowed {
			return nil
		}
	}

	return fmt.Errorf("page size %d is not supported, choose one of %s",
		uint64(s), allowedList())
}

// ParsePageSize parses a decimal page size and validates it.
func ParsePageSize(s string) (PageSize, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid page size %q: %w", s, err)
	}

	size := PageSize(n)
	if err := size.Validate(); err != nil {
		return 0, err
	}

	return size, nil
}

func allowedList() string {
	parts := make([]string, len(AllowedPageSizes))
	for i, s := range AllowedPageSizes {
		parts[i] = strconv.FormatUint(uint64(s), 10)
	}

	return strings.Join(parts, ", ")
}
