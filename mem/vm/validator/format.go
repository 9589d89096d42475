// Package validator checks page tables and address lists typed by users. It
// rejects malformed text before parsing and out-of-range values after.
package validator

import "strings"

const (
	msgEmptyPageTable = "Please enter a page table"
	msgEmptyAddresses = "Please enter logical addresses"
)

// FormatCheck is the result of a shape check.
type FormatCheck struct {
	Valid   bool
	Message string
}

func valid() FormatCheck {
	return FormatCheck{Valid: true}
}

func invalid(msg string) FormatCheck {
	return FormatCheck{Valid: false, Message: msg}
}

// Err converts a failed check into a FormatError for the field. It returns
// nil for a valid check.
func (c FormatCheck) Err(field Field) error {
	if c.Valid {
		return nil
	}

	return &FormatError{Field: field, Message: c.Message}
}

// ValidateDictionaryFormat checks that the text is wrapped in curly braces.
// Square brackets get their own message since they are the usual mix-up.
func ValidateDictionaryFormat(text string) FormatCheck {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return invalid(msgEmptyPageTable)
	}

	if strings.HasPrefix(trimmed, "[") || strings.HasSuffix(trimmed, "]") {
		return invalid(
			"Page table should use curly braces { } not square brackets [ ]")
	}

	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return invalid(
			"Page table must be in dictionary format: {key: value, ...}")
	}

	return valid()
}

// ValidateListFormat checks that the text is wrapped in square brackets.
func ValidateListFormat(text string) FormatCheck {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return invalid(msgEmptyAddresses)
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasSuffix(trimmed, "}") {
		return invalid(
			"Logical addresses should use square brackets [ ] not curly braces { }")
	}

	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return invalid(
			"Logical addresses must be in list format: [value1, value2, ...]")
	}

	return valid()
}

// ValidateFormats checks both inputs of a run. Missing inputs are reported
// before malformed ones.
func ValidateFormats(pageTable, addresses string) error {
	if strings.TrimSpace(pageTable) == "" {
		return &FormatError{Field: FieldPageTable, Message: msgEmptyPageTable}
	}

	if strings.TrimSpace(addresses) == "" {
		return &FormatError{Field: FieldAddresses, Message: msgEmptyAddresses}
	}

	if err := ValidateDictionaryFormat(pageTable).Err(FieldPageTable); err != nil {
		return err
	}

	return ValidateListFormat(addresses).Err(FieldAddresses)
}
