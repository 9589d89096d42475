package validator

// Field names the input a validation error refers to.
type Field string

// The two inputs of a translation run.
const (
	FieldPageTable Field = "page_table"
	FieldAddresses Field = "addresses"
)

// A FormatError reports text that does not have the shape of the expected
// literal. Nothing is parsed when it happens.
type FormatError struct {
	Field   Field
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// A ParseError reports text with the right shape but invalid literal syntax.
type ParseError struct {
	Field   Field
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	return e.Message
}

// Unwrap returns the underlying syntax error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// A SemanticError reports a parsed value that breaks a domain bound.
// Position is the 1-based index of the offending address, or 0 when the error
// is not about a single address.
type SemanticError struct {
	Field    Field
	Position int
	Message  string
}

func (e *SemanticError) Error() string {
	return e.Message
}
