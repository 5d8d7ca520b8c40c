package jsonkit

import (
	"errors"
	"fmt"
)

// Parse failure codes (exported consts, one per violated grammar rule).
const (
	CodeInvalidValue       = "invalid_value"
	CodeInvalidStartIndex  = "invalid_start_index"
	CodeUnexpectedEnd      = "unexpected_end"
	CodeMissingObjectClose = "missing_object_close"
	CodeMissingKey         = "missing_key"
	CodeMissingColon       = "missing_colon"
	CodeDirectNesting      = "direct_nesting"
	CodeBadSeparator       = "bad_separator"
	CodeUnterminatedString = "unterminated_string"
	CodeIllegalEscape      = "illegal_escape"
)

// ParseError describes a single parse failure. The parser never returns
// a partial tree; the first violation aborts the whole parse. The Must*
// entry points panic with the same error the fallible ones return.
type ParseError struct {
	Code    string // One of the codes listed above.
	Message string
	Offset  int // Byte offset in the input where the violation was detected.
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Code, e.Offset, e.Message)
}

// AsParseError extracts a *ParseError from an error chain using
// errors.As internally.
func AsParseError(err error) (*ParseError, bool) {
	if err == nil {
		return nil, false
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
