package bcbp

import (
	"errors"
	"fmt"
)

// Decode failures. Every error returned by Parse is one of these, either
// directly or wrapped in a FieldError naming the field being read.
var (
	ErrUnexpectedEndOfInput        = errors.New("bcbp: unexpected end of input")
	ErrSubsectionTooLong           = errors.New("bcbp: subsection longer than remaining input")
	ErrExpectedInteger             = errors.New("bcbp: expected integer")
	ErrInvalidStartOfVersionNumber = errors.New("bcbp: invalid start of version number")
	ErrInvalidStartOfSecurityData  = errors.New("bcbp: invalid start of security data")
	ErrInvalidCharacters           = errors.New("bcbp: input contains non-ASCII characters")
	ErrUnsupportedFormat           = errors.New("bcbp: unsupported format code")
	ErrTrailingCharacters          = errors.New("bcbp: trailing characters after boarding pass")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrUnexpectedEndOfInput, "unexpected_end_of_input"},
	{ErrSubsectionTooLong, "subsection_too_long"},
	{ErrExpectedInteger, "expected_integer"},
	{ErrInvalidStartOfVersionNumber, "invalid_start_of_version_number"},
	{ErrInvalidStartOfSecurityData, "invalid_start_of_security_data"},
	{ErrInvalidCharacters, "invalid_characters"},
	{ErrUnsupportedFormat, "unsupported_format"},
	{ErrTrailingCharacters, "trailing_characters"},
}

// FieldError reports the field whose check failed. It is a plain value, so two
// results of Parse on the same input compare equal with ==.
type FieldError struct {
	Field Field
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Field)
}

func (e FieldError) Unwrap() error {
	return e.Err
}

func fieldError(f Field, err error) error {
	return FieldError{Field: f, Err: err}
}

// ErrorCode returns a short stable label for a decode error, suitable for
// metric labels and storage. Errors not produced by this package map to
// "unknown"; nil maps to "".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "unknown"
}
