package dted

import "errors"

// Error values distinguishing the decode failure modes. Every failure
// returned by this package wraps one of these, with field and offset
// context added via fmt.Errorf.
var (
	ErrShortInput  = errors.New("short_input")  // Fewer bytes than the field or record requires.
	ErrTagMismatch = errors.New("tag_mismatch") // A recognition sentinel did not match at its offset.
	ErrBadDigit    = errors.New("bad_digit")    // A non-digit byte inside a fixed-width decimal field.
)
