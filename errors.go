package jsonvalue

import (
	"fmt"

	"github.com/pkg/errors"
)

// Status is the flat fail-fast/fail-once error enumeration of the parser.
// StatusSuccess and StatusAbsentValue are not errors: StatusSuccess means a
// value was parsed, StatusAbsentValue is the internal sentinel meaning a
// closing delimiter was found where a value was expected (see Parse).
type Status uint8

const (
	StatusSuccess Status = iota
	StatusAbsentValue
	StatusBadDouble
	StatusBadNegative
	StatusBadExponent
	StatusMissingComma
	StatusMissingColon
	StatusMalformedUTF8
	StatusDepthExceeded
	StatusUnexpectedEOF
	StatusOverlongASCII
	StatusUnexpectedComma
	StatusUnexpectedColon
	StatusUnexpectedOctal
	StatusTrailingContent
	StatusIllegalCharacter
	StatusInvalidHexEscape
	StatusOverlongUTF8_0x7FF
	StatusOverlongUTF8_0xFFFF
	StatusObjectMissingValue
	StatusIllegalUTF8Character
	StatusInvalidUnicodeEscape
	StatusUTF16SurrogateInUTF8
	StatusUnexpectedEndOfArray
	StatusHexEscapeNotPrintable
	StatusInvalidEscapeCharacter
	StatusUTF8ExceedsUTF16Range
	StatusUnexpectedEndOfString
	StatusUnexpectedEndOfObject
	StatusObjectKeyMustBeString
	StatusC1ControlCodeInString
	StatusNonDelC0ControlCodeInString
	statusCount // sizes/validates the String() table; not part of the API
)

var statusNames = [statusCount]string{
	StatusSuccess:                     "success",
	StatusAbsentValue:                 "absent_value",
	StatusBadDouble:                   "bad_double",
	StatusBadNegative:                 "bad_negative",
	StatusBadExponent:                 "bad_exponent",
	StatusMissingComma:                "missing_comma",
	StatusMissingColon:                "missing_colon",
	StatusMalformedUTF8:               "malformed_utf8",
	StatusDepthExceeded:               "depth_exceeded",
	StatusUnexpectedEOF:               "unexpected_eof",
	StatusOverlongASCII:               "overlong_ascii",
	StatusUnexpectedComma:             "unexpected_comma",
	StatusUnexpectedColon:             "unexpected_colon",
	StatusUnexpectedOctal:             "unexpected_octal",
	StatusTrailingContent:             "trailing_content",
	StatusIllegalCharacter:            "illegal_character",
	StatusInvalidHexEscape:            "invalid_hex_escape",
	StatusOverlongUTF8_0x7FF:          "overlong_utf8_0x7ff",
	StatusOverlongUTF8_0xFFFF:         "overlong_utf8_0xffff",
	StatusObjectMissingValue:          "object_missing_value",
	StatusIllegalUTF8Character:        "illegal_utf8_character",
	StatusInvalidUnicodeEscape:        "invalid_unicode_escape",
	StatusUTF16SurrogateInUTF8:        "utf16_surrogate_in_utf8",
	StatusUnexpectedEndOfArray:        "unexpected_end_of_array",
	StatusHexEscapeNotPrintable:       "hex_escape_not_printable",
	StatusInvalidEscapeCharacter:      "invalid_escape_character",
	StatusUTF8ExceedsUTF16Range:       "utf8_exceeds_utf16_range",
	StatusUnexpectedEndOfString:       "unexpected_end_of_string",
	StatusUnexpectedEndOfObject:       "unexpected_end_of_object",
	StatusObjectKeyMustBeString:       "object_key_must_be_string",
	StatusC1ControlCodeInString:       "c1_control_code_in_string",
	StatusNonDelC0ControlCodeInString: "non_del_c0_control_code_in_string",
}

// String is the status_to_string operation of the public API.
func (s Status) String() string {
	if int(s) < len(statusNames) && statusNames[s] != "" {
		return statusNames[s]
	}
	return "internal_error_unreachable_code"
}

// ErrNotArrayOrObject is returned by path operations performed on a
// standalone (non-container) Value. Kept from the teacher's errors.go.
var ErrNotArrayOrObject = errors.New("not array or object")

// ParseError reports where and why Parse stopped. It plays the role the
// teacher's ParseError/token pair played, but is built from a Status and a
// byte offset into the input rather than from a lexer token, since Parse
// is a single-pass scan over a byte slice rather than a token stream.
type ParseError struct {
	Status Status
	Offset int
	Row    int
	Col    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonvalue: %s at offset %d (line %d, column %d)",
		e.Status, e.Offset, e.Row+1, e.Col+1)
}

// Where returns the row and column where the syntax error occurred.
func (e *ParseError) Where() (row, col int) {
	return e.Row, e.Col
}

func newParseError(status Status, data []byte, offset int) error {
	row, col := 0, 0
	if offset > len(data) {
		offset = len(data)
	}
	for _, b := range data[:offset] {
		if b == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return errors.Wrapf(&ParseError{Status: status, Offset: offset, Row: row, Col: col}, "parse")
}

// TypeError is the panic value raised by a Value accessor when the Kind of
// the receiver does not match the accessor called — a programmer error per
// spec, not a parse error, and therefore never returned.
type TypeError struct {
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("jsonvalue: type mismatch: want %s, got %s", e.Want, e.Got)
}

func mismatch(want, got Kind) {
	panic(&TypeError{Want: want, Got: got})
}
