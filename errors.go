package x12

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDelimiterDetection is returned when the input is too short to hold
	// an ISA segment or the ISA segment is missing or not fixed-width.
	ErrDelimiterDetection = errors.New("x12: delimiter detection failed")

	// ErrMalformedSegment is returned when a segment cannot be tokenized or
	// is missing required elements.
	ErrMalformedSegment = errors.New("x12: malformed segment")

	// ErrUnexpectedSegment is returned when a segment arrives while the
	// assembler is in a state that cannot accept it.
	ErrUnexpectedSegment = errors.New("x12: unexpected segment")

	// ErrControlNumberMismatch is returned when a trailer's control number
	// disagrees with its matching header. Fatal in both parse modes.
	ErrControlNumberMismatch = errors.New("x12: control number mismatch")

	// ErrUnclosedEnvelope is returned when the input ends with one or more
	// envelope frames still open.
	ErrUnclosedEnvelope = errors.New("x12: unclosed envelope")

	// ErrFieldFormat is returned when a header field fails its expected
	// shape, e.g. a date field that is not all digits.
	ErrFieldFormat = errors.New("x12: field format violation")

	// ErrSegmentCount is returned by strict parsing when a trailer's
	// declared count disagrees with the number of items actually enclosed.
	ErrSegmentCount = errors.New("x12: declared count mismatch")

	// ErrIndexOutOfRange is returned by the element and component accessors
	// for positions the segment does not have.
	ErrIndexOutOfRange = errors.New("x12: index out of range")

	// ErrLimitExceeded is returned when the input exceeds a configured
	// Limits field.
	ErrLimitExceeded = errors.New("x12: limit exceeded")

	// ErrInvalidPayload is returned when a compressed input cannot be
	// decompressed.
	ErrInvalidPayload = errors.New("x12: invalid compressed payload")
)

// SegmentError wraps one of the sentinel errors with the diagnostics the
// engine has at the point of failure: the verbatim segment text, the chain
// of envelopes currently open, and the expected/got pair for mismatches.
// Callers match on the sentinel with errors.Is.
type SegmentError struct {
	// Err is the sentinel classifying this failure.
	Err error
	// Reason describes the specific violation.
	Reason string
	// RawSegment is the verbatim text of the offending segment, empty when
	// the failure is not tied to one segment.
	RawSegment string
	// Path names the envelopes open when the failure occurred, e.g.
	// "interchange 000000001 > functional group 1". Empty at the top level.
	Path string
	// Expected and Got carry both sides of a mismatch, empty otherwise.
	Expected string
	Got      string
}

func (e *SegmentError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Expected != "" || e.Got != "" {
		fmt.Fprintf(&b, " (expected %q, got %q)", e.Expected, e.Got)
	}
	if e.RawSegment != "" {
		fmt.Fprintf(&b, " in segment %q", e.RawSegment)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	return b.String()
}

func (e *SegmentError) Unwrap() error { return e.Err }
