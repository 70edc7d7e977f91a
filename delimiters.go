package x12

// detectDelimiters reads the separator characters from their fixed offsets
// in the ISA segment, which must open the input. The ISA segment is the one
// fixed-width segment in X12, so the element separator sits at byte 3, the
// component separator at byte 104, and the segment terminator at byte 105.
// Runs exactly once per parse; all later tokenization uses its output
// unconditionally.
func detectDelimiters(input []byte) (Delimiters, error) {
	if len(input) < minHeaderLen {
		return Delimiters{}, &SegmentError{
			Err:    ErrDelimiterDetection,
			Reason: "input is too short to hold an interchange header",
		}
	}
	if string(input[:3]) != idInterchangeHeader {
		return Delimiters{}, &SegmentError{
			Err:      ErrDelimiterDetection,
			Reason:   "input does not open with an interchange header",
			Expected: idInterchangeHeader,
			Got:      string(input[:3]),
		}
	}
	d := Delimiters{
		ElementSeparator:   input[elementSepOffset],
		ComponentSeparator: input[componentSepOffset],
		SegmentTerminator:  input[terminatorOffset],
	}
	// A fixed-width ISA repeats the element separator before ISA16. When it
	// is absent the header fields are not padded and none of the offsets
	// can be trusted.
	if input[lastElementSep] != d.ElementSeparator {
		return Delimiters{}, &SegmentError{
			Err:    ErrDelimiterDetection,
			Reason: "interchange header is not fixed-width",
		}
	}
	if d.ElementSeparator == d.ComponentSeparator ||
		d.ElementSeparator == d.SegmentTerminator ||
		d.ComponentSeparator == d.SegmentTerminator {
		return Delimiters{}, &SegmentError{
			Err:    ErrDelimiterDetection,
			Reason: "separator characters are not distinct",
		}
	}
	if r := repetitionSeparator(input); r != 0 {
		d.RepetitionSeparator = r
	}
	return d, nil
}

// repetitionSeparator returns the ISA11 byte when the document declares one,
// or zero. ISA11 holds the standards ID in versions before 00402 and the
// repetition separator from 00402 on; an alphanumeric or space byte there is
// a standards ID, not a separator.
func repetitionSeparator(input []byte) byte {
	version := string(input[versionOffset : versionOffset+5])
	if version < "00402" {
		return 0
	}
	r := input[repetitionSepOffset]
	if r == ' ' || isAlphanumeric(r) {
		return 0
	}
	return r
}

func isAlphanumeric(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
