package x12

import "strconv"

// SegmentKind tags a segment by the role its segment-ID code plays in the
// envelope structure. Every code that is not an envelope open or close maps
// to KindGeneric; the engine attaches no meaning to generic codes because
// segment semantics require a transaction-specific implementation guide.
type SegmentKind uint8

const (
	KindGeneric SegmentKind = iota
	KindInterchangeHeader
	KindInterchangeTrailer
	KindGroupHeader
	KindGroupTrailer
	KindTransactionHeader
	KindTransactionTrailer
)

func segmentKind(id string) SegmentKind {
	switch id {
	case idInterchangeHeader:
		return KindInterchangeHeader
	case idInterchangeTrailer:
		return KindInterchangeTrailer
	case idGroupHeader:
		return KindGroupHeader
	case idGroupTrailer:
		return KindGroupTrailer
	case idTransactionHeader:
		return KindTransactionHeader
	case idTransactionTrailer:
		return KindTransactionTrailer
	default:
		return KindGeneric
	}
}

// Element is one field of a segment. It holds at least one component;
// multiple components occur only when the element contains the component
// separator.
type Element struct {
	Components []string
}

// Value returns the first component. For the common single-component
// element this is the whole field.
func (e Element) Value() string {
	if len(e.Components) == 0 {
		return ""
	}
	return e.Components[0]
}

// Component returns the component at the 1-based position n.
func (e Element) Component(n int) (string, error) {
	if n < 1 || n > len(e.Components) {
		return "", &SegmentError{
			Err:    ErrIndexOutOfRange,
			Reason: "no component at position " + strconv.Itoa(n),
		}
	}
	return e.Components[n-1], nil
}

// Segment is one record within a transaction set, tagged by its segment-ID
// code. Elements are kept exactly as tokenized.
type Segment struct {
	ID       string
	Kind     SegmentKind
	Elements []Element
}

// Element returns the element at the 1-based position n, following the X12
// convention where e.g. position 1 of a REF segment is REF01. The segment-ID
// code itself is not addressable as an element.
func (s Segment) Element(n int) (Element, error) {
	if n < 1 || n > len(s.Elements) {
		return Element{}, &SegmentError{
			Err:        ErrIndexOutOfRange,
			Reason:     "segment " + s.ID + " has no element at position " + strconv.Itoa(n),
			RawSegment: s.ID,
		}
	}
	return s.Elements[n-1], nil
}
