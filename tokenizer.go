package x12

import "strings"

// rawSegment is one tokenized segment before the assembler has decided what
// it is. elemRaw keeps each element's verbatim text alongside the
// component-split form: the header materializers read elemRaw because the
// ISA16 element is the component separator character itself and must not be
// component-split.
type rawSegment struct {
	raw      string
	id       string
	kind     SegmentKind
	elemRaw  []string
	elements []Element
}

// tokenizer splits the input into segments lazily, one next call at a time.
// It knows nothing about envelope structure; strict and loose mode differ
// only in how whitespace noise around segment terminators is handled.
type tokenizer struct {
	rest     string
	delims   Delimiters
	loose    bool
	limits   Limits
	warnings *[]Warning
	emitted  int
}

func newTokenizer(input string, delims Delimiters, loose bool, limits Limits, warnings *[]Warning) *tokenizer {
	return &tokenizer{rest: input, delims: delims, loose: loose, limits: limits, warnings: warnings}
}

// next returns the next segment, or ok == false at end of input. A final
// segment without a trailing terminator is accepted in both modes.
func (t *tokenizer) next() (seg rawSegment, ok bool, err error) {
	for t.rest != "" {
		var chunk string
		if i := strings.IndexByte(t.rest, t.delims.SegmentTerminator); i >= 0 {
			chunk, t.rest = t.rest[:i], t.rest[i+1:]
		} else {
			chunk, t.rest = t.rest, ""
		}
		if chunk == "" {
			continue
		}
		if trimmed := strings.TrimSpace(chunk); trimmed != chunk {
			if !t.loose {
				return rawSegment{}, false, &SegmentError{
					Err:        ErrMalformedSegment,
					Reason:     "whitespace adjacent to segment terminator",
					RawSegment: chunk,
				}
			}
			*t.warnings = append(*t.warnings, Warning{
				Message:    "trimmed whitespace around segment",
				RawSegment: chunk,
			})
			chunk = trimmed
			if chunk == "" {
				continue
			}
		}
		t.emitted++
		if t.emitted > t.limits.MaxSegments {
			return rawSegment{}, false, &SegmentError{
				Err:    ErrLimitExceeded,
				Reason: "too many segments",
			}
		}
		seg, err = t.split(chunk)
		if err != nil {
			return rawSegment{}, false, err
		}
		return seg, true, nil
	}
	return rawSegment{}, false, nil
}

// split breaks one segment's text into elements and components.
func (t *tokenizer) split(chunk string) (rawSegment, error) {
	elemRaw := strings.Split(chunk, string(t.delims.ElementSeparator))
	if len(elemRaw) > t.limits.MaxElementsPerSegment {
		return rawSegment{}, &SegmentError{
			Err:        ErrLimitExceeded,
			Reason:     "too many elements in segment",
			RawSegment: chunk,
		}
	}
	id := elemRaw[0]
	if id == "" {
		return rawSegment{}, &SegmentError{
			Err:        ErrMalformedSegment,
			Reason:     "segment has an empty segment-ID code",
			RawSegment: chunk,
		}
	}
	elements := make([]Element, len(elemRaw)-1)
	for i, raw := range elemRaw[1:] {
		comps := strings.Split(raw, string(t.delims.ComponentSeparator))
		if len(comps) > t.limits.MaxComponentsPerElement {
			return rawSegment{}, &SegmentError{
				Err:        ErrLimitExceeded,
				Reason:     "too many components in element",
				RawSegment: chunk,
			}
		}
		elements[i] = Element{Components: comps}
	}
	return rawSegment{
		raw:      chunk,
		id:       id,
		kind:     segmentKind(id),
		elemRaw:  elemRaw,
		elements: elements,
	}, nil
}
