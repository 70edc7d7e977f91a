package x12

// Limits bounds the work a parse will perform on untrusted input. A zero
// field means the corresponding default.
type Limits struct {
	// MaxInputLen caps the input length in bytes, measured after
	// decompression when the input is compressed.
	MaxInputLen uint64
	// MaxSegments caps the number of segments the tokenizer will emit.
	MaxSegments int
	// MaxElementsPerSegment caps the elements within one segment.
	MaxElementsPerSegment int
	// MaxComponentsPerElement caps the components within one element.
	MaxComponentsPerElement int
}

func defaultLimits() Limits {
	return Limits{
		MaxInputLen:             256 << 20, // 256 MiB
		MaxSegments:             1_000_000,
		MaxElementsPerSegment:   1_000,
		MaxComponentsPerElement: 100,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxInputLen == 0 {
		l.MaxInputLen = d.MaxInputLen
	}
	if l.MaxSegments == 0 {
		l.MaxSegments = d.MaxSegments
	}
	if l.MaxElementsPerSegment == 0 {
		l.MaxElementsPerSegment = d.MaxElementsPerSegment
	}
	if l.MaxComponentsPerElement == 0 {
		l.MaxComponentsPerElement = d.MaxComponentsPerElement
	}
	return l
}
