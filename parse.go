package x12

import (
	"fmt"
	"io"
	"strings"
)

// Parse reads one X12 interchange from input in strict mode: stray
// whitespace between segments, a declared count that disagrees with the
// enclosed count, a mismatched control number, and an out-of-order
// envelope segment are all hard failures.
//
// The returned error always wraps one of the package sentinels
// (ErrDelimiterDetection, ErrMalformedSegment, ErrUnexpectedSegment,
// ErrControlNumberMismatch, ErrSegmentCount, ErrFieldFormat,
// ErrUnclosedEnvelope, ErrLimitExceeded, ErrInvalidPayload); match with
// errors.Is. Parse never panics, whatever the input.
func Parse(input []byte, opts ...ParseOption) (*Document, error) {
	return parseDocument(input, false, opts)
}

// LooseParse reads one X12 interchange from input tolerantly: whitespace
// and line-break noise between segments is trimmed, and declared-count
// mismatches are downgraded to warnings on the returned Document.
// Structural violations (wrong envelope order, control-number mismatches
// between matching open/close pairs) remain hard failures.
func LooseParse(input []byte, opts ...ParseOption) (*Document, error) {
	return parseDocument(input, true, opts)
}

// ParseReader reads r to completion, bounded by Limits.MaxInputLen, and
// parses it in strict mode.
func ParseReader(r io.Reader, opts ...ParseOption) (*Document, error) {
	input, err := readInput(r, opts)
	if err != nil {
		return nil, err
	}
	return Parse(input, opts...)
}

// LooseParseReader reads r to completion, bounded by Limits.MaxInputLen,
// and parses it in loose mode.
func LooseParseReader(r io.Reader, opts ...ParseOption) (*Document, error) {
	input, err := readInput(r, opts)
	if err != nil {
		return nil, err
	}
	return LooseParse(input, opts...)
}

func readInput(r io.Reader, opts []ParseOption) ([]byte, error) {
	cfg := newParseConfig(opts)
	// The cap here is on the bytes read; a compressed input is bounded
	// again after decompression.
	b, err := io.ReadAll(io.LimitReader(r, int64(cfg.limits.MaxInputLen)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > cfg.limits.MaxInputLen {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrLimitExceeded, cfg.limits.MaxInputLen)
	}
	return b, nil
}

func newParseConfig(opts []ParseOption) parseConfig {
	cfg := parseConfig{limits: defaultLimits(), compression: CompAuto}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

// parseDocument is the single-pass pipeline behind both entry points:
// decompress, detect delimiters, tokenize, assemble. Each call owns its own
// delimiter set, assembler stack and output tree, so concurrent calls need
// no synchronization.
func parseDocument(input []byte, loose bool, opts []ParseOption) (*Document, error) {
	cfg := newParseConfig(opts)

	input, err := decompressInput(cfg.compression, input, cfg.limits.MaxInputLen)
	if err != nil {
		return nil, err
	}

	var warnings []Warning
	if loose {
		if trimmed := strings.TrimLeft(string(input), " \t\r\n"); len(trimmed) != len(input) {
			warnings = append(warnings, Warning{Message: "trimmed whitespace before interchange header"})
			input = []byte(trimmed)
		}
	}

	delims, err := detectDelimiters(input)
	if err != nil {
		return nil, err
	}

	tok := newTokenizer(string(input), delims, loose, cfg.limits, &warnings)
	asm := newAssembler(loose, &warnings)
	for {
		seg, ok, err := tok.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := asm.consume(seg); err != nil {
			return nil, err
		}
	}
	interchange, err := asm.finish()
	if err != nil {
		return nil, err
	}

	return &Document{
		Delimiters:  delims,
		Interchange: interchange,
		Warnings:    warnings,
	}, nil
}
