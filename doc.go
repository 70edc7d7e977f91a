// Package x12 parses ANSI X12 EDI interchanges into a navigable document
// tree.
//
// X12 is a positional, delimiter-based interchange format used in
// logistics, healthcare, and commerce transactions. A document is a single
// interchange envelope (ISA/IEA) containing functional groups (GS/GE),
// which contain transaction sets (ST/SE), which contain data segments. The
// separator characters are not fixed by the standard: each document
// declares its own element separator, component separator, and segment
// terminator at fixed byte offsets inside the fixed-width ISA header, and
// this package detects them before tokenizing.
//
// # Basic Usage
//
//	doc, err := x12.Parse(input)
//	if err != nil {
//		// handle error
//	}
//	for _, group := range doc.Interchange.Groups {
//		for _, txn := range group.Transactions {
//			for _, seg := range txn.Segments {
//				// seg.ID, seg.Elements
//			}
//		}
//	}
//
// Parse is strict: stray whitespace between segments, declared counts that
// disagree with the enclosed counts, mismatched control numbers, and
// out-of-order envelope segments are all hard failures. LooseParse
// tolerates whitespace noise and count mismatches, downgrading them to
// warnings on the returned Document; envelope order and control-number
// agreement remain hard failures in both modes.
//
// Every failure wraps one of the package sentinel errors and can be
// matched with errors.Is:
//
//	_, err := x12.Parse(input)
//	if errors.Is(err, x12.ErrControlNumberMismatch) {
//		// truncated or reordered document
//	}
//
// # Compressed Input
//
// Interchanges are often transferred compressed. By default the parser
// sniffs gzip, Zstandard, LZ4 and ZIP magic bytes and decompresses before
// delimiter detection; Brotli has no magic bytes and is selected with
// WithCompression(CompBR). Decompressed size is bounded by Limits to
// prevent decompression bombs.
//
// # Scope
//
// The package models segments generically: it attaches no meaning to
// segment codes beyond the envelope structure, and it does not detect
// loops, because both require a transaction-specific implementation guide.
// Only one top-level interchange per input is supported. Re-encoding a
// Document back to X12 text is not implemented; the tree exposes fully
// exported fields so an external serializer can walk it.
//
// # Concurrency
//
// Parsing is a pure function over the input buffer. Each call owns all of
// its state, so concurrent calls from independent goroutines need no
// synchronization.
package x12
