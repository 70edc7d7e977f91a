package x12

import (
	"strconv"
	"strings"
)

type assemblerState uint8

const (
	stateAwaitingInterchange assemblerState = iota
	stateInInterchange
	stateInFunctionalGroup
	stateInTransactionSet
	stateComplete
)

// frame is one open envelope on the assembler stack. X12 envelopes nest
// without interleaving, so a strict LIFO discipline is enough; the stack
// exists so error paths can report the full nesting open at the failure.
type frame struct {
	name    string // "interchange", "functional group", "transaction set"
	control string
}

// assembler consumes the token sequence once and builds the document tree,
// validating envelope order and control-number agreement as it goes. It
// never aborts: every malformed transition comes back as a typed error.
type assembler struct {
	state    assemblerState
	loose    bool
	stack    []frame
	warnings *[]Warning

	interchange Interchange
	group       FunctionalGroup
	txn         TransactionSet
}

func newAssembler(loose bool, warnings *[]Warning) *assembler {
	return &assembler{state: stateAwaitingInterchange, loose: loose, warnings: warnings}
}

func (a *assembler) path() string {
	if len(a.stack) == 0 {
		return ""
	}
	parts := make([]string, len(a.stack))
	for i, f := range a.stack {
		parts[i] = f.name + " " + f.control
	}
	return strings.Join(parts, " > ")
}

func (a *assembler) push(name, control string) {
	a.stack = append(a.stack, frame{name: name, control: control})
}

func (a *assembler) pop() {
	a.stack = a.stack[:len(a.stack)-1]
}

func (a *assembler) unexpected(seg rawSegment, reason string) error {
	return &SegmentError{
		Err:        ErrUnexpectedSegment,
		Reason:     reason,
		RawSegment: seg.raw,
		Path:       a.path(),
	}
}

func (a *assembler) consume(seg rawSegment) error {
	switch seg.kind {
	case KindInterchangeHeader:
		return a.openInterchange(seg)
	case KindGroupHeader:
		return a.openGroup(seg)
	case KindTransactionHeader:
		return a.openTransaction(seg)
	case KindTransactionTrailer:
		return a.closeTransaction(seg)
	case KindGroupTrailer:
		return a.closeGroup(seg)
	case KindInterchangeTrailer:
		return a.closeInterchange(seg)
	default:
		return a.generic(seg)
	}
}

func (a *assembler) openInterchange(seg rawSegment) error {
	switch a.state {
	case stateAwaitingInterchange:
	case stateComplete:
		// Multiple top-level interchanges per input are unsupported.
		return a.unexpected(seg, "interchange header after the interchange already closed")
	default:
		return a.unexpected(seg, "nested interchange header")
	}
	h, err := materializeInterchangeHeader(seg)
	if err != nil {
		return err
	}
	a.interchange = Interchange{Header: h}
	a.push("interchange", h.ControlNumber)
	a.state = stateInInterchange
	return nil
}

func (a *assembler) openGroup(seg rawSegment) error {
	switch a.state {
	case stateInInterchange:
	case stateAwaitingInterchange, stateComplete:
		return a.unexpected(seg, "functional group opened with no enclosing interchange")
	default:
		return a.unexpected(seg, "functional group opened while another envelope is still open")
	}
	h, err := materializeGroupHeader(seg)
	if err != nil {
		return err
	}
	a.group = FunctionalGroup{Header: h}
	a.push("functional group", h.ControlNumber)
	a.state = stateInFunctionalGroup
	return nil
}

func (a *assembler) openTransaction(seg rawSegment) error {
	if a.state != stateInFunctionalGroup {
		return a.unexpected(seg, "transaction set opened with no enclosing functional group")
	}
	h, err := materializeTransactionHeader(seg)
	if err != nil {
		return err
	}
	a.txn = TransactionSet{Header: h}
	a.push("transaction set", h.ControlNumber)
	a.state = stateInTransactionSet
	return nil
}

func (a *assembler) generic(seg rawSegment) error {
	if a.state != stateInTransactionSet {
		return a.unexpected(seg, "segment without an enclosing transaction set")
	}
	a.txn.Segments = append(a.txn.Segments, Segment{
		ID:       seg.id,
		Kind:     KindGeneric,
		Elements: seg.elements,
	})
	return nil
}

func (a *assembler) closeTransaction(seg rawSegment) error {
	if a.state != stateInTransactionSet {
		return a.unexpected(seg, "transaction set trailer with no open transaction set")
	}
	count, control, err := a.trailerFields(seg)
	if err != nil {
		return err
	}
	if control != a.txn.Header.ControlNumber {
		return &SegmentError{
			Err:        ErrControlNumberMismatch,
			Reason:     "transaction set trailer control number disagrees with its header",
			RawSegment: seg.raw,
			Path:       a.path(),
			Expected:   a.txn.Header.ControlNumber,
			Got:        control,
		}
	}
	// SE01 counts the ST and SE segments themselves.
	if err := a.checkCount(seg, "declared segment count", count, len(a.txn.Segments)+2); err != nil {
		return err
	}
	a.txn.DeclaredSegmentCount = count
	a.txn.TrailerControlNumber = control
	a.group.Transactions = append(a.group.Transactions, a.txn)
	a.txn = TransactionSet{}
	a.pop()
	a.state = stateInFunctionalGroup
	return nil
}

func (a *assembler) closeGroup(seg rawSegment) error {
	switch a.state {
	case stateInFunctionalGroup:
	case stateInTransactionSet:
		return a.unexpected(seg, "functional group trailer with a transaction set still open")
	default:
		return a.unexpected(seg, "functional group trailer with no open functional group")
	}
	count, control, err := a.trailerFields(seg)
	if err != nil {
		return err
	}
	if control != a.group.Header.ControlNumber {
		return &SegmentError{
			Err:        ErrControlNumberMismatch,
			Reason:     "functional group trailer control number disagrees with its header",
			RawSegment: seg.raw,
			Path:       a.path(),
			Expected:   a.group.Header.ControlNumber,
			Got:        control,
		}
	}
	if err := a.checkCount(seg, "declared transaction set count", count, len(a.group.Transactions)); err != nil {
		return err
	}
	a.group.TrailerControlNumber = control
	a.interchange.Groups = append(a.interchange.Groups, a.group)
	a.group = FunctionalGroup{}
	a.pop()
	a.state = stateInInterchange
	return nil
}

func (a *assembler) closeInterchange(seg rawSegment) error {
	switch a.state {
	case stateInInterchange:
	case stateAwaitingInterchange, stateComplete:
		return a.unexpected(seg, "interchange trailer with no open interchange")
	default:
		return a.unexpected(seg, "interchange trailer while an inner envelope is still open")
	}
	count, control, err := a.trailerFields(seg)
	if err != nil {
		return err
	}
	if control != a.interchange.Header.ControlNumber {
		return &SegmentError{
			Err:        ErrControlNumberMismatch,
			Reason:     "interchange trailer control number disagrees with its header",
			RawSegment: seg.raw,
			Path:       a.path(),
			Expected:   a.interchange.Header.ControlNumber,
			Got:        control,
		}
	}
	if err := a.checkCount(seg, "declared functional group count", count, len(a.interchange.Groups)); err != nil {
		return err
	}
	a.interchange.TrailerControlNumber = control
	a.pop()
	a.state = stateComplete
	return nil
}

// trailerFields extracts the count and control number every trailer segment
// carries as its first two elements.
func (a *assembler) trailerFields(seg rawSegment) (count int, control string, err error) {
	if len(seg.elemRaw) < 3 {
		return 0, "", &SegmentError{
			Err:        ErrMalformedSegment,
			Reason:     seg.id + " trailer requires a count and a control number",
			RawSegment: seg.raw,
			Path:       a.path(),
		}
	}
	countText := strings.TrimSpace(seg.elemRaw[1])
	control = strings.TrimSpace(seg.elemRaw[2])
	count, convErr := strconv.Atoi(countText)
	if convErr != nil || count < 0 {
		return 0, "", &SegmentError{
			Err:        ErrFieldFormat,
			Reason:     seg.id + "01 count must be numeric",
			RawSegment: seg.raw,
			Path:       a.path(),
			Got:        countText,
		}
	}
	return count, control, nil
}

// checkCount compares a trailer's declared count with the number of items
// actually enclosed. Strict mode fails; loose mode records a warning.
func (a *assembler) checkCount(seg rawSegment, what string, declared, actual int) error {
	if declared == actual {
		return nil
	}
	if a.loose {
		*a.warnings = append(*a.warnings, Warning{
			Message:    what + " " + strconv.Itoa(declared) + " disagrees with actual count " + strconv.Itoa(actual),
			RawSegment: seg.raw,
		})
		return nil
	}
	return &SegmentError{
		Err:        ErrSegmentCount,
		Reason:     what + " disagrees with the enclosed count",
		RawSegment: seg.raw,
		Path:       a.path(),
		Expected:   strconv.Itoa(actual),
		Got:        strconv.Itoa(declared),
	}
}

// finish reports the outcome once the token sequence is exhausted.
func (a *assembler) finish() (Interchange, error) {
	if a.state != stateComplete {
		deepest := "interchange"
		if n := len(a.stack); n > 0 {
			f := a.stack[n-1]
			deepest = f.name + " " + f.control
		}
		return Interchange{}, &SegmentError{
			Err:    ErrUnclosedEnvelope,
			Reason: "input ended with " + deepest + " still open",
			Path:   a.path(),
		}
	}
	return a.interchange, nil
}
