package x12

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// sampleDelimiters is the conventional separator set most trading partners
// use.
var sampleDelimiters = Delimiters{
	ElementSeparator:   '*',
	ComponentSeparator: '>',
	SegmentTerminator:  '~',
}

// buildISA renders a fixed-width ISA segment, padded per the standard, with
// the given separators. standardsID lands in ISA11 and version in ISA12.
func buildISA(d Delimiters, standardsID, version, control string) string {
	type field struct {
		value string
		width int
	}
	layout := []field{
		{"00", 2},             // ISA01
		{"", 10},              // ISA02
		{"00", 2},             // ISA03
		{"", 10},              // ISA04
		{"ZZ", 2},             // ISA05
		{"SENDERISA", 15},     // ISA06
		{"14", 2},             // ISA07
		{"0073268795005", 15}, // ISA08
		{"020226", 6},         // ISA09
		{"1534", 4},           // ISA10
		{standardsID, 1},      // ISA11
		{version, 5},          // ISA12
		{control, 9},          // ISA13
		{"0", 1},              // ISA14
		{"T", 1},              // ISA15
	}
	var b strings.Builder
	b.WriteString("ISA")
	for _, f := range layout {
		b.WriteByte(d.ElementSeparator)
		b.WriteString(f.value)
		for i := len(f.value); i < f.width; i++ {
			b.WriteByte(' ')
		}
	}
	b.WriteByte(d.ElementSeparator)
	b.WriteByte(d.ComponentSeparator)
	b.WriteByte(d.SegmentTerminator)
	return b.String()
}

// buildEDI renders the minimal well-formed document: one interchange, one
// functional group, one transaction set, one generic segment, matching
// trailers at every level.
func buildEDI(d Delimiters) string {
	seg := func(elements ...string) string {
		return strings.Join(elements, string(d.ElementSeparator)) + string(d.SegmentTerminator)
	}
	var b strings.Builder
	b.WriteString(buildISA(d, "U", "00401", "000000001"))
	b.WriteString(seg("GS", "PO", "SENDERGS", "007326879", "20020226", "1534", "1", "X", "004010"))
	b.WriteString(seg("ST", "850", "0001"))
	b.WriteString(seg("BEG", "00", "NE", "4500012345", "", "20020226"))
	b.WriteString(seg("SE", "3", "0001"))
	b.WriteString(seg("GE", "1", "1"))
	b.WriteString(seg("IEA", "1", "000000001"))
	return b.String()
}

func sampleEDI() string { return buildEDI(sampleDelimiters) }

func TestParse_MinimalDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleEDI()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Warnings) != 0 {
		t.Fatalf("expected zero warnings, got %v", doc.Warnings)
	}
	if doc.Delimiters != sampleDelimiters {
		t.Fatalf("delimiters mismatch: %#v", doc.Delimiters)
	}
	ic := doc.Interchange
	if len(ic.Groups) != 1 {
		t.Fatalf("expected 1 functional group, got %d", len(ic.Groups))
	}
	group := ic.Groups[0]
	if len(group.Transactions) != 1 {
		t.Fatalf("expected 1 transaction set, got %d", len(group.Transactions))
	}
	txn := group.Transactions[0]
	if len(txn.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(txn.Segments))
	}
	seg := txn.Segments[0]
	if seg.ID != "BEG" || seg.Kind != KindGeneric {
		t.Fatalf("unexpected segment: %#v", seg)
	}
	if txn.DeclaredSegmentCount != 3 {
		t.Fatalf("expected declared count 3, got %d", txn.DeclaredSegmentCount)
	}
	if ic.TrailerControlNumber != ic.Header.ControlNumber {
		t.Fatalf("interchange control numbers disagree: %q vs %q", ic.TrailerControlNumber, ic.Header.ControlNumber)
	}
}

func TestParse_InterchangeHeaderFields(t *testing.T) {
	doc, err := Parse([]byte(sampleEDI()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := InterchangeHeader{
		AuthorizationQualifier:  "00",
		SecurityQualifier:       "00",
		SenderQualifier:         "ZZ",
		SenderID:                "SENDERISA",
		ReceiverQualifier:       "14",
		ReceiverID:              "0073268795005",
		Date:                    "020226",
		Time:                    "1534",
		StandardsID:             "U",
		Version:                 "00401",
		ControlNumber:           "000000001",
		AcknowledgmentRequested: "0",
		UsageIndicator:          "T",
	}
	if got := doc.Interchange.Header; got != want {
		t.Fatalf("interchange header mismatch\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestParse_GroupAndTransactionHeaderFields(t *testing.T) {
	doc, err := Parse([]byte(sampleEDI()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	gotGroup := doc.Interchange.Groups[0].Header
	wantGroup := FunctionalGroupHeader{
		FunctionalIdentifierCode: "PO",
		ApplicationSenderCode:    "SENDERGS",
		ApplicationReceiverCode:  "007326879",
		Date:                     "20020226",
		Time:                     "1534",
		ControlNumber:            "1",
		ResponsibleAgencyCode:    "X",
		Version:                  "004010",
	}
	if gotGroup != wantGroup {
		t.Fatalf("group header mismatch\nwant: %#v\ngot:  %#v", wantGroup, gotGroup)
	}
	gotTxn := doc.Interchange.Groups[0].Transactions[0].Header
	wantTxn := TransactionSetHeader{
		IDCode:        "850",
		Name:          "Purchase Order",
		ControlNumber: "0001",
	}
	if gotTxn != wantTxn {
		t.Fatalf("transaction header mismatch\nwant: %#v\ngot:  %#v", wantTxn, gotTxn)
	}
}

func TestParse_DelimiterAgnostic(t *testing.T) {
	alt := Delimiters{ElementSeparator: '|', ComponentSeparator: ':', SegmentTerminator: '!'}
	want, err := Parse([]byte(sampleEDI()))
	if err != nil {
		t.Fatalf("Parse standard delimiters: %v", err)
	}
	got, err := Parse([]byte(buildEDI(alt)))
	if err != nil {
		t.Fatalf("Parse alternate delimiters: %v", err)
	}
	if got.Delimiters != alt {
		t.Fatalf("expected detected delimiters %#v, got %#v", alt, got.Delimiters)
	}
	// The trees must agree element for element once the delimiter sets are
	// put aside.
	got.Delimiters = want.Delimiters
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("document mismatch\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestParse_NewlineTerminator(t *testing.T) {
	d := Delimiters{ElementSeparator: '*', ComponentSeparator: '>', SegmentTerminator: '\n'}
	doc, err := Parse([]byte(buildEDI(d)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Delimiters.SegmentTerminator != '\n' {
		t.Fatalf("expected newline terminator, got %q", doc.Delimiters.SegmentTerminator)
	}
}

func TestParse_RepetitionSeparator(t *testing.T) {
	d := sampleDelimiters
	var b strings.Builder
	seg := func(elements ...string) string {
		return strings.Join(elements, string(d.ElementSeparator)) + string(d.SegmentTerminator)
	}
	b.WriteString(buildISA(d, "^", "00501", "000000001"))
	b.WriteString(seg("GS", "PO", "SENDERGS", "007326879", "20020226", "1534", "1", "X", "005010"))
	b.WriteString(seg("ST", "837", "0001"))
	b.WriteString(seg("BHT", "0019", "00", "0123", "20020226", "1534", "CH"))
	b.WriteString(seg("SE", "3", "0001"))
	b.WriteString(seg("GE", "1", "1"))
	b.WriteString(seg("IEA", "1", "000000001"))

	doc, err := Parse([]byte(b.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Delimiters.RepetitionSeparator != '^' {
		t.Fatalf("expected repetition separator '^', got %q", doc.Delimiters.RepetitionSeparator)
	}
	if doc.Interchange.Groups[0].Transactions[0].Header.Name != "Health Care Claim" {
		t.Fatalf("unexpected transaction name %q", doc.Interchange.Groups[0].Transactions[0].Header.Name)
	}
}

func TestParse_NoRepetitionSeparatorBefore00402(t *testing.T) {
	doc, err := Parse([]byte(sampleEDI()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Delimiters.RepetitionSeparator != 0 {
		t.Fatalf("expected no repetition separator, got %q", doc.Delimiters.RepetitionSeparator)
	}
}

func TestParse_MultipleTransactionsAndGroups(t *testing.T) {
	d := sampleDelimiters
	seg := func(elements ...string) string {
		return strings.Join(elements, string(d.ElementSeparator)) + string(d.SegmentTerminator)
	}
	var b strings.Builder
	b.WriteString(buildISA(d, "U", "00401", "000001320"))
	b.WriteString(seg("GS", "IN", "4405197800", "999999999", "20101205", "1710", "1320", "X", "004010"))
	b.WriteString(seg("ST", "810", "1004"))
	b.WriteString(seg("BIG", "20101204", "217224", "20101204", "P792940"))
	b.WriteString(seg("REF", "DP", "099"))
	b.WriteString(seg("SE", "4", "1004"))
	b.WriteString(seg("ST", "810", "1005"))
	b.WriteString(seg("BIG", "20101204", "217225"))
	b.WriteString(seg("SE", "3", "1005"))
	b.WriteString(seg("GE", "2", "1320"))
	b.WriteString(seg("GS", "PO", "4405197800", "999999999", "20101205", "1710", "1321", "X", "004010"))
	b.WriteString(seg("ST", "850", "2001"))
	b.WriteString(seg("BEG", "00", "NE", "4500012345"))
	b.WriteString(seg("SE", "3", "2001"))
	b.WriteString(seg("GE", "1", "1321"))
	b.WriteString(seg("IEA", "2", "000001320"))

	doc, err := Parse([]byte(b.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Interchange.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(doc.Interchange.Groups))
	}
	if len(doc.Interchange.Groups[0].Transactions) != 2 {
		t.Fatalf("expected 2 transactions in first group, got %d", len(doc.Interchange.Groups[0].Transactions))
	}
	if got := doc.Interchange.Groups[0].Transactions[0].Segments; len(got) != 2 {
		t.Fatalf("expected 2 segments in first transaction, got %d", len(got))
	}
	if name := doc.Interchange.Groups[0].Transactions[0].Header.Name; name != "Invoice" {
		t.Fatalf("expected Invoice, got %q", name)
	}
}

func TestParse_ComponentSplit(t *testing.T) {
	d := sampleDelimiters
	seg := func(elements ...string) string {
		return strings.Join(elements, string(d.ElementSeparator)) + string(d.SegmentTerminator)
	}
	var b strings.Builder
	b.WriteString(buildISA(d, "U", "00401", "000000001"))
	b.WriteString(seg("GS", "HC", "SENDERGS", "007326879", "20020226", "1534", "1", "X", "004010"))
	b.WriteString(seg("ST", "837", "0001"))
	b.WriteString(seg("HI", "BK>25000", "BF>78901"))
	b.WriteString(seg("SE", "3", "0001"))
	b.WriteString(seg("GE", "1", "1"))
	b.WriteString(seg("IEA", "1", "000000001"))

	doc, err := Parse([]byte(b.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	hi := doc.Interchange.Groups[0].Transactions[0].Segments[0]
	elem, err := hi.Element(1)
	if err != nil {
		t.Fatalf("Element(1): %v", err)
	}
	if !reflect.DeepEqual(elem.Components, []string{"BK", "25000"}) {
		t.Fatalf("unexpected components: %#v", elem.Components)
	}
	qual, err := elem.Component(1)
	if err != nil || qual != "BK" {
		t.Fatalf("Component(1) = %q, %v", qual, err)
	}
}

func TestParse_UnterminatedFinalSegment(t *testing.T) {
	input := strings.TrimSuffix(sampleEDI(), string(sampleDelimiters.SegmentTerminator))
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Interchange.TrailerControlNumber != "000000001" {
		t.Fatalf("trailer not consumed: %#v", doc.Interchange)
	}
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleEDI()))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if len(doc.Interchange.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(doc.Interchange.Groups))
	}
}

func TestParse_SecondInterchangeRejected(t *testing.T) {
	input := sampleEDI() + sampleEDI()
	_, err := Parse([]byte(input))
	if !errors.Is(err, ErrUnexpectedSegment) {
		t.Fatalf("expected ErrUnexpectedSegment, got %v", err)
	}
}
