package x12

// Segment-ID codes for the X12 envelope segments.
const (
	idInterchangeHeader  = "ISA"
	idInterchangeTrailer = "IEA"
	idGroupHeader        = "GS"
	idGroupTrailer       = "GE"
	idTransactionHeader  = "ST"
	idTransactionTrailer = "SE"
)

// The ISA segment is fixed-width: every field is padded to its standard
// length, which puts the delimiter characters at known byte offsets.
const (
	minHeaderLen = 106

	elementSepOffset    = 3   // first element separator, after "ISA"
	repetitionSepOffset = 82  // ISA11, repetition separator under 00402+
	versionOffset       = 84  // ISA12, five bytes
	lastElementSep      = 103 // element separator before ISA16
	componentSepOffset  = 104 // ISA16, the component separator itself
	terminatorOffset    = 105 // first byte after the last defined element
)

// Delimiters holds the separator characters in effect for one document.
// They are read once from the fixed-width ISA header and never re-detected
// mid-stream.
type Delimiters struct {
	// ElementSeparator splits a segment into elements.
	ElementSeparator byte
	// ComponentSeparator splits an element into sub-elements.
	ComponentSeparator byte
	// RepetitionSeparator separates repeated element values under control
	// version 00402 and later. Zero when the document does not define one.
	RepetitionSeparator byte
	// SegmentTerminator ends a segment.
	SegmentTerminator byte
}

// Document is the root of a parse result. It holds exactly one interchange;
// inputs carrying more than one top-level interchange are unsupported.
type Document struct {
	Delimiters  Delimiters
	Interchange Interchange
	// Warnings collects the non-fatal deviations tolerated by LooseParse.
	// Always empty after a strict Parse.
	Warnings []Warning
}

// Interchange is the outermost X12 envelope, opened by an ISA segment and
// closed by an IEA segment carrying the same control number.
type Interchange struct {
	Header               InterchangeHeader
	Groups               []FunctionalGroup
	TrailerControlNumber string
}

// FunctionalGroup is the GS/GE envelope nested inside an interchange.
type FunctionalGroup struct {
	Header               FunctionalGroupHeader
	Transactions         []TransactionSet
	TrailerControlNumber string
}

// TransactionSet is the ST/SE envelope representing one business document.
type TransactionSet struct {
	Header   TransactionSetHeader
	Segments []Segment
	// DeclaredSegmentCount is SE01, which counts the enclosed segments plus
	// the ST and SE segments themselves.
	DeclaredSegmentCount int
	TrailerControlNumber string
}

// InterchangeHeader is the ISA segment materialized into named fields.
// Fields are trimmed of the fixed-width padding the wire format requires.
type InterchangeHeader struct {
	// AuthorizationQualifier categorizes AuthorizationInformation (ISA01).
	AuthorizationQualifier string
	// AuthorizationInformation identifies or authorizes the sender (ISA02).
	AuthorizationInformation string
	// SecurityQualifier categorizes SecurityInformation (ISA03).
	SecurityQualifier string
	// SecurityInformation carries security data about the sender (ISA04).
	SecurityInformation string
	// SenderQualifier designates the code structure of SenderID (ISA05).
	SenderQualifier string
	// SenderID routes responses back to the sender (ISA06).
	SenderID string
	// ReceiverQualifier designates the code structure of ReceiverID (ISA07).
	ReceiverQualifier string
	// ReceiverID routes the interchange to its recipient (ISA08).
	ReceiverID string
	// Date of the interchange as YYMMDD (ISA09).
	Date string
	// Time of the interchange as HHMM (ISA10).
	Time string
	// StandardsID names the agency responsible for the control standard
	// (ISA11). Under 00402+ this byte is the repetition separator instead.
	StandardsID string
	// Version of the interchange control segments (ISA12).
	Version string
	// ControlNumber assigned by the sender, repeated on the IEA trailer
	// (ISA13).
	ControlNumber string
	// AcknowledgmentRequested is "1" when an acknowledgment is requested,
	// "0" otherwise (ISA14).
	AcknowledgmentRequested string
	// UsageIndicator marks the enclosed data as production "P", test "T",
	// or information "I" (ISA15).
	UsageIndicator string
}

// FunctionalGroupHeader is the GS segment materialized into named fields.
type FunctionalGroupHeader struct {
	// FunctionalIdentifierCode identifies the function of the group (GS01).
	FunctionalIdentifierCode string
	// ApplicationSenderCode identifies the sending application (GS02).
	ApplicationSenderCode string
	// ApplicationReceiverCode identifies the receiving application (GS03).
	ApplicationReceiverCode string
	// Date as CCYYMMDD, or YYMMDD in older versions (GS04).
	Date string
	// Time as HHMM up to HHMMSSDD (GS05).
	Time string
	// ControlNumber for this group, repeated on the GE trailer (GS06).
	ControlNumber string
	// ResponsibleAgencyCode identifies the issuer of the standard (GS07).
	ResponsibleAgencyCode string
	// Version, release and industry identifier of the EDI standard (GS08).
	Version string
}

// TransactionSetHeader is the ST segment materialized into named fields.
type TransactionSetHeader struct {
	// IDCode is the numeric transaction set type, e.g. "850" (ST01).
	IDCode string
	// Name is the human-readable name for IDCode, or "unidentified" when
	// the code is not in the built-in table.
	Name string
	// ControlNumber for this transaction set, repeated on the SE trailer
	// (ST02).
	ControlNumber string
	// ImplementationConventionReference is the optional ST03. Empty when
	// the segment does not carry it.
	ImplementationConventionReference string
}

// Warning is a non-fatal deviation tolerated by LooseParse.
type Warning struct {
	Message string
	// RawSegment is the verbatim text of the segment the warning concerns,
	// empty when the warning is not tied to one segment.
	RawSegment string
}
