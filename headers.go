package x12

import "strings"

// Header materializers convert the envelope-opening segments with fixed,
// universally meaningful layouts into typed records. They are pure
// functions over one tokenized segment and carry no assembler state.
//
// Fields are addressed through elemRaw rather than the component-split
// elements: header fields are defined element-wise by the standard, and the
// ISA16 element is the component separator character itself.

func materializeInterchangeHeader(seg rawSegment) (InterchangeHeader, error) {
	if len(seg.elemRaw) < 16 {
		return InterchangeHeader{}, &SegmentError{
			Err:        ErrMalformedSegment,
			Reason:     "ISA segment requires at least 16 elements",
			RawSegment: seg.raw,
		}
	}
	h := InterchangeHeader{
		AuthorizationQualifier:   strings.TrimSpace(seg.elemRaw[1]),
		AuthorizationInformation: strings.TrimSpace(seg.elemRaw[2]),
		SecurityQualifier:        strings.TrimSpace(seg.elemRaw[3]),
		SecurityInformation:      strings.TrimSpace(seg.elemRaw[4]),
		SenderQualifier:          strings.TrimSpace(seg.elemRaw[5]),
		SenderID:                 strings.TrimSpace(seg.elemRaw[6]),
		ReceiverQualifier:        strings.TrimSpace(seg.elemRaw[7]),
		ReceiverID:               strings.TrimSpace(seg.elemRaw[8]),
		Date:                     strings.TrimSpace(seg.elemRaw[9]),
		Time:                     strings.TrimSpace(seg.elemRaw[10]),
		StandardsID:              strings.TrimSpace(seg.elemRaw[11]),
		Version:                  strings.TrimSpace(seg.elemRaw[12]),
		ControlNumber:            strings.TrimSpace(seg.elemRaw[13]),
		AcknowledgmentRequested:  strings.TrimSpace(seg.elemRaw[14]),
		UsageIndicator:           strings.TrimSpace(seg.elemRaw[15]),
	}
	if err := checkDigits(seg, "ISA09 interchange date", h.Date, 6, 6); err != nil {
		return InterchangeHeader{}, err
	}
	if err := checkDigits(seg, "ISA10 interchange time", h.Time, 4, 4); err != nil {
		return InterchangeHeader{}, err
	}
	if h.ControlNumber == "" {
		return InterchangeHeader{}, &SegmentError{
			Err:        ErrMalformedSegment,
			Reason:     "ISA13 interchange control number is empty",
			RawSegment: seg.raw,
		}
	}
	return h, nil
}

func materializeGroupHeader(seg rawSegment) (FunctionalGroupHeader, error) {
	if len(seg.elemRaw) < 9 {
		return FunctionalGroupHeader{}, &SegmentError{
			Err:        ErrMalformedSegment,
			Reason:     "GS segment requires at least 9 elements",
			RawSegment: seg.raw,
		}
	}
	h := FunctionalGroupHeader{
		FunctionalIdentifierCode: strings.TrimSpace(seg.elemRaw[1]),
		ApplicationSenderCode:    strings.TrimSpace(seg.elemRaw[2]),
		ApplicationReceiverCode:  strings.TrimSpace(seg.elemRaw[3]),
		Date:                     strings.TrimSpace(seg.elemRaw[4]),
		Time:                     strings.TrimSpace(seg.elemRaw[5]),
		ControlNumber:            strings.TrimSpace(seg.elemRaw[6]),
		ResponsibleAgencyCode:    strings.TrimSpace(seg.elemRaw[7]),
		Version:                  strings.TrimSpace(seg.elemRaw[8]),
	}
	// GS04 is CCYYMMDD from version 004010 on, YYMMDD before it.
	if len(h.Date) == 6 {
		if err := checkDigits(seg, "GS04 group date", h.Date, 6, 6); err != nil {
			return FunctionalGroupHeader{}, err
		}
	} else if err := checkDigits(seg, "GS04 group date", h.Date, 8, 8); err != nil {
		return FunctionalGroupHeader{}, err
	}
	// GS05 ranges from HHMM to HHMMSSDD.
	if err := checkDigits(seg, "GS05 group time", h.Time, 4, 8); err != nil {
		return FunctionalGroupHeader{}, err
	}
	if h.ControlNumber == "" {
		return FunctionalGroupHeader{}, &SegmentError{
			Err:        ErrMalformedSegment,
			Reason:     "GS06 group control number is empty",
			RawSegment: seg.raw,
		}
	}
	return h, nil
}

func materializeTransactionHeader(seg rawSegment) (TransactionSetHeader, error) {
	if len(seg.elemRaw) < 3 {
		return TransactionSetHeader{}, &SegmentError{
			Err:        ErrMalformedSegment,
			Reason:     "ST segment requires at least 3 elements",
			RawSegment: seg.raw,
		}
	}
	h := TransactionSetHeader{
		IDCode:        strings.TrimSpace(seg.elemRaw[1]),
		ControlNumber: strings.TrimSpace(seg.elemRaw[2]),
	}
	if len(seg.elemRaw) >= 4 {
		h.ImplementationConventionReference = strings.TrimSpace(seg.elemRaw[3])
	}
	if h.ControlNumber == "" {
		return TransactionSetHeader{}, &SegmentError{
			Err:        ErrMalformedSegment,
			Reason:     "ST02 transaction set control number is empty",
			RawSegment: seg.raw,
		}
	}
	h.Name = TransactionSetName(h.IDCode)
	return h, nil
}

// checkDigits verifies that value is all digits with a length between min
// and max inclusive.
func checkDigits(seg rawSegment, field, value string, min, max int) error {
	if len(value) < min || len(value) > max || !allDigits(value) {
		return &SegmentError{
			Err:        ErrFieldFormat,
			Reason:     field + " must be numeric",
			RawSegment: seg.raw,
			Got:        value,
		}
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
