package domain

import "strconv"

// BarcodeKind classifies a scanned code by its digit count
type BarcodeKind string

const (
	BarcodeUnknown BarcodeKind = "unknown"
	BarcodeEAN     BarcodeKind = "ean"
	BarcodeUPC     BarcodeKind = "upc"
	BarcodeOther   BarcodeKind = "other"
)

// Barcode is a normalized digit string plus its classification.
// Immutable once computed.
type Barcode struct {
	Digits string      `json:"digits"`
	Kind   BarcodeKind `json:"kind"`
}

// NormalizeBarcode strips everything but digit characters from a scanned
// string and classifies the result. Returns ErrInvalidBarcode when nothing
// remains after stripping.
func NormalizeBarcode(raw string) (Barcode, error) {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}

	if len(digits) == 0 {
		return Barcode{Kind: BarcodeUnknown}, ErrInvalidBarcode
	}

	normalized := string(digits)
	return Barcode{Digits: normalized, Kind: ClassifyBarcode(normalized)}, nil
}

// ClassifyBarcode derives the kind purely from digit count:
// 8 or 13 digits is an EAN, 12 is a UPC, anything else is Other.
// The empty string classifies as Unknown.
func ClassifyBarcode(digits string) BarcodeKind {
	if digits == "" {
		return BarcodeUnknown
	}

	switch len(digits) {
	case 8, 13:
		return BarcodeEAN
	case 12:
		return BarcodeUPC
	default:
		return BarcodeOther
	}
}

// NumericValue parses the digit string as an unsigned integer. After
// normalization only digits remain, so this can only fail on overflow
// (more than 20 digits); the guard is kept so callers never have to
// trust that invariant.
func (b Barcode) NumericValue() (uint64, error) {
	value, err := strconv.ParseUint(b.Digits, 10, 64)
	if err != nil {
		return 0, ErrNonNumericBarcode
	}
	return value, nil
}
