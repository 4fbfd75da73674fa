package domain

import (
	"errors"
	"testing"
)

func TestNormalizeBarcode(t *testing.T) {
	t.Run("strips non-digit characters", func(t *testing.T) {
		barcode, err := NormalizeBarcode("0123-4567-8901 2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if barcode.Digits != "0123456789012" {
			t.Errorf("Digits = %q, want 0123456789012", barcode.Digits)
		}
		if barcode.Kind != BarcodeEAN {
			t.Errorf("Kind = %v, want %v", barcode.Kind, BarcodeEAN)
		}
	})

	t.Run("passes clean digits through", func(t *testing.T) {
		barcode, err := NormalizeBarcode("736983564504")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if barcode.Digits != "736983564504" {
			t.Errorf("Digits = %q, want 736983564504", barcode.Digits)
		}
		if barcode.Kind != BarcodeUPC {
			t.Errorf("Kind = %v, want %v", barcode.Kind, BarcodeUPC)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := NormalizeBarcode("")
		if !errors.Is(err, ErrInvalidBarcode) {
			t.Errorf("error = %v, want ErrInvalidBarcode", err)
		}
	})

	t.Run("rejects input with no digits", func(t *testing.T) {
		barcode, err := NormalizeBarcode("---abc ")
		if !errors.Is(err, ErrInvalidBarcode) {
			t.Errorf("error = %v, want ErrInvalidBarcode", err)
		}
		if barcode.Kind != BarcodeUnknown {
			t.Errorf("Kind = %v, want %v", barcode.Kind, BarcodeUnknown)
		}
	})

	t.Run("leading zeros are preserved", func(t *testing.T) {
		barcode, err := NormalizeBarcode("00012345")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if barcode.Digits != "00012345" {
			t.Errorf("Digits = %q, want 00012345", barcode.Digits)
		}
	})
}

func TestClassifyBarcode(t *testing.T) {
	tests := []struct {
		digits string
		want   BarcodeKind
	}{
		{"", BarcodeUnknown},
		{"12345678", BarcodeEAN},
		{"4006381333931", BarcodeEAN},
		{"736983564504", BarcodeUPC},
		{"1234567", BarcodeOther},
		{"123456789", BarcodeOther},
		{"12345678901234", BarcodeOther},
	}

	for _, tt := range tests {
		if got := ClassifyBarcode(tt.digits); got != tt.want {
			t.Errorf("ClassifyBarcode(%q) = %v, want %v", tt.digits, got, tt.want)
		}
	}
}

func TestNumericValue(t *testing.T) {
	t.Run("parses digit string", func(t *testing.T) {
		barcode := Barcode{Digits: "4006381333931", Kind: BarcodeEAN}
		value, err := barcode.NumericValue()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != 4006381333931 {
			t.Errorf("value = %d, want 4006381333931", value)
		}
	})

	t.Run("fails on overflow", func(t *testing.T) {
		barcode := Barcode{Digits: "999999999999999999999", Kind: BarcodeOther}
		_, err := barcode.NumericValue()
		if !errors.Is(err, ErrNonNumericBarcode) {
			t.Errorf("error = %v, want ErrNonNumericBarcode", err)
		}
	})
}
