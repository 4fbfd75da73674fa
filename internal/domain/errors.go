package domain

import "errors"

var (
	// ErrInvalidBarcode is returned when the scanned input contains no digits
	ErrInvalidBarcode = errors.New("barcode is empty or invalid")

	// ErrNonNumericBarcode is returned when the digit string does not parse as an integer value
	ErrNonNumericBarcode = errors.New("barcode is not numeric")

	// ErrFetchFailed is returned when the remote product page cannot be fetched
	ErrFetchFailed = errors.New("failed to fetch barcode data")

	// ErrNoExtraction is returned when the fetched page yields no usable fields
	ErrNoExtraction = errors.New("no barcode information found in HTML response")

	// ErrNoCatalogMatch is returned when extraction succeeded but no material scored above zero
	ErrNoCatalogMatch = errors.New("no catalog match found")

	// ErrMappingNotFound is returned when no mapping exists for a barcode or id
	ErrMappingNotFound = errors.New("barcode mapping not found")

	// ErrStoreUnavailable is returned when the catalog store cannot be initialized
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)
