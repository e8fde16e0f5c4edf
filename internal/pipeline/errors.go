package pipeline

import "github.com/pkg/errors"

var (
	// ErrFieldNotFound is returned when a field path does not resolve.
	ErrFieldNotFound = errors.New("metadata field not found")
	// ErrNoCollectionSegment is returned for detail URLs without a collection id.
	ErrNoCollectionSegment = errors.New("url has no collection segment")
	// ErrUnparseableDate is returned when a value cannot be read as a date.
	ErrUnparseableDate = errors.New("unparseable date")
)
