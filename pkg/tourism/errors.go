package tourism

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrBackendUnavailable indicates the capability probe of the remote store failed
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrFetchFailed indicates an I/O or decoding failure during a collection read
	ErrFetchFailed = errors.New("fetch failed")

	// ErrUnknownCollection indicates a collection name outside the known set
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrStoreRequired indicates a gateway was built without a document store
	ErrStoreRequired = errors.New("document store is required")

	// ErrItemNotFound indicates a static catalog lookup found nothing
	ErrItemNotFound = errors.New("item not found")
)

// FetchError describes why a collection fetch did not produce data.
// Kind is one of ErrBackendUnavailable or ErrFetchFailed; Err is the
// underlying cause, if any.
type FetchError struct {
	Collection CollectionName
	Kind       error
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: %v", e.Collection, e.Kind)
	}
	return fmt.Sprintf("fetch %s: %v: %v", e.Collection, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the error's kind so callers can use errors.Is(err, ErrFetchFailed).
func (e *FetchError) Is(target error) bool {
	return target == e.Kind
}

// message is the text placed in Envelope.Error.
func (e *FetchError) message() string {
	if e.Kind == ErrBackendUnavailable || e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

func unavailable(name CollectionName, cause error) *FetchError {
	return &FetchError{Collection: name, Kind: ErrBackendUnavailable, Err: cause}
}

func fetchFailed(name CollectionName, cause error) *FetchError {
	return &FetchError{Collection: name, Kind: ErrFetchFailed, Err: cause}
}

func isUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}
