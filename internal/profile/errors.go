package profile

import (
	"errors"
	"fmt"

	"cpprofile-backend/internal/components/fetch"
)

type ErrorKind int

const (
	// KindTransport means the source could not be reached.
	KindTransport ErrorKind = iota
	// KindStatus means the source answered with a non-success status.
	KindStatus
	// KindMalformed means the body could not be parsed.
	KindMalformed
	// KindEmpty means the body was well formed but held no profile.
	KindEmpty
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	case KindEmpty:
		return "empty"
	}
	return "unknown"
}

// FetchError is returned by every scraper when a profile could not be produced.
type FetchError struct {
	Platform Platform
	Kind     ErrorKind
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetch profile (%s): %s", e.Platform, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Message is the fixed text shown to API consumers.
func (e *FetchError) Message() string {
	return Message(e.Platform)
}

// Message is the text shown to API consumers when fetching a profile from platform fails.
func Message(platform Platform) string {
	return fmt.Sprintf("Error fetching %s profile", platform.DisplayName())
}

// NewFetchError builds a FetchError for an error returned by fetch.Client, classifying it as
// KindStatus or KindTransport.
func NewFetchError(platform Platform, err error) *FetchError {
	kind := KindTransport
	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		kind = KindStatus
	}
	return &FetchError{Platform: platform, Kind: kind, Err: err}
}

func Malformed(platform Platform, err error) *FetchError {
	return &FetchError{Platform: platform, Kind: KindMalformed, Err: err}
}

func Empty(platform Platform, err error) *FetchError {
	return &FetchError{Platform: platform, Kind: KindEmpty, Err: err}
}
