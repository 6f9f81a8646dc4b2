package provider

import "errors"

var (
	// ErrNoCredentials marks a provider that was never configured.
	ErrNoCredentials = errors.New("provider credentials not configured")

	// ErrAuth marks a failed credential exchange.
	ErrAuth = errors.New("provider authentication failed")

	// ErrUpstream marks a non-2xx or otherwise unusable data response.
	ErrUpstream = errors.New("upstream request failed")

	// ErrParse marks a payload or document that did not match the
	// expected structure.
	ErrParse = errors.New("upstream payload did not parse")

	// ErrEmptyResult marks a live fetch that succeeded but found no
	// records to serve.
	ErrEmptyResult = errors.New("provider returned no records")
)
