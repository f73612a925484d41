package pipeline

import "errors"

// Pipeline failure conditions. Partial reconciliation is deliberately not
// an error: the pipeline returns whatever matched and reports the
// shortfall, the caller decides whether that is acceptable.
var (
	// ErrCatalogEmpty means no tracks were available, or filtering left
	// zero candidates even after the relaxed fallback.
	ErrCatalogEmpty = errors.New("catalog has no usable tracks")

	// ErrProviderUnavailable means the LLM call failed at the transport
	// level or returned a non-success status.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrMalformedResponse means the LLM response parsed but lacked the
	// required structured fields, or zero picks survived validation.
	ErrMalformedResponse = errors.New("llm response malformed")
)
