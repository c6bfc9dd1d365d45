package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrRateLimited is returned when the generation backend answers with a
// rate-limit status. Nothing here retries automatically — the user
// re-triggers. Handlers should map this to HTTP 429.
var ErrRateLimited = errors.New("rate limit exceeded, please try again later")

// ErrQuotaExceeded is returned when the generation backend reports an
// exhausted usage quota or billing limit. Handlers map this to HTTP 402
// so the UI can show an "add credits" message distinct from a plain retry.
var ErrQuotaExceeded = errors.New("usage limit reached, please add credits")

// ErrUpstream is returned when an external backend (generation gateway or
// place lookup) is unreachable or answers with an unexpected error.
// Handlers should map this to HTTP 502.
var ErrUpstream = errors.New("upstream service unavailable")

// ErrBadModelOutput is returned when the model's response cannot be parsed
// into a valid itinerary document even after stripping code fences.
// Nothing is persisted when this is returned. Handlers map it to HTTP 502.
var ErrBadModelOutput = errors.New("could not interpret AI response")
