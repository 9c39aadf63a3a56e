package apperrors

import "errors"

// ErrConfiguration indicates a required credential or setting is missing.
var ErrConfiguration = errors.New("configuration error")

// ErrUpstreamUnavailable indicates a transport failure or non-2xx status from an upstream API.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrMalformedUpstream indicates an upstream response that does not match the documented shape.
var ErrMalformedUpstream = errors.New("malformed upstream response")

// ErrUpstreamLogical indicates the upstream answered but reported an error result code.
var ErrUpstreamLogical = errors.New("upstream reported an error")

// ErrNoTrackedCurrencyData indicates the upstream answered successfully but
// none of the returned rows belong to a tracked currency.
var ErrNoTrackedCurrencyData = errors.New("no tracked currency data")

// ErrPersistence indicates a database write failed.
var ErrPersistence = errors.New("persistence failure")

// ErrDuplicate indicates an insert hit an existing row with the same uniqueness key.
var ErrDuplicate = errors.New("resource already exists")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")
