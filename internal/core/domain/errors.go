package domain

import "go.trai.ch/zerr"

var (
	// ErrKeyNotFound is returned when an invalidation or stats lookup names a
	// cache key that is not present.
	ErrKeyNotFound = zerr.New("cache key not found")

	// ErrFunctionNotRegistered is returned when a memoized function is looked
	// up by a name that was never registered.
	ErrFunctionNotRegistered = zerr.New("function not registered")

	// ErrFunctionAlreadyRegistered is returned when a memoized function is
	// registered under a name that is already taken.
	ErrFunctionAlreadyRegistered = zerr.New("function already registered")

	// ErrComputeFailed wraps a failure of the caller-supplied compute
	// function. No cache entry is written when it occurs.
	ErrComputeFailed = zerr.New("compute function failed")

	// ErrInvalidConfig is returned when the cache configuration fails
	// validation.
	ErrInvalidConfig = zerr.New("invalid cache configuration")

	// ErrInvalidFingerprint is returned when a persisted fingerprint does not
	// decode to the expected digest width.
	ErrInvalidFingerprint = zerr.New("invalid fingerprint encoding")
)
