package core

import "errors"

// ErrPrecondition is the sentinel wrapped by every assertion panic raised
// for a violated caller precondition (see assert.go). Preconditions are
// programming errors, not runtime conditions; callers are not expected to
// recover from this in production, only in tests that probe the contract.
var ErrPrecondition = errors.New("core: precondition violated")
