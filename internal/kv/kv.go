// Package kv is the ledger's durable medium: named string-keyed records
// that outlive the process. Persistence is best-effort by contract:
// callers treat read failures as "absent" and log-and-swallow write
// failures, so no implementation here may panic or crash the caller.
package kv

import "context"

// Store reads and writes named string values.
type Store interface {
	// Load returns the stored value for key, or ok=false when the key
	// is absent. Implementations return an error only for medium
	// failures; callers degrade both cases to defaults.
	Load(ctx context.Context, key string) (value string, ok bool, err error)

	// Save persists value under key, replacing any previous value.
	Save(ctx context.Context, key, value string) error
}
