package process

import "context"

// Store is the persistence contract for AdProcess documents. The Mongo
// implementation lives in internal/platform/mongodb.
//
// Implementations must reject a malformed textual id with apperr.ErrInvalidID
// before any store access and signal a missing document with apperr.ErrNotFound
// so callers can distinguish "not found" from "found but precondition unmet".
type Store interface {
	// Create inserts a new document and returns its assigned id.
	Create(ctx context.Context, p *AdProcess) (string, error)

	// Get loads one document by id.
	Get(ctx context.Context, id string) (*AdProcess, error)

	// Update applies a partial merge: only the named (possibly dotted) fields
	// change, concurrent updates to disjoint fields do not clobber each other.
	Update(ctx context.Context, id string, fields map[string]any) error

	// ByUser returns the documents owned by a user, capped at limit, in
	// insertion order.
	ByUser(ctx context.Context, userID string, limit int64) ([]AdProcess, error)
}
