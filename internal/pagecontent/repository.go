package pagecontent

import "context"

// Repository stores page records keyed by handle. The contract is
// whole-document read, whole-document write: Upsert replaces the stored
// document entirely, and concurrent writers follow last-save-wins with no
// merge.
type Repository interface {
	GetByHandle(ctx context.Context, handle string) (*PageRecord, error)
	List(ctx context.Context) ([]*PageRecord, error)
	Upsert(ctx context.Context, record *PageRecord) (*PageRecord, error)
	Delete(ctx context.Context, handle string) error
}
