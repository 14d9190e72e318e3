package catalog

import "context"

// Provider lists the live product catalog. Render plans re-fetch through the
// provider on every build; there is no cross-request cache at this layer, so
// externally edited products appear on the next fetch.
type Provider interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetByHandle(ctx context.Context, handle string) (*Product, error)
}

// Writer persists products. The CSV importer writes through this contract;
// Save is an upsert keyed by handle.
type Writer interface {
	Save(ctx context.Context, product *Product) (*Product, error)
}

// Repository combines read and write access to the local product mirror.
type Repository interface {
	Provider
	Writer
	Delete(ctx context.Context, handle string) error
}
