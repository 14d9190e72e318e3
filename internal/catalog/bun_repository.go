package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-storefront/internal/identity"
)

// BunRepository persists the local product mirror through bun.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*ProductRecord]
	now  func() time.Time
}

// NewBunRepository constructs a product repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a product repository backed by bun with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := newProductRecordRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
		now:  time.Now,
	}
}

func newProductRecordRepository(db *bun.DB) repository.Repository[*ProductRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ProductRecord]{
		NewRecord: func() *ProductRecord { return &ProductRecord{} },
		GetID: func(r *ProductRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *ProductRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "handle"
		},
		GetIdentifierValue: func(r *ProductRecord) string {
			return r.Handle
		},
	})
}

// ListProducts returns every stored product ordered by handle.
func (r *BunRepository) ListProducts(ctx context.Context) ([]*Product, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.handle ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("product repository error: %w", err)
	}
	out := make([]*Product, 0, len(records))
	for _, record := range records {
		out = append(out, record.Product())
	}
	return out, nil
}

// GetByHandle retrieves one product by handle.
func (r *BunRepository) GetByHandle(ctx context.Context, handle string) (*Product, error) {
	record, err := r.repo.GetByIdentifier(ctx, strings.TrimSpace(handle))
	if err != nil {
		return nil, mapRepositoryError(err, handle)
	}
	return record.Product(), nil
}

// Save upserts the product keyed by handle. The record id derives from the
// handle so repeated imports of the same product update in place.
func (r *BunRepository) Save(ctx context.Context, product *Product) (*Product, error) {
	if product == nil || strings.TrimSpace(product.Handle) == "" {
		return nil, ErrHandleRequired
	}
	handle := strings.TrimSpace(product.Handle)
	now := r.now().UTC()

	record := &ProductRecord{
		ID:          identity.ProductUUID(handle),
		Handle:      handle,
		Title:       product.Title,
		Description: product.Description,
		Status:      product.Status,
		PriceAmount: product.Price.Amount,
		Currency:    product.Price.CurrencyCode,
		Images:      append([]string(nil), product.Images...),
		Video:       product.Video,
		Colors:      append([]Color(nil), product.Colors...),
		Sizes:       append([]string(nil), product.Sizes...),
		UpdatedAt:   now,
	}

	existing, err := r.repo.GetByIdentifier(ctx, handle)
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, fmt.Errorf("product repository error: %w", err)
		}
		record.CreatedAt = now
		created, err := r.repo.Create(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("product repository error: %w", err)
		}
		return created.Product(), nil
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"description",
			"status",
			"price_amount",
			"currency",
			"images",
			"video",
			"colors",
			"sizes",
			"updated_at",
		),
	)
	if err != nil {
		return nil, fmt.Errorf("product repository error: %w", err)
	}
	return updated.Product(), nil
}

// Delete removes the stored product for a handle.
func (r *BunRepository) Delete(ctx context.Context, handle string) error {
	record, err := r.repo.GetByIdentifier(ctx, strings.TrimSpace(handle))
	if err != nil {
		return mapRepositoryError(err, handle)
	}
	if _, err := r.db.NewDelete().
		Model((*ProductRecord)(nil)).
		Where("?TableAlias.id = ?", record.ID).
		Exec(ctx); err != nil {
		return fmt.Errorf("product repository error: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, handle string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &ProductNotFoundError{Handle: handle}
	}
	return fmt.Errorf("product repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
