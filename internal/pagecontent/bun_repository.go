package pagecontent

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

// BunRepository persists page records through bun.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*PageRecord]
	now  func() time.Time
}

// NewBunRepository constructs a page repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a page repository backed by bun with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := newPageRecordRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
		now:  time.Now,
	}
}

func newPageRecordRepository(db *bun.DB) repository.Repository[*PageRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageRecord]{
		NewRecord: func() *PageRecord { return &PageRecord{} },
		GetID: func(r *PageRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *PageRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "handle"
		},
		GetIdentifierValue: func(r *PageRecord) string {
			return r.Handle
		},
	})
}

// GetByHandle retrieves a page record by handle.
func (r *BunRepository) GetByHandle(ctx context.Context, handle string) (*PageRecord, error) {
	record, err := r.repo.GetByIdentifier(ctx, strings.TrimSpace(handle))
	if err != nil {
		return nil, mapRepositoryError(err, handle)
	}
	return record, nil
}

// List returns every stored record ordered by handle.
func (r *BunRepository) List(ctx context.Context) ([]*PageRecord, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.handle ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return records, nil
}

// Upsert replaces the stored document for the record's handle, creating the
// row when absent. The single-statement write keeps save atomic: a failed
// save leaves the stored record untouched.
func (r *BunRepository) Upsert(ctx context.Context, record *PageRecord) (*PageRecord, error) {
	if record == nil || strings.TrimSpace(record.Handle) == "" {
		return nil, ErrHandleRequired
	}

	handle := strings.TrimSpace(record.Handle)
	now := r.now().UTC()

	toStore := record.Clone()
	toStore.Handle = handle
	if toStore.ID == uuid.Nil {
		toStore.ID = identity.PageUUID(handle)
	}
	toStore.UpdatedAt = now

	existing, err := r.repo.GetByIdentifier(ctx, handle)
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, fmt.Errorf("page repository error: %w", err)
		}
		if toStore.CreatedAt.IsZero() {
			toStore.CreatedAt = now
		}
		created, err := r.repo.Create(ctx, toStore)
		if err != nil {
			return nil, fmt.Errorf("page repository error: %w", err)
		}
		return created, nil
	}

	toStore.ID = existing.ID
	toStore.CreatedAt = existing.CreatedAt
	updated, err := r.repo.Update(ctx, toStore,
		repository.UpdateByID(toStore.ID.String()),
		repository.UpdateColumns("document", "updated_at"),
	)
	if err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return updated, nil
}

// Delete removes the stored record for a handle.
func (r *BunRepository) Delete(ctx context.Context, handle string) error {
	record, err := r.repo.GetByIdentifier(ctx, strings.TrimSpace(handle))
	if err != nil {
		return mapRepositoryError(err, handle)
	}
	if _, err := r.db.NewDelete().
		Model((*PageRecord)(nil)).
		Where("?TableAlias.id = ?", record.ID).
		Exec(ctx); err != nil {
		return fmt.Errorf("page repository error: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, handle string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &PageNotFoundError{Handle: handle}
	}
	return fmt.Errorf("page repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
