package pagecontent

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageRecord is the persisted wrapper around a page document, keyed by the
// page handle (slug). Persistence is whole-document replacement; there is no
// field-level patching of the stored JSON.
type PageRecord struct {
	bun.BaseModel `bun:"table:storefront_pages,alias:sp"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Handle    string    `bun:"handle,notnull,unique" json:"handle"`
	Document  Document  `bun:"document,type:jsonb,notnull" json:"document"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Clone returns a deep copy of the record.
func (r *PageRecord) Clone() *PageRecord {
	if r == nil {
		return nil
	}
	copied := *r
	copied.Document = r.Document.Clone()
	return &copied
}
