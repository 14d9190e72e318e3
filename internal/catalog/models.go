package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProductRecord is the bun model mirroring imported catalog entries. The
// variable-shape fields (images, colors, sizes) persist as JSON columns.
type ProductRecord struct {
	bun.BaseModel `bun:"table:storefront_products,alias:spr"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Handle      string    `bun:"handle,notnull,unique" json:"handle"`
	Title       string    `bun:"title,notnull" json:"title"`
	Description string    `bun:"description" json:"description,omitempty"`
	Status      string    `bun:"status,notnull" json:"status"`
	PriceAmount string    `bun:"price_amount,notnull" json:"price_amount"`
	Currency    string    `bun:"currency,notnull" json:"currency"`
	Images      []string  `bun:"images,type:jsonb" json:"images,omitempty"`
	Video       string    `bun:"video" json:"video,omitempty"`
	Colors      []Color   `bun:"colors,type:jsonb" json:"colors,omitempty"`
	Sizes       []string  `bun:"sizes,type:jsonb" json:"sizes,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Product converts the stored record into the render-side view.
func (r *ProductRecord) Product() *Product {
	if r == nil {
		return nil
	}
	return &Product{
		ID:          r.ID.String(),
		Handle:      r.Handle,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Price:       Money{Amount: r.PriceAmount, CurrencyCode: r.Currency},
		Images:      append([]string(nil), r.Images...),
		Video:       r.Video,
		Colors:      append([]Color(nil), r.Colors...),
		Sizes:       append([]string(nil), r.Sizes...),
	}
}
