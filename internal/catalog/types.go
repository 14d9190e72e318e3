package catalog

// Money carries a decimal amount as a string plus its ISO currency code,
// matching the commerce platform's priceRange.minVariantPrice projection.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Color is a named swatch attached to a product.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Product is the flattened render-side view of a catalog entry. Handle is the
// stable external identifier; section settings reference products by handle,
// never by ownership.
type Product struct {
	ID          string   `json:"id"`
	Handle      string   `json:"handle"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Price       Money    `json:"price"`
	Images      []string `json:"images,omitempty"`
	Video       string   `json:"video,omitempty"`
	Colors      []Color  `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	out := *p
	if len(p.Images) > 0 {
		out.Images = append([]string(nil), p.Images...)
	}
	if len(p.Colors) > 0 {
		out.Colors = append([]Color(nil), p.Colors...)
	}
	if len(p.Sizes) > 0 {
		out.Sizes = append([]string(nil), p.Sizes...)
	}
	return &out
}
