package catalog

import (
	"math/rand"
	"strings"
)

// ResolveHandle resolves a single product reference. The handle is a weak
// reference: when it is empty or no longer matches a live product, a product
// is picked uniformly at random from the list instead (cosmetic default;
// rendering never blocks on a dangling reference). Returns nil only when the
// product list itself is empty.
func ResolveHandle(products []*Product, handle string, rng *rand.Rand) *Product {
	if len(products) == 0 {
		return nil
	}
	handle = strings.TrimSpace(handle)
	if handle != "" {
		for _, product := range products {
			if product != nil && product.Handle == handle {
				return product
			}
		}
	}
	if rng != nil {
		return products[rng.Intn(len(products))]
	}
	return products[rand.Intn(len(products))]
}

// ResolveHandles resolves a list reference. The result is filtered to live
// products and reordered to match the reference-list order, not the source
// list's order. Handles with no live product are dropped.
func ResolveHandles(products []*Product, handles []string) []*Product {
	if len(handles) == 0 || len(products) == 0 {
		return nil
	}
	byHandle := make(map[string]*Product, len(products))
	for _, product := range products {
		if product != nil {
			byHandle[product.Handle] = product
		}
	}
	out := make([]*Product, 0, len(handles))
	for _, handle := range handles {
		if product, ok := byHandle[strings.TrimSpace(handle)]; ok {
			out = append(out, product)
		}
	}
	return out
}

// HandleStrings coerces a settings value into a string slice. Settings maps
// round-trip through JSON, so list references arrive as []any of strings.
func HandleStrings(value any) []string {
	switch list := value.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
