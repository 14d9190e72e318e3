package pagecontent

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-storefront/internal/validation"
)

// Definition describes one recognized section type: the JSON schema its
// settings must satisfy (nil skips validation) and the defaults merged under
// stored settings at render time.
type Definition struct {
	Type     string
	Schema   map[string]any
	Defaults map[string]any
}

// Registry stores section definitions keyed by type. Lookups for unknown
// types return ok=false without error; unknown sections are legal document
// content and simply render as nothing.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Definition
}

// NewRegistry constructs an empty section registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Definition)}
}

// DefaultRegistry returns a registry preloaded with the built-in section types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range builtinDefinitions() {
		r.Register(def)
	}
	return r
}

// Register records a definition, replacing any previous entry for the type.
func (r *Registry) Register(def Definition) {
	if r == nil {
		return
	}
	name := strings.TrimSpace(def.Type)
	if name == "" {
		return
	}
	def.Type = name
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Definition)
	}
	r.entries[name] = def
}

// Definition looks up the definition for a section type.
func (r *Registry) Definition(sectionType string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.entries[strings.TrimSpace(sectionType)]
	return def, ok
}

// Types lists registered section types in sorted order.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ValidateSettings checks a section's settings against the registered schema
// for its type. Unknown types and definitions without schemas pass.
func (r *Registry) ValidateSettings(section Section) error {
	def, ok := r.Definition(section.Type)
	if !ok || len(def.Schema) == 0 {
		return nil
	}
	return validation.ValidatePayload(def.Schema, section.Settings)
}

func builtinDefinitions() []Definition {
	return []Definition{
		{
			Type: TypeHeroSlider,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"slides":   map[string]any{"type": "array"},
					"autoplay": map[string]any{"type": "boolean"},
					"interval": map[string]any{"type": "number"},
				},
			},
			Defaults: map[string]any{"slides": []any{}, "autoplay": true, "interval": 5000},
		},
		{
			Type: TypeShopEssentials,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":        map[string]any{"type": "string"},
					"tab1Label":    map[string]any{"type": "string"},
					"tab2Label":    map[string]any{"type": "string"},
					"tab1Products": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"tab2Products": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
			Defaults: map[string]any{"title": "Shop Essentials", "tab1Products": []any{}, "tab2Products": []any{}},
		},
		{
			Type:     TypeLookbook,
			Defaults: map[string]any{"title": "Lookbook", "images": []any{}},
		},
		{
			Type: TypeFeaturedProduct,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"product_handle": map[string]any{"type": "string"},
					"caption":        map[string]any{"type": "string"},
				},
			},
			Defaults: map[string]any{"product_handle": "", "caption": ""},
		},
		{
			Type:     TypeCollectionGrid,
			Defaults: map[string]any{"columns": 3, "show_filters": true, "sort_default": "featured"},
		},
		{
			Type:     TypeScrollBanner,
			Defaults: map[string]any{"text": "", "speed": 30},
		},
		{
			Type:     TypePromoWindows,
			Defaults: map[string]any{"windows": []any{}},
		},
		{
			Type:     TypeEssentialsHero,
			Defaults: map[string]any{"heading": "", "subheading": "", "image": ""},
		},
		{
			Type:     TypeFeaturedIn,
			Defaults: map[string]any{"title": "Featured In", "logos": []any{}},
		},
		{
			Type: TypeShopByOccasion,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":        map[string]any{"type": "string"},
					"tab1Label":    map[string]any{"type": "string"},
					"tab2Label":    map[string]any{"type": "string"},
					"tab1Products": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"tab2Products": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
			Defaults: map[string]any{"title": "Shop by Occasion", "tab1Products": []any{}, "tab2Products": []any{}},
		},
		{
			Type: TypeSustainability,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":            map[string]any{"type": "string"},
					"selectedProducts": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
			Defaults: map[string]any{"title": "Sustainability Picks", "selectedProducts": []any{}},
		},
		{
			Type: TypeRichText,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"body": map[string]any{"type": "string"},
				},
			},
			Defaults: map[string]any{"body": ""},
		},
	}
}
