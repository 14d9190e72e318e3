package pagecontent

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-storefront/internal/identity"
)

// Template kinds with built-in fallback documents. A page whose handle has no
// persisted document renders from the template matching its kind.
const (
	KindHomepage   = "homepage"
	KindCollection = "collection"
	KindTemplate1  = "template-1"
	KindTemplate2  = "template-2"
	KindTemplate3  = "template-3"
)

// TemplateRegistry stores fallback documents keyed by kind. The built-in
// kinds are preloaded; host applications can register more, e.g. from
// frontmatter template files.
type TemplateRegistry struct {
	mu        sync.RWMutex
	templates map[string]Document
}

// NewTemplateRegistry constructs a registry preloaded with the built-in kinds.
func NewTemplateRegistry() *TemplateRegistry {
	r := &TemplateRegistry{templates: make(map[string]Document)}
	r.Register(KindHomepage, homepageTemplate())
	r.Register(KindCollection, collectionTemplate())
	r.Register(KindTemplate1, productTemplate(KindTemplate1, TemplateTypeDefault))
	r.Register(KindTemplate2, productTemplate(KindTemplate2, TemplateType2))
	r.Register(KindTemplate3, productTemplate(KindTemplate3, TemplateType3))
	return r
}

// Register stores a template document under the given kind, replacing any
// previous registration. Empty kinds are ignored.
func (r *TemplateRegistry) Register(kind string, doc Document) {
	if r == nil {
		return
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[kind] = doc.Clone()
}

// Template returns a deep copy of the document registered for kind so callers
// can mutate the result without corrupting the registry.
func (r *TemplateRegistry) Template(kind string) (Document, error) {
	if r == nil {
		return Document{}, &UnknownTemplateError{Kind: kind}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.templates[strings.TrimSpace(kind)]
	if !ok {
		return Document{}, &UnknownTemplateError{Kind: kind}
	}
	return doc.Clone(), nil
}

// Kinds lists the registered template kinds in sorted order.
func (r *TemplateRegistry) Kinds() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.templates))
	for kind := range r.templates {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}

// templateSection builds a section whose id is derived deterministically from
// the template kind, type, and position. Instantiating the same kind twice
// yields identical ids, which keeps editor mutation targets stable.
func templateSection(kind, sectionType string, position int, settings map[string]any) Section {
	return Section{
		ID:       identity.SectionID(kind, sectionType, position),
		Type:     sectionType,
		Settings: settings,
	}
}

func homepageTemplate() Document {
	kind := KindHomepage
	return Document{Sections: []Section{
		templateSection(kind, TypeHeroSlider, 0, map[string]any{
			"slides": []any{
				map[string]any{"heading": "New Season", "subheading": "Explore the collection", "image": "", "link": "/pages/collection"},
			},
			"autoplay": true,
			"interval": 5000,
		}),
		templateSection(kind, TypeShopEssentials, 1, map[string]any{
			"title":        "Shop Essentials",
			"tab1Label":    "Bestsellers",
			"tab2Label":    "New Arrivals",
			"tab1Products": []any{},
			"tab2Products": []any{},
		}),
		templateSection(kind, TypeLookbook, 2, map[string]any{
			"title":  "Lookbook",
			"images": []any{},
		}),
		templateSection(kind, TypeFeaturedProduct, 3, map[string]any{
			"product_handle": "",
			"caption":        "Featured",
		}),
		templateSection(kind, TypeScrollBanner, 4, map[string]any{
			"text":  "Free shipping on all orders",
			"speed": 30,
		}),
		templateSection(kind, TypePromoWindows, 5, map[string]any{
			"windows": []any{},
		}),
		templateSection(kind, TypeFeaturedIn, 6, map[string]any{
			"title": "Featured In",
			"logos": []any{},
		}),
	}}
}

func collectionTemplate() Document {
	kind := KindCollection
	return Document{Sections: []Section{
		templateSection(kind, TypeEssentialsHero, 0, map[string]any{
			"heading":    "The Collection",
			"subheading": "Every piece, considered",
			"image":      "",
		}),
		templateSection(kind, TypeCollectionGrid, 1, map[string]any{
			"columns":      3,
			"show_filters": true,
			"sort_default": "featured",
		}),
		templateSection(kind, TypeShopByOccasion, 2, map[string]any{
			"title":        "Shop by Occasion",
			"tab1Label":    "Everyday",
			"tab2Label":    "Evening",
			"tab1Products": []any{},
			"tab2Products": []any{},
		}),
	}}
}

func productTemplate(kind, templateType string) Document {
	return Document{
		TemplateType: templateType,
		Sections: []Section{
			templateSection(kind, TypeFeaturedProduct, 0, map[string]any{
				"product_handle": "",
				"caption":        "",
			}),
			templateSection(kind, TypeSustainability, 1, map[string]any{
				"title":            "Sustainability Picks",
				"selectedProducts": []any{},
			}),
			templateSection(kind, TypeRichText, 2, map[string]any{
				"body": "## Details\n\nCrafted in small batches.",
			}),
		},
	}
}
