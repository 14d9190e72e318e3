package pagecontent

import (
	"bytes"
	"context"
	"math/rand"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// PlanOptions controls render plan construction. EditMode marks the plan so
// clients know section update endpoints apply; it does not change resolution.
type PlanOptions struct {
	EditMode bool
}

// RenderedSection is one entry of a render plan: the section identity, its
// effective settings (registry defaults merged under stored keys), resolved
// product payloads for product-linked types, and rendered HTML for rich text.
type RenderedSection struct {
	ID       string                        `json:"id"`
	Type     string                        `json:"type"`
	Settings map[string]any                `json:"settings"`
	Products []*catalog.Product            `json:"products,omitempty"`
	Tabs     map[string][]*catalog.Product `json:"tabs,omitempty"`
	HTML     string                        `json:"html,omitempty"`
}

// Plan is the renderable projection of a document. Sections appear in
// document order; unknown types are skipped here but never removed from the
// underlying document, so they survive save/reload round-trips.
type Plan struct {
	TemplateType string            `json:"template_type,omitempty"`
	EditMode     bool              `json:"edit_mode"`
	Sections     []RenderedSection `json:"sections"`
}

// Planner builds render plans from documents. Product-linked sections
// resolve against a fresh provider listing on every build; resolution
// failures degrade to missing products rather than failing the plan.
type Planner struct {
	registry *Registry
	products catalog.Provider
	markdown goldmark.Markdown
	rng      *rand.Rand
	logger   interfaces.Logger
}

// PlannerOption mutates the planner configuration.
type PlannerOption func(*Planner)

// WithPlannerRNG overrides the random source used for fallback product picks.
func WithPlannerRNG(rng *rand.Rand) PlannerOption {
	return func(p *Planner) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithPlannerLogger wires a logger for degraded-resolution diagnostics.
func WithPlannerLogger(logger interfaces.Logger) PlannerOption {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlanner constructs a planner over the given section registry and
// product provider. A nil provider disables product resolution; plans still
// build with unresolved product sections.
func NewPlanner(registry *Registry, products catalog.Provider, opts ...PlannerOption) *Planner {
	p := &Planner{
		registry: registry,
		products: products,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Build walks the document in section order producing a plan. The plan is a
// pure function of (document, options) apart from the product listing and the
// random fallback pick.
func (p *Planner) Build(ctx context.Context, doc Document, opts PlanOptions) *Plan {
	plan := &Plan{
		TemplateType: doc.TemplateType,
		EditMode:     opts.EditMode,
		Sections:     make([]RenderedSection, 0, len(doc.Sections)),
	}

	products := p.fetchProducts(ctx, doc)

	for _, section := range doc.Sections {
		def, known := p.registry.Definition(section.Type)
		if !known {
			// Unknown/future types render nothing but stay in the document.
			continue
		}
		rendered := RenderedSection{
			ID:       section.ID,
			Type:     section.Type,
			Settings: mergeDefaults(def.Defaults, section.Settings),
		}
		p.resolveSection(&rendered, products)
		plan.Sections = append(plan.Sections, rendered)
	}
	return plan
}

// fetchProducts lists the catalog once per build when the document contains
// at least one product-linked section. Provider errors degrade to an empty
// list; renderers always receive well-formed, possibly-empty data.
func (p *Planner) fetchProducts(ctx context.Context, doc Document) []*catalog.Product {
	if p.products == nil || !needsProducts(doc) {
		return nil
	}
	products, err := p.products.ListProducts(ctx)
	if err != nil {
		p.logger.Warn("product listing failed, rendering without products", "error", err)
		return nil
	}
	return products
}

func (p *Planner) resolveSection(rendered *RenderedSection, products []*catalog.Product) {
	switch rendered.Type {
	case TypeFeaturedProduct:
		handle, _ := rendered.Settings["product_handle"].(string)
		if product := catalog.ResolveHandle(products, handle, p.rng); product != nil {
			rendered.Products = []*catalog.Product{product}
		}
	case TypeShopEssentials, TypeShopByOccasion:
		tabs := make(map[string][]*catalog.Product, 2)
		for _, key := range []string{"tab1Products", "tab2Products"} {
			if resolved := catalog.ResolveHandles(products, catalog.HandleStrings(rendered.Settings[key])); len(resolved) > 0 {
				tabs[key] = resolved
			}
		}
		if len(tabs) > 0 {
			rendered.Tabs = tabs
		}
	case TypeSustainability:
		handles := catalog.HandleStrings(rendered.Settings["selectedProducts"])
		if resolved := catalog.ResolveHandles(products, handles); len(resolved) > 0 {
			rendered.Products = resolved
		}
	case TypeRichText:
		body, _ := rendered.Settings["body"].(string)
		if body == "" {
			return
		}
		var buf bytes.Buffer
		if err := p.markdown.Convert([]byte(body), &buf); err != nil {
			p.logger.Warn("rich text render failed", "section", rendered.ID, "error", err)
			return
		}
		rendered.HTML = buf.String()
	}
}

func needsProducts(doc Document) bool {
	for _, section := range doc.Sections {
		switch section.Type {
		case TypeFeaturedProduct, TypeShopEssentials, TypeShopByOccasion, TypeSustainability:
			return true
		}
	}
	return false
}

// mergeDefaults layers stored settings over registry defaults; stored keys win.
func mergeDefaults(defaults, settings map[string]any) map[string]any {
	if len(defaults) == 0 && len(settings) == 0 {
		return map[string]any{}
	}
	merged := make(map[string]any, len(defaults)+len(settings))
	for k, v := range defaults {
		merged[k] = cloneValue(v)
	}
	for k, v := range settings {
		merged[k] = v
	}
	return merged
}
