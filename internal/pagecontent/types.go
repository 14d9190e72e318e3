package pagecontent

// Section type identifiers recognized by the default registry. Documents may
// carry types outside this set; those sections are preserved verbatim and
// skipped at render time.
const (
	TypeHeroSlider      = "hero_slider"
	TypeShopEssentials  = "shop_essentials"
	TypeLookbook        = "lookbook"
	TypeFeaturedProduct = "featured_product"
	TypeCollectionGrid  = "collection_grid"
	TypeScrollBanner    = "scroll_banner"
	TypePromoWindows    = "promo_windows"
	TypeEssentialsHero  = "essentials_hero"
	TypeFeaturedIn      = "featured_in"
	TypeShopByOccasion  = "shop_by_occasion"
	TypeSustainability  = "sustainability"
	TypeRichText        = "rich_text"
)

// Template type tags selecting an alternate full-page renderer instead of the
// default section-by-section layout.
const (
	TemplateTypeDefault = ""
	TemplateType2       = "template2"
	TemplateType3       = "template3"
)

// Section is one typed entry in a page document. ID is unique within a
// document and stable across edits; it is both the render key and the
// mutation target. Settings is an open mapping whose shape is a per-type
// contract between templates and renderers.
type Section struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Settings map[string]any `json:"settings"`
}

// Document is the root page content document. Section order is render order.
type Document struct {
	Sections     []Section `json:"sections"`
	TemplateType string    `json:"template_type,omitempty"`
}

// IsEmpty reports whether the document carries no sections. An empty document
// is indistinguishable from an uninitialized one and loads as not-found.
func (d Document) IsEmpty() bool {
	return len(d.Sections) == 0
}

// Clone returns a deep copy of the document. Settings maps and nested
// list values are copied so callers can mutate the result freely.
func (d Document) Clone() Document {
	out := Document{TemplateType: d.TemplateType}
	if len(d.Sections) == 0 {
		return out
	}
	out.Sections = make([]Section, len(d.Sections))
	for i, section := range d.Sections {
		out.Sections[i] = section.Clone()
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	return Section{
		ID:       s.ID,
		Type:     s.Type,
		Settings: cloneSettings(s.Settings),
	}
}

func cloneSettings(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return cloneSettings(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(value))
		copy(out, value)
		return out
	default:
		return v
	}
}
