package pagecontent_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-storefront/internal/pagecontent"
)

func sampleDocument() pagecontent.Document {
	return pagecontent.Document{Sections: []pagecontent.Section{
		{ID: "hero", Type: pagecontent.TypeHeroSlider, Settings: map[string]any{
			"heading": "Welcome",
			"slides":  []any{"a.jpg", "b.jpg"},
		}},
		{ID: "essentials", Type: pagecontent.TypeShopEssentials, Settings: map[string]any{
			"tab1Products": []any{"scarf"},
		}},
		{ID: "lookbook", Type: pagecontent.TypeLookbook, Settings: map[string]any{
			"title": "Fall",
		}},
	}}
}

func TestUpdateSectionMergesPartialSettings(t *testing.T) {
	doc := sampleDocument()

	updated, err := pagecontent.UpdateSection(doc, "hero", map[string]any{
		"heading":  "Autumn",
		"subtitle": "New arrivals",
	})
	if err != nil {
		t.Fatalf("update section: %v", err)
	}

	got := updated.Sections[0].Settings
	if got["heading"] != "Autumn" {
		t.Fatalf("expected overridden heading, got %v", got["heading"])
	}
	if got["subtitle"] != "New arrivals" {
		t.Fatalf("expected new subtitle key, got %v", got["subtitle"])
	}
	if !reflect.DeepEqual(got["slides"], []any{"a.jpg", "b.jpg"}) {
		t.Fatalf("expected untouched slides, got %v", got["slides"])
	}

	if doc.Sections[0].Settings["heading"] != "Welcome" {
		t.Fatalf("input document mutated: %v", doc.Sections[0].Settings["heading"])
	}
}

func TestUpdateSectionSharesUntouchedSettings(t *testing.T) {
	doc := sampleDocument()

	updated, err := pagecontent.UpdateSection(doc, "hero", map[string]any{"heading": "X"})
	if err != nil {
		t.Fatalf("update section: %v", err)
	}

	// untouched sections keep the exact same settings map
	for i := 1; i < len(doc.Sections); i++ {
		before := reflect.ValueOf(doc.Sections[i].Settings).Pointer()
		after := reflect.ValueOf(updated.Sections[i].Settings).Pointer()
		if before != after {
			t.Fatalf("section %q settings were copied", doc.Sections[i].ID)
		}
	}

	before := reflect.ValueOf(doc.Sections[0].Settings).Pointer()
	after := reflect.ValueOf(updated.Sections[0].Settings).Pointer()
	if before == after {
		t.Fatal("matched section settings were not replaced")
	}
}

func TestUpdateSectionReplacesArraysWholesale(t *testing.T) {
	doc := sampleDocument()

	updated, err := pagecontent.UpdateSection(doc, "hero", map[string]any{
		"slides": []any{"c.jpg"},
	})
	if err != nil {
		t.Fatalf("update section: %v", err)
	}
	if !reflect.DeepEqual(updated.Sections[0].Settings["slides"], []any{"c.jpg"}) {
		t.Fatalf("expected replaced array, got %v", updated.Sections[0].Settings["slides"])
	}
}

func TestUpdateSectionUnknownID(t *testing.T) {
	doc := sampleDocument()

	_, err := pagecontent.UpdateSection(doc, "missing", map[string]any{"a": 1})
	var notFound *pagecontent.SectionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SectionNotFoundError, got %v", err)
	}
	if notFound.SectionID != "missing" {
		t.Fatalf("unexpected section id: %q", notFound.SectionID)
	}
	if !errors.Is(err, pagecontent.ErrSectionNotFound) {
		t.Fatal("expected unwrap to ErrSectionNotFound")
	}
}

func TestAddSectionInsertsAtPosition(t *testing.T) {
	doc := sampleDocument()

	updated, err := pagecontent.AddSection(doc, pagecontent.Section{
		ID:   "banner",
		Type: pagecontent.TypeScrollBanner,
	}, 1)
	if err != nil {
		t.Fatalf("add section: %v", err)
	}
	if updated.Sections[1].ID != "banner" {
		t.Fatalf("expected banner at index 1, got %q", updated.Sections[1].ID)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("input document mutated, len %d", len(doc.Sections))
	}
}

func TestAddSectionRejectsDuplicateID(t *testing.T) {
	doc := sampleDocument()

	_, err := pagecontent.AddSection(doc, pagecontent.Section{ID: "hero"}, 0)
	if !errors.Is(err, pagecontent.ErrSectionIDDuplicate) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestRemoveSection(t *testing.T) {
	doc := sampleDocument()

	updated, err := pagecontent.RemoveSection(doc, "essentials")
	if err != nil {
		t.Fatalf("remove section: %v", err)
	}
	if len(updated.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(updated.Sections))
	}
	if updated.Sections[1].ID != "lookbook" {
		t.Fatalf("unexpected order: %q", updated.Sections[1].ID)
	}
}

func TestMoveSectionClampsPosition(t *testing.T) {
	doc := sampleDocument()

	updated, err := pagecontent.MoveSection(doc, "hero", 99)
	if err != nil {
		t.Fatalf("move section: %v", err)
	}
	if updated.Sections[len(updated.Sections)-1].ID != "hero" {
		t.Fatalf("expected hero moved to tail, got %q", updated.Sections[len(updated.Sections)-1].ID)
	}
}

func TestValidateDocumentRejectsDuplicateIDs(t *testing.T) {
	doc := pagecontent.Document{Sections: []pagecontent.Section{
		{ID: "a", Type: pagecontent.TypeRichText},
		{ID: "a", Type: pagecontent.TypeLookbook},
	}}
	if err := pagecontent.ValidateDocument(doc); !errors.Is(err, pagecontent.ErrSectionIDDuplicate) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}

	doc.Sections[1].ID = " "
	if err := pagecontent.ValidateDocument(doc); !errors.Is(err, pagecontent.ErrSectionIDRequired) {
		t.Fatalf("expected id required error, got %v", err)
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()

	clone.Sections[0].Settings["heading"] = "changed"
	if doc.Sections[0].Settings["heading"] != "Welcome" {
		t.Fatal("clone shares settings with original")
	}
}
