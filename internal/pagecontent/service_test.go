package pagecontent_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-storefront/internal/pagecontent"
)

type failingRepository struct{}

func (failingRepository) GetByHandle(context.Context, string) (*pagecontent.PageRecord, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) List(context.Context) ([]*pagecontent.PageRecord, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) Upsert(context.Context, *pagecontent.PageRecord) (*pagecontent.PageRecord, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func newTestService() pagecontent.Service {
	return pagecontent.NewService(pagecontent.NewMemoryRepository())
}

func TestServiceSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	doc := sampleDocument()
	if _, err := svc.Save(ctx, "homepage", doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, state := svc.Load(ctx, "homepage")
	if state != pagecontent.LoadStateFound {
		t.Fatalf("expected found, got %s", state)
	}
	if !reflect.DeepEqual(loaded, doc) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", loaded, doc)
	}
}

func TestServiceLoadClassifiesMissingHandle(t *testing.T) {
	svc := newTestService()

	doc, state := svc.Load(context.Background(), "nope")
	if state != pagecontent.LoadStateNotFound {
		t.Fatalf("expected not_found, got %s", state)
	}
	if !doc.IsEmpty() {
		t.Fatalf("expected empty document, got %#v", doc)
	}
}

func TestServiceLoadClassifiesRepositoryError(t *testing.T) {
	svc := pagecontent.NewService(failingRepository{})

	_, state := svc.Load(context.Background(), "homepage")
	if state != pagecontent.LoadStateNotFound {
		t.Fatalf("expected not_found on repo error, got %s", state)
	}
}

func TestServiceLoadClassifiesEmptyDocument(t *testing.T) {
	ctx := context.Background()
	repo := pagecontent.NewMemoryRepository()
	svc := pagecontent.NewService(repo)

	if _, err := repo.Upsert(ctx, &pagecontent.PageRecord{Handle: "empty"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, state := svc.Load(ctx, "empty")
	if state != pagecontent.LoadStateNotFound {
		t.Fatalf("expected not_found for zero sections, got %s", state)
	}
}

func TestServiceGetMissingHandle(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), "ghost")
	var notFound *pagecontent.PageNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PageNotFoundError, got %v", err)
	}
	if notFound.Handle != "ghost" {
		t.Fatalf("unexpected handle: %q", notFound.Handle)
	}
}

func TestServiceSaveNormalizesHandle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	record, err := svc.Save(ctx, "  Summer Lookbook  ", sampleDocument())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if record.Handle != "summer-lookbook" {
		t.Fatalf("expected slugged handle, got %q", record.Handle)
	}

	if _, state := svc.Load(ctx, "summer-lookbook"); state != pagecontent.LoadStateFound {
		t.Fatalf("expected load by normalized handle, got %s", state)
	}
}

func TestServiceSaveRejectsEmptyHandle(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Save(context.Background(), "   ", sampleDocument()); !errors.Is(err, pagecontent.ErrHandleRequired) {
		t.Fatalf("expected handle required, got %v", err)
	}
}

func TestServiceSavePreservesUnknownSectionTypes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	doc := pagecontent.Document{Sections: []pagecontent.Section{
		{ID: "future", Type: "holo_display", Settings: map[string]any{"depth": 3}},
	}}
	if _, err := svc.Save(ctx, "labs", doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, state := svc.Load(ctx, "labs")
	if state != pagecontent.LoadStateFound {
		t.Fatalf("expected found, got %s", state)
	}
	if loaded.Sections[0].Type != "holo_display" {
		t.Fatalf("unknown type not preserved: %q", loaded.Sections[0].Type)
	}
}

func TestServiceUpdateSectionPersists(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.Save(ctx, "homepage", sampleDocument()); err != nil {
		t.Fatalf("save: %v", err)
	}

	record, err := svc.UpdateSection(ctx, "homepage", "hero", map[string]any{"heading": "Sale"})
	if err != nil {
		t.Fatalf("update section: %v", err)
	}
	if record.Document.Sections[0].Settings["heading"] != "Sale" {
		t.Fatalf("merge not persisted: %v", record.Document.Sections[0].Settings)
	}

	loaded, _ := svc.Load(ctx, "homepage")
	if loaded.Sections[0].Settings["heading"] != "Sale" {
		t.Fatal("update not visible on reload")
	}
}

func TestServiceUpdateSectionUnknownID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.Save(ctx, "homepage", sampleDocument()); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := svc.UpdateSection(ctx, "homepage", "missing", map[string]any{"a": 1})
	var notFound *pagecontent.SectionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SectionNotFoundError, got %v", err)
	}
	if notFound.Handle != "homepage" || notFound.SectionID != "missing" {
		t.Fatalf("unexpected error detail: %+v", notFound)
	}

	loaded, _ := svc.Load(ctx, "homepage")
	if !reflect.DeepEqual(loaded, sampleDocument()) {
		t.Fatal("document changed after failed section update")
	}
}

func TestServiceCreateFromTemplate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	record, err := svc.CreateFromTemplate(ctx, "homepage", pagecontent.KindHomepage)
	if err != nil {
		t.Fatalf("create from template: %v", err)
	}
	if len(record.Document.Sections) == 0 {
		t.Fatal("expected template sections")
	}

	if _, err := svc.CreateFromTemplate(ctx, "other", "no-such-kind"); !errors.Is(err, pagecontent.ErrTemplateUnknown) {
		t.Fatalf("expected unknown template error, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.Save(ctx, "homepage", sampleDocument()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(ctx, "homepage"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, state := svc.Load(ctx, "homepage"); state != pagecontent.LoadStateNotFound {
		t.Fatalf("expected not_found after delete, got %s", state)
	}

	var notFound *pagecontent.PageNotFoundError
	if err := svc.Delete(ctx, "homepage"); !errors.As(err, &notFound) {
		t.Fatalf("expected PageNotFoundError on double delete, got %v", err)
	}
}

func TestServiceLastSaveWins(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first := pagecontent.Document{Sections: []pagecontent.Section{
		{ID: "a", Type: pagecontent.TypeRichText, Settings: map[string]any{"body": "first"}},
	}}
	second := pagecontent.Document{Sections: []pagecontent.Section{
		{ID: "b", Type: pagecontent.TypeRichText, Settings: map[string]any{"body": "second"}},
	}}

	if _, err := svc.Save(ctx, "homepage", first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if _, err := svc.Save(ctx, "homepage", second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, _ := svc.Load(ctx, "homepage")
	if !reflect.DeepEqual(loaded, second) {
		t.Fatalf("expected second save to fully replace, got %#v", loaded)
	}
}

func TestServiceSaveRejectsInvalidSettings(t *testing.T) {
	svc := newTestService()

	doc := pagecontent.Document{Sections: []pagecontent.Section{
		{ID: "hero", Type: pagecontent.TypeHeroSlider, Settings: map[string]any{
			"autoplay": "yes",
		}},
	}}
	_, err := svc.Save(context.Background(), "homepage", doc)
	if err == nil {
		t.Fatal("expected schema validation error")
	}
}
