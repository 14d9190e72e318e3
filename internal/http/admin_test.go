package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-storefront/internal/catalog"
	storefronthttp "github.com/goliatone/go-storefront/internal/http"
	"github.com/goliatone/go-storefront/internal/importer"
	"github.com/goliatone/go-storefront/internal/pagecontent"
)

func newTestServer(t *testing.T) (*httptest.Server, pagecontent.Service, *catalog.MemoryRepository) {
	t.Helper()

	pageRepo := pagecontent.NewMemoryRepository()
	pageSvc := pagecontent.NewService(pageRepo)
	catalogRepo := catalog.NewMemoryRepository()
	planner := pagecontent.NewPlanner(pagecontent.DefaultRegistry(), catalogRepo)
	imp := importer.New(catalogRepo)

	api := storefronthttp.NewAdminAPI(
		storefronthttp.WithPageService(pageSvc),
		storefronthttp.WithPlanner(planner),
		storefronthttp.WithCatalogProvider(catalogRepo),
		storefronthttp.WithImporter(imp),
	)

	mux := http.NewServeMux()
	api.Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, pageSvc, catalogRepo
}

func doJSON(t *testing.T, method, url string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAdminPageLifecycle(t *testing.T) {
	server, _, _ := newTestServer(t)

	doc := map[string]any{
		"document": map[string]any{
			"sections": []map[string]any{
				{"id": "hero", "type": "hero_slider", "settings": map[string]any{"heading": "Hello"}},
			},
		},
	}

	resp := doJSON(t, http.MethodPut, server.URL+"/admin/api/pages/homepage", doc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save: expected 200, got %d", resp.StatusCode)
	}
	var saved pagecontent.PageRecord
	decodeBody(t, resp, &saved)
	if saved.Handle != "homepage" || len(saved.Document.Sections) != 1 {
		t.Fatalf("unexpected saved record %#v", saved)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/admin/api/pages/homepage", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, server.URL+"/admin/api/pages/homepage", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/admin/api/pages/homepage", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminSectionPatch(t *testing.T) {
	server, pages, _ := newTestServer(t)

	if _, err := pages.Save(context.Background(), "homepage", pagecontent.Document{
		Sections: []pagecontent.Section{
			{ID: "hero", Type: pagecontent.TypeHeroSlider, Settings: map[string]any{"heading": "Old"}},
		},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := doJSON(t, http.MethodPatch, server.URL+"/admin/api/pages/homepage/sections/hero", map[string]any{
		"settings": map[string]any{"heading": "New"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d", resp.StatusCode)
	}
	var record pagecontent.PageRecord
	decodeBody(t, resp, &record)
	if record.Document.Sections[0].Settings["heading"] != "New" {
		t.Fatalf("patch not applied: %#v", record.Document.Sections[0].Settings)
	}

	resp = doJSON(t, http.MethodPatch, server.URL+"/admin/api/pages/homepage/sections/ghost", map[string]any{
		"settings": map[string]any{"a": 1},
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("patch unknown section: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminCreateFromTemplate(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/admin/api/pages/homepage/template", map[string]any{
		"kind": "homepage",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var record pagecontent.PageRecord
	decodeBody(t, resp, &record)
	if len(record.Document.Sections) == 0 {
		t.Fatal("expected template sections")
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/admin/api/pages/other/template", map[string]any{
		"kind": "no-such-kind",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown kind: expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestPublicPageRender(t *testing.T) {
	server, pages, catalogRepo := newTestServer(t)

	if _, err := catalogRepo.Save(context.Background(), &catalog.Product{Handle: "scarf", Title: "Scarf"}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := pages.Save(context.Background(), "homepage", pagecontent.Document{
		Sections: []pagecontent.Section{
			{ID: "feature", Type: pagecontent.TypeFeaturedProduct, Settings: map[string]any{"product_handle": "scarf"}},
		},
	}); err != nil {
		t.Fatalf("seed page: %v", err)
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/pages/homepage?edit=true", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		Handle string            `json:"handle"`
		State  string            `json:"state"`
		Plan   *pagecontent.Plan `json:"plan"`
	}
	decodeBody(t, resp, &payload)
	if payload.State != "found" {
		t.Fatalf("expected found, got %q", payload.State)
	}
	if payload.Plan == nil || !payload.Plan.EditMode {
		t.Fatalf("expected edit-mode plan, got %#v", payload.Plan)
	}
	if len(payload.Plan.Sections) != 1 || len(payload.Plan.Sections[0].Products) != 1 {
		t.Fatalf("expected resolved product, got %#v", payload.Plan.Sections)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/pages/ghost", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var missing struct {
		State string `json:"state"`
	}
	decodeBody(t, resp, &missing)
	if missing.State != "not_found" {
		t.Fatalf("expected not_found state in body, got %q", missing.State)
	}
}

func TestProductEndpoints(t *testing.T) {
	server, _, catalogRepo := newTestServer(t)

	if _, err := catalogRepo.Save(context.Background(), &catalog.Product{Handle: "scarf", Title: "Scarf"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/admin/api/products", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	var products []*catalog.Product
	decodeBody(t, resp, &products)
	if len(products) != 1 || products[0].Handle != "scarf" {
		t.Fatalf("unexpected products %#v", products)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/admin/api/products/ghost", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get missing: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestProductImportPartialFailure(t *testing.T) {
	server, _, catalogRepo := newTestServer(t)

	csv := "title,price\nSilk Scarf,49.00\nWool Coat,\n"

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "products.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, server.URL+"/admin/api/products/import", &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for partial failure, got %d", resp.StatusCode)
	}

	var report importer.Report
	decodeBody(t, resp, &report)
	if len(report.Results) != 1 || len(report.Errors) != 1 {
		t.Fatalf("unexpected report %#v", report)
	}

	if _, err := catalogRepo.GetByHandle(context.Background(), "silk-scarf"); err != nil {
		t.Fatalf("imported product missing: %v", err)
	}
}

func TestProductImportRawBody(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/admin/api/products/import", "text/csv",
		strings.NewReader("title,price\nLinen Shirt,89.50\n"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var report importer.Report
	decodeBody(t, resp, &report)
	if len(report.Results) != 1 {
		t.Fatalf("unexpected report %#v", report)
	}
}

func TestSaveValidationFailureReturns422(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, server.URL+"/admin/api/pages/homepage", map[string]any{
		"document": map[string]any{
			"sections": []map[string]any{
				{"id": "hero", "type": "hero_slider", "settings": map[string]any{"autoplay": "yes"}},
			},
		},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	var payload struct {
		Error  string `json:"error"`
		Issues []struct {
			Location string `json:"location"`
			Message  string `json:"message"`
		} `json:"issues"`
	}
	decodeBody(t, resp, &payload)
	if payload.Error != "validation_failed" || len(payload.Issues) == 0 {
		t.Fatalf("unexpected error payload %#v", payload)
	}
}

func TestSaveDuplicateSectionIDsReturns409(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, server.URL+"/admin/api/pages/homepage", map[string]any{
		"document": map[string]any{
			"sections": []map[string]any{
				{"id": "a", "type": "rich_text"},
				{"id": "a", "type": "lookbook"},
			},
		},
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
