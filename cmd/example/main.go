package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	storefront "github.com/goliatone/go-storefront"
)

const sampleCSV = `title,price,description,colors,sizes,images
Silk Scarf,49.00,Hand rolled edges,Crimson:#DC143C|Ivory:#FFFFF0,One Size,
Linen Shirt,89.50,Relaxed fit,White:#FFFFFF,"S,M,L",
Wool Coat,,Missing price on purpose,,,
`

func main() {
	ctx := context.Background()

	cfg := storefront.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Format = "console"

	module, err := storefront.New(cfg)
	if err != nil {
		log.Fatalf("storefront: %v", err)
	}
	defer module.Close()

	if err := module.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	report, err := module.Importer().Import(ctx, strings.NewReader(sampleCSV))
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	fmt.Printf("imported %d products, %d row errors\n", len(report.Results), len(report.Errors))
	for _, rowErr := range report.Errors {
		fmt.Printf("  skipped: %s\n", rowErr.Message)
	}

	pages := module.Pages()
	record, err := pages.CreateFromTemplate(ctx, "homepage", "homepage")
	if err != nil {
		log.Fatalf("create page: %v", err)
	}
	fmt.Printf("created page %q with %d sections\n", record.Handle, len(record.Document.Sections))

	sectionID := record.Document.Sections[0].ID
	if _, err := pages.UpdateSection(ctx, "homepage", sectionID, map[string]any{
		"heading": "Autumn Collection",
	}); err != nil {
		log.Fatalf("update section: %v", err)
	}

	doc, state := pages.Load(ctx, "homepage")
	fmt.Printf("load state: %s\n", state)

	plan := module.Planner().Build(ctx, doc, storefront.PlanOptions{})
	encoded, _ := json.MarshalIndent(plan.Sections[0], "", "  ")
	fmt.Printf("first planned section:\n%s\n", encoded)

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		mux := http.NewServeMux()
		module.RegisterRoutes(mux)
		fmt.Println("listening on :8080")
		log.Fatal(http.ListenAndServe(":8080", mux))
	}
}
