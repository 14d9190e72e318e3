package pagecontent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

// templateEnvelope is the YAML frontmatter carried by a template file. The
// body that follows the frontmatter is the JSON section list.
type templateEnvelope struct {
	Kind         string `yaml:"kind"`
	TemplateType string `yaml:"template_type"`
}

// ParseTemplate parses a template file: YAML frontmatter declaring the kind
// and optional template_type, followed by a JSON body holding the sections
// array (either bare or wrapped in {"sections": [...]}).
func ParseTemplate(source []byte) (string, Document, error) {
	var meta templateEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return "", Document{}, fmt.Errorf("parse template frontmatter: %w", err)
	}
	kind := strings.TrimSpace(meta.Kind)
	if kind == "" {
		return "", Document{}, fmt.Errorf("%w: missing kind", ErrTemplateInvalid)
	}

	doc, err := decodeTemplateBody(body)
	if err != nil {
		return "", Document{}, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	doc.TemplateType = strings.TrimSpace(meta.TemplateType)

	if err := ValidateDocument(doc); err != nil {
		return "", Document{}, err
	}
	return kind, doc, nil
}

// LoadTemplates walks dir inside fsys registering every parseable template
// file. Files that fail to parse abort the load; partial registries are
// harder to debug than a failed boot.
func LoadTemplates(registry *TemplateRegistry, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read template dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		source, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, entry.Name())))
		if err != nil {
			return fmt.Errorf("read template %s: %w", entry.Name(), err)
		}
		kind, doc, err := ParseTemplate(source)
		if err != nil {
			return fmt.Errorf("template %s: %w", entry.Name(), err)
		}
		registry.Register(kind, doc)
	}
	return nil
}

func decodeTemplateBody(body []byte) (Document, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Document{}, fmt.Errorf("empty template body")
	}
	if trimmed[0] == '[' {
		var sections []Section
		if err := json.Unmarshal(trimmed, &sections); err != nil {
			return Document{}, err
		}
		return Document{Sections: sections}, nil
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
