package pagecontent

import "strings"

// UpdateSection shallow-merges partial into the settings of the section with
// the matching id. Only the matched section's wrapper and settings map are
// new; every other section keeps its original Settings map (structural
// sharing). List-valued settings follow whole-array replacement: callers ship
// the complete new array, never a diff.
//
// A missing id returns *SectionNotFoundError with the document unchanged.
func UpdateSection(doc Document, sectionID string, partial map[string]any) (Document, error) {
	idx := indexOfSection(doc.Sections, sectionID)
	if idx < 0 {
		return doc, &SectionNotFoundError{SectionID: sectionID}
	}

	sections := make([]Section, len(doc.Sections))
	copy(sections, doc.Sections)

	current := sections[idx]
	merged := make(map[string]any, len(current.Settings)+len(partial))
	for k, v := range current.Settings {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	sections[idx] = Section{ID: current.ID, Type: current.Type, Settings: merged}

	return Document{Sections: sections, TemplateType: doc.TemplateType}, nil
}

// AddSection inserts the section at the given position; positions past the
// end append. The input document is not mutated.
func AddSection(doc Document, section Section, position int) (Document, error) {
	if strings.TrimSpace(section.ID) == "" {
		return doc, ErrSectionIDRequired
	}
	if indexOfSection(doc.Sections, section.ID) >= 0 {
		return doc, &DuplicateSectionIDError{SectionID: section.ID}
	}
	if position < 0 || position > len(doc.Sections) {
		position = len(doc.Sections)
	}

	sections := make([]Section, 0, len(doc.Sections)+1)
	sections = append(sections, doc.Sections[:position]...)
	sections = append(sections, section)
	sections = append(sections, doc.Sections[position:]...)

	return Document{Sections: sections, TemplateType: doc.TemplateType}, nil
}

// RemoveSection drops the section with the matching id.
func RemoveSection(doc Document, sectionID string) (Document, error) {
	idx := indexOfSection(doc.Sections, sectionID)
	if idx < 0 {
		return doc, &SectionNotFoundError{SectionID: sectionID}
	}

	sections := make([]Section, 0, len(doc.Sections)-1)
	sections = append(sections, doc.Sections[:idx]...)
	sections = append(sections, doc.Sections[idx+1:]...)

	return Document{Sections: sections, TemplateType: doc.TemplateType}, nil
}

// MoveSection splices the section with the matching id to the target
// position. Out-of-range targets clamp to the array bounds; add/remove and
// move share the same splice semantics.
func MoveSection(doc Document, sectionID string, position int) (Document, error) {
	idx := indexOfSection(doc.Sections, sectionID)
	if idx < 0 {
		return doc, &SectionNotFoundError{SectionID: sectionID}
	}
	if position < 0 {
		position = 0
	}
	if position >= len(doc.Sections) {
		position = len(doc.Sections) - 1
	}
	if position == idx {
		return doc, nil
	}

	sections := make([]Section, 0, len(doc.Sections))
	sections = append(sections, doc.Sections[:idx]...)
	sections = append(sections, doc.Sections[idx+1:]...)

	moved := doc.Sections[idx]
	out := make([]Section, 0, len(doc.Sections))
	out = append(out, sections[:position]...)
	out = append(out, moved)
	out = append(out, sections[position:]...)

	return Document{Sections: out, TemplateType: doc.TemplateType}, nil
}

// ValidateDocument enforces the document-level invariants: every section
// carries a non-empty id and ids are unique so mutation-by-id stays
// unambiguous. Settings shapes are not cross-validated here; per-type schema
// checks live in the section registry.
func ValidateDocument(doc Document) error {
	seen := make(map[string]struct{}, len(doc.Sections))
	for _, section := range doc.Sections {
		id := strings.TrimSpace(section.ID)
		if id == "" {
			return ErrSectionIDRequired
		}
		if _, dup := seen[id]; dup {
			return &DuplicateSectionIDError{SectionID: id}
		}
		seen[id] = struct{}{}
	}
	return nil
}

func indexOfSection(sections []Section, id string) int {
	for i, section := range sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}
