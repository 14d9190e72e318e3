package pagecontent

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrHandleRequired     = errors.New("pagecontent: handle is required")
	ErrHandleInvalid      = errors.New("pagecontent: handle contains invalid characters")
	ErrPageNotFound       = errors.New("pagecontent: page not found")
	ErrSectionNotFound    = errors.New("pagecontent: section not found")
	ErrSectionIDRequired  = errors.New("pagecontent: section id is required")
	ErrSectionIDDuplicate = errors.New("pagecontent: duplicate section id")
	ErrTemplateUnknown    = errors.New("pagecontent: unknown template kind")
	ErrTemplateInvalid    = errors.New("pagecontent: template definition invalid")
)

// PageNotFoundError reports a missing persisted document for a handle.
type PageNotFoundError struct {
	Handle string
}

func (e *PageNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Handle) == "" {
		return ErrPageNotFound.Error()
	}
	return fmt.Sprintf("%s: handle=%s", ErrPageNotFound.Error(), e.Handle)
}

func (e *PageNotFoundError) Unwrap() error {
	return ErrPageNotFound
}

// SectionNotFoundError reports an update targeting a section id absent from
// the document. Surfacing the miss makes key-mismatch bugs observable instead
// of silently dropping the write.
type SectionNotFoundError struct {
	Handle    string
	SectionID string
}

func (e *SectionNotFoundError) Error() string {
	if e == nil {
		return ErrSectionNotFound.Error()
	}
	if strings.TrimSpace(e.Handle) != "" {
		return fmt.Sprintf("%s: handle=%s id=%s", ErrSectionNotFound.Error(), e.Handle, e.SectionID)
	}
	return fmt.Sprintf("%s: id=%s", ErrSectionNotFound.Error(), e.SectionID)
}

func (e *SectionNotFoundError) Unwrap() error {
	return ErrSectionNotFound
}

// DuplicateSectionIDError reports a document that carries the same section id
// more than once, which would make mutation-by-id ambiguous.
type DuplicateSectionIDError struct {
	SectionID string
}

func (e *DuplicateSectionIDError) Error() string {
	if e == nil {
		return ErrSectionIDDuplicate.Error()
	}
	return fmt.Sprintf("%s: id=%s", ErrSectionIDDuplicate.Error(), e.SectionID)
}

func (e *DuplicateSectionIDError) Unwrap() error {
	return ErrSectionIDDuplicate
}

// UnknownTemplateError reports a create-from-template request naming a kind
// the template registry does not know.
type UnknownTemplateError struct {
	Kind string
}

func (e *UnknownTemplateError) Error() string {
	if e == nil || strings.TrimSpace(e.Kind) == "" {
		return ErrTemplateUnknown.Error()
	}
	return fmt.Sprintf("%s: kind=%s", ErrTemplateUnknown.Error(), e.Kind)
}

func (e *UnknownTemplateError) Unwrap() error {
	return ErrTemplateUnknown
}
