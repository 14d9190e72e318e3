package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/importer"
	"github.com/goliatone/go-storefront/internal/pagecontent"
	"github.com/goliatone/go-storefront/internal/validation"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var pageNotFound *pagecontent.PageNotFoundError
	if errors.As(err, &pageNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: pageNotFound.Error(),
		}
	}

	var sectionNotFound *pagecontent.SectionNotFoundError
	if errors.As(err, &sectionNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: sectionNotFound.Error(),
		}
	}

	var productNotFound *catalog.ProductNotFoundError
	if errors.As(err, &productNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: productNotFound.Error(),
		}
	}

	if errors.Is(err, pagecontent.ErrSectionIDDuplicate) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, validation.ErrSchemaValidation) || errors.Is(err, validation.ErrSchemaInvalid) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if errors.Is(err, pagecontent.ErrHandleRequired) ||
		errors.Is(err, pagecontent.ErrHandleInvalid) ||
		errors.Is(err, pagecontent.ErrSectionIDRequired) ||
		errors.Is(err, pagecontent.ErrTemplateUnknown) ||
		errors.Is(err, importer.ErrHeaderMissing) ||
		errors.Is(err, importer.ErrInputEmpty) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}
