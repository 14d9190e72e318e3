package http

import (
	"net/http"

	"github.com/goliatone/go-storefront/internal/pagecontent"
)

type pageSavePayload struct {
	Document pagecontent.Document `json:"document"`
}

type sectionPatchPayload struct {
	Settings map[string]any `json:"settings"`
}

type templateCreatePayload struct {
	Kind string `json:"kind"`
}

type pageLoadResponse struct {
	Handle string                `json:"handle"`
	State  pagecontent.LoadState `json:"state"`
	Plan   *pagecontent.Plan     `json:"plan,omitempty"`
}

func (api *AdminAPI) registerPageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("GET "+root+"/{handle}", api.handlePageGet)
	mux.HandleFunc("PUT "+root+"/{handle}", api.handlePageSave)
	mux.HandleFunc("DELETE "+root+"/{handle}", api.handlePageDelete)
	mux.HandleFunc("POST "+root+"/{handle}/template", api.handlePageFromTemplate)
	mux.HandleFunc("PATCH "+root+"/{handle}/sections/{sectionID}", api.handleSectionPatch)
}

func (api *AdminAPI) registerPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /pages/{handle}", api.handlePageRender)
}

func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	records, err := api.pages.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	record, err := api.pages.Get(r.Context(), r.PathValue("handle"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePageSave(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload pageSavePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid payload"})
		return
	}
	record, err := api.pages.Save(r.Context(), r.PathValue("handle"), payload.Document)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if err := api.pages.Delete(r.Context(), r.PathValue("handle")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handlePageFromTemplate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload templateCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid payload"})
		return
	}
	record, err := api.pages.CreateFromTemplate(r.Context(), r.PathValue("handle"), payload.Kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleSectionPatch(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload sectionPatchPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid payload"})
		return
	}
	record, err := api.pages.UpdateSection(r.Context(), r.PathValue("handle"), r.PathValue("sectionID"), payload.Settings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handlePageRender serves the public read: load classification plus the
// render plan. Not-found never errors; the state field carries the outcome.
func (api *AdminAPI) handlePageRender(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	handle := r.PathValue("handle")
	doc, state := api.pages.Load(r.Context(), handle)

	response := pageLoadResponse{Handle: handle, State: state}
	if state == pagecontent.LoadStateFound && api.planner != nil {
		editMode := r.URL.Query().Get("edit") == "true"
		response.Plan = api.planner.Build(r.Context(), doc, pagecontent.PlanOptions{EditMode: editMode})
	}

	status := http.StatusOK
	if state == pagecontent.LoadStateNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, response)
}
