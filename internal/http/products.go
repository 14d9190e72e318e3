package http

import (
	"net/http"
)

func (api *AdminAPI) registerProductRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "products")
	mux.HandleFunc("GET "+root, api.handleProductList)
	mux.HandleFunc("GET "+root+"/{handle}", api.handleProductGet)
	mux.HandleFunc("POST "+root+"/import", api.handleProductImport)
}

func (api *AdminAPI) handleProductList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	products, err := api.catalog.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (api *AdminAPI) handleProductGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	product, err := api.catalog.GetByHandle(r.Context(), r.PathValue("handle"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// handleProductImport accepts the CSV either as a multipart "file" field or
// as the raw request body. Row failures land in the report; the response is
// 200 whenever the file itself was readable.
func (api *AdminAPI) handleProductImport(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.importer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	body := r.Body
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		body = file
	}

	report, err := api.importer.Import(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
