package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/horolog/horolog/application/port/inbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/apperror"
	"github.com/horolog/horolog/infrastructure/http/middleware"
	"github.com/horolog/horolog/infrastructure/http/response"
)

type ProductHandler struct {
	products inbound.ProductService
}

func NewProductHandler(products inbound.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	f := query.BuildProductFilter(params)
	s, err := query.BuildSort(params, query.ProductSortColumns, "createdAt")
	if err != nil {
		response.FromError(w, err)
		return
	}
	pg, err := query.BuildPage(params, query.DefaultProductLimit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	products, total, err := h.products.List(r.Context(), f, s, pg)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, products, pg, total)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	var in inbound.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.FromError(w, apperror.InvalidInput("invalid request body"))
		return
	}

	product, err := h.products.Create(r.Context(), in, principal)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}
	id := mux.Vars(r)["id"]

	var in inbound.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.FromError(w, apperror.InvalidInput("invalid request body"))
		return
	}

	product, err := h.products.Update(r.Context(), id, in, principal)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}
	id := mux.Vars(r)["id"]

	if err := h.products.Delete(r.Context(), id, principal); err != nil {
		response.FromError(w, err)
		return
	}
	response.Message(w, http.StatusOK, "product deleted")
}
