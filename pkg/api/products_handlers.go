// Handlers for the catalog (products) collection.

package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Felipebasilio/ReactiveBeerBack/internal/router"
	"github.com/Felipebasilio/ReactiveBeerBack/internal/store"
)

// searchFilter maps the optional ?search= query to the fuzzy brand filter.
func searchFilter(r *http.Request) map[string]string {
	if search := router.Query(r)["search"]; search != "" {
		return map[string]string{"brand": search}
	}
	return nil
}

// handleListProducts handles GET /products.
func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.SelectProducts(searchFilter(r)))
}

type createProductRequest struct {
	Brand       string      `json:"brand"`
	Image       string      `json:"image"`
	Style       string      `json:"style"`
	Substyle    string      `json:"substyle"`
	ABV         string      `json:"abv"`
	Origin      string      `json:"origin"`
	Information string      `json:"information"`
	Skus        []store.SKU `json:"skus"`
}

// handleCreateProduct handles POST /products. brand and skus are required;
// an empty skus array is accepted, a missing one is not.
func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}
	if req.Brand == "" || req.Skus == nil {
		writeError(w, http.StatusBadRequest, "invalid_data", "brand and skus are required")
		return
	}

	product := store.Product{
		ID:          uuid.NewString(),
		Brand:       req.Brand,
		Image:       req.Image,
		Style:       req.Style,
		Substyle:    req.Substyle,
		ABV:         req.ABV,
		Origin:      req.Origin,
		Information: req.Information,
		Skus:        req.Skus,
	}

	created, err := a.store.InsertProduct(product)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "persist_failed", "could not persist the catalog")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateProduct handles PUT /products/:id. An unknown id is a silent
// no-op toward the client.
func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	var patch store.ProductPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}

	found, err := a.store.UpdateProduct(id, patch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "persist_failed", "could not persist the catalog")
		return
	}
	if !found {
		a.log.Debug("update for unknown product", "id", id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteProduct handles DELETE /products/:id. Deleting an unknown id
// is a silent no-op toward the client.
func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	found, err := a.store.DeleteProduct(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "persist_failed", "could not persist the catalog")
		return
	}
	if !found {
		a.log.Debug("delete for unknown product", "id", id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// EnrichedSKU is a product SKU joined with its current stock and price.
// SKUs without a stock/price record report zero stock and zero price.
type EnrichedSKU struct {
	Code  int64   `json:"code"`
	Stock int     `json:"stock"`
	Price float64 `json:"price"`
}

// ProductWithSkus is a catalog record whose SKU entries carry the joined
// stock/price values.
type ProductWithSkus struct {
	store.Product
	Skus []EnrichedSKU `json:"skus"`
}

// handleListProductsWithSkus handles GET /products-with-skus: the
// read-time join between the two collections.
func (a *API) handleListProductsWithSkus(w http.ResponseWriter, r *http.Request) {
	products := a.store.SelectProducts(searchFilter(r))

	// First record wins when a SKU code is duplicated.
	bySKU := make(map[int64]store.StockPrice)
	for _, sp := range a.store.StockPrices() {
		if _, ok := bySKU[sp.SKU]; !ok {
			bySKU[sp.SKU] = sp
		}
	}

	out := make([]ProductWithSkus, 0, len(products))
	for _, p := range products {
		enriched := make([]EnrichedSKU, 0, len(p.Skus))
		for _, sku := range p.Skus {
			e := EnrichedSKU{Code: sku.Code}
			if sp, ok := bySKU[sku.Code]; ok {
				e.Stock = sp.Stock
				e.Price = sp.Price
			}
			enriched = append(enriched, e)
		}
		out = append(out, ProductWithSkus{Product: p, Skus: enriched})
	}
	writeJSON(w, http.StatusOK, out)
}
