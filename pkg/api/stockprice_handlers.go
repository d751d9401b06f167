// Handlers for the stock/price collection. The identity field is the
// numeric SKU code taken from the path; a non-numeric code can never match
// a stored record, so lookups treat it as not found and mutations as a
// no-op.

package api

import (
	"net/http"
	"strconv"

	"github.com/Felipebasilio/ReactiveBeerBack/internal/router"
	"github.com/Felipebasilio/ReactiveBeerBack/internal/store"
)

// handleGetStockPrice handles GET /stock-price/:sku.
func (a *API) handleGetStockPrice(w http.ResponseWriter, r *http.Request) {
	sku, err := strconv.ParseInt(router.Param(r, "sku"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "stock not found")
		return
	}

	sp, ok := a.store.StockPriceBySKU(sku)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "stock not found")
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

type createStockPriceRequest struct {
	SKU   *int64   `json:"sku"`
	Stock *int     `json:"stock"`
	Price *float64 `json:"price"`
}

// handleCreateStockPrice handles POST /stock-price. sku, stock and price
// must all be present and non-null.
func (a *API) handleCreateStockPrice(w http.ResponseWriter, r *http.Request) {
	var req createStockPriceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}
	if req.SKU == nil || req.Stock == nil || req.Price == nil {
		writeError(w, http.StatusBadRequest, "invalid_data", "sku, stock and price are required")
		return
	}

	created, err := a.store.InsertStockPrice(store.StockPrice{
		SKU:   *req.SKU,
		Stock: *req.Stock,
		Price: *req.Price,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "persist_failed", "could not persist stock data")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateStockPrice handles PUT /stock-price/:sku. An unknown or
// non-numeric sku is a silent no-op toward the client.
func (a *API) handleUpdateStockPrice(w http.ResponseWriter, r *http.Request) {
	raw := router.Param(r, "sku")

	var patch store.StockPricePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}

	sku, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.log.Debug("update for non-numeric sku", "sku", raw)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	found, err := a.store.UpdateStockPrice(sku, patch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "persist_failed", "could not persist stock data")
		return
	}
	if !found {
		a.log.Debug("update for unknown sku", "sku", sku)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteStockPrice handles DELETE /stock-price/:sku. Deleting an
// unknown or non-numeric sku is a silent no-op toward the client.
func (a *API) handleDeleteStockPrice(w http.ResponseWriter, r *http.Request) {
	raw := router.Param(r, "sku")

	sku, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.log.Debug("delete for non-numeric sku", "sku", raw)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	found, err := a.store.DeleteStockPrice(sku)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "persist_failed", "could not persist stock data")
		return
	}
	if !found {
		a.log.Debug("delete for unknown sku", "sku", sku)
	}
	w.WriteHeader(http.StatusNoContent)
}
