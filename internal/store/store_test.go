package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, s.Open())
	return s
}

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }

func TestOpenSeedsMissingDocument(t *testing.T) {
	s := newTestStore(t)

	assert.NotEmpty(t, s.SelectProducts(nil))
	assert.NotEmpty(t, s.StockPrices())

	// The seed document must be persisted immediately.
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "products")
	assert.Contains(t, doc, "stockPrice")
}

func TestOpenReseedsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := New(path)
	require.NoError(t, s.Open())
	assert.NotEmpty(t, s.SelectProducts(nil))
}

func TestOpenReseedsDocumentMissingCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products": []}`), 0o644))

	s := New(path)
	require.NoError(t, s.Open())

	// stockPrice was absent, so the whole document is rebuilt from seeds.
	assert.NotEmpty(t, s.StockPrices())
}

func TestOpenPreservesExistingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s := New(path)
	require.NoError(t, s.Open())
	inserted, err := s.InsertProduct(Product{ID: "p-1", Brand: "Trappistes Rochefort", Skus: []SKU{{Code: 9001}}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened := New(path)
	require.NoError(t, reopened.Open())

	got := reopened.SelectProducts(map[string]string{"brand": "rochefort"})
	require.Len(t, got, 1)
	assert.Equal(t, inserted, got[0])
}

func TestSelectProductsFuzzyFilter(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertProduct(Product{ID: "p-ipa", Brand: "Ipiranga Session IPA", Skus: []SKU{}})
	require.NoError(t, err)

	got := s.SelectProducts(map[string]string{"brand": "ip"})
	require.NotEmpty(t, got)
	ids := make([]string, 0, len(got))
	for _, p := range got {
		assert.Contains(t, strings.ToLower(p.Brand), "ip")
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "p-ipa")

	// No Heineken: "heineken" has no "ip" substring.
	for _, p := range got {
		assert.NotEqual(t, "Heineken", p.Brand)
	}
}

func TestSelectProductsFilterIsLogicalOR(t *testing.T) {
	s := newTestStore(t)

	// brand does not match, origin does: record is kept.
	got := s.SelectProducts(map[string]string{"brand": "zzz-no-such", "origin": "nether"})
	require.Len(t, got, 1)
	assert.Equal(t, "Heineken", got[0].Brand)
}

func TestSelectProductsUnknownFilterField(t *testing.T) {
	s := newTestStore(t)

	got := s.SelectProducts(map[string]string{"bogus": "x"})
	assert.Empty(t, got)
}

func TestInsertSelectRoundTrip(t *testing.T) {
	s := newTestStore(t)
	before := len(s.SelectProducts(nil))

	_, err := s.InsertProduct(Product{ID: "p-2", Brand: "Orval", Skus: []SKU{{Code: 7001}}})
	require.NoError(t, err)

	all := s.SelectProducts(nil)
	assert.Len(t, all, before+1)
	assert.Equal(t, "Orval", all[len(all)-1].Brand)
}

func TestInsertAllowsDuplicateIdentity(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertProduct(Product{ID: "dup", Brand: "First", Skus: []SKU{}})
	require.NoError(t, err)
	_, err = s.InsertProduct(Product{ID: "dup", Brand: "Second", Skus: []SKU{}})
	require.NoError(t, err)

	// Update touches only the first occurrence.
	found, err := s.UpdateProduct("dup", ProductPatch{Brand: strPtr("Patched")})
	require.NoError(t, err)
	assert.True(t, found)

	got := s.SelectProducts(map[string]string{"id": "dup"})
	require.Len(t, got, 2)
	assert.Equal(t, "Patched", got[0].Brand)
	assert.Equal(t, "Second", got[1].Brand)
}

func TestUpdateProductShallowMerge(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertProduct(Product{
		ID:     "p-3",
		Brand:  "Chimay",
		Style:  "Trappist",
		Origin: "Belgium",
		Skus:   []SKU{{Code: 8001}},
	})
	require.NoError(t, err)

	found, err := s.UpdateProduct("p-3", ProductPatch{Brand: strPtr("Chimay Blue")})
	require.NoError(t, err)
	assert.True(t, found)

	got := s.SelectProducts(map[string]string{"id": "p-3"})
	require.Len(t, got, 1)
	assert.Equal(t, "Chimay Blue", got[0].Brand)
	// Untouched fields are retained.
	assert.Equal(t, "Trappist", got[0].Style)
	assert.Equal(t, "Belgium", got[0].Origin)
	assert.Equal(t, []SKU{{Code: 8001}}, got[0].Skus)
}

func TestUpdateProductMissingIsNoOp(t *testing.T) {
	s := newTestStore(t)
	before := s.SelectProducts(nil)

	found, err := s.UpdateProduct("no-such-id", ProductPatch{Brand: strPtr("X")})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, before, s.SelectProducts(nil))
}

func TestDeleteProduct(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertProduct(Product{ID: "p-4", Brand: "Duvel", Skus: []SKU{}})
	require.NoError(t, err)

	found, err := s.DeleteProduct("p-4")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, s.SelectProducts(map[string]string{"id": "p-4"}))
}

func TestDeleteMissingIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	before := s.SelectProducts(nil)

	found, err := s.DeleteProduct("no-such-id")
	require.NoError(t, err)
	assert.False(t, found)

	// Same length, same order, same content.
	assert.Equal(t, before, s.SelectProducts(nil))
}

func TestStockPriceCRUD(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertStockPrice(StockPrice{SKU: 5001, Stock: 10, Price: 4.5})
	require.NoError(t, err)

	sp, ok := s.StockPriceBySKU(5001)
	require.True(t, ok)
	assert.Equal(t, 10, sp.Stock)
	assert.Equal(t, 4.5, sp.Price)

	found, err := s.UpdateStockPrice(5001, StockPricePatch{Stock: intPtr(7)})
	require.NoError(t, err)
	assert.True(t, found)

	sp, ok = s.StockPriceBySKU(5001)
	require.True(t, ok)
	assert.Equal(t, 7, sp.Stock)
	// Price untouched by the partial update.
	assert.Equal(t, 4.5, sp.Price)

	found, err = s.UpdateStockPrice(5001, StockPricePatch{Price: f64Ptr(5.0)})
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.DeleteStockPrice(5001)
	require.NoError(t, err)
	assert.True(t, found)

	_, ok = s.StockPriceBySKU(5001)
	assert.False(t, ok)
}

func TestStockPriceMissingSKU(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.StockPriceBySKU(999999)
	assert.False(t, ok)

	found, err := s.UpdateStockPrice(999999, StockPricePatch{Stock: intPtr(1)})
	require.NoError(t, err)
	assert.False(t, found)

	found, err = s.DeleteStockPrice(999999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMutationsPersistWholeDocument(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertStockPrice(StockPrice{SKU: 6001, Stock: 3, Price: 2.2})
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var doc struct {
		Products   []Product    `json:"products"`
		StockPrice []StockPrice `json:"stockPrice"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotEmpty(t, doc.Products)
	assert.Contains(t, doc.StockPrice, StockPrice{SKU: 6001, Stock: 3, Price: 2.2})
}
