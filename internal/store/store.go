package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Felipebasilio/ReactiveBeerBack/pkg/logging"
)

// document is the unit of durability: every mutation rewrites it in full.
// The on-disk shape keeps the two historical top-level collection names.
type document struct {
	Products   []Product    `json:"products"`
	StockPrice []StockPrice `json:"stockPrice"`
}

// Store holds the document in memory and mirrors it to a JSON file on
// every mutation. All methods are safe for concurrent use; mutation and
// persist share one lock, so durable writes cannot reorder against each
// other.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
	log  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Store backed by the JSON document at path. Call Open
// before use.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the backing document. A missing, unreadable, or structurally
// incomplete document is replaced by one synthesized from the seed data
// and persisted immediately.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		s.log.Warn("backing document unusable, rebuilding from seed data", "path", s.path, "error", err)
		s.doc = seedDocument()
		if err := s.persistLocked(); err != nil {
			return fmt.Errorf("seed backing document: %w", err)
		}
	}
	return nil
}

// Close flushes the document a final time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// Path returns the backing document location.
func (s *Store) Path() string { return s.path }

func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Products == nil || doc.StockPrice == nil {
		return errors.New("document is missing a collection")
	}
	s.doc = doc
	return nil
}

// persistLocked serializes the entire document and replaces the backing
// file via a temp file and rename. Callers must hold s.mu.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// persistMutationLocked persists after a mutation. Failures are logged and
// returned; the in-memory document stays authoritative either way.
func (s *Store) persistMutationLocked(op string) error {
	if err := s.persistLocked(); err != nil {
		s.log.Error("persist failed", "op", op, "path", s.path, "error", err)
		return err
	}
	return nil
}

// SelectProducts returns the catalog, optionally narrowed by a fuzzy
// filter: a record is kept when at least one filter field's string form
// contains that field's filter value as a case-insensitive substring
// (logical OR across filter fields). A nil or empty filter returns every
// record.
func (s *Store) SelectProducts(filter map[string]string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.doc.Products))
	for _, p := range s.doc.Products {
		if matchesFilter(p, filter) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilter(p Product, filter map[string]string) bool {
	if len(filter) == 0 {
		return true
	}
	for name, want := range filter {
		got, ok := p.field(name)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
			return true
		}
	}
	return false
}

// InsertProduct appends p to the catalog and persists the document.
// Identity values are not checked for uniqueness: a duplicate id is
// accepted, and update/delete only ever touch the first occurrence.
func (s *Store) InsertProduct(p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Products = append(s.doc.Products, p)
	return p, s.persistMutationLocked("insert product")
}

// UpdateProduct merges patch over the first catalog record whose id equals
// id and persists. It reports found=false, without error, when no record
// matches.
func (s *Store) UpdateProduct(id string, patch ProductPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Products {
		if s.doc.Products[i].ID == id {
			s.doc.Products[i].apply(patch)
			return true, s.persistMutationLocked("update product")
		}
	}
	return false, nil
}

// DeleteProduct removes the first catalog record whose id equals id and
// persists. Deleting an unknown id is a no-op and reports found=false.
func (s *Store) DeleteProduct(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Products {
		if s.doc.Products[i].ID == id {
			s.doc.Products = append(s.doc.Products[:i], s.doc.Products[i+1:]...)
			return true, s.persistMutationLocked("delete product")
		}
	}
	return false, nil
}

// StockPrices returns every stock/price record.
func (s *Store) StockPrices() []StockPrice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StockPrice, len(s.doc.StockPrice))
	copy(out, s.doc.StockPrice)
	return out
}

// StockPriceBySKU returns the first stock/price record for sku.
func (s *Store) StockPriceBySKU(sku int64) (StockPrice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sp := range s.doc.StockPrice {
		if sp.SKU == sku {
			return sp, true
		}
	}
	return StockPrice{}, false
}

// InsertStockPrice appends sp and persists. As with products, identity
// values are not checked for uniqueness.
func (s *Store) InsertStockPrice(sp StockPrice) (StockPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.StockPrice = append(s.doc.StockPrice, sp)
	return sp, s.persistMutationLocked("insert stock price")
}

// UpdateStockPrice merges patch over the first record whose sku matches
// and persists. Missing sku is a no-op reporting found=false.
func (s *Store) UpdateStockPrice(sku int64, patch StockPricePatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.StockPrice {
		if s.doc.StockPrice[i].SKU == sku {
			s.doc.StockPrice[i].apply(patch)
			return true, s.persistMutationLocked("update stock price")
		}
	}
	return false, nil
}

// DeleteStockPrice removes the first record whose sku matches and
// persists. Missing sku is a no-op reporting found=false.
func (s *Store) DeleteStockPrice(sku int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.StockPrice {
		if s.doc.StockPrice[i].SKU == sku {
			s.doc.StockPrice = append(s.doc.StockPrice[:i], s.doc.StockPrice[i+1:]...)
			return true, s.persistMutationLocked("delete stock price")
		}
	}
	return false, nil
}
