package server

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/types"
)

var (
	apiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_api_requests_total",
		Help: "Catalog api requests by handler",
	}, []string{"handler"})
	totalProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_products",
		Help: "Number of products in the served catalog",
	})
)

// FilterOptions describes the checkbox groups of the catalog page.
type FilterOptions struct {
	PriceSorts []config.Option `json:"priceSorts"`
	Sizes      []string        `json:"sizes"`
	IdealFor   []config.Option `json:"idealFor"`
	Brands     []string        `json:"brands"`
}

// dataset is the encoded catalog the handlers answer from. It is replaced as
// a whole when the catalog is reloaded.
type dataset struct {
	catalog  *catalog.Catalog
	brands   []string
	products []byte
	etag     string
}

func newDataset(c *catalog.Catalog) (*dataset, error) {
	products, err := jsoncompat.Marshal(c.Records())
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	sum := sha256.Sum256(products)
	return &dataset{
		catalog:  c,
		brands:   c.Brands(),
		products: products,
		etag:     `"` + hex.EncodeToString(sum[:8]) + `"`,
	}, nil
}

// CatalogServer serves the product dataset and the data the filter sidebar
// is built from. It does not filter; narrowing happens in the client.
type CatalogServer struct {
	Tracking types.Tracking
	cfg      config.Config
	data     atomic.Pointer[dataset]
}

func NewCatalogServer(c *catalog.Catalog, cfg config.Config, trk types.Tracking) (*CatalogServer, error) {
	s := &CatalogServer{
		Tracking: trk,
		cfg:      cfg,
	}
	if err := s.Swap(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Swap replaces the served catalog. Requests in flight finish on the old one.
func (s *CatalogServer) Swap(c *catalog.Catalog) error {
	d, err := newDataset(c)
	if err != nil {
		return err
	}
	s.data.Store(d)
	totalProducts.Set(float64(c.Len()))
	log.Printf("Serving %d products, %d brands", c.Len(), len(d.brands))
	return nil
}

func (s *CatalogServer) Catalog() *catalog.Catalog {
	return s.data.Load().catalog
}

func (s *CatalogServer) Options() FilterOptions {
	return FilterOptions{
		PriceSorts: s.cfg.PriceSorts,
		Sizes:      s.cfg.Sizes,
		IdealFor:   s.cfg.IdealFor,
		Brands:     s.data.Load().brands,
	}
}

func publicHeaders(w http.ResponseWriter, cacheTime string) {
	w.Header().Set("Cache-Control", "public, max-age="+cacheTime)
	w.Header().Set("Age", "0")
}

func (s *CatalogServer) Products(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	apiRequests.WithLabelValues("products").Inc()
	publicHeaders(w, "600")
	d := s.data.Load()
	w.Header().Set("ETag", d.etag)
	if r.Header.Get("If-None-Match") == d.etag {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(d.products)
	return err
}

func (s *CatalogServer) Product(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	apiRequests.WithLabelValues("product").Inc()
	id := r.PathValue("id")
	product, err := s.Catalog().Get(types.ProductId(id))
	if err != nil {
		return common.WithStatus(http.StatusNotFound, fmt.Errorf("product %s: %w", id, err))
	}
	publicHeaders(w, "600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(product)
}

func (s *CatalogServer) Brands(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	apiRequests.WithLabelValues("brands").Inc()
	publicHeaders(w, "3600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(s.data.Load().brands)
}

func (s *CatalogServer) FilterOptions(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	apiRequests.WithLabelValues("options").Inc()
	publicHeaders(w, "3600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(s.Options())
}

func (s *CatalogServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products", common.JsonHandler(s.Tracking, s.Products))
	mux.HandleFunc("/api/products/{id}", common.JsonHandler(s.Tracking, s.Product))
	mux.HandleFunc("/api/brands", common.JsonHandler(s.Tracking, s.Brands))
	mux.HandleFunc("/api/options", common.JsonHandler(s.Tracking, s.FilterOptions))
	return mux
}
