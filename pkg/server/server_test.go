package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/types"
)

func record(id, brand, subtitle, price string) types.ProductRecord {
	return types.ProductRecord{
		Id:           types.ProductId(id),
		ProductBrand: brand,
		Titles:       types.Titles{Title: brand + " " + id, CoSubtitle: subtitle},
		Pricing:      types.Pricing{FinalPrice: types.DecimalValue{DecimalValue: price}},
	}
}

func testServer(t *testing.T) *CatalogServer {
	t.Helper()
	c := catalog.New([]types.ProductRecord{
		record("1", "Nike", "Sneaker M", "1299"),
		record("2", "Puma", "Tee S", "199"),
		record("3", "Nike", "Cap L", "249"),
	})
	s, err := NewCatalogServer(c, config.Default(), nil)
	if err != nil {
		t.Fatalf("NewCatalogServer: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestProductsInLoadOrder(t *testing.T) {
	h := testServer(t).Handler()
	w := get(t, h, "/api/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []types.ProductRecord
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ids := make([]types.ProductId, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.Id)
	}
	if diff := cmp.Diff([]types.ProductId{"1", "2", "3"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if w.Header().Get("ETag") == "" {
		t.Error("expected an etag")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=UTF-8" {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestProductsNotModified(t *testing.T) {
	h := testServer(t).Handler()
	etag := get(t, h, "/api/products", nil).Header().Get("ETag")
	w := get(t, h, "/api/products", map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestProductById(t *testing.T) {
	h := testServer(t).Handler()
	w := get(t, h, "/api/products/2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got types.ProductRecord
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ProductBrand != "Puma" {
		t.Errorf("expected Puma, got %q", got.ProductBrand)
	}

	w = get(t, h, "/api/products/404", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestBrandsAndOptions(t *testing.T) {
	h := testServer(t).Handler()
	var brands []string
	if err := json.Unmarshal(get(t, h, "/api/brands", nil).Body.Bytes(), &brands); err != nil {
		t.Fatalf("decode brands: %v", err)
	}
	if diff := cmp.Diff([]string{"Nike", "Puma"}, brands); diff != "" {
		t.Errorf("brands mismatch (-want +got):\n%s", diff)
	}

	var options FilterOptions
	if err := json.Unmarshal(get(t, h, "/api/options", nil).Body.Bytes(), &options); err != nil {
		t.Fatalf("decode options: %v", err)
	}
	if diff := cmp.Diff([]string{"S", "M", "L", "XL"}, options.Sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if len(options.PriceSorts) != 2 || options.PriceSorts[0].Value != string(types.PriceSortLowToHigh) {
		t.Errorf("unexpected price sorts %+v", options.PriceSorts)
	}
	if len(options.Brands) != 2 {
		t.Errorf("expected brands in options, got %v", options.Brands)
	}
}

func TestPreflight(t *testing.T) {
	h := testServer(t).Handler()
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusAccepted {
		t.Errorf("expected 202, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Errorf("unexpected allow origin %q", got)
	}
}

func TestSessionCookie(t *testing.T) {
	h := testServer(t).Handler()
	w := get(t, h, "/api/brands", nil)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" {
		t.Fatalf("expected a session cookie, got %v", cookies)
	}
}

func TestHealth(t *testing.T) {
	ready := &atomic.Bool{}
	h := DebugHandler(ready, false)
	if w := get(t, h, "/health", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before ready, got %d", w.Code)
	}
	ready.Store(true)
	if w := get(t, h, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := get(t, h, "/metrics", nil); w.Code != http.StatusOK {
		t.Errorf("expected metrics, got %d", w.Code)
	}
}

func TestSwapReplacesDataset(t *testing.T) {
	s := testServer(t)
	h := s.Handler()
	before := get(t, h, "/api/products", nil).Header().Get("ETag")

	next := catalog.New([]types.ProductRecord{record("9", "Adidas", "Shorts XL", "399")})
	if err := s.Swap(next); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	w := get(t, h, "/api/products", map[string]string{"If-None-Match": before})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after swap, got %d", w.Code)
	}
	var brands []string
	if err := json.Unmarshal(get(t, h, "/api/brands", nil).Body.Bytes(), &brands); err != nil {
		t.Fatalf("decode brands: %v", err)
	}
	if diff := cmp.Diff([]string{"Adidas"}, brands); diff != "" {
		t.Errorf("brands mismatch (-want +got):\n%s", diff)
	}
	if w := get(t, h, "/api/products/1", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected old product gone, got %d", w.Code)
	}
}
