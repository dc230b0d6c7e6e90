package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/storage"
	"github.com/matst80/slask-catalog/pkg/types"
	"github.com/redis/go-redis/v9"
)

var ErrNoDataset = errors.New("no product dataset")

const DefaultRedisKey = "catalog:products"

// Source supplies the product dataset. It is read once at startup.
type Source interface {
	Load(ctx context.Context) ([]types.ProductRecord, error)
}

// Load reads the dataset from src and builds the catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	s := time.Now()
	records, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	c := New(records)
	log.Printf("catalog loaded, %d products, %d brands (%v)", c.Len(), len(c.brands), time.Since(s))
	return c, nil
}

type FileSource struct {
	Storage *storage.DiskStorage
	Name    string
}

func NewFileSource(ds *storage.DiskStorage, name string) *FileSource {
	return &FileSource{Storage: ds, Name: name}
}

func (f *FileSource) Load(ctx context.Context) ([]types.ProductRecord, error) {
	return f.Storage.LoadProducts(f.Name)
}

// HTTPSource reads the dataset from a running catalog server.
type HTTPSource struct {
	BaseUrl string
	Client  *http.Client
}

func NewHTTPSource(baseUrl string) *HTTPSource {
	return &HTTPSource{
		BaseUrl: strings.TrimSuffix(baseUrl, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *HTTPSource) Load(ctx context.Context) ([]types.ProductRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseUrl+"/api/products", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	res, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: unexpected status %s", res.Status)
	}
	products := make([]types.ProductRecord, 0)
	if err = jsoncompat.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// RedisSource keeps the dataset as one JSON value under Key.
type RedisSource struct {
	Key    string
	client *redis.Client
}

func redisOptions(addr, password string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		if password != "" {
			opt.Password = password
		}
		return opt, nil
	}
	return &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	}, nil
}

func NewRedisSource(addr, password, key string) (*RedisSource, error) {
	opt, err := redisOptions(addr, password)
	if err != nil {
		return nil, err
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{Key: key, client: redis.NewClient(opt)}, nil
}

func (r *RedisSource) Load(ctx context.Context) ([]types.ProductRecord, error) {
	data, err := r.client.Get(ctx, r.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w under redis key %s", ErrNoDataset, r.Key)
	}
	if err != nil {
		return nil, err
	}
	products := make([]types.ProductRecord, 0)
	if err = jsoncompat.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Publish replaces the dataset stored under Key.
func (r *RedisSource) Publish(ctx context.Context, products []types.ProductRecord) error {
	data, err := jsoncompat.Marshal(products)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.Key, data, 0).Err()
}

func (r *RedisSource) Close() error {
	return r.client.Close()
}
