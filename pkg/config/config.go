package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/storage"
	"github.com/matst80/slask-catalog/pkg/types"
)

var ErrNoSource = errors.New("no catalog source configured")

// Option is one checkbox in the filter sidebar.
type Option struct {
	Title string `yaml:"title" json:"title"`
	Value string `yaml:"value" json:"value"`
}

type Config struct {
	ListenAddress string `yaml:"listenAddress"`
	DebugAddress  string `yaml:"debugAddress"`
	DataDir       string `yaml:"dataDir"`
	CatalogFile   string `yaml:"catalogFile"`
	CatalogUrl    string `yaml:"catalogUrl"`
	RedisUrl      string `yaml:"redisUrl"`
	RedisPassword string `yaml:"redisPassword"`
	RedisKey      string `yaml:"redisKey"`
	RabbitUrl     string `yaml:"rabbitUrl"`

	PriceSorts []Option `yaml:"priceSorts"`
	Sizes      []string `yaml:"sizes"`
	IdealFor   []Option `yaml:"idealFor"`
}

func Default() Config {
	return Config{
		ListenAddress: ":8080",
		DebugAddress:  ":8081",
		DataDir:       "data",
		CatalogFile:   storage.ProductsFile,
		PriceSorts: []Option{
			{Title: "Low to High", Value: string(types.PriceSortLowToHigh)},
			{Title: "High to Low", Value: string(types.PriceSortHighToLow)},
		},
		Sizes: []string{"S", "M", "L", "XL"},
		IdealFor: []Option{
			{Title: "Men", Value: "MEN"},
			{Title: "Women", Value: "WOMEN"},
		},
	}
}

// Load builds the configuration from the defaults, the optional YAML file
// at path and finally the environment (a .env file in the working
// directory is read first).
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not read .env: %v", err)
	}
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	apply := func(curr *string, env string) {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*curr = v
		}
	}
	apply(&c.ListenAddress, "LISTEN_ADDRESS")
	apply(&c.DebugAddress, "DEBUG_ADDRESS")
	apply(&c.DataDir, "DATA_DIR")
	apply(&c.CatalogFile, "CATALOG_FILE")
	apply(&c.CatalogUrl, "CATALOG_URL")
	apply(&c.RedisUrl, "REDIS_URL")
	apply(&c.RedisPassword, "REDIS_PASSWORD")
	apply(&c.RedisKey, "REDIS_KEY")
	apply(&c.RabbitUrl, "RABBIT_URL")
	if v := os.Getenv("CATALOG_SIZES"); v != "" {
		c.Sizes = strings.Split(v, ",")
	}
}

func (c *Config) Validate() error {
	for _, o := range c.PriceSorts {
		if _, err := types.ParsePriceSort(o.Value); err != nil {
			return fmt.Errorf("price sort option %q: %w", o.Title, err)
		}
	}
	for _, s := range c.Sizes {
		if s == "" || strings.Contains(s, " ") {
			return fmt.Errorf("invalid size option %q", s)
		}
	}
	return nil
}

// Source picks where the catalog is loaded from: a catalog server, a redis
// key or a file in the data folder, in that order. The redis key defaults to
// catalog.DefaultRedisKey.
func (c *Config) Source() (catalog.Source, error) {
	if c.CatalogUrl != "" {
		return catalog.NewHTTPSource(c.CatalogUrl), nil
	}
	if c.RedisUrl != "" {
		return catalog.NewRedisSource(c.RedisUrl, c.RedisPassword, c.RedisKey)
	}
	if c.CatalogFile != "" {
		return catalog.NewFileSource(storage.NewDiskStorage(c.DataDir), c.CatalogFile), nil
	}
	return nil, ErrNoSource
}
