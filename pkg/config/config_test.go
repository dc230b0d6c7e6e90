package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matst80/slask-catalog/pkg/catalog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !slices.Equal(cfg.Sizes, []string{"S", "M", "L", "XL"}) {
		t.Errorf("Unexpected default sizes %v", cfg.Sizes)
	}
	if len(cfg.IdealFor) != 2 || cfg.IdealFor[0].Value != "MEN" {
		t.Errorf("Unexpected ideal for options %v", cfg.IdealFor)
	}
}

func TestFileThenEnv(t *testing.T) {
	name := writeConfig(t, `
listenAddress: ":9000"
dataDir: /srv/catalog
sizes: [XS, S]
redisUrl: redis://cache:6379
`)
	t.Setenv("LISTEN_ADDRESS", ":9100")
	t.Setenv("CATALOG_SIZES", "M,L")

	cfg, err := Load(name)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.ListenAddress != ":9100" {
		t.Errorf("Expected env to win, got %s", cfg.ListenAddress)
	}
	if cfg.DataDir != "/srv/catalog" {
		t.Errorf("Expected file value, got %s", cfg.DataDir)
	}
	if cfg.RedisUrl != "redis://cache:6379" {
		t.Errorf("Expected redis url from file, got %s", cfg.RedisUrl)
	}
	if !slices.Equal(cfg.Sizes, []string{"M", "L"}) {
		t.Errorf("Expected sizes from env, got %v", cfg.Sizes)
	}
	if cfg.DebugAddress != ":8081" {
		t.Errorf("Expected default debug address, got %s", cfg.DebugAddress)
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := Load(writeConfig(t, "priceSorts: [{title: Popular, value: popular}]")); err == nil {
		t.Errorf("Expected error for unknown price sort")
	}
	if _, err := Load(writeConfig(t, "sizes: ['X L']")); err == nil {
		t.Errorf("Expected error for size with space")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestSource(t *testing.T) {
	cfg := Default()
	src, err := cfg.Source()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*catalog.FileSource); !ok {
		t.Errorf("Expected file source, got %T", src)
	}

	cfg.RedisUrl = "localhost:6379"
	src, err = cfg.Source()
	if err != nil {
		t.Fatal(err)
	}
	if rs, ok := src.(*catalog.RedisSource); !ok || rs.Key != catalog.DefaultRedisKey {
		t.Errorf("Expected redis source with default key, got %T", src)
	}

	cfg.RedisKey = "products"
	src, err = cfg.Source()
	if err != nil {
		t.Fatal(err)
	}
	if rs, ok := src.(*catalog.RedisSource); !ok || rs.Key != "products" {
		t.Errorf("Expected redis source, got %T", src)
	}

	cfg.CatalogUrl = "http://catalog:8080"
	src, _ = cfg.Source()
	if _, ok := src.(*catalog.HTTPSource); !ok {
		t.Errorf("Expected http source, got %T", src)
	}

	empty := Config{}
	if _, err = empty.Source(); !errors.Is(err, ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", err)
	}
}
