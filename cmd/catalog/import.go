package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/storage"
)

var publishRedis bool

var importCmd = &cobra.Command{
	Use:   "import <data.json>",
	Short: "Import a product dataset into the data folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context(), args[0])
	},
}

func init() {
	importCmd.Flags().BoolVar(&publishRedis, "redis", false, "also publish the dataset to redis")
}

func runImport(ctx context.Context, input string) error {
	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	products, err := storage.NewDiskStorage(filepath.Dir(abs)).LoadProducts(filepath.Base(abs))
	if err != nil {
		return err
	}
	// brand index and id lookup are built the same way the server does
	c := catalog.New(products)
	log.Printf("Read %d products, %d brands", c.Len(), len(c.Brands()))

	ds := storage.NewDiskStorage(cfg.DataDir)
	if err = ds.SaveProducts(c.Records(), cfg.CatalogFile); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	log.Printf("Saved products to %s", filepath.Join(cfg.DataDir, cfg.CatalogFile))

	if publishRedis {
		if err = publish(ctx, c); err != nil {
			return err
		}
	}
	if cfg.RabbitUrl != "" {
		return notify(c)
	}
	return nil
}

func notify(c *catalog.Catalog) error {
	conn, err := amqp.Dial(cfg.RabbitUrl)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	if err = messaging.DefineExchange(ch, trackingPrefix, messaging.CatalogTopic); err != nil {
		return err
	}
	log.Printf("Announcing catalog change")
	return messaging.Send(ch, trackingPrefix, messaging.CatalogTopic, messaging.CatalogChange{
		Products: c.Len(),
		Brands:   len(c.Brands()),
	})
}

func publish(ctx context.Context, c *catalog.Catalog) error {
	if cfg.RedisUrl == "" {
		return errors.New("--redis needs REDIS_URL")
	}
	key := cfg.RedisKey
	if key == "" {
		key = catalog.DefaultRedisKey
	}
	r, err := catalog.NewRedisSource(cfg.RedisUrl, cfg.RedisPassword, key)
	if err != nil {
		return err
	}
	defer r.Close()
	if err = r.Publish(ctx, c.Records()); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}
	log.Printf("Published %d products to redis key %s", c.Len(), key)
	return nil
}
