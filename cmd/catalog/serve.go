package main

import (
	"context"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/spf13/cobra"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/server"
	"github.com/matst80/slask-catalog/pkg/tracking"
	"github.com/matst80/slask-catalog/pkg/types"
)

var profiling bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog dataset over http",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&profiling, "pprof", false, "expose pprof on the debug listener")
}

func runServe(ctx context.Context) error {
	ready := &atomic.Bool{}
	timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts())
	debug := common.NewServerWithTimeouts(cfg.DebugAddress, server.DebugHandler(ready, profiling), timeouts)

	// the server never reads from itself
	cfg.CatalogUrl = ""
	src, err := cfg.Source()
	if err != nil {
		return err
	}
	if r, ok := src.(*catalog.RedisSource); ok {
		defer r.Close()
	}
	c, err := catalog.Load(ctx, src)
	if err != nil {
		return err
	}

	var trk types.Tracking
	if cfg.RabbitUrl != "" {
		rt, err := tracking.NewRabbitTracking(cfg.RabbitUrl, trackingPrefix)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			trk = rt
		}
	}

	cs, err := server.NewCatalogServer(c, cfg, trk)
	if err != nil {
		return err
	}
	var reload *amqp.Connection
	if cfg.RabbitUrl != "" {
		if reload, err = listenForReload(cfg.RabbitUrl, src, cs); err != nil {
			log.Printf("Failed to listen for catalog changes: %v", err)
		}
	}

	api := common.NewServerWithTimeouts(cfg.ListenAddress, cs.Handler(), timeouts)
	ready.Store(true)

	return common.RunServersWithShutdown(ctx, []*http.Server{api, debug}, timeouts, func(ctx context.Context) error {
		ready.Store(false)
		if reload != nil {
			_ = reload.Close()
		}
		if trk != nil {
			return trk.Close()
		}
		return nil
	})
}

// listenForReload reloads the catalog from src whenever an import announces
// a new dataset.
func listenForReload(url string, src catalog.Source, cs *server.CatalogServer) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err == nil {
		err = messaging.DefineExchange(ch, trackingPrefix, messaging.CatalogTopic)
	}
	if err == nil {
		err = messaging.ListenToTopic(ch, trackingPrefix, messaging.CatalogTopic, func(body []byte) error {
			var change messaging.CatalogChange
			if err := jsoncompat.Unmarshal(body, &change); err != nil {
				return err
			}
			log.Printf("Catalog changed, %d products announced", change.Products)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			c, err := catalog.Load(ctx, src)
			if err != nil {
				return err
			}
			return cs.Swap(c)
		})
	}
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
