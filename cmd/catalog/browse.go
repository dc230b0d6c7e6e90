package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/filter"
	"github.com/matst80/slask-catalog/pkg/tracking"
	"github.com/matst80/slask-catalog/pkg/types"
	"github.com/matst80/slask-catalog/pkg/ui"
)

var (
	dataFile   string
	serverUrl  string
	redisKey   string
	filterLink string
	logFile    string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and filter the catalog in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd.Context())
	},
}

func init() {
	browseCmd.Flags().StringVar(&dataFile, "data", "", "dataset file (json, or gzipped .jz/.gz)")
	browseCmd.Flags().StringVar(&serverUrl, "server", "", "catalog server base url")
	browseCmd.Flags().StringVar(&redisKey, "redis-key", "", "redis key holding the dataset")
	browseCmd.Flags().StringVar(&filterLink, "filters", "", "initial filters, e.g. sort=lowToHigh&brand=Nike")
	browseCmd.Flags().StringVar(&logFile, "log", "catalog-browse.log", "log file while the terminal is in use")
}

func browseSource() (catalog.Source, func(), error) {
	switch {
	case serverUrl != "":
		cfg.CatalogUrl = serverUrl
	case redisKey != "":
		if cfg.RedisUrl == "" {
			return nil, nil, errors.New("--redis-key needs REDIS_URL")
		}
		cfg.CatalogUrl = ""
		cfg.RedisKey = redisKey
	case dataFile != "":
		abs, err := filepath.Abs(dataFile)
		if err != nil {
			return nil, nil, err
		}
		cfg.CatalogUrl = ""
		cfg.RedisUrl = ""
		cfg.CatalogFile = abs
	}
	src, err := cfg.Source()
	if err != nil {
		return nil, nil, err
	}
	if r, ok := src.(*catalog.RedisSource); ok {
		return src, func() { _ = r.Close() }, nil
	}
	return src, func() {}, nil
}

func runBrowse(ctx context.Context) error {
	initial, err := types.ParseFilterState(filterLink)
	if err != nil {
		return fmt.Errorf("parse filters: %w", err)
	}

	f, err := tea.LogToFile(logFile, "browse")
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	src, done, err := browseSource()
	if err != nil {
		return err
	}
	defer done()
	c, err := catalog.Load(ctx, src)
	if err != nil {
		return err
	}

	ctrl := filter.NewController(c, initial)
	if cfg.RabbitUrl != "" {
		rt, err := tracking.NewRabbitTracking(cfg.RabbitUrl, trackingPrefix)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			trk := tracking.NewQueuedTracking(rt, 5*time.Second)
			defer trk.Close()
			sessionId := common.NewSessionId()
			trk.TrackSession(sessionId, nil)
			detach := tracking.Attach(ctrl, trk, sessionId)
			defer detach()
		}
	}

	p := tea.NewProgram(ui.NewModel(ctrl, cfg, ui.DefaultStyles()), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
