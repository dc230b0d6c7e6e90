package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matst80/slask-catalog/pkg/config"
)

// trackingPrefix is the exchange prefix for tracking events.
const trackingPrefix = "catalog"

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Product catalog with client side filtering",
	Long: `catalog serves a product dataset and browses it in the terminal.

Filtering (price sort, size, brand, ideal for and free text search) happens
in the browse client, the server only supplies the dataset.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a yaml config file")
	rootCmd.AddCommand(browseCmd, serveCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
