/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quantike/gulog/pkg/config"
	"github.com/quantike/gulog/pkg/store"
	"github.com/quantike/gulog/pkg/wal"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gulog",
	Short: "gulog - object-store write-ahead log",
	Long: `gulog is an append-only log that stores opaque payloads in an
object store, identified by time-sortable ULIDs and protected by SHA-256
digests.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init bootstraps its own configuration
		if cmd.Name() == "init" {
			return nil
		}

		cfg, err := loadConfigFromFlags(cmd)
		if err != nil {
			return err
		}

		backend, err := buildStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to build store backend: %w", err)
		}
		client := wal.NewClient(backend, wal.ClientConfig{Prefix: cfg.WAL.Prefix})

		// Store in command context
		ctx := context.WithValue(cmd.Context(), "config", cfg)
		ctx = context.WithValue(ctx, "wal", client)
		ctx = context.WithValue(ctx, "backend", backend)
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		// Release backends that hold local resources, e.g. the pebble lock
		if closer, ok := cmd.Context().Value("backend").(io.Closer); ok {
			return closer.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: ~/.config/gulog/config.yaml)")
}

// loadConfigFromFlags resolves the config path and loads it, falling back
// to defaults when no file exists yet
func loadConfigFromFlags(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if !config.ConfigExists(configPath) {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(configPath)
}

// buildStore constructs the object-store backend named by the config
func buildStore(cfg *config.Config) (store.ObjectStore, error) {
	switch cfg.Backend {
	case config.BackendS3:
		return store.NewMinioStore(store.MinioConfig{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			UseSSL:    cfg.S3.UseSSL,
		})
	case config.BackendLocal:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		return store.OpenPebbleStore(filepath.Join(cfg.DataDir, "objects"))
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// clientFromContext pulls the log client wired up by the root command
func clientFromContext(cmd *cobra.Command) (*wal.Client, bool) {
	client, ok := cmd.Context().Value("wal").(*wal.Client)
	return client, ok
}

// configFromContext pulls the loaded configuration
func configFromContext(cmd *cobra.Command) (*config.Config, bool) {
	cfg, ok := cmd.Context().Value("config").(*config.Config)
	return cfg, ok
}
