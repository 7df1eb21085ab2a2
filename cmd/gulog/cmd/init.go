/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantike/gulog/pkg/config"
	"github.com/quantike/gulog/pkg/store"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gulog configuration and storage",
	Long: `Initialize the gulog configuration file and prepare the storage
backend.

This command will:
- Write a configuration file with a generated API key
- For the local backend, create the data directory
- For the s3 backend, create the bucket if it does not exist

Examples:
  gulog init
  gulog init --data-dir=./data
  gulog init --backend=s3 --endpoint=127.0.0.1:9000 --bucket=gulog-dev --access-key=admin --secret-key=password`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		backend, _ := cmd.Flags().GetString("backend")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}

		if backend != "" {
			cfg.Backend = backend
		}
		if cfg.Backend == config.BackendS3 {
			endpoint, _ := cmd.Flags().GetString("endpoint")
			bucket, _ := cmd.Flags().GetString("bucket")
			accessKey, _ := cmd.Flags().GetString("access-key")
			secretKey, _ := cmd.Flags().GetString("secret-key")

			if endpoint != "" {
				cfg.S3.Endpoint = endpoint
			}
			if bucket != "" {
				cfg.S3.Bucket = bucket
			}
			if accessKey != "" {
				cfg.S3.AccessKey = accessKey
			}
			if secretKey != "" {
				cfg.S3.SecretKey = secretKey
			}
		}

		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.SaveConfig(cfg, configPath); err != nil {
			return err
		}

		// Prepare the backend
		switch cfg.Backend {
		case config.BackendLocal:
			if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}
			cmd.Printf("Created data directory %s\n", cfg.DataDir)
		case config.BackendS3:
			s3, err := store.NewMinioStore(store.MinioConfig{
				Endpoint:  cfg.S3.Endpoint,
				AccessKey: cfg.S3.AccessKey,
				SecretKey: cfg.S3.SecretKey,
				Bucket:    cfg.S3.Bucket,
				Region:    cfg.S3.Region,
				UseSSL:    cfg.S3.UseSSL,
			})
			if err != nil {
				return err
			}
			if err := s3.EnsureBucket(cmd.Context()); err != nil {
				return err
			}
			cmd.Printf("Bucket %s is ready at %s\n", cfg.S3.Bucket, cfg.S3.Endpoint)
		}

		cmd.Printf("Configuration written to %s\n", configPath)
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("data-dir", "", "Data directory for the local backend")
	initCmd.Flags().String("backend", "", "Storage backend: local or s3")
	initCmd.Flags().String("endpoint", "", "S3 endpoint (host:port)")
	initCmd.Flags().String("bucket", "", "S3 bucket name")
	initCmd.Flags().String("access-key", "", "S3 access key")
	initCmd.Flags().String("secret-key", "", "S3 secret key")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
