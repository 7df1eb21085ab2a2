/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantike/gulog/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the gulog REST API server.

The server exposes append, read, and verify over HTTP, protected by an
API key, with Prometheus metrics on /metrics.

Examples:
  gulog serve
  gulog serve --port=8080 --api-key=mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, ok := clientFromContext(cmd)
		if !ok {
			return fmt.Errorf("log client not found in context")
		}
		cfg, ok := configFromContext(cmd)
		if !ok {
			return fmt.Errorf("config not found in context")
		}

		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")

		if port == 0 {
			port = cfg.Port
		}
		if bind == "" {
			bind = cfg.Bind
		}
		if apiKey == "" {
			apiKey = cfg.Security.APIKey
		}
		if apiKey == "" || apiKey == "auto" {
			return fmt.Errorf("no API key configured (run 'gulog init' or pass --api-key)")
		}

		return api.StartServer(client, api.ServerConfig{
			Port:   port,
			Bind:   bind,
			APIKey: apiKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().String("bind", "", "Address to bind to (default from config)")
	serveCmd.Flags().String("api-key", "", "API key for authentication (default from config)")
}
