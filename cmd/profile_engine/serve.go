package main

import (
	"github.com/spf13/cobra"

	"github.com/szmyty/profile/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the data documents and rendered cards over HTTP",
	Long: `Starts a read-only HTTP API over the fetched JSON documents, the workflow
metrics store, and the rendered SVG cards.`,
	RunE: runServe,
}

var serveListenAddr string

func init() {
	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "Listen address, host:port (defaults to the configured listen_addr)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, log, err := engineConfig()
	if err != nil {
		return err
	}
	if serveListenAddr != "" {
		cfg.ListenAddr = serveListenAddr
	}

	return server.New(cfg, log).Start()
}
