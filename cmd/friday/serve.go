package main

import (
	"github.com/spf13/cobra"

	"github.com/fridaylabs/friday-go/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant over HTTP (WebSocket chat, health, metrics)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAssistant(false)
		if err != nil {
			return err
		}
		defer a.close()

		srv := server.New(a.newDispatcher, a.metrics, log)
		return srv.ListenAndServe(cfg.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
