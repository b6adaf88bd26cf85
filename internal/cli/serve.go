package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apper-canvas/flowforge/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serve the task, project and user collections over HTTP.

Examples:
  flowforge serve
  flowforge serve --listen :9090`,
	RunE: runServe,
}

var serveListen string

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Listen address (defaults to config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	addr := serveListen
	if addr == "" {
		addr = cfg.Listen
	}

	srv := server.New(st)
	fmt.Printf("FlowForge API listening on %s\n", addr)
	return srv.Start(addr)
}
