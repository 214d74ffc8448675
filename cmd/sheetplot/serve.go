package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplot-go/pkg/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chart session API over HTTP",
	Long: `Start the HTTP session API.

Each client creates a session, uploads a workbook and posts chart
selections; the server answers with the rendered chart. Idle sessions
are dropped after server.session_ttl.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := appConfig.Server
	if cmd.Flags().Changed("addr") {
		sc.Addr = serveAddr
	}
	opts, err := sessionOptions()
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:           sc.Addr,
		MaxUploadBytes: sc.MaxUploadBytes,
		SessionTTL:     sc.SessionTTL,
		ReadTimeout:    sc.ReadTimeout,
		WriteTimeout:   sc.WriteTimeout,
		Session:        opts,
	}, appLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
