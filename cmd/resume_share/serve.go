package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-share/internal/logging"
	"github.com/jonathan/resume-share/internal/server"
	"github.com/jonathan/resume-share/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local resume viewer",
	Long:  `Start an HTTP server that renders share links (/share), saved resumes (/preview) and exposes /api/share and /api/resolve.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to the configured port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(appConfig.LogLevel)
	if err != nil {
		return err
	}
	serverLogger := logging.NewJSON(os.Stderr, level)

	port := appConfig.Port
	if servePort != 0 {
		port = servePort
	}

	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Port:      port,
		Origin:    appConfig.Origin,
		Template:  appConfig.Template,
		RateLimit: ratelimit.LoadConfig(),
	}, svc, serverLogger)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("viewer stopped: %w", err)
	}
	return nil
}
