package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/server"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the printing API on a unix socket",
	Long:  "Serve printer.* requests as newline-delimited JSON on a unix socket until interrupted",
	Args:  cobra.NoArgs,
	Run:   runServer,
}

func init() {
	serverCmd.Flags().String("socket", "", "Socket path (default: server.socket from config)")
}

func runServer(cmd *cobra.Command, args []string) {
	socket, _ := cmd.Flags().GetString("socket")
	if socket == "" {
		socket = cfg.Server.Socket
	}

	svc := newService()
	if closer, ok := svc.Backend().(interface{ Close() }); ok {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(socket, svc)
	if err := srv.Listen(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	if err := srv.Serve(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Info("Server stopped")
}
