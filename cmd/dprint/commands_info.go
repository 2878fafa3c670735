package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/AvengeMedia/dankprint/internal/tui"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported print formats",
	Long:  "List the data types the backend accepts for raw submissions",
	Args:  cobra.NoArgs,
	Run:   runFormats,
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List supported job commands",
	Long:  "List the commands accepted by 'dprint job set'",
	Args:  cobra.NoArgs,
	Run:   runCommands,
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List printing backends for this platform",
	Long:  "List the backends tried on this platform, in order, and the one that resolves",
	Args:  cobra.NoArgs,
	Run:   runBackends,
}

func runFormats(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	formats, err := newService().SupportedPrintFormats(ctx)
	if err != nil {
		log.Fatalf("Failed to get print formats: %v", err)
	}
	fmt.Println(tui.NewStyles().ListTable("Format", formats))
}

func runCommands(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	commands, err := newService().SupportedJobCommands(ctx)
	if err != nil {
		log.Fatalf("Failed to get job commands: %v", err)
	}
	fmt.Println(tui.NewStyles().ListTable("Command", commands))
}

func runBackends(cmd *cobra.Command, args []string) {
	styles := tui.NewStyles()
	names := printer.Providers(runtime.GOOS, runtime.GOARCH)
	if len(names) == 0 {
		log.Fatalf("No printing backends registered for %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	fmt.Println(styles.ListTable(fmt.Sprintf("Backends (%s/%s)", runtime.GOOS, runtime.GOARCH), names))
	fmt.Printf("Using: %s\n", styles.Success.Render(newService().Backend().Name()))
}
