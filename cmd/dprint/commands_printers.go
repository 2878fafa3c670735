package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/tui"
	"github.com/spf13/cobra"
)

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "Inspect printers",
	Long:  "List printers and inspect their status, default selection and driver options",
}

var printersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all printers",
	Long:  "List every printer the backend knows, with its normalized status",
	Args:  cobra.NoArgs,
	Run:   runPrintersList,
}

var printersGetCmd = &cobra.Command{
	Use:   "get [printer]",
	Short: "Show one printer",
	Long:  "Show a printer's status, attributes and queued jobs (default printer when omitted)",
	Args:  cobra.MaximumNArgs(1),
	Run:   runPrintersGet,
}

var printersDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the default printer name",
	Long:  "Print the name of the system default printer",
	Args:  cobra.NoArgs,
	Run:   runPrintersDefault,
}

var printersOptionsCmd = &cobra.Command{
	Use:   "options [printer]",
	Short: "Show driver options",
	Long:  "Show the driver options of a printer and which choice is selected (default printer when omitted)",
	Args:  cobra.MaximumNArgs(1),
	Run:   runPrintersOptions,
}

var printersPaperSizeCmd = &cobra.Command{
	Use:   "paper-size [printer]",
	Short: "Print the selected paper size",
	Long:  "Print the currently selected PageSize choice of a printer (default printer when omitted)",
	Args:  cobra.MaximumNArgs(1),
	Run:   runPrintersPaperSize,
}

func init() {
	printersListCmd.Flags().Bool("json", false, "Output JSON")
	printersGetCmd.Flags().Bool("json", false, "Output JSON")
	printersOptionsCmd.Flags().Bool("json", false, "Output JSON")

	printersCmd.AddCommand(printersListCmd, printersGetCmd, printersDefaultCmd, printersOptionsCmd, printersPaperSizeCmd)
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}

func runPrintersList(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	printers, err := newService().Printers(ctx)
	if err != nil {
		log.Fatalf("Failed to list printers: %v", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		printJSON(printers)
		return
	}
	if len(printers) == 0 {
		fmt.Println("No printers found")
		return
	}
	fmt.Println(tui.NewStyles().PrintersTable(printers))
}

func runPrintersGet(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	p, err := newService().Printer(ctx, optionalArg(args))
	if err != nil {
		log.Fatalf("Failed to get printer: %v", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		printJSON(p)
		return
	}
	fmt.Println(tui.NewStyles().PrinterDetail(p))
}

func runPrintersDefault(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	name, err := newService().DefaultPrinterName(ctx)
	if err != nil {
		log.Fatalf("Failed to get default printer: %v", err)
	}
	fmt.Println(name)
}

func runPrintersOptions(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	opts, err := newService().DriverOptions(ctx, optionalArg(args))
	if err != nil {
		log.Fatalf("Failed to get driver options: %v", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		printJSON(opts)
		return
	}
	if len(opts) == 0 {
		fmt.Println("No driver options available")
		return
	}
	fmt.Println(tui.NewStyles().DriverOptionsTable(opts))
}

func runPrintersPaperSize(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	size, err := newService().SelectedPaperSize(ctx, optionalArg(args))
	if err != nil {
		log.Fatalf("Failed to get paper size: %v", err)
	}
	if size == "" {
		fmt.Println("No paper size selected")
		return
	}
	fmt.Println(size)
}
