package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Submit print jobs",
	Long:  "Submit raw data or a file to a printer",
}

var printRawCmd = &cobra.Command{
	Use:   "raw [file]",
	Short: "Print raw data",
	Long:  "Send raw bytes from a file, or from stdin when no file is given, to a printer",
	Args:  cobra.MaximumNArgs(1),
	Run:   runPrintRaw,
}

var printFileCmd = &cobra.Command{
	Use:   "file <filename>",
	Short: "Print a file",
	Long:  "Hand a file to the backend, which converts it for the printer",
	Args:  cobra.ExactArgs(1),
	Run:   runPrintFile,
}

func init() {
	for _, c := range []*cobra.Command{printRawCmd, printFileCmd} {
		c.Flags().StringP("printer", "p", "", "Printer name (default printer when omitted)")
		c.Flags().StringP("docname", "t", "", "Document name")
		c.Flags().StringArrayP("option", "o", nil, "Printer option as key=value (repeatable)")
	}
	printRawCmd.Flags().String("type", printer.DefaultType, "Data type: RAW, TEXT, PDF, JPEG, POSTSCRIPT, COMMAND or AUTO")
	printRawCmd.Flags().String("media", "", "Media size (legacy option)")
	printRawCmd.Flags().String("fit-to-page", "", "Fit to page: true or false (legacy option)")

	printCmd.AddCommand(printRawCmd, printFileCmd)
}

func parseOptions(pairs []string) map[string]string {
	options := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			log.Fatalf("Invalid option %q, expected key=value", pair)
		}
		options[key] = value
	}
	return options
}

func runPrintRaw(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		log.Fatalf("Failed to read data: %v", err)
	}

	printerName, _ := cmd.Flags().GetString("printer")
	docname, _ := cmd.Flags().GetString("docname")
	dataType, _ := cmd.Flags().GetString("type")
	pairs, _ := cmd.Flags().GetStringArray("option")

	req := printer.SubmissionRequest{
		Data:    data,
		Printer: printerName,
		DocName: docname,
		Type:    dataType,
		Options: parseOptions(pairs),
	}
	if cmd.Flags().Changed("media") || cmd.Flags().Changed("fit-to-page") {
		media, _ := cmd.Flags().GetString("media")
		fit, _ := cmd.Flags().GetString("fit-to-page")
		req.Legacy = &printer.LegacyOptions{Media: media, FitToPage: fit}
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	res := <-newService().Submit(ctx, req)
	if res.Err != nil {
		log.Fatalf("Print failed: %v", res.Err)
	}
	if res.Path == printer.PathSubprocess {
		fmt.Println("Submitted via lpr")
		return
	}
	fmt.Printf("Submitted job %d\n", res.JobID)
}

func runPrintFile(cmd *cobra.Command, args []string) {
	printerName, _ := cmd.Flags().GetString("printer")
	docname, _ := cmd.Flags().GetString("docname")
	pairs, _ := cmd.Flags().GetStringArray("option")

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	jobID, err := newService().PrintFile(ctx, printer.FileRequest{
		Filename: args[0],
		Printer:  printerName,
		DocName:  docname,
		Options:  parseOptions(pairs),
	})
	if err != nil {
		log.Fatalf("Print failed: %v", err)
	}
	fmt.Printf("Submitted job %d\n", jobID)
}
