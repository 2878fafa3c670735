package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/AvengeMedia/dankprint/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Inspect and control print jobs",
	Long:  "Get job details, send job commands, cancel jobs and watch their progress",
}

var jobGetCmd = &cobra.Command{
	Use:   "get <printer> <job_id>",
	Short: "Show a job",
	Long:  "Show a job's normalized status and attributes",
	Args:  cobra.ExactArgs(2),
	Run:   runJobGet,
}

var jobSetCmd = &cobra.Command{
	Use:   "set <printer> <job_id> <command>",
	Short: "Send a command to a job",
	Long:  "Send a job command such as PAUSE, RESUME or CANCEL (see 'dprint commands')",
	Args:  cobra.ExactArgs(3),
	Run:   runJobSet,
}

var jobCancelCmd = &cobra.Command{
	Use:   "cancel <printer> <job_id>",
	Short: "Cancel a job",
	Long:  "Cancel a job and report whether it was cancelled, already gone or already finished",
	Args:  cobra.ExactArgs(2),
	Run:   runJobCancel,
}

var jobWatchCmd = &cobra.Command{
	Use:   "watch <printer> <job_id>",
	Short: "Watch a job until it finishes",
	Long:  "Follow a job's status changes until it is printed, cancelled or removed",
	Args:  cobra.ExactArgs(2),
	Run:   runJobWatch,
}

func init() {
	jobGetCmd.Flags().Bool("json", false, "Output JSON")
	jobWatchCmd.Flags().Duration("interval", 0, "Poll interval (default: watch.interval from config)")

	jobCmd.AddCommand(jobGetCmd, jobSetCmd, jobCancelCmd, jobWatchCmd)
}

func parseJobID(s string) int {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		log.Fatalf("Invalid job id: %s", s)
	}
	return id
}

func runJobGet(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	job, err := newService().Job(ctx, args[0], parseJobID(args[1]))
	if err != nil {
		log.Fatalf("Failed to get job: %v", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		printJSON(job)
		return
	}
	styles := tui.NewStyles()
	fmt.Println(styles.JobsTable([]printer.PrintJob{job}))
	if len(job.Options) > 0 {
		fmt.Println(styles.AttributesTable(job.Options))
	}
}

func runJobSet(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	ok, err := newService().SetJob(ctx, args[0], parseJobID(args[1]), args[2])
	if err != nil {
		log.Fatalf("Failed to set job: %v", err)
	}
	if !ok {
		log.Fatalf("Printer refused %s for job %s", args[2], args[1])
	}
	fmt.Printf("Sent %s to job %s-%s\n", args[2], args[0], args[1])
}

func runJobCancel(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout())
	defer cancel()

	outcome, err := newService().CancelJob(ctx, args[0], parseJobID(args[1]))
	if err != nil {
		log.Fatalf("Failed to cancel job: %v", err)
	}

	switch outcome {
	case printer.CancelOutcomeCancelled:
		fmt.Printf("Cancelled job %s-%s\n", args[0], args[1])
	case printer.CancelOutcomeDeleted:
		fmt.Printf("Job %s-%s no longer exists\n", args[0], args[1])
	case printer.CancelOutcomeAlreadyFinished:
		fmt.Printf("Job %s-%s had already finished\n", args[0], args[1])
	}
}

func runJobWatch(cmd *cobra.Command, args []string) {
	printerName := args[0]
	jobID := parseJobID(args[1])
	interval, _ := cmd.Flags().GetDuration("interval")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := newService().WatchJob(ctx, printerName, jobID, interval)
	final, err := tea.NewProgram(tui.NewWatchModel(printerName, jobID, events)).Run()
	if err != nil {
		log.Fatalf("Watch failed: %v", err)
	}

	if m, ok := final.(tui.WatchModel); ok && m.State() == tui.StateFailed {
		log.Errorf("Failed to watch job: %v", m.Err())
		os.Exit(1)
	}
}
