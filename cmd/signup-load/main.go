package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/mergington/internal/loadtest"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Stderr.WriteString("Load test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg        loadtest.Config
		logFile    string
		verbose    bool
		runTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "signup-load",
		Short: "Exercise the activities API with concurrent signups",
		Long: `signup-load signs up synthetic students across every activity, confirms
duplicates are rejected, verifies the roster, then withdraws everyone again.`,
		Example: `  signup-load --url http://localhost:8000 --students 2000 --workers 16`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadtest.SetupLogging(logFile, verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()
			_, err := loadtest.Run(ctx, cfg)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", "http://localhost:8000", "Base URL of the service")
	flags.IntVarP(&cfg.Students, "students", "n", loadtest.DefaultStudents, "Number of students to sign up")
	flags.IntVarP(&cfg.Workers, "workers", "w", loadtest.DefaultWorkers, "Number of concurrent workers")
	flags.DurationVar(&cfg.Timeout, "timeout", loadtest.DefaultTimeout, "HTTP request timeout")
	flags.IntVar(&cfg.DupSample, "duplicates", loadtest.DefaultDupSample, "Number of duplicate signups to verify")
	flags.BoolVar(&cfg.KeepMembers, "keep", false, "Leave students enrolled after the run")
	flags.StringVarP(&cfg.OutputFile, "output", "o", "", "Write a JSON report to this file")
	flags.StringVar(&logFile, "log", "", "Also write logs to this file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.DurationVar(&runTimeout, "run-timeout", defaultRunTimeout, "Overall run deadline")

	return cmd
}
