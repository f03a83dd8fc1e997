package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/ready/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "ready",
		Short:   "Training readiness in your terminal",
		Long:    "Log daily check-ins and training sessions, and see how ready you are to train.",
		Version: version.Get(),
		RunE:    runTUI,
	}

	rootCmd.AddCommand(
		assessCmd(),
		sessionCmd(),
		summaryCmd(),
		historyCmd(),
		tasksCmd(),
		completeCmd(),
		metricsCmd(),
	)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
