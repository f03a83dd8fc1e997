package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/garrettladley/ready/internal/wellness"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Log or remove training sessions",
	}
	cmd.AddCommand(sessionAddCmd(), sessionRemoveCmd())
	return cmd
}

func sessionAddCmd() *cobra.Command {
	var (
		date      string
		s         wellness.TrainingSession
		intensity float64
		tss       float64
		avgHR     int
		maxHR     int
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Log a training session",
		Example: "  ready session add --duration 60 --rpe 7 --type run --avg-hr 148",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if s.Date, err = app.day(date); err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("intensity") {
				s.Intensity = &intensity
			}
			if flags.Changed("tss") {
				s.TSS = &tss
			}
			if flags.Changed("avg-hr") {
				s.AverageHR = &avgHR
			}
			if flags.Changed("max-hr") {
				s.MaxHR = &maxHR
			}

			saved, err := app.tracker.LogSession(app.context(cmd.Context()), app.userID, s)
			if err != nil {
				return describe(err)
			}

			tssValue := 0.0
			if saved.TSS != nil {
				tssValue = *saved.TSS
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged session %s (TSS %.0f)\n", saved.ID, tssValue)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "day of the session (YYYY-MM-DD, default today)")
	f.Float64Var(&s.Duration, "duration", 0, "duration in minutes")
	f.Float64Var(&s.RPE, "rpe", 0, "session rating of perceived exertion 0-10")
	f.Float64Var(&intensity, "intensity", 0, "intensity 0-10 (defaults to RPE)")
	f.Float64Var(&tss, "tss", 0, "precomputed training stress score")
	f.IntVar(&avgHR, "avg-hr", 0, "average heart rate in bpm")
	f.IntVar(&maxHR, "max-hr", 0, "maximum heart rate in bpm")
	f.StringVar(&s.TrainingType, "type", "", "kind of training, e.g. run or strength")
	f.StringVar(&s.Notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}

func sessionRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <session-id>",
		Short: "Delete a logged session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", args[0], err)
			}

			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.tracker.DeleteSession(app.context(cmd.Context()), app.userID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", id)
			return nil
		},
	}
}
