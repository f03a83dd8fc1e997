package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xerrors"
)

func assessCmd() *cobra.Command {
	var (
		date          string
		a             wellness.DailyAssessment
		sleepDuration float64
		restingHR     int
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Record the daily check-in",
		Long: "Record how you slept and feel today on 0-10 scales. " +
			"Submitting again for the same day replaces the earlier check-in.",
		Example: "  ready assess --sleep-quality 7 --sleep-regularity 6 --fatigue 3 --mood 7 \\\n" +
			"    --soreness 2 --stress 4 --exhaustion 2 --sleep-hours 7.5 --rhr 54",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if a.Date, err = app.day(date); err != nil {
				return err
			}
			if cmd.Flags().Changed("sleep-hours") {
				a.SleepDuration = &sleepDuration
			}
			if cmd.Flags().Changed("rhr") {
				a.RestingHR = &restingHR
			}

			ctx := app.context(cmd.Context())
			if _, err := app.tracker.SubmitAssessment(ctx, app.userID, a); err != nil {
				return describe(err)
			}

			summary, err := app.tracker.Summary(ctx, app.userID, a.Date)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "day of the check-in (YYYY-MM-DD, default today)")
	f.IntVar(&a.SleepQuality, "sleep-quality", 0, "sleep quality 0-10")
	f.IntVar(&a.SleepRegularity, "sleep-regularity", 0, "sleep regularity 0-10")
	f.IntVar(&a.FatigueLevel, "fatigue", 0, "fatigue 0-10")
	f.IntVar(&a.Mood, "mood", 0, "mood 0-10")
	f.IntVar(&a.MuscleSoreness, "soreness", 0, "muscle soreness 0-10")
	f.IntVar(&a.StressLevel, "stress", 0, "stress 0-10")
	f.IntVar(&a.Exhaustion, "exhaustion", 0, "exhaustion 0-10")
	f.Float64Var(&sleepDuration, "sleep-hours", 0, "hours slept")
	f.IntVar(&restingHR, "rhr", 0, "morning resting heart rate in bpm")
	_ = cmd.MarkFlagRequired("sleep-quality")

	return cmd
}

// describe flattens validation failures into a single readable error.
func describe(err error) error {
	e := xerrors.As(err)
	if e == nil || e.Validation == nil {
		return err
	}

	fields := e.Validation.Fields
	lines := make([]string, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		lines = append(lines, fmt.Sprintf("  %s: %s", k, fields[k]))
	}
	return errors.New(e.Message + "\n" + strings.Join(lines, "\n"))
}
