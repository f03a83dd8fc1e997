package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garrettladley/ready/internal/load"
	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/xtime"
)

const defaultHistoryDays = 30

func summaryCmd() *cobra.Command {
	var (
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show readiness, recovery and training load for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			day, err := app.day(date)
			if err != nil {
				return err
			}

			summary, err := app.tracker.Summary(app.context(cmd.Context()), app.userID, day)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(summary)
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to summarise (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(w io.Writer, s *tracker.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	fmt.Fprintf(tw, "Date\t%s\n", xtime.FormatDay(s.Date))

	if r := s.Recommendation; r != nil {
		fmt.Fprintf(tw, "Readiness\t%d (%s)\n", r.Score, r.Color)
		fmt.Fprintf(tw, "Recommendation\t%s: %s\n", r.Label, r.Description)
	} else {
		fmt.Fprintf(tw, "Readiness\tno check-in\n")
	}

	if s.TQR != nil {
		fmt.Fprintf(tw, "TQR\t%.1f\n", *s.TQR)
	}
	if s.PSR != nil {
		fmt.Fprintf(tw, "PSR\t%.1f\n", *s.PSR)
	}
	if s.Assessment != nil {
		fmt.Fprintf(tw, "Recovery index\t%.1f\n", s.Recovery.RecoveryIndex)
		fmt.Fprintf(tw, "Sleep tonight\t%.1fh (debt %.1fh)\n", s.Recovery.SleepNeededTonight, s.SleepDebt)
		fmt.Fprintf(tw, "Time to ready\t%.1fh\n", s.Recovery.TimeToReadyHours)
	}

	fmt.Fprintf(tw, "Load\tTSS %.0f  ATL %.1f  CTL %.1f  TSB %+.1f\n", s.Load.TSS, s.Load.ATL, s.Load.CTL, s.Load.TSB)
	fmt.Fprintf(tw, "Form\t%s\n", load.FormDescription(s.Load.TSB))
	fmt.Fprintf(tw, "Monotony\t%.2f  strain %.0f\n", s.Load.Monotony, s.Load.Strain)

	for _, sl := range s.Sessions {
		kind := sl.TrainingType
		if kind == "" {
			kind = "session"
		}
		fmt.Fprintf(tw, "  %s\t%.0f min  TSS %.0f  TRIMP %.0f  PSE %.1f  [%s]\n",
			kind, sl.Duration, sl.TSS, sl.TRIMP, sl.PSE, sl.ID)
	}
}

func historyCmd() *cobra.Command {
	var (
		days   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show daily recovery for recent days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 || days > tracker.MaxHistoryDays {
				return fmt.Errorf("--days must be between 1 and %d", tracker.MaxHistoryDays)
			}

			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			end := app.today()
			start := xtime.AddDays(end, -(days - 1))

			history, err := app.tracker.History(app.context(cmd.Context()), app.userID, start, end)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(history)
			}
			printHistory(cmd.OutOrStdout(), history)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", defaultHistoryDays, "number of days to show, ending today")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the history as JSON")
	return cmd
}

func printHistory(w io.Writer, history []tracker.DayRecovery) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	fmt.Fprintln(tw, "DATE\tDAY\tTQR\tSCORE\tCOLOR")
	for _, d := range history {
		day := d.Date.Weekday().String()[:3]
		if d.Missing {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\n", xtime.FormatDay(d.Date), day)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%d\t%s\n", xtime.FormatDay(d.Date), day, deref(d.TQR), deref(d.Score), d.Color)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

